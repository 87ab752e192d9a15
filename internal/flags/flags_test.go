package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_NilMap(t *testing.T) {
	r := New(nil)
	require.False(t, r.Enabled(FlagNormalizeOnImport))
	require.Empty(t, r.All())
}

func TestEnabled(t *testing.T) {
	r := New(map[string]bool{
		FlagNormalizeOnImport: true,
		FlagSkipImportCache:   false,
	})

	require.True(t, r.Enabled(FlagNormalizeOnImport))
	require.False(t, r.Enabled(FlagSkipImportCache))
	require.False(t, r.Enabled("does-not-exist"))
}

func TestEnabled_NilRegistry(t *testing.T) {
	var r *Registry
	require.False(t, r.Enabled(FlagNormalizeOnImport))
	require.Empty(t, r.All())
}

func TestNew_CopiesInput(t *testing.T) {
	in := map[string]bool{FlagNormalizeOnImport: true}
	r := New(in)

	in[FlagNormalizeOnImport] = false
	require.True(t, r.Enabled(FlagNormalizeOnImport))

	all := r.All()
	all[FlagNormalizeOnImport] = false
	require.True(t, r.Enabled(FlagNormalizeOnImport))
}
