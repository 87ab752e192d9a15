package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_DefaultWidth(t *testing.T) {
	r, err := New(0, false)
	require.NoError(t, err)
	require.Equal(t, DefaultWidth, r.Width())
}

func TestRender_Plain(t *testing.T) {
	r, err := New(60, false)
	require.NoError(t, err)

	out, err := r.Render("## Finders\n\nFind **Sandi Metz** by name.")
	require.NoError(t, err)
	require.Contains(t, out, "Finders")
	require.Contains(t, out, "Sandi Metz")
}

func TestRender_WrapsAtWidth(t *testing.T) {
	r, err := New(20, false)
	require.NoError(t, err)

	out, err := r.Render(strings.Repeat("word ", 20))
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		require.LessOrEqual(t, len(strings.TrimRight(line, " ")), 20)
	}
}
