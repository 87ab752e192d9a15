package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		filename string
		artist   string
		title    string
	}{
		{"Taylor Swift - Blank Space.mp3", "Taylor Swift", "Blank Space"},
		{"Michael Jackson - Thriller.mp3", "Michael Jackson", "Thriller"},
		{"Adele - Hello", "Adele", "Hello"},
		{"Artist - Song - Live Version.mp3", "Artist", "Song - Live Version"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			artist, title, err := ParseFilename(tt.filename)
			require.NoError(t, err)
			require.Equal(t, tt.artist, artist)
			require.Equal(t, tt.title, title)
		})
	}
}

func TestParseFilename_Malformed(t *testing.T) {
	for _, filename := range []string{
		"Blank Space.mp3",
		"",
		" - Blank Space.mp3",
		"Taylor Swift - .mp3",
		"Taylor Swift-Blank Space.mp3",
	} {
		t.Run(filename, func(t *testing.T) {
			_, _, err := ParseFilename(filename)
			require.ErrorIs(t, err, ErrMalformedFilename)
		})
	}
}
