package ingest

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// FilenameSeparator separates artist from title.
	FilenameSeparator = " - "
	// FilenameSuffix is stripped from the title.
	FilenameSuffix = ".mp3"
)

// ErrMalformedFilename is returned when a filename lacks the artist separator
// or either side of it is empty.
var ErrMalformedFilename = errors.New("malformed filename")

// ParseFilename splits "<artist> - <title>.mp3" into its artist and title.
// Only the first separator splits, so titles may themselves contain " - ".
func ParseFilename(filename string) (artist, title string, err error) {
	artist, rest, ok := strings.Cut(filename, FilenameSeparator)
	if !ok {
		return "", "", fmt.Errorf("%w: %q has no %q", ErrMalformedFilename, filename, FilenameSeparator)
	}
	title = strings.TrimSuffix(rest, FilenameSuffix)
	if artist == "" || title == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedFilename, filename)
	}
	return artist, title, nil
}
