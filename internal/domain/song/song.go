// Package song defines the Song entity and its filename constructor.
package song

import (
	"fmt"

	"github.com/zjrosen/rollcall/internal/domain/registry"
	"github.com/zjrosen/rollcall/internal/ingest"
)

// Kind is the registry kind for songs.
const Kind = "song"

// Song is a track title with the name of the artist who recorded it.
type Song struct {
	name       string
	artistName string
}

// New builds an untitled song. Nothing is registered.
func New() *Song {
	return &Song{}
}

// NewByName builds a song titled name without registering it.
func NewByName(name string) *Song {
	s := New()
	s.name = name
	return s
}

// NewFromFilename builds a song from "<artist> - <title>.mp3".
func NewFromFilename(filename string) (*Song, error) {
	artist, title, err := ingest.ParseFilename(filename)
	if err != nil {
		return nil, fmt.Errorf("new song from filename: %w", err)
	}
	return &Song{name: title, artistName: artist}, nil
}

// NewRegistry creates an empty song registry.
func NewRegistry(opts ...registry.Option) *registry.Registry[*Song] {
	return registry.MustNew[*Song](Kind, NewByName, opts...)
}

// Save adds the song to r.
func (s *Song) Save(r registry.Saver[*Song]) error {
	return r.Add(s)
}

// Name returns the song title.
func (s *Song) Name() string {
	return s.name
}

// SetName replaces the song title.
func (s *Song) SetName(name string) {
	s.name = name
}

// ArtistName returns the artist.
func (s *Song) ArtistName() string {
	return s.artistName
}

// SetArtistName replaces the artist.
func (s *Song) SetArtistName(name string) {
	s.artistName = name
}
