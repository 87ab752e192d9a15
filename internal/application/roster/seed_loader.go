package roster

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/rollcall/internal/domain/person"
	"github.com/zjrosen/rollcall/internal/domain/song"
	"github.com/zjrosen/rollcall/internal/log"
	"github.com/zjrosen/rollcall/internal/tracing"
)

// Seed errors
var (
	ErrEmptySeed        = errors.New("seed file has no people or songs")
	ErrInvalidSeedEntry = errors.New("invalid seed entry")
)

// SeedFile is the root structure of a seed YAML file
type SeedFile struct {
	People []PersonDef `yaml:"people"`
	Songs  []SongDef   `yaml:"songs"`
}

// PersonDef defines one seeded person
type PersonDef struct {
	Name    string `yaml:"name"`
	Age     string `yaml:"age"`
	Company string `yaml:"company"`
}

// SongDef defines one seeded song, either by name and artist or by
// "<artist> - <title>.mp3" filename
type SongDef struct {
	Name     string `yaml:"name"`
	Artist   string `yaml:"artist"`
	Filename string `yaml:"filename"`
}

// ParseSeed decodes and checks a seed document.
func ParseSeed(data []byte) (*SeedFile, error) {
	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if len(file.People) == 0 && len(file.Songs) == 0 {
		return nil, ErrEmptySeed
	}
	for i, p := range file.People {
		if p.Name == "" {
			return nil, fmt.Errorf("people[%d]: %w: name is required", i, ErrInvalidSeedEntry)
		}
	}
	for i, sd := range file.Songs {
		switch {
		case sd.Name == "" && sd.Filename == "":
			return nil, fmt.Errorf("songs[%d]: %w: name or filename is required", i, ErrInvalidSeedEntry)
		case sd.Name != "" && sd.Filename != "":
			return nil, fmt.Errorf("songs[%d]: %w: name and filename are exclusive", i, ErrInvalidSeedEntry)
		}
	}
	return &file, nil
}

// build converts the definitions to unsaved entities.
func (f *SeedFile) build() ([]*person.Person, []*song.Song, error) {
	people := make([]*person.Person, 0, len(f.People))
	for _, p := range f.People {
		people = append(people, person.New(p.Name, p.Age, p.Company))
	}

	songs := make([]*song.Song, 0, len(f.Songs))
	for i, sd := range f.Songs {
		if sd.Filename != "" {
			sng, err := song.NewFromFilename(sd.Filename)
			if err != nil {
				return nil, nil, fmt.Errorf("songs[%d]: %w", i, err)
			}
			songs = append(songs, sng)
			continue
		}
		sng := song.NewByName(sd.Name)
		sng.SetArtistName(sd.Artist)
		songs = append(songs, sng)
	}
	return people, songs, nil
}

// LoadSeed reads the seed file at path in fsys and saves its people and
// songs. Nothing is saved if any entry is invalid.
func (s *Service) LoadSeed(ctx context.Context, fsys fs.FS, path string) error {
	_, span := s.tracer.Start(ctx, tracing.SpanLoadSeed, trace.WithAttributes(
		attribute.String(tracing.AttrPath, path),
	))
	defer span.End()

	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return s.fail(span, fmt.Errorf("read seed %s: %w", path, err))
	}
	file, err := ParseSeed(data)
	if err != nil {
		return s.fail(span, fmt.Errorf("seed %s: %w", path, err))
	}
	people, songs, err := file.build()
	if err != nil {
		return s.fail(span, fmt.Errorf("seed %s: %w", path, err))
	}

	for _, p := range people {
		if err := s.People.Add(p); err != nil {
			return s.fail(span, err)
		}
	}
	for _, sng := range songs {
		if err := sng.Save(s.Songs); err != nil {
			return s.fail(span, err)
		}
	}

	span.SetAttributes(attribute.Int(tracing.AttrRows, len(people)+len(songs)))
	log.Info(log.CatIngest, "loaded seed", "path", path, "people", len(people), "songs", len(songs))
	return nil
}
