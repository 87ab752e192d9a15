package roster

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/rollcall/internal/cachemanager"
	"github.com/zjrosen/rollcall/internal/domain/person"
	"github.com/zjrosen/rollcall/internal/domain/registry"
	"github.com/zjrosen/rollcall/internal/domain/song"
	"github.com/zjrosen/rollcall/internal/flags"
	"github.com/zjrosen/rollcall/internal/ingest"
	"github.com/zjrosen/rollcall/internal/log"
	"github.com/zjrosen/rollcall/internal/pubsub"
	"github.com/zjrosen/rollcall/internal/tracing"
)

// Service owns the person and song registries.
type Service struct {
	People *registry.Registry[*person.Person]
	Songs  *registry.Registry[*song.Song]

	flags    *flags.Registry
	tracer   trace.Tracer
	files    *cachemanager.ReadThroughCache[string, string, string]
	cacheTTL time.Duration
}

// Option configures a Service.
type Option func(*options)

type options struct {
	broker   *pubsub.Broker[registry.Change]
	tracer   trace.Tracer
	flags    *flags.Registry
	cache    cachemanager.CacheManager[string, string]
	cacheTTL time.Duration
}

// WithBroker publishes changes from both registries to b.
func WithBroker(b *pubsub.Broker[registry.Change]) Option {
	return func(o *options) { o.broker = b }
}

// WithTracer traces imports and seed loads with t.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithFlags sets the feature flags consulted on import.
func WithFlags(f *flags.Registry) Option {
	return func(o *options) { o.flags = f }
}

// WithFileCache replaces the in-memory import file cache.
func WithFileCache(c cachemanager.CacheManager[string, string]) Option {
	return func(o *options) { o.cache = c }
}

// WithCacheTTL sets how long an import file is reused. Zero reads the file
// on every import.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) { o.cacheTTL = ttl }
}

// New creates a Service with empty registries.
func New(opts ...Option) *Service {
	o := options{cacheTTL: cachemanager.DefaultExpiration}
	for _, fn := range opts {
		fn(&o)
	}
	if o.tracer == nil {
		o.tracer = tracing.Noop().Tracer()
	}
	if o.cache == nil {
		o.cache = cachemanager.NewInMemoryCacheManager[string, string](
			"import-files", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	}

	var regOpts []registry.Option
	if o.broker != nil {
		regOpts = append(regOpts, registry.WithBroker(o.broker))
	}

	skipCache := o.cacheTTL <= 0 || o.flags.Enabled(flags.FlagSkipImportCache)
	return &Service{
		People:   person.NewRegistry(regOpts...),
		Songs:    song.NewRegistry(regOpts...),
		flags:    o.flags,
		tracer:   o.tracer,
		files:    cachemanager.NewReadThroughCache[string, string, string](o.cache, readFile, skipCache),
		cacheTTL: o.cacheTTL,
	}
}

func readFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	trace.SpanFromContext(ctx).AddEvent(tracing.EventFileRead)
	return string(data), nil
}

// CreatePerson builds a person named name and saves it.
func (s *Service) CreatePerson(name string) *person.Person {
	return s.People.Create(name)
}

// FindPerson returns the first saved person named name.
func (s *Service) FindPerson(name string) (*person.Person, bool) {
	return s.People.FindByName(name)
}

// FindOrCreatePerson returns the saved person named name, creating one if
// needed. created reports which happened.
func (s *Service) FindOrCreatePerson(name string) (p *person.Person, created bool) {
	return s.People.FindOrCreateByName(name)
}

// PeopleFromCSV builds one person per "name, age, company" row. When save is
// true they are added to the registry in row order. A malformed row fails
// the call before anything is saved.
func (s *Service) PeopleFromCSV(data string, save bool) ([]*person.Person, error) {
	rows, err := ingest.ParsePeopleCSV(data)
	if err != nil {
		return nil, fmt.Errorf("people from csv: %w", err)
	}

	people := make([]*person.Person, 0, len(rows))
	for _, row := range rows {
		people = append(people, person.New(row.Name, row.Age, row.Company))
	}
	if save {
		for _, p := range people {
			if err := s.People.Add(p); err != nil {
				return nil, fmt.Errorf("people from csv: %w", err)
			}
		}
	}
	return people, nil
}

// ImportPeopleFile reads a people CSV from path and saves every row. Names
// are normalized afterwards when the normalize-on-import flag is on.
func (s *Service) ImportPeopleFile(ctx context.Context, path string) ([]*person.Person, error) {
	return s.importPeople(ctx, path, false)
}

// ReloadPeopleFile drops the cached copy of path and replaces the people
// registry with the file's rows. If the file cannot be read or parsed the
// registry keeps its previous contents.
func (s *Service) ReloadPeopleFile(ctx context.Context, path string) ([]*person.Person, error) {
	s.files.Invalidate(ctx, path)
	return s.importPeople(ctx, path, true)
}

func (s *Service) importPeople(ctx context.Context, path string, replace bool) ([]*person.Person, error) {
	batchID := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, tracing.SpanImportPeople, trace.WithAttributes(
		attribute.String(tracing.AttrKind, person.Kind),
		attribute.String(tracing.AttrPath, path),
		attribute.String(tracing.AttrBatchID, batchID),
		attribute.Bool(tracing.AttrReplace, replace),
	))
	defer span.End()

	data, err := s.files.Get(ctx, path, path, s.cacheTTL)
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("import people %s: %w", path, err))
	}

	people, err := s.PeopleFromCSV(data, false)
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("import people %s: %w", path, err))
	}
	span.AddEvent(tracing.EventParsed, trace.WithAttributes(attribute.Int(tracing.AttrRows, len(people))))

	if replace {
		err = s.People.ReplaceAll(people)
	} else {
		for _, p := range people {
			if err = s.People.Add(p); err != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("import people %s: %w", path, err))
	}

	if s.flags.Enabled(flags.FlagNormalizeOnImport) {
		s.People.NormalizeNames()
		span.AddEvent(tracing.EventNormalized)
	}

	size := s.People.Len()
	span.SetAttributes(attribute.Int(tracing.AttrSize, size))
	log.Info(log.CatIngest, "imported people", "batch", batchID, "path", path, "rows", len(people), "size", size, "replace", replace)
	return people, nil
}

// CreateSong saves an untitled song.
func (s *Service) CreateSong() *song.Song {
	sng := song.New()
	s.Songs.MustAdd(sng)
	return sng
}

// CreateSongByName builds a song titled name and saves it.
func (s *Service) CreateSongByName(name string) *song.Song {
	return s.Songs.Create(name)
}

// FindSong returns the first saved song titled name.
func (s *Service) FindSong(name string) (*song.Song, bool) {
	return s.Songs.FindByName(name)
}

// FindOrCreateSong returns the saved song titled name, creating one if
// needed.
func (s *Service) FindOrCreateSong(name string) (sng *song.Song, created bool) {
	return s.Songs.FindOrCreateByName(name)
}

// CreateSongFromFilename builds a song from "<artist> - <title>.mp3" and
// saves it.
func (s *Service) CreateSongFromFilename(filename string) (*song.Song, error) {
	sng, err := song.NewFromFilename(filename)
	if err != nil {
		return nil, err
	}
	if err := sng.Save(s.Songs); err != nil {
		return nil, err
	}
	return sng, nil
}

// ImportSongFilenames saves one song per filename, in order. Every filename
// is parsed before any song is saved.
func (s *Service) ImportSongFilenames(ctx context.Context, filenames []string) ([]*song.Song, error) {
	batchID := uuid.NewString()
	_, span := s.tracer.Start(ctx, tracing.SpanImportSongs, trace.WithAttributes(
		attribute.String(tracing.AttrKind, song.Kind),
		attribute.String(tracing.AttrBatchID, batchID),
	))
	defer span.End()

	songs := make([]*song.Song, 0, len(filenames))
	for _, name := range filenames {
		sng, err := song.NewFromFilename(name)
		if err != nil {
			return nil, s.fail(span, fmt.Errorf("import songs: %w", err))
		}
		songs = append(songs, sng)
	}
	span.AddEvent(tracing.EventParsed, trace.WithAttributes(attribute.Int(tracing.AttrRows, len(songs))))

	for _, sng := range songs {
		if err := sng.Save(s.Songs); err != nil {
			return nil, s.fail(span, fmt.Errorf("import songs: %w", err))
		}
	}

	size := s.Songs.Len()
	span.SetAttributes(attribute.Int(tracing.AttrSize, size))
	log.Info(log.CatIngest, "imported songs", "batch", batchID, "rows", len(songs), "size", size)
	return songs, nil
}

// Reset empties both registries.
func (s *Service) Reset() {
	s.People.DestroyAll()
	s.Songs.DestroyAll()
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	log.ErrorErr(log.CatIngest, "import failed", err)
	return err
}
