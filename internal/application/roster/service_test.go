package roster

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/rollcall/internal/domain/registry"
	"github.com/zjrosen/rollcall/internal/flags"
	"github.com/zjrosen/rollcall/internal/ingest"
	"github.com/zjrosen/rollcall/internal/pubsub"
	"github.com/zjrosen/rollcall/internal/tracing"
)

const peopleCSV = "Elsa Wong, 30, Run\nsandi metz, 49, POODR\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func names[T registry.Entity](entities []T) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Name()
	}
	return out
}

func newRecorder() (*tracetest.SpanRecorder, Option) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	return rec, WithTracer(tp.Tracer("test"))
}

func TestFinderScenario(t *testing.T) {
	s := New()

	s.CreatePerson("Grace Hopper")
	s.CreatePerson("Sandi Metz")

	found, ok := s.FindPerson("Sandi Metz")
	require.True(t, ok)
	require.Equal(t, "Sandi Metz", found.Name())

	_, ok = s.FindPerson("Avi Flombaum")
	require.False(t, ok)
	require.Equal(t, 2, s.People.Len())
}

func TestFindOrCreatePerson(t *testing.T) {
	s := New()

	first, created := s.FindOrCreatePerson("Avi")
	require.True(t, created)
	again, created := s.FindOrCreatePerson("Avi")
	require.False(t, created)
	require.Same(t, first, again)
	require.Equal(t, 1, s.People.Len())
}

func TestPeopleFromCSV_Unsaved(t *testing.T) {
	s := New()

	people, err := s.PeopleFromCSV(peopleCSV, false)
	require.NoError(t, err)
	require.Equal(t, []string{"Elsa Wong", "sandi metz"}, names(people))
	require.Equal(t, "30", people[0].Age())
	require.Equal(t, "Run", people[0].Company())
	require.Zero(t, s.People.Len())
}

func TestPeopleFromCSV_Saved(t *testing.T) {
	s := New()

	_, err := s.PeopleFromCSV(peopleCSV, true)
	require.NoError(t, err)
	require.Equal(t, []string{"Elsa Wong", "sandi metz"}, names(s.People.All()))
}

func TestPeopleFromCSV_MalformedSavesNothing(t *testing.T) {
	s := New()

	_, err := s.PeopleFromCSV("Elsa Wong, 30, Run\nonly-a-name\n", true)
	require.ErrorIs(t, err, ingest.ErrMalformedRow)
	require.ErrorContains(t, err, "line 2")
	require.Zero(t, s.People.Len())
}

func TestImportPeopleFile(t *testing.T) {
	path := writeFile(t, "people.csv", peopleCSV)
	rec, withTracer := newRecorder()
	s := New(withTracer)

	people, err := s.ImportPeopleFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, people, 2)
	require.Equal(t, 2, s.People.Len())

	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, tracing.SpanImportPeople, spans[0].Name())

	var events []string
	for _, e := range spans[0].Events() {
		events = append(events, e.Name)
	}
	require.Equal(t, []string{tracing.EventFileRead, tracing.EventParsed}, events)
}

func TestImportPeopleFile_NormalizeFlag(t *testing.T) {
	path := writeFile(t, "people.csv", peopleCSV)
	s := New(WithFlags(flags.New(map[string]bool{flags.FlagNormalizeOnImport: true})))

	_, err := s.ImportPeopleFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, []string{"Elsa Wong", "Sandi Metz"}, names(s.People.All()))
}

func TestImportPeopleFile_CachesContent(t *testing.T) {
	path := writeFile(t, "people.csv", "Avi, 1, Flatiron\n")
	s := New()

	_, err := s.ImportPeopleFile(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("Grace, 2, Navy\n"), 0o644))

	_, err = s.ImportPeopleFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, []string{"Avi", "Avi"}, names(s.People.All()))
}

func TestImportPeopleFile_ZeroTTLRereads(t *testing.T) {
	path := writeFile(t, "people.csv", "Avi, 1, Flatiron\n")
	s := New(WithCacheTTL(0))

	_, err := s.ImportPeopleFile(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("Grace, 2, Navy\n"), 0o644))

	_, err = s.ImportPeopleFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, []string{"Avi", "Grace"}, names(s.People.All()))
}

func TestImportPeopleFile_SkipCacheFlag(t *testing.T) {
	path := writeFile(t, "people.csv", "Avi, 1, Flatiron\n")
	s := New(WithFlags(flags.New(map[string]bool{flags.FlagSkipImportCache: true})))

	_, err := s.ImportPeopleFile(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("Grace, 2, Navy\n"), 0o644))

	_, err = s.ImportPeopleFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, []string{"Avi", "Grace"}, names(s.People.All()))
}

func TestReloadPeopleFile(t *testing.T) {
	path := writeFile(t, "people.csv", "Avi, 1, Flatiron\n")
	s := New()

	_, err := s.ImportPeopleFile(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("Grace, 2, Navy\nSandi, 3, POODR\n"), 0o644))

	_, err = s.ReloadPeopleFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, []string{"Grace", "Sandi"}, names(s.People.All()))
}

func TestReloadPeopleFile_MalformedKeepsPrevious(t *testing.T) {
	path := writeFile(t, "people.csv", "Grace Hopper, 85, Navy\n")
	s := New()

	_, err := s.ImportPeopleFile(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("Grace Hopper, 85\n"), 0o644))

	_, err = s.ReloadPeopleFile(context.Background(), path)
	require.ErrorIs(t, err, ingest.ErrMalformedRow)
	require.Equal(t, []string{"Grace Hopper"}, names(s.People.All()))
}

func TestReloadPeopleFile_MissingFileKeepsPrevious(t *testing.T) {
	path := writeFile(t, "people.csv", "Grace Hopper, 85, Navy\nSandi Metz, 49, POODR\n")
	s := New()

	_, err := s.ImportPeopleFile(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	_, err = s.ReloadPeopleFile(context.Background(), path)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Equal(t, 2, s.People.Len())
}

func TestImportPeopleFile_MissingFile(t *testing.T) {
	rec, withTracer := newRecorder()
	s := New(withTracer)

	_, err := s.ImportPeopleFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "Error", spans[0].Status().Code.String())
}

func TestImportPeopleFile_MalformedSavesNothing(t *testing.T) {
	path := writeFile(t, "people.csv", "broken\n")
	s := New()

	_, err := s.ImportPeopleFile(context.Background(), path)
	require.ErrorIs(t, err, ingest.ErrMalformedRow)
	require.Zero(t, s.People.Len())
}

func TestCreateSong_Registers(t *testing.T) {
	s := New()

	sng := s.CreateSong()

	all := s.Songs.All()
	require.Len(t, all, 1)
	require.Same(t, sng, all[0])
}

func TestCreateSong(t *testing.T) {
	s := New()

	untitled := s.CreateSong()
	require.Empty(t, untitled.Name())
	byName := s.CreateSongByName("Blank Space")
	require.Equal(t, "Blank Space", byName.Name())
	require.Equal(t, 2, s.Songs.Len())

	found, ok := s.FindSong("Blank Space")
	require.True(t, ok)
	require.Same(t, byName, found)
}

func TestFindOrCreateSong(t *testing.T) {
	s := New()

	a, created := s.FindOrCreateSong("Hello")
	require.True(t, created)
	b, created := s.FindOrCreateSong("Hello")
	require.False(t, created)
	require.Same(t, a, b)
}

func TestCreateSongFromFilename(t *testing.T) {
	s := New()

	sng, err := s.CreateSongFromFilename("Taylor Swift - Blank Space.mp3")
	require.NoError(t, err)
	require.Equal(t, "Blank Space", sng.Name())
	require.Equal(t, "Taylor Swift", sng.ArtistName())
	require.Equal(t, 1, s.Songs.Len())

	_, err = s.CreateSongFromFilename("no separator.mp3")
	require.ErrorIs(t, err, ingest.ErrMalformedFilename)
	require.Equal(t, 1, s.Songs.Len())
}

func TestImportSongFilenames(t *testing.T) {
	rec, withTracer := newRecorder()
	s := New(withTracer)

	songs, err := s.ImportSongFilenames(context.Background(), []string{
		"Adele - Hello.mp3",
		"Taylor Swift - Blank Space.mp3",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Hello", "Blank Space"}, names(songs))
	require.Equal(t, 2, s.Songs.Len())
	require.Equal(t, tracing.SpanImportSongs, rec.Ended()[0].Name())
}

func TestImportSongFilenames_FailsBeforeSaving(t *testing.T) {
	s := New()

	_, err := s.ImportSongFilenames(context.Background(), []string{"Adele - Hello.mp3", "garbage"})
	require.ErrorIs(t, err, ingest.ErrMalformedFilename)
	require.Zero(t, s.Songs.Len())
}

func TestReset(t *testing.T) {
	s := New()
	s.CreatePerson("Avi")
	s.CreateSongByName("Hello")

	s.Reset()
	require.Empty(t, s.People.All())
	require.Empty(t, s.Songs.All())
}

func TestWithBroker_SharedFeed(t *testing.T) {
	broker := pubsub.NewBroker[registry.Change]()
	defer broker.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := broker.Subscribe(ctx, pubsub.CreatedEvent)

	s := New(WithBroker(broker))
	s.CreatePerson("Avi")
	s.CreateSongByName("Hello")

	first := <-events
	second := <-events
	require.Equal(t, "person", first.Payload.Kind)
	require.Equal(t, "song", second.Payload.Kind)
}

// missCache never holds anything.
type missCache struct{}

func (missCache) Get(context.Context, string) (string, bool) { return "", false }

func (missCache) Set(context.Context, string, string, time.Duration) {}

func (missCache) Delete(context.Context, ...string) {}

func (missCache) Flush(context.Context) {}

func TestWithFileCache_MissAlwaysLoads(t *testing.T) {
	path := writeFile(t, "people.csv", "Avi, 1, Flatiron\n")
	s := New(WithFileCache(missCache{}))

	_, err := s.ImportPeopleFile(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("Grace, 2, Navy\n"), 0o644))
	_, err = s.ImportPeopleFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, []string{"Avi", "Grace"}, names(s.People.All()))
}
