package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rollcall/internal/application/roster"
	"github.com/zjrosen/rollcall/internal/domain/person"
	"github.com/zjrosen/rollcall/internal/domain/song"
	"github.com/zjrosen/rollcall/internal/markdown"
)

const demoCSV = `grace hopper, 85, US Navy
sandi metz, 49, Practical Object-Oriented Design
avi flombaum, 35, Flatiron School`

var demoSongFiles = []string{
	"Taylor Swift - Blank Space.mp3",
	"Adele - Hello.mp3",
	"Michael Jackson - Thriller.mp3",
}

func newDemoCmd(a *app) *cobra.Command {
	var (
		width int
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through every registry operation",
		Long: `Run a scripted tour of the registry on a fresh roster: saving, finding,
find-or-create, CSV import, sorting, normalizing, songs from filenames and
destroy-all. Each step prints what it did and the resulting registry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := roster.New(roster.WithTracer(a.tracing.Tracer()))
			text, err := runDemo(cmd, svc)
			if err != nil {
				return err
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			f, err := a.formatter(cmd, "")
			if err != nil {
				return err
			}
			r, err := markdown.New(width, f.Color())
			if err != nil {
				return err
			}
			rendered, err := r.Render(text)
			if err != nil {
				return fmt.Errorf("rendering demo: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().IntVar(&width, "width", markdown.DefaultWidth, "wrap text at this width")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the lesson as plain markdown")
	return cmd
}

// lesson accumulates markdown sections.
type lesson struct {
	b strings.Builder
}

func (l *lesson) section(title, text string) {
	fmt.Fprintf(&l.b, "## %s\n\n%s\n\n", title, text)
}

func (l *lesson) block(lines ...string) {
	l.b.WriteString("```\n")
	for _, line := range lines {
		l.b.WriteString(line + "\n")
	}
	l.b.WriteString("```\n\n")
}

func runDemo(cmd *cobra.Command, svc *roster.Service) (string, error) {
	var l lesson
	l.b.WriteString("# rollcall registry tour\n\n")

	svc.CreatePerson("Grace Hopper")
	svc.CreatePerson("Sandi Metz")
	l.section("Saving", "`CreatePerson` builds a person and saves it. The registry keeps insertion order.")
	l.block(personNames(svc.People.All())...)

	_, foundSandi := svc.FindPerson("Sandi Metz")
	_, foundAvi := svc.FindPerson("Avi Flombaum")
	l.section("Finding", "`FindPerson` returns the first exact match, or nothing.")
	l.block(
		fmt.Sprintf("Sandi Metz   found=%t", foundSandi),
		fmt.Sprintf("Avi Flombaum found=%t", foundAvi),
	)

	_, first := svc.FindOrCreatePerson("Avi Flombaum")
	_, second := svc.FindOrCreatePerson("Avi Flombaum")
	l.section("Find or create", "Asking twice for the same name creates it once.")
	l.block(
		fmt.Sprintf("first call created=%t", first),
		fmt.Sprintf("second call created=%t", second),
		fmt.Sprintf("people saved: %d", svc.People.Len()),
	)

	svc.People.DestroyAll()
	if _, err := svc.PeopleFromCSV(demoCSV, true); err != nil {
		return "", err
	}
	l.section("From CSV", "Each `name, age, company` row becomes a saved person.")
	l.block(personNames(svc.People.All())...)

	l.section("Alphabetical", "A sorted copy. The registry order is unchanged.")
	l.block(personNames(svc.People.Alphabetical())...)

	svc.People.NormalizeNames()
	l.section("Normalizing", "Every word of every name is capitalized in place.")
	l.block(personNames(svc.People.All())...)

	if _, err := svc.ImportSongFilenames(cmd.Context(), demoSongFiles); err != nil {
		return "", err
	}
	svc.CreateSongByName("Untitled Demo")
	var songs []string
	svc.Songs.Each(func(s *song.Song) {
		line := s.Name()
		if s.ArtistName() != "" {
			line += " by " + s.ArtistName()
		}
		songs = append(songs, line)
	})
	l.section("Songs", "Filenames of the form `<artist> - <title>.mp3` become saved songs.")
	l.block(songs...)

	svc.Reset()
	l.section("Destroy all", "Both registries are emptied.")
	l.block(fmt.Sprintf("people: %d  songs: %d", svc.People.Len(), svc.Songs.Len()))

	return l.b.String(), nil
}

func personNames(people []*person.Person) []string {
	out := make([]string, len(people))
	for i, p := range people {
		out[i] = p.Name()
	}
	return out
}
