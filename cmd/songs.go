package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rollcall/internal/config"
	"github.com/zjrosen/rollcall/internal/domain/song"
	"github.com/zjrosen/rollcall/internal/presentation"
)

func newSongsListCmd(a *app) *cobra.Command {
	var (
		files        []string
		alphabetical bool
		format       string
	)

	cmd := &cobra.Command{
		Use:   "songs:list",
		Short: "List saved songs",
		Long: `List every saved song in insertion order.

Examples:
  # Save songs from "<artist> - <title>.mp3" filenames and list them
  rollcall songs:list --file "Adele - Hello.mp3" --file "Taylor Swift - Blank Space.mp3"

  # Sorted by title
  rollcall songs:list --seed seed.yaml --alphabetical`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(files) > 0 {
				if _, err := a.svc.ImportSongFilenames(cmd.Context(), files); err != nil {
					return err
				}
			}

			f, err := a.formatter(cmd, format)
			if err != nil {
				return err
			}
			if !alphabetical && format == config.FormatNames {
				return a.svc.Songs.PrintAll(cmd.OutOrStdout())
			}

			songs := a.svc.Songs.All()
			if alphabetical {
				songs = a.svc.Songs.Alphabetical()
			}
			return f.FormatSongs(presentation.FromSongs(songs))
		},
	}

	cmd.Flags().StringArrayVar(&files, "file", nil, "save a song from a filename (repeatable)")
	cmd.Flags().BoolVarP(&alphabetical, "alphabetical", "a", false, "sort by title")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: table, json or names")
	return cmd
}

func newSongsFindCmd(a *app) *cobra.Command {
	var create bool

	cmd := &cobra.Command{
		Use:   "songs:find NAME",
		Short: "Find a saved song by exact title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			var (
				s     *song.Song
				found bool
			)
			if create {
				var created bool
				s, created = a.svc.FindOrCreateSong(name)
				found = true
				if created {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "created %q\n", name)
				}
			} else {
				s, found = a.svc.FindSong(name)
			}
			if !found {
				return fmt.Errorf("song %q: %w", name, errNotFound)
			}

			f, err := a.formatter(cmd, "")
			if err != nil {
				return err
			}
			return f.FormatSongs(presentation.FromSongs([]*song.Song{s}))
		},
	}

	cmd.Flags().BoolVar(&create, "create", false, "create the song when missing")
	return cmd
}
