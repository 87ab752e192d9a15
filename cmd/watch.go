package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rollcall/internal/log"
	"github.com/zjrosen/rollcall/internal/presentation"
	"github.com/zjrosen/rollcall/internal/watcher"
)

func newPeopleWatchCmd(a *app) *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "people:watch",
		Short: "Re-import a CSV file whenever it changes",
		Long: `Import a CSV of people, print them, and repeat every time the file is
written. Stop with Ctrl-C.

Rapid writes are coalesced; see watch.debounce in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			f, err := a.formatter(cmd, "")
			if err != nil {
				return err
			}
			reload := func() error {
				people, err := a.svc.ReloadPeopleFile(ctx, csvPath)
				if err != nil {
					return err
				}
				return f.FormatPeople(presentation.FromPeople(people))
			}
			if err := reload(); err != nil {
				return err
			}

			cfg := watcher.DefaultConfig(csvPath)
			if a.cfg.Watch.Debounce > 0 {
				cfg.Debounce = a.cfg.Watch.Debounce
			}
			w, err := watcher.New(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = w.Stop() }()

			changes, err := w.Start()
			if err != nil {
				return err
			}
			return watchLoop(ctx, changes, reload, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file of people to watch")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}

// watchLoop calls reload for every change until ctx is done or changes is
// closed. Reload errors are reported to errOut and the loop keeps going, so
// a half-written file does not end the watch.
func watchLoop(ctx context.Context, changes <-chan struct{}, reload func() error, errOut io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := reload(); err != nil {
				log.ErrorErr(log.CatWatcher, "reload failed", err)
				_, _ = fmt.Fprintf(errOut, "reload: %v\n", err)
			}
		}
	}
}
