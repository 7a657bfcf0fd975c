package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// settleDelay collapses the burst of events editors emit for one save.
const settleDelay = 200 * time.Millisecond

func newWatchCmd(global *globalFlags) *cobra.Command {
	flags := &genFlags{}

	c := &cobra.Command{
		Use:   "watch [schema files...]",
		Short: "Regenerate the crate whenever a schema file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), global.Verbose)

			p, err := loadProject(global, args, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return p.watch(ctx, flags, cmd.OutOrStdout(), logger)
		},
	}

	c.Flags().BoolVar(&flags.NoSkeleton, "no-skeleton", false, "do not write the Cargo project skeleton")
	c.Flags().BoolVar(&flags.Stdout, "stdout", false, "write generated code to stdout on every change")

	return c
}

// watch regenerates once, then again after every change to a schema file,
// until ctx is done. Generation errors are logged and do not stop watching.
func (p *project) watch(ctx context.Context, flags *genFlags, out io.Writer, logger zerolog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(p.schemas))

	for _, path := range p.schemas {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("absolute path: %w", err)
		}

		watched[abs] = true

		// Watch the directory; editors often replace files on save.
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch directory: %w", err)
		}
	}

	regenerate := func() {
		if err := p.generate(ctx, flags, out); err != nil {
			logger.Error().Err(err).Msg("generation failed")
		}
	}

	regenerate()
	logger.Info().Int("files", len(watched)).Msg("watching schema files for changes")

	timer := time.NewTimer(settleDelay)
	timer.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("schema file changed")
				timer.Reset(settleDelay)
			}

		case <-timer.C:
			regenerate()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Error().Err(err).Msg("file watcher error")

		case <-ctx.Done():
			logger.Info().Msg("stopped watching")
			return nil
		}
	}
}
