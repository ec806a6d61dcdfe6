package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gerunddev/larkbridge/internal/clipboard"
	"github.com/gerunddev/larkbridge/internal/config"
	"github.com/gerunddev/larkbridge/internal/htmldoc"
	"github.com/gerunddev/larkbridge/internal/state"
	"github.com/gerunddev/larkbridge/internal/tui"
)

func watchCmd(a *app) *cobra.Command {
	var (
		interval time.Duration
		plain    bool
	)

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Copy a Markdown file to the clipboard every time it changes",
		Long: `Poll a Markdown file and put its Lark rendering on the clipboard whenever
its content changes. The file is copied once on start. Changes are detected
by modification time and confirmed by content hash; the last copied state
is kept in the state file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if interval <= 0 {
				interval = a.cfg.WatchInterval
			}

			w, err := newWatcher(a, path, interval, config.StateFilePath())
			if err != nil {
				return err
			}

			if plain {
				return w.run(cmd.Context(), func(ev tui.WatchEvent) {
					if ev.Err == nil {
						fmt.Fprintf(cmd.OutOrStdout(), "%s copied %d blocks\n", ev.Time.Format(time.TimeOnly), ev.Records)
					}
				})
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			p := tea.NewProgram(tui.InitWatchModel(path, interval), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))

			done := make(chan error, 1)
			go func() {
				err := w.run(ctx, func(ev tui.WatchEvent) {
					p.Send(tui.WatchEventMsg(ev))
				})
				p.Send(tui.WatchStoppedMsg{Err: err})
				done <- err
			}()

			if _, err := p.Run(); err != nil {
				cancel()
				<-done
				return err
			}
			cancel()
			return <-done
		},
	}

	flags := cmd.Flags()
	flags.DurationVarP(&interval, "interval", "i", 0, "Polling interval (default from config)")
	flags.BoolVar(&plain, "plain", false, "Print one line per copy instead of the dashboard")

	return cmd
}

// watcher polls one file and copies it on change
type watcher struct {
	app       *app
	path      string
	interval  time.Duration
	state     *state.State
	statePath string
}

func newWatcher(a *app, path string, interval time.Duration, statePath string) (*watcher, error) {
	st, err := state.Load(statePath)
	if err != nil {
		a.log.StateError("load", err)
		return nil, err
	}
	// copy once on start, whatever was copied last time
	st.Forget(path)

	return &watcher{
		app:       a,
		path:      path,
		interval:  interval,
		state:     st,
		statePath: statePath,
	}, nil
}

// run polls until ctx is done or a fatal error occurs
func (w *watcher) run(ctx context.Context, report func(tui.WatchEvent)) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.poll(ctx, report); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// poll copies the file if it changed. A failed copy is reported and the
// file is not retried until it changes again. A missing file or clipboard
// tool ends the watch.
func (w *watcher) poll(ctx context.Context, report func(tui.WatchEvent)) error {
	changed, err := w.state.HasChanged(w.path)
	if err != nil {
		w.app.log.FileError(w.path, err)
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	if !changed {
		return nil
	}

	src, err := os.ReadFile(w.path)
	if err != nil {
		w.app.log.FileError(w.path, err)
		return fmt.Errorf("watch %s: %w", w.path, err)
	}

	data := w.app.converter.Convert(string(src))
	html, err := htmldoc.Render(data)
	if err != nil {
		return err
	}

	ev := tui.WatchEvent{Time: time.Now(), Records: len(data.RecordIDs), Bytes: len(html)}
	copyErr := w.app.clipboard.WriteHTML(ctx, html, htmldoc.PlainText(data))
	if copyErr != nil {
		ev.Err = copyErr
		w.app.log.ConversionError(w.path, "clipboard", copyErr)
	} else {
		w.app.log.ClipboardWritten(htmldoc.RecordFormat, len(html))
	}

	if err := w.state.Update(w.path, ev.Records); err != nil {
		w.app.log.StateError("update", err)
	} else if err := w.state.Save(w.statePath); err != nil {
		w.app.log.StateError("save", err)
	}
	ev.Modified = w.state.GetMTime(w.path)

	report(ev)

	var missing *clipboard.MissingToolError
	if errors.As(copyErr, &missing) || errors.Is(copyErr, clipboard.ErrUnsupportedPlatform) {
		return copyErr
	}
	return nil
}
