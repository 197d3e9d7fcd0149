package main

import (
	"fmt"
	"time"

	"github.com/4thel00z/jj-prompt/internal"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewWatchCmd(a func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-render the prompt whenever the repository changes",
		Long:  `Print a fresh prompt line each time a jj operation completes in the repository containing path.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  makeWatchRunner(a),
	}

	cmd.Flags().Duration("debounce", 100*time.Millisecond, "Debounce window for batching operation updates")
	addFormatFlags(cmd.Flags())
	return cmd
}

func makeWatchRunner(a func() *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		st := a()
		debounce, _ := cmd.Flags().GetDuration("debounce")

		format, err := formatFromFlags(cmd.Flags(), st.cfg.Format)
		if err != nil {
			return err
		}

		path := pathArg(args)
		if path == "" {
			path = "."
		}
		root, err := internal.FindWorkspaceRoot(path)
		if err != nil {
			return err
		}
		heads, err := internal.OpHeadsDir(root)
		if err != nil {
			return fmt.Errorf("locate operation heads: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		if err := watcher.Add(heads); err != nil {
			return fmt.Errorf("watch %s: %w", heads, err)
		}

		render := func() {
			line, err := st.promptUC.Execute(cmd.Context(), internal.PromptInput{Path: root, Format: format})
			if err != nil {
				st.log.Debug("render failed", zap.Error(err))
				return
			}
			if line == "" {
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		render()

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		pending := false

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if shouldIgnoreEvent(event) {
					continue
				}
				if !pending {
					timer.Reset(debounce)
					pending = true
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
			case <-timer.C:
				pending = false
				render()
			}
		}
	}
}

// shouldIgnoreEvent drops attribute-only changes; jj adds and removes head
// files as operations land.
func shouldIgnoreEvent(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0
}
