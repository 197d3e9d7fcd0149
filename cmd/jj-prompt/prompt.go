package main

import (
	"fmt"

	"github.com/4thel00z/jj-prompt/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func NewPromptCmd(a func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt [path]",
		Short: "Render the prompt segment",
		Long:  `Render the jj status of path (default: current directory) as one colored line. Prints nothing outside a repository.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  makePromptRunner(a),
	}

	addFormatFlags(cmd.Flags())
	return cmd
}

func addFormatFlags(f *pflag.FlagSet) {
	d := internal.DefaultFormatOptions()

	f.String("icon", d.Icon, "Leading icon")
	f.String("icon-color", d.IconColor, "Icon color")
	f.String("change-id-color", d.ChangeIDColor, "Color of the unique change id prefix")
	f.String("change-id-rest-color", d.ChangeIDRestColor, "Color of the rest of the change id")
	f.String("bookmark-color", d.BookmarkColor, "Bookmark color")
	f.String("status-color", d.StatusColor, "Color of the empty marker and description")
	f.String("conflict-symbol", d.ConflictSymbol, "Symbol shown for conflicted commits")
	f.String("divergent-symbol", d.DivergentSymbol, "Symbol shown for divergent changes")
	f.String("hidden-symbol", d.HiddenSymbol, "Symbol shown for hidden commits")
	f.String("immutable-symbol", d.ImmutableSymbol, "Symbol shown for immutable commits")
	f.String("unsynced-symbol", d.UnsyncedSymbol, "Suffix for a bookmark that differs from its remote")
	f.Int("change-id-len", d.ChangeIDLen, "Number of change id characters shown")
	f.String("empty-text", d.EmptyText, "Text shown for empty commits")
	f.String("no-desc-text", d.NoDescText, "Text shown when the description is empty")
	f.Int("desc-len", d.DescLen, "Maximum description length in characters")
	f.Bool("show-distance", d.ShowDistance, "Append +N to ancestor bookmarks")
	f.String("shell", d.Shell, "Mark escapes as zero-width for a PS1/PROMPT (bash|zsh)")
}

// formatFromFlags overlays the flags the user set on base.
func formatFromFlags(f *pflag.FlagSet, base internal.FormatOptions) (internal.FormatOptions, error) {
	opts := base

	strs := map[string]*string{
		"icon":                 &opts.Icon,
		"icon-color":           &opts.IconColor,
		"change-id-color":      &opts.ChangeIDColor,
		"change-id-rest-color": &opts.ChangeIDRestColor,
		"bookmark-color":       &opts.BookmarkColor,
		"status-color":         &opts.StatusColor,
		"conflict-symbol":      &opts.ConflictSymbol,
		"divergent-symbol":     &opts.DivergentSymbol,
		"hidden-symbol":        &opts.HiddenSymbol,
		"immutable-symbol":     &opts.ImmutableSymbol,
		"unsynced-symbol":      &opts.UnsyncedSymbol,
		"empty-text":           &opts.EmptyText,
		"no-desc-text":         &opts.NoDescText,
		"shell":                &opts.Shell,
	}
	for name, dst := range strs {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}

	ints := map[string]*int{
		"change-id-len": &opts.ChangeIDLen,
		"desc-len":      &opts.DescLen,
	}
	for name, dst := range ints {
		if !f.Changed(name) {
			continue
		}
		v, _ := f.GetInt(name)
		n, err := internal.ParseNonNegative("--"+name, v)
		if err != nil {
			return opts, err
		}
		*dst = n
	}

	if f.Changed("show-distance") {
		opts.ShowDistance, _ = f.GetBool("show-distance")
	}

	return opts, nil
}

func makePromptRunner(a func() *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		st := a()

		format, err := formatFromFlags(cmd.Flags(), st.cfg.Format)
		if err != nil {
			return err
		}

		line, err := st.promptUC.Execute(cmd.Context(), internal.PromptInput{
			Path:   pathArg(args),
			Format: format,
		})
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), line)
		return nil
	}
}
