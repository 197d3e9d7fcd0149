package main

import (
	"fmt"
	"io"
	"os"

	"github.com/4thel00z/jj-prompt/internal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// loaderFunc builds the repository loader for a resolved config.
type loaderFunc func(cfg *internal.Config, log *zap.Logger) internal.Loader

func jjLoader(cfg *internal.Config, log *zap.Logger) internal.Loader {
	return internal.NewJJLoader(internal.JJOptions{
		Runner:      internal.NewExecRunner(cfg.JJBinary),
		SearchDepth: cfg.SearchDepth,
		Log:         log,
	})
}

type app struct {
	cfg      *internal.Config
	cfgPath  string
	log      *zap.Logger
	statusUC *internal.StatusUseCase
	promptUC *internal.PromptUseCase
}

func NewRootCmd(version string, loader loaderFunc) *cobra.Command {
	if loader == nil {
		loader = jjLoader
	}

	var a app

	rootCmd := &cobra.Command{
		Use:           "jj-prompt",
		Short:         "Jujutsu status for shell prompts",
		Long:          `Summarize the jj working-copy commit (change, bookmarks, flags, sync state) as a one-line prompt segment.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			built, err := buildApp(cmd, loader)
			if err != nil {
				return err
			}
			a = *built
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	setHelpWithExternals(rootCmd)
	addSubcommands(rootCmd, func() *app { return &a })

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/jj-prompt/config.yaml)")
	cmd.PersistentFlags().String("jj", "", "Path to the jj executable")
	cmd.PersistentFlags().Int("depth", internal.DefaultSearchDepth, "Maximum ancestor hops searched for bookmarks")
	cmd.PersistentFlags().String("color", "", "Color output (always|auto|never)")
	cmd.PersistentFlags().Bool("debug", false, "Log diagnostics to stderr")
}

func addSubcommands(root *cobra.Command, a func() *app) {
	root.AddCommand(
		NewStatusCmd(a),
		NewPromptCmd(a),
		NewInitCmd(),
		NewWatchCmd(a),
		NewConfigCmd(a),
	)
}

func buildApp(cmd *cobra.Command, loader loaderFunc) (*app, error) {
	flags := cmd.Flags()

	cfgPath, _ := flags.GetString("config")
	if cfgPath == "" {
		cfgPath = internal.DefaultConfigPath()
	}

	cfg, err := internal.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed("jj") {
		cfg.JJBinary, _ = flags.GetString("jj")
	}
	if flags.Changed("depth") {
		depth, _ := flags.GetInt("depth")
		if cfg.SearchDepth, err = internal.ParseNonNegative("--depth", depth); err != nil {
			return nil, err
		}
	}
	if flags.Changed("color") {
		cfg.Color, _ = flags.GetString("color")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	debug, _ := flags.GetBool("debug")
	log := internal.NewLogger(cmd.ErrOrStderr(), debug)

	cfg.Format.NoColor = noColor(cfg.Color, flags.Changed("color"), cmd.OutOrStdout())

	collector := internal.NewCollector(loader(cfg, log), cfg.SearchDepth, log)
	statusUC := internal.NewStatusUseCase(collector, log)

	return &app{
		cfg:      cfg,
		cfgPath:  cfgPath,
		log:      log,
		statusUC: statusUC,
		promptUC: internal.NewPromptUseCase(statusUC),
	}, nil
}

// noColor decides whether escapes are suppressed. NO_COLOR wins unless the
// mode was given explicitly on the command line.
func noColor(mode string, explicit bool, out io.Writer) bool {
	if !explicit && os.Getenv("NO_COLOR") != "" {
		return true
	}
	switch mode {
	case internal.ColorNever:
		return true
	case internal.ColorAuto:
		f, ok := out.(*os.File)
		return !ok || !term.IsTerminal(int(f.Fd()))
	default:
		return false
	}
}

func setHelpWithExternals(cmd *cobra.Command) {
	defaultHelp := cmd.HelpFunc()

	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		defaultHelp(c, args)
		printExternalCommands(c)
	})
}

func printExternalCommands(cmd *cobra.Command) {
	externals := listExternalCommands()
	if len(externals) == 0 {
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nExternal commands (jj-prompt-*):")
	for _, name := range externals {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
	}
}
