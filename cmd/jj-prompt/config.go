package main

import (
	"fmt"
	"os"

	"github.com/4thel00z/jj-prompt/internal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewConfigCmd(a func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  makeConfigShowRunner(a),
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE:  makeConfigInitRunner(a),
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a().cfgPath)
			return nil
		},
	}

	cmd.AddCommand(showCmd, initCmd, pathCmd)
	return cmd
}

func makeConfigShowRunner(a func() *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		data, err := yaml.Marshal(a().cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
}

func makeConfigInitRunner(a func() *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := a().cfgPath
		if path == "" {
			return fmt.Errorf("no config path: set --config or JJ_PROMPT_CONFIG")
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}

		if err := internal.SaveConfig(path, internal.DefaultConfig()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
		return nil
	}
}
