package main

import (
	"fmt"
	"strings"

	"github.com/4thel00z/jj-prompt/internal"
	"github.com/spf13/cobra"
)

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "init <shell>",
		Short:     "Print shell integration",
		Long:      `Print a snippet that adds the jj prompt segment to your shell. Supported: ` + strings.Join(internal.SupportedShells(), ", ") + `.`,
		Example:   `  eval "$(jj-prompt init bash)"`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: internal.SupportedShells(),
		RunE:      runInit,
	}

	cmd.Flags().String("bin", "jj-prompt", "Command the snippet invokes")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	bin, _ := cmd.Flags().GetString("bin")

	snippet, err := internal.ShellInit(args[0], bin)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), snippet)
	return nil
}
