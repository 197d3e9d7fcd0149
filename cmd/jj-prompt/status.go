package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/4thel00z/jj-prompt/internal"
	"github.com/spf13/cobra"
)

func NewStatusCmd(a func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [path]",
		Short: "Show the working-copy status record",
		Long:  `Print the status record of the jj working copy containing path (default: current directory). Prints nothing outside a repository.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  makeStatusRunner(a),
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func makeStatusRunner(a func() *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		st, err := a().statusUC.Execute(cmd.Context(), internal.StatusInput{Path: pathArg(args)})
		if err != nil {
			return err
		}
		if st == nil {
			return nil
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}

		printStatus(cmd.OutOrStdout(), st)
		return nil
	}
}

func printStatus(w io.Writer, st *internal.Status) {
	names := make([]string, 0, len(st.Bookmarks))
	for _, b := range st.Bookmarks {
		names = append(names, fmt.Sprintf("%s(%d)", b.Name, b.Distance))
	}

	fmt.Fprintf(w, "repo_root:   %s\n", st.RepoRoot)
	fmt.Fprintf(w, "change_id:   %s (prefix %d)\n", st.ChangeID, st.ChangeIDPrefixLen)
	fmt.Fprintf(w, "bookmarks:   %s\n", strings.Join(names, " "))
	fmt.Fprintf(w, "description: %s\n", st.Description)
	fmt.Fprintf(w, "empty=%t conflict=%t divergent=%t hidden=%t immutable=%t\n",
		st.Empty, st.Conflict, st.Divergent, st.Hidden, st.Immutable)
	fmt.Fprintf(w, "has_remote=%t is_synced=%t\n", st.HasRemote, st.IsSynced)
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
