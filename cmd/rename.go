package cmd

import (
	"fmt"
	"strings"

	"github.com/pmanager/pm/internal/ui"
	"github.com/pmanager/pm/internal/workflows"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <scope> <new-name>",
	Short: "Rename a scope",
	Long: `Gives a scope a new name. The scope keeps its place in the store and
the new name must not be taken.

Examples:
  pm rename github forge`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting rename command")
		return runRename(cmd, args[0], args[1])
	},
}

func runRename(cmd *cobra.Command, from, to string) error {
	scope, target := strings.TrimSpace(from), strings.TrimSpace(to)

	engine, err := newEngine(cmd)
	if err != nil {
		return reportError(cmd, err)
	}

	res, err := engine.Rename(cmd.Context(), workflows.RenameOptions{Scope: scope, Target: target})
	if err != nil {
		return reportError(cmd, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" "+res.Message)
	return nil
}
