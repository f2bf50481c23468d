package cmd

import (
	"fmt"

	"github.com/pmanager/pm/internal/ui"
	"github.com/pmanager/pm/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	deleteIndex = indexFlag{n: 1}
	deleteForce bool
)

func init() {
	deleteCmd.Flags().Var(&deleteIndex, "index", "document index")
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "allow deleting whole documents and non-empty objects")
}

var deleteCmd = &cobra.Command{
	Use:     "delete <scope[:index]> [key...]",
	Aliases: []string{"rm"},
	Short:   "Delete a key, an object or a whole document",
	Long: `Deletes the key chain from one document of a scope.

The scope name is matched exactly and the document index defaults to 1.
Without a key chain the whole document is deleted, which needs --force, as
does deleting an object that still holds keys. A document left empty is
removed, and so is a scope left without documents.

Examples:
  pm delete github token         # one key of document 1
  pm delete -f mail imap         # a whole object
  pm delete -f github:2          # document 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting delete command")

		scope, index, hasIndex, err := parseAddress(args[0], false)
		if err != nil {
			return reportError(cmd, err)
		}
		if hasIndex && index == workflows.AllDocuments {
			return reportError(cmd, errSingleIndex)
		}
		index = resolveIndex(index, hasIndex, &deleteIndex)

		engine, err := newEngine(cmd)
		if err != nil {
			return reportError(cmd, err)
		}

		res, err := engine.Delete(cmd.Context(), workflows.DeleteOptions{
			Scope:    scope,
			Index:    index,
			KeyChain: args[1:],
			Force:    deleteForce,
		})
		if err != nil {
			return reportError(cmd, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" "+res.Message)
		return nil
	},
}
