package cmd

import (
	"fmt"

	"github.com/pmanager/pm/internal/ui"
	"github.com/pmanager/pm/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	setIndex  = indexFlag{n: 1}
	setInsert bool
	setCreate bool
	setForce  bool
)

func init() {
	setCmd.Flags().Var(&setIndex, "index", "document index")
	setCmd.Flags().BoolVarP(&setInsert, "insert", "i", false, "insert a new document at the index")
	setCmd.Flags().BoolVarP(&setCreate, "create", "c", false, "create missing scope, document and keys")
	setCmd.Flags().BoolVarP(&setForce, "force", "f", false, "allow replacing an object with a string")
}

var setCmd = &cobra.Command{
	Use:     "set <scope[:index]> <key...> <value>",
	Aliases: []string{"edit"},
	Short:   "Write a value at a key chain",
	Long: `Writes a string value at a key chain of one document.

The scope name is matched exactly and the document index defaults to 1.
Without --create the scope, document and every key must already exist.
With --create whatever is missing is made, but an existing key is left
alone. --insert adds a new document before the index.

Examples:
  pm set github token ghp_new          # overwrite document 1
  pm set github:2 token ghp_new        # overwrite document 2
  pm set -c mail imap host mail.org    # create nested keys
  pm set -i github:1 user bob          # new first document
  pm set -f mail imap none             # replace the "imap" object`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting set command")

		scope, index, hasIndex, err := parseAddress(args[0], false)
		if err != nil {
			return reportError(cmd, err)
		}
		if hasIndex && index == workflows.AllDocuments {
			return reportError(cmd, errSingleIndex)
		}
		index = resolveIndex(index, hasIndex, &setIndex)

		engine, err := newEngine(cmd)
		if err != nil {
			return reportError(cmd, err)
		}

		res, err := engine.Set(cmd.Context(), workflows.SetOptions{
			Scope:    scope,
			Index:    index,
			KeyChain: args[1 : len(args)-1],
			Value:    args[len(args)-1],
			Insert:   setInsert,
			Create:   setCreate,
			Force:    setForce,
		})
		if err != nil {
			return reportError(cmd, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" "+res.Message)
		return nil
	},
}
