package cmd

import (
	"github.com/pmanager/pm/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	queryIndex     = indexFlag{n: workflows.AllDocuments, allowAll: true}
	queryAll       bool
	queryCandidate int
	queryNoFuzzy   bool
)

// addQueryFlags binds the query flags to cmd. The root command and get
// share them so that "pm <scope>" and "pm get <scope>" behave the same.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().Var(&queryIndex, "index", `document index, or "all"`)
	cmd.Flags().BoolVarP(&queryAll, "all", "A", false, "query every document of the scope")
	cmd.Flags().IntVarP(&queryCandidate, "candidate", "n", 0, "pick the n-th scope when several match")
	cmd.Flags().BoolVarP(&queryNoFuzzy, "no-fuzzy", "U", false, "match the scope name exactly")
}

func init() {
	addQueryFlags(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <scope[:index]> [key...]",
	Short: "Show documents or values of a scope",
	Long: `Shows the documents of a scope, or the value at a key chain inside them.

The scope is matched case-insensitively by substring unless --no-fuzzy is
given. When several scopes match, their names are listed and --candidate
picks one. The scope "*" matches every scope unless --no-fuzzy is given.

Without an index every document of the scope is searched and documents
lacking the key chain are skipped.

Examples:
  pm get github                  # all documents of "github"
  pm get git -n 2                # second scope matching "git"
  pm get github:2 token          # "token" in document 2
  pm get mail --index 1 imap host`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting get command")

	scope, index, hasIndex, err := parseAddress(args[0], true)
	if err != nil {
		return reportError(cmd, err)
	}
	index = resolveIndex(index, hasIndex, &queryIndex)
	if queryAll {
		index = workflows.AllDocuments
	}
	Logger.Debugf("Querying scope %q, index %d, key chain %v", scope, index, args[1:])

	engine, err := newEngine(cmd)
	if err != nil {
		return reportError(cmd, err)
	}

	res, err := engine.Get(cmd.Context(), workflows.GetOptions{
		Scope:     scope,
		Index:     index,
		KeyChain:  args[1:],
		Exact:     queryNoFuzzy,
		Candidate: queryCandidate,
	})
	if err != nil {
		return reportError(cmd, err)
	}

	Logger.Infof("%s", res.Message)
	return printValues(cmd.OutOrStdout(), res)
}
