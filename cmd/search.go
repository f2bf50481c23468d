package cmd

import (
	"strings"

	"github.com/pmanager/pm/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	searchCandidate int
	searchNoFuzzy   bool
)

func init() {
	searchCmd.Flags().IntVarP(&searchCandidate, "candidate", "n", 0, "pick the n-th scope when several match")
	searchCmd.Flags().BoolVarP(&searchNoFuzzy, "no-fuzzy", "U", false, "require an exact key or value match")
}

var searchCmd = &cobra.Command{
	Use:   "search <text...>",
	Short: "Find scopes by key or value",
	Long: `Finds the scopes with a document holding a key or a string value that
contains the text, ignoring case. With --no-fuzzy the key or value must be
equal to the text. The arguments are joined with spaces.

A single matching scope is shown in full. Several matches are listed and
--candidate picks one.

Examples:
  pm search alice
  pm search -U alice@example.com
  pm search smtp -n 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting search command")

		engine, err := newEngine(cmd)
		if err != nil {
			return reportError(cmd, err)
		}

		res, err := engine.Search(cmd.Context(), workflows.SearchOptions{
			Text:      strings.Join(args, " "),
			Exact:     searchNoFuzzy,
			Candidate: searchCandidate,
		})
		if err != nil {
			return reportError(cmd, err)
		}

		Logger.Infof("%s", res.Message)
		return printValues(cmd.OutOrStdout(), res)
	},
}
