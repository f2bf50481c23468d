package cmd

import (
	"fmt"

	"github.com/pmanager/pm/internal/workflows"
	"github.com/spf13/cobra"
)

var hashcodeFull bool

func init() {
	hashcodeCmd.Flags().BoolVar(&hashcodeFull, "full", false, "print the full SHA-256 digest")
}

var hashcodeCmd = &cobra.Command{
	Use:   "hashcode",
	Short: "Print a short fingerprint of the store content",
	Long: `Prints a number below one million derived from the SHA-256 digest of the
store content. Two stores with the same content print the same code, which
makes it easy to compare copies on different machines.

Examples:
  pm hashcode
  pm hashcode --full`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting hashcode command")

		engine, err := newEngine(cmd)
		if err != nil {
			return reportError(cmd, err)
		}

		res, err := engine.Hashcode(cmd.Context())
		if err != nil {
			return reportError(cmd, err)
		}
		Logger.Debugf("Store digest %s", res.Hashcode)

		if hashcodeFull {
			fmt.Fprintln(cmd.OutOrStdout(), res.Hashcode)
			return nil
		}
		code, ok := workflows.ShortCode(res.Hashcode)
		if !ok {
			return reportError(cmd, Logger.ErrorfAndReturn("invalid digest %q", res.Hashcode))
		}
		fmt.Fprintln(cmd.OutOrStdout(), code)
		return nil
	},
}
