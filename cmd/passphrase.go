package cmd

import (
	"fmt"

	"github.com/pmanager/pm/internal/ui"
	"github.com/spf13/cobra"
)

var resetPassphraseCmd = &cobra.Command{
	Use:   "reset-passphrase",
	Short: "Encrypt the store under a new passphrase",
	Long: `Asks for the current passphrase if needed, then for a new one twice, and
re-encrypts the store under the new passphrase. An empty passphrase leaves
the store readable without a prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting reset-passphrase command")

		engine, err := newEngine(cmd)
		if err != nil {
			return reportError(cmd, err)
		}

		res, err := engine.ResetPassphrase(cmd.Context())
		if err != nil {
			return reportError(cmd, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" "+res.Message)
		return nil
	},
}

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Forget the cached passphrase",
	Long: `Replaces the cached key so the next command asks for the passphrase
again, whatever the configured expiry.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting lock command")

		engine, err := newEngine(cmd)
		if err != nil {
			return reportError(cmd, err)
		}

		res, err := engine.Lock(cmd.Context())
		if err != nil {
			return reportError(cmd, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" "+res.Message)
		return nil
	},
}
