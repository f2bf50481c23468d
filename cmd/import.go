package cmd

import (
	"fmt"

	"github.com/pmanager/pm/internal/ui"
	"github.com/pmanager/pm/internal/workflows"
	"github.com/spf13/cobra"
)

var importFormat string

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "payload format, json or yaml (default: by extension, else json)")
}

var importCmd = &cobra.Command{
	Use:   "import [file|url]",
	Short: "Replace the store with plaintext data",
	Long: `Replaces the whole store with a plaintext JSON or YAML payload read from
a file, an http(s) URL or, without an argument, standard input.

The payload must map scope names to lists of documents whose values are
strings or objects. Anything else is rejected and the store is left as it
was.

Examples:
  pm import backup.json
  pm import https://example.com/store.yaml
  pm import < backup.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import command")

		source := ""
		if len(args) == 1 {
			source = args[0]
		}

		format, err := workflows.ParseFormat(importFormat)
		if err != nil {
			return reportError(cmd, err)
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return reportError(cmd, err)
		}
		opts := workflows.ImportOptions{Source: source, Format: format}

		if !workflows.IsRemote(source) {
			res, err := engine.Import(cmd.Context(), opts)
			if err != nil {
				return reportError(cmd, err)
			}
			Logger.Infof("Store digest %s", res.Hashcode)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" "+res.Message)
			return nil
		}

		// Any passphrase prompt has to happen before the spinner starts.
		if err := engine.Verify(cmd.Context()); err != nil {
			return reportError(cmd, err)
		}

		spinner, cleanup := startSpinner(cmd, "Fetching "+source+"...")
		res, err := engine.Import(cmd.Context(), opts)
		if err != nil {
			cleanup()
			return reportError(cmd, err)
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " " + res.Message
		cleanup()
		return nil
	},
}
