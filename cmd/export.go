package cmd

import (
	"github.com/pmanager/pm/internal/ui"
	"github.com/pmanager/pm/internal/workflows"
	"github.com/spf13/cobra"
)

var exportFormat string

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "output format, json or yaml (default: by extension, else json)")
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the decrypted store as plaintext",
	Long: `Writes the decrypted store, pretty-printed, to a file or, without an
argument, to standard output.

The output is NOT encrypted. Files are created readable by their owner only.

Examples:
  pm export                      # JSON on standard output
  pm export backup.json
  pm export backup.yaml          # YAML, picked from the extension
  pm export --format yaml | less`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")

		format, err := workflows.ParseFormat(exportFormat)
		if err != nil {
			return reportError(cmd, err)
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return reportError(cmd, err)
		}

		if len(args) == 0 {
			if _, err := engine.Export(cmd.Context(), workflows.ExportOptions{Format: format}); err != nil {
				return reportError(cmd, err)
			}
			return nil
		}

		if err := engine.Verify(cmd.Context()); err != nil {
			return reportError(cmd, err)
		}

		spinner, cleanup := startSpinner(cmd, "Exporting store...")
		res, err := engine.Export(cmd.Context(), workflows.ExportOptions{Path: args[0], Format: format})
		if err != nil {
			cleanup()
			return reportError(cmd, err)
		}
		Logger.Infof("%s", res.Message)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Exported to " + ui.Path.Sprint(args[0]) + "\n" +
			ui.Warning.Sprint("⚠") + " The file is not encrypted"
		cleanup()
		return nil
	},
}
