package cmd

import (
	"fmt"

	"github.com/pmanager/pm/internal/configs"
	"github.com/pmanager/pm/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [key [value]]",
	Short: "List or change configuration values",
	Long: `Without arguments, lists every configuration value and the file it is
read from. With a key and a value, sets it. With only a key, restores its
default.

Keys:
  fileStoragePath           location of the encrypted store
  doNotAskPassphraseInSec   seconds a cached passphrase is trusted, 0 forever
  importTimeoutInSec        time limit of a remote import
  auditLog                  record changes in audit.jsonl next to the store

The configuration folder is $PMANAGER_HOME when set.

Examples:
  pm config
  pm config doNotAskPassphraseInSec 600
  pm config doNotAskPassphraseInSec`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config command")

		cfg, err := configs.LoadDefault()
		if err != nil {
			return reportError(cmd, err)
		}
		out := cmd.OutOrStdout()

		switch len(args) {
		case 0:
			fmt.Fprintf(out, "User configuration file path: %s\n", ui.Path.Sprint(cfg.Path()))
			for _, entry := range cfg.Entries() {
				line := fmt.Sprintf("  %-25s %s", entry.Key, entry.Value)
				if entry.Default {
					line += " " + ui.Muted.Sprint("default")
				}
				fmt.Fprintln(out, line)
			}
			return nil

		case 1:
			if err := cfg.Unset(args[0]); err != nil {
				return reportError(cmd, err)
			}
			if err := cfg.Save(); err != nil {
				return reportError(cmd, err)
			}
			value, _ := cfg.Get(args[0])
			fmt.Fprintln(out, ui.Success.Sprint("✓")+" Restored "+ui.Key.Sprint(args[0])+" to its default "+ui.Highlight.Sprint(value))
			return nil

		default:
			if err := cfg.Set(args[0], args[1]); err != nil {
				return reportError(cmd, err)
			}
			if err := cfg.Save(); err != nil {
				return reportError(cmd, err)
			}
			Logger.Infof("Saved configuration to %s", cfg.Path())
			fmt.Fprintln(out, ui.Success.Sprint("✓")+" Set "+ui.Key.Sprint(args[0])+" to "+ui.Highlight.Sprint(args[1]))
			return nil
		}
	},
}
