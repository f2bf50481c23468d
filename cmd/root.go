package cmd

import (
	logger "github.com/pmanager/pm/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "pm [scope[:index]] [key...]",
		Short: "pm - a local encrypted secrets manager",
		Long: `pm keeps secrets in a single encrypted file, grouped into scopes.

Every scope holds an ordered list of documents and every document holds
nested keys whose values are strings. Scopes are matched fuzzily, so
"pm git token" finds the token of a scope called "github".

Examples:
  pm github                        # every document of the scope
  pm github:2 token                # key "token" of document 2
  pm '*' email                     # "email" in every scope
  pm set github:1 token ghp_xxx    # edit an existing key
  pm set -c mail imap host x.org   # create keys, the scope and document too
  pm search alice                  # scopes mentioning alice
  pm export backup.json            # decrypted copy of the store`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Out:     cmd.OutOrStdout(),
				Err:     cmd.ErrOrStderr(),
			}
			Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runGet(cmd, args)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	addQueryFlags(RootCmd)

	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(setCmd)
	RootCmd.AddCommand(deleteCmd)
	RootCmd.AddCommand(moveCmd)
	RootCmd.AddCommand(renameCmd)
	RootCmd.AddCommand(searchCmd)
	RootCmd.AddCommand(importCmd)
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(hashcodeCmd)
	RootCmd.AddCommand(resetPassphraseCmd)
	RootCmd.AddCommand(lockCmd)
	RootCmd.AddCommand(configCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(versionCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets every flag of every command to its default so
// that one Execute does not leak into the next.
func ResetGlobalState() {
	resetFlags(RootCmd)
}

func resetFlags(c *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
