package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pmanager/pm/internal/audit"
	"github.com/pmanager/pm/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of changes to the store.

Every change records who made it, from which machine, and the hashcode of
the resulting store. Scope names, keys and values are never recorded.
Reading the log does not need the passphrase.

Examples:
  pm log                            # View full log
  pm log -n 10                      # Last 10 entries
  pm log --reverse                  # Most recent first
  pm log --operation set,delete     # Filter by operation
  pm log --since 2024-01-01         # Filter by date
  pm log --json                     # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	engine, err := newEngine(cmd)
	if err != nil {
		return reportError(cmd, err)
	}
	if engine.Trail == nil {
		Logger.WarnfUser("The audit log is disabled, enable it with pm config auditLog true")
	}

	result, err := engine.AuditLog(cmd.Context(), workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	})
	if err != nil {
		return reportError(cmd, err)
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	out := cmd.OutOrStdout()
	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Fprintln(out, "No audit log entries found.")
		} else {
			fmt.Fprintln(out, "No audit log entries found matching the filters.")
		}
		return nil
	}

	switch {
	case logJSON:
		return outputLogJSON(out, result.Entries)
	case logOneline:
		outputLogOneline(out, result.Entries)
	default:
		outputLogDefault(out, result.Entries)
	}
	return nil
}

func outputLogJSON(w io.Writer, entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func outputLogOneline(w io.Writer, entries []audit.Entry) {
	for _, e := range entries {
		code, _ := workflows.ShortCode(e.Hashcode)
		fmt.Fprintf(w, "%s %s %s %s\n", workflows.FormatDate(e.Timestamp), e.User, e.Operation, code)
	}
}

func outputLogDefault(w io.Writer, entries []audit.Entry) {
	for _, e := range entries {
		actor := e.User
		if e.Device != "" {
			actor += "@" + e.Device
		}
		fmt.Fprintf(w, "%-19s  %-25s  %-16s  %s\n", workflows.FormatDateTime(e.Timestamp), actor, e.Operation, workflows.FormatDetails(e))
	}
}
