// Package logger provides leveled logging for pm commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is prefixed and colored with fatih/color.
//
// # Verbosity Levels
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details and errors
//
// Without flags, only critical warnings and fatal errors are shown.
//
// # Log Methods
//
//	Logger.Infof()          // Shown with --verbose or --debug
//	Logger.Debugf()         // Shown only with --debug
//	Logger.Warnf()          // Shown with --verbose or --debug
//	Logger.WarnfAlways()    // Always shown (critical warnings)
//	Logger.WarnfUser()      // User-facing warnings
//	Logger.Errorf()         // Shown with --debug
//	Logger.ErrorfAndReturn() // Errorf that also returns the error
//	Logger.Fatalf()         // Always shown, then exits
//
// The root command builds a Logger in its PersistentPreRun and hands it to
// the vault, the secrets session and the workflows engine.
package logger
