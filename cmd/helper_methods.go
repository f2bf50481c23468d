package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/pmanager/pm/internal/audit"
	"github.com/pmanager/pm/internal/configs"
	kerrors "github.com/pmanager/pm/internal/errors"
	"github.com/pmanager/pm/internal/secrets"
	"github.com/pmanager/pm/internal/store"
	"github.com/pmanager/pm/internal/ui"
	"github.com/pmanager/pm/internal/utils"
	"github.com/pmanager/pm/internal/vault"
	"github.com/pmanager/pm/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	// prompter asks for passphrases. Tests replace it with a scripted one.
	prompter secrets.Prompter = utils.TerminalPrompter{}

	// keyCachePath locates the key cache file.
	keyCachePath = secrets.DefaultKeyCachePath

	errSingleIndex = fmt.Errorf("%w: a single document index is required", kerrors.ErrValidation)
)

// loadSettings reads the user configuration.
func loadSettings() (*configs.Config, configs.Settings, error) {
	cfg, err := configs.LoadDefault()
	if err != nil {
		return nil, configs.Settings{}, err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return nil, configs.Settings{}, err
	}
	Logger.Debugf("Using store %s", settings.FileStoragePath)
	return cfg, settings, nil
}

// newEngine wires configuration, key cache, vault and audit trail into an
// engine whose streams are the command's.
func newEngine(cmd *cobra.Command) (*workflows.Engine, error) {
	_, settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	cache := &secrets.KeyCache{Path: keyCachePath(), Expiry: settings.KeyExpiry()}
	session := secrets.NewSession(cache, prompter, Logger)
	v := vault.New(settings.FileStoragePath, session, Logger)

	var trail *audit.Trail
	if settings.AuditLog {
		trail = &audit.Trail{Path: settings.AuditLogPath()}
	}

	e := workflows.NewEngine(v, trail, Logger)
	e.ImportTimeout = settings.ImportTimeoutDuration()
	e.Stdin = cmd.InOrStdin()
	e.Stdout = cmd.OutOrStdout()
	return e, nil
}

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(cmd *cobra.Command, message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(cmd.OutOrStdout(), finalMsg)
		}
	}

	return s, cleanup
}

// parseAddress splits "scope" or "scope:index". The suffix is only taken as
// an index when it is a number or "all", so scope names may hold colons.
// Zero index means none was given.
func parseAddress(arg string, allowWildcard bool) (string, int, bool, error) {
	scope, index, hasIndex := strings.TrimSpace(arg), 0, false

	if i := strings.LastIndex(scope, ":"); i >= 0 {
		suffix := scope[i+1:]
		if suffix == "all" {
			scope, hasIndex = scope[:i], true
		} else if n, err := strconv.Atoi(suffix); err == nil {
			if n < 1 {
				return "", 0, false, fmt.Errorf("%w: index must be at least 1", kerrors.ErrValidation)
			}
			scope, index, hasIndex = scope[:i], n, true
		}
	}

	switch {
	case scope == "":
		return "", 0, false, fmt.Errorf("%w: scope name cannot be empty", kerrors.ErrInvalidScopeName)
	case scope == store.Wildcard && !allowWildcard:
		return "", 0, false, fmt.Errorf("%w: scope name cannot be %q", kerrors.ErrInvalidScopeName, store.Wildcard)
	}
	return scope, index, hasIndex, nil
}

// indexFlag is a document index flag accepting a number or "all".
type indexFlag struct {
	n        int
	allowAll bool
}

func (f *indexFlag) String() string {
	if f.n == workflows.AllDocuments {
		return "all"
	}
	return strconv.Itoa(f.n)
}

func (f *indexFlag) Set(s string) error {
	if s == "all" {
		if !f.allowAll {
			return errors.New("a single document index is required")
		}
		f.n = workflows.AllDocuments
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		if f.allowAll {
			return errors.New(`index must be a positive number or "all"`)
		}
		return errors.New("index must be a positive number")
	}
	f.n = n
	return nil
}

func (f *indexFlag) Type() string {
	return "index"
}

// resolveIndex picks the index from the address, then the flag.
func resolveIndex(fromAddress int, hasAddress bool, flag *indexFlag) int {
	if hasAddress {
		return fromAddress
	}
	return flag.n
}

// printValues writes a query result: a header naming the scope, then a
// single string as is or the values as indented JSON.
func printValues(w io.Writer, res *workflows.Result) error {
	header := ui.Scope.Sprint(res.Scope)
	switch {
	case res.Index > 0:
		header = ui.DocumentHeader(res.Scope, res.Index, res.Total)
	case len(res.Values) > 1:
		header += " " + ui.Muted.Sprintf("%d found", len(res.Values))
	}
	fmt.Fprintln(w, header)

	if len(res.Values) == 1 {
		v := res.Values[0]
		if v.IsLeaf() {
			fmt.Fprintln(w, v.String())
			return nil
		}
		data, err := store.MarshalValueIndent(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	data, err := store.MarshalValuesIndent(res.Values)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// reportedError marks an error that was already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported reports whether err was already printed by a command.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// reportError shows err to the user. Bad input and missing data end the
// command normally; anything else is returned so the process exits non-zero.
func reportError(cmd *cobra.Command, err error) error {
	Logger.Debugf("Command failed: %v", err)
	fmt.Fprintln(cmd.ErrOrStderr(), formatError(err))
	if isUnexpectedError(err) {
		return &reportedError{err: err}
	}
	return nil
}

// formatError formats an error for display to the user.
func formatError(err error) string {
	var amb *kerrors.AmbiguousError
	switch {
	case errors.As(err, &amb):
		if amb.Selection != 0 {
			return ui.Error.Sprint("✗") + fmt.Sprintf(" Invalid candidate number %d, pick one of 1-%d", amb.Selection, len(amb.Candidates))
		}
		msg := ui.Warning.Sprint("⚠") + fmt.Sprintf(" %d scopes found:\n", len(amb.Candidates))
		for i, name := range amb.Candidates {
			msg += fmt.Sprintf("  %s %s\n", ui.Highlight.Sprint(i+1), ui.Scope.Sprint(name))
		}
		return msg + ui.Info.Sprint("→") + " Pick one with " + ui.Flag.Sprint("--candidate <n>") + " or match exactly with " + ui.Flag.Sprint("--no-fuzzy")

	case errors.Is(err, kerrors.ErrCancelled):
		return ui.Warning.Sprint("⚠") + " Cancelled"

	case errors.Is(err, kerrors.ErrTooManyAttempts):
		return ui.Error.Sprint("✗") + " Too many wrong passphrases, giving up"

	case errors.Is(err, kerrors.ErrDeleteDocument), errors.Is(err, kerrors.ErrDeleteObject), errors.Is(err, kerrors.ErrOverwriteObject):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Add " + ui.Flag.Sprint("--force") + " to do it anyway"

	case errors.Is(err, kerrors.ErrKeyExists):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Drop " + ui.Flag.Sprint("--create") + " to overwrite it"

	case errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Check the values with " + ui.Code.Sprint("pm config")

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// isUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isUnexpectedError(err error) bool {
	switch kerrors.Kind(err) {
	case kerrors.ErrNotFound, kerrors.ErrConflict, kerrors.ErrForbidden, kerrors.ErrAmbiguous, kerrors.ErrValidation:
		return false
	default:
		return true
	}
}
