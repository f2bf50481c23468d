package utils

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	kerrors "github.com/pmanager/pm/internal/errors"
	"golang.org/x/term"
)

// CancelToken is the answer that aborts a passphrase prompt.
const CancelToken = "c"

// ReadPassphrase prompts the user for a passphrase without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// ReadPassphraseFromTTY prompts the user for a passphrase from /dev/tty (or CON on Windows).
// This is used when stdin carries data, e.g. an import piped into pm.
func ReadPassphraseFromTTY(prompt string) ([]byte, error) {
	ttyPath := "/dev/tty"
	if runtime.GOOS == "windows" {
		ttyPath = "CON"
	}

	tty, err := os.Open(ttyPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s for passphrase input: %w", ttyPath, err)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal", ttyPath)
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// TerminalPrompter asks for secrets on the controlling terminal.
type TerminalPrompter struct{}

// AskSecret reads a hidden answer to prompt. Answering the cancel token
// returns kerrors.ErrCancelled.
func (TerminalPrompter) AskSecret(prompt string) (string, error) {
	prompt = strings.TrimSuffix(prompt, ": ") + " [cancel? " + CancelToken + "]: "

	var (
		raw []byte
		err error
	)
	if IsTerminal() {
		raw, err = ReadPassphrase(prompt)
	} else {
		raw, err = ReadPassphraseFromTTY(prompt)
	}
	if err != nil {
		return "", err
	}
	return CheckCancel(string(raw))
}

// CheckCancel returns kerrors.ErrCancelled when answer is the cancel token.
func CheckCancel(answer string) (string, error) {
	if answer == CancelToken {
		return "", kerrors.ErrCancelled
	}
	return answer, nil
}
