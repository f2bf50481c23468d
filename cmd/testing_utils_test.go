package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmanager/pm/internal/configs"
	kerrors "github.com/pmanager/pm/internal/errors"
)

// scriptedPrompter answers passphrase prompts from a fixed list.
type scriptedPrompter struct {
	answers []string
	cancel  bool
	asked   int
}

func (p *scriptedPrompter) AskSecret(string) (string, error) {
	if p.cancel {
		return "", kerrors.ErrCancelled
	}
	if p.asked >= len(p.answers) {
		return "", errors.New("unexpected passphrase prompt")
	}
	answer := p.answers[p.asked]
	p.asked++
	return answer, nil
}

// setupTestEnvironment points the data folder and the key cache at temporary
// directories and installs a scripted prompter. The first command creates
// the store, so answers usually start with the new passphrase, twice.
func setupTestEnvironment(t *testing.T, answers ...string) (*scriptedPrompter, string) {
	t.Helper()

	home := t.TempDir()
	t.Setenv(configs.HomeEnv, home)
	t.Setenv("NO_COLOR", "1")

	cachePath := filepath.Join(t.TempDir(), "pmanager", "KEYCACHE")
	p := &scriptedPrompter{answers: answers}

	originalPrompter, originalCachePath := prompter, keyCachePath
	prompter = p
	keyCachePath = func() string { return cachePath }

	t.Cleanup(func() {
		prompter = originalPrompter
		keyCachePath = originalCachePath
		ResetGlobalState()
	})
	return p, home
}

// runCLI executes the root command with args and returns what it wrote to
// stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	ResetGlobalState()

	var stdout, stderr bytes.Buffer
	RootCmd.SetArgs(args)
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	RootCmd.SetIn(strings.NewReader(stdin))
	t.Cleanup(func() {
		RootCmd.SetArgs(nil)
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetIn(nil)
	})

	err := RootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// mustRun runs the CLI and fails the test on a returned error.
func mustRun(t *testing.T, args ...string) (string, string) {
	t.Helper()
	stdout, stderr, err := runCLI(t, "", args...)
	if err != nil {
		t.Fatalf("pm %s failed: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return stdout, stderr
}
