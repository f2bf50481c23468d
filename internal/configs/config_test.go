package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	kerrors "github.com/pmanager/pm/internal/errors"
)

func TestLoadMissingConfigUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	s, err := c.Settings()
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if s.FileStoragePath != filepath.Join(dir, "PMDATA") {
		t.Errorf("unexpected store path %q", s.FileStoragePath)
	}
	if s.KeyExpiry() != 300*time.Second {
		t.Errorf("expected 300s expiry, got %v", s.KeyExpiry())
	}
	if s.ImportTimeoutDuration() != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", s.ImportTimeoutDuration())
	}
	if !s.AuditLog {
		t.Error("expected audit log enabled by default")
	}
	if s.AuditLogPath() != filepath.Join(dir, "audit.jsonl") {
		t.Errorf("unexpected audit path %q", s.AuditLogPath())
	}
	if c.Path() != filepath.Join(dir, "config.json") {
		t.Errorf("unexpected config path %q", c.Path())
	}
}

func TestLoadJSONConfig(t *testing.T) {
	dir := t.TempDir()
	content := `{"doNotAskPassphraseInSec": "0", "importTimeoutInSec": 5}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s, err := c.Settings()
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if s.PassphraseExpiry != 0 {
		t.Errorf("expected 0 expiry, got %d", s.PassphraseExpiry)
	}
	if s.ImportTimeout != 5 {
		t.Errorf("expected timeout 5, got %d", s.ImportTimeout)
	}
}

func TestLoadTOMLConfigTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"auditLog":"true"}`), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("auditLog = false\n"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s, err := c.Settings()
	if err != nil {
		t.Fatalf("Settings failed: %v", err)
	}
	if s.AuditLog {
		t.Error("expected config.toml to disable the audit log")
	}
	if filepath.Base(c.Path()) != "config.toml" {
		t.Errorf("expected config.toml path, got %q", c.Path())
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"colour":"blue"}`), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(dir); !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSetValidatesValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		ok    bool
	}{
		{"Expiry", KeyPassphraseExpiry, "60", true},
		{"NeverExpire", KeyPassphraseExpiry, "0", true},
		{"NegativeExpiry", KeyPassphraseExpiry, "-1", false},
		{"NonNumericExpiry", KeyPassphraseExpiry, "soon", false},
		{"ZeroTimeout", KeyImportTimeout, "0", false},
		{"AuditOff", KeyAuditLog, "false", true},
		{"AuditGarbage", KeyAuditLog, "maybe", false},
		{"EmptyStorePath", KeyFileStoragePath, "", false},
		{"UnknownKey", "theme", "dark", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Load(t.TempDir())
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			err = c.Set(tc.key, tc.value)
			if tc.ok && err != nil {
				t.Errorf("Set(%q, %q) failed: %v", tc.key, tc.value, err)
			}
			if !tc.ok {
				if !errors.Is(err, kerrors.ErrInvalidConfig) {
					t.Errorf("Set(%q, %q): expected ErrInvalidConfig, got %v", tc.key, tc.value, err)
				}
				if _, err := c.Settings(); err != nil {
					t.Errorf("a rejected Set must leave a valid config: %v", err)
				}
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := c.Set(KeyPassphraseExpiry, "42"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := reloaded.Get(KeyPassphraseExpiry); v != "42" {
		t.Errorf("expected 42, got %q", v)
	}

	if err := reloaded.Unset(KeyPassphraseExpiry); err != nil {
		t.Fatalf("Unset failed: %v", err)
	}
	if v, _ := reloaded.Get(KeyPassphraseExpiry); v != "300" {
		t.Errorf("expected default 300 after Unset, got %q", v)
	}
}

func TestEntriesMarkDefaults(t *testing.T) {
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := c.Set(KeyAuditLog, "false"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	entries := c.Entries()
	if len(entries) != len(Keys()) {
		t.Fatalf("expected %d entries, got %d", len(Keys()), len(entries))
	}
	for _, e := range entries {
		if e.Key == KeyAuditLog && (e.Default || e.Value != "false") {
			t.Errorf("unexpected audit entry %+v", e)
		}
		if e.Key == KeyImportTimeout && !e.Default {
			t.Errorf("expected %s to be a default", e.Key)
		}
	}
}

func TestDataDirHonorsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	got, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if got != dir {
		t.Errorf("expected %q, got %q", dir, got)
	}
}
