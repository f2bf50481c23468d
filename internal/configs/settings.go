package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Configuration keys, spelled as they appear in config.json.
const (
	KeyFileStoragePath  = "fileStoragePath"
	KeyPassphraseExpiry = "doNotAskPassphraseInSec"
	KeyImportTimeout    = "importTimeoutInSec"
	KeyAuditLog         = "auditLog"
)

// HomeEnv overrides the data folder when set.
const HomeEnv = "PMANAGER_HOME"

// Settings is the typed view of the merged configuration.
type Settings struct {
	FileStoragePath  string `mapstructure:"fileStoragePath"`
	PassphraseExpiry int    `mapstructure:"doNotAskPassphraseInSec"`
	ImportTimeout    int    `mapstructure:"importTimeoutInSec"`
	AuditLog         bool   `mapstructure:"auditLog"`
}

// KeyExpiry is how long a cached key is trusted. Zero never expires.
func (s Settings) KeyExpiry() time.Duration {
	return time.Duration(s.PassphraseExpiry) * time.Second
}

// ImportTimeoutDuration bounds a remote import request.
func (s Settings) ImportTimeoutDuration() time.Duration {
	return time.Duration(s.ImportTimeout) * time.Second
}

// AuditLogPath is the audit trail location, next to the store file.
func (s Settings) AuditLogPath() string {
	return filepath.Join(filepath.Dir(s.FileStoragePath), "audit.jsonl")
}

// Keys lists the known configuration keys in display order.
func Keys() []string {
	return []string{KeyFileStoragePath, KeyPassphraseExpiry, KeyImportTimeout, KeyAuditLog}
}

// Defaults returns the default value of every key for the given data folder.
func Defaults(dataDir string) map[string]string {
	return map[string]string{
		KeyFileStoragePath:  filepath.Join(dataDir, "PMDATA"),
		KeyPassphraseExpiry: "300",
		KeyImportTimeout:    "30",
		KeyAuditLog:         "true",
	}
}

// DataDir returns the folder holding the configuration and, by default,
// the store file.
func DataDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(homeDir, "AppData", "Roaming")
		}
	case "darwin":
		base = filepath.Join(homeDir, "Library", "Preferences")
	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			base = filepath.Join(homeDir, ".local", "share")
		}
	}

	return filepath.Join(base, "pmanager"), nil
}
