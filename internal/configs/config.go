package configs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/mitchellh/mapstructure"
	kerrors "github.com/pmanager/pm/internal/errors"
)

const (
	jsonFileName = "config.json"
	tomlFileName = "config.toml"
)

// Config holds the user's configuration overrides. Keys without an override
// fall back to Defaults.
type Config struct {
	Dir string

	path   string
	values map[string]string
}

// Entry is one effective configuration value.
type Entry struct {
	Key     string
	Value   string
	Default bool
}

// Load reads the configuration in dir. config.toml takes precedence over
// config.json; a missing file yields an empty configuration.
func Load(dir string) (*Config, error) {
	c := &Config{Dir: dir, path: filepath.Join(dir, jsonFileName), values: make(map[string]string)}

	raw := make(map[string]any)
	tomlPath := filepath.Join(dir, tomlFileName)
	switch {
	case fileExists(tomlPath):
		c.path = tomlPath
		if err := LoadTOML(tomlPath, &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to load %s: %v", kerrors.ErrInvalidConfig, tomlPath, err)
		}
	case fileExists(c.path):
		data, err := os.ReadFile(c.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", kerrors.ErrInvalidConfig, c.path, err)
		}
	}

	for key, value := range raw {
		if !slices.Contains(Keys(), key) {
			return nil, fmt.Errorf("%w: unknown key %q in %s", kerrors.ErrInvalidConfig, key, c.path)
		}
		c.values[key] = fmt.Sprint(value)
	}

	return c, nil
}

// LoadDefault loads the configuration from DataDir.
func LoadDefault() (*Config, error) {
	dir, err := DataDir()
	if err != nil {
		return nil, err
	}
	return Load(dir)
}

// Path is the file the configuration is read from and saved to.
func (c *Config) Path() string {
	return c.path
}

// Get returns the effective value of key.
func (c *Config) Get(key string) (string, bool) {
	if v, ok := c.values[key]; ok {
		return v, true
	}
	v, ok := Defaults(c.Dir)[key]
	return v, ok
}

// Entries lists every known key with its effective value.
func (c *Config) Entries() []Entry {
	var entries []Entry
	for _, key := range Keys() {
		v, overridden := c.values[key]
		if !overridden {
			v = Defaults(c.Dir)[key]
		}
		entries = append(entries, Entry{Key: key, Value: v, Default: !overridden})
	}
	return entries
}

// Set overrides key with value after checking that the result still decodes.
func (c *Config) Set(key, value string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("%w: unknown key %q", kerrors.ErrInvalidConfig, key)
	}

	prev, had := c.values[key]
	c.values[key] = value
	if _, err := c.Settings(); err != nil {
		if had {
			c.values[key] = prev
		} else {
			delete(c.values, key)
		}
		return err
	}
	return nil
}

// Unset drops the override of key, restoring its default.
func (c *Config) Unset(key string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("%w: unknown key %q", kerrors.ErrInvalidConfig, key)
	}
	delete(c.values, key)
	return nil
}

// Settings merges the overrides over the defaults and decodes the result.
func (c *Config) Settings() (Settings, error) {
	merged := Defaults(c.Dir)
	for k, v := range c.values {
		merged[k] = v
	}

	var s Settings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &s,
	})
	if err != nil {
		return Settings{}, err
	}
	if err := decoder.Decode(merged); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", kerrors.ErrInvalidConfig, err)
	}

	switch {
	case s.FileStoragePath == "":
		return Settings{}, fmt.Errorf("%w: %s cannot be empty", kerrors.ErrInvalidConfig, KeyFileStoragePath)
	case s.PassphraseExpiry < 0:
		return Settings{}, fmt.Errorf("%w: %s cannot be negative", kerrors.ErrInvalidConfig, KeyPassphraseExpiry)
	case s.ImportTimeout <= 0:
		return Settings{}, fmt.Errorf("%w: %s must be positive", kerrors.ErrInvalidConfig, KeyImportTimeout)
	}
	return s, nil
}

// Save writes the overrides back to Path, creating the data folder if needed.
func (c *Config) Save() error {
	if filepath.Ext(c.path) == ".toml" {
		if err := SaveTOML(c.path, c.values); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		return nil
	}

	data, err := json.MarshalIndent(c.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}
