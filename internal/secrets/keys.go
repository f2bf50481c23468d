package secrets

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	kerrors "github.com/pmanager/pm/internal/errors"
	"golang.org/x/crypto/scrypt"
)

// scrypt work factors. These match the stores written by earlier releases.
const (
	scryptN = 1 << 14
	scryptR = 8
	scryptP = 1
)

// DeriveKey derives a 32-byte key from passphrase with scrypt. The salt is
// the SHA-256 digest of the passphrase, so a passphrase always yields the
// same key and no salt is stored next to the ciphertext.
func DeriveKey(passphrase string) ([]byte, error) {
	salt := sha256.Sum256([]byte(passphrase))
	key, err := scrypt.Key([]byte(passphrase), salt[:], scryptN, scryptR, scryptP, KeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}

// DefaultKeyCachePath returns the key cache location inside the system
// temporary directory.
func DefaultKeyCachePath() string {
	return filepath.Join(os.TempDir(), "pmanager", "KEYCACHE")
}

// KeyCache stores the derived key in a file whose modification time marks
// its freshness.
type KeyCache struct {
	Path string

	// Expiry is how long a cached key is trusted. Zero never expires.
	Expiry time.Duration

	// Now is used for age checks; time.Now when nil.
	Now func() time.Time
}

func (c *KeyCache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Fresh reports whether the cache file exists and is within Expiry.
func (c *KeyCache) Fresh() (bool, error) {
	info, err := os.Stat(c.Path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: failed to stat key cache: %v", kerrors.ErrIO, err)
	}
	if c.Expiry == 0 {
		return true, nil
	}
	return c.now().Sub(info.ModTime()) <= c.Expiry, nil
}

// Load reads the cached key.
func (c *KeyCache) Load() ([]byte, error) {
	key, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read key cache file: %v", kerrors.ErrIO, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key cache holds %d bytes", kerrors.ErrInvalidKeyLength, len(key))
	}
	return key, nil
}

// Store writes key to the cache, refreshing its modification time.
func (c *KeyCache) Store(key []byte) error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0700); err != nil {
		return fmt.Errorf("%w: failed to create key cache directory: %v", kerrors.ErrIO, err)
	}
	if err := os.WriteFile(c.Path, key, 0600); err != nil {
		return fmt.Errorf("%w: failed to write to key cache file: %v", kerrors.ErrIO, err)
	}
	// WriteFile keeps the mtime granularity of the filesystem; set it
	// explicitly so an injected clock agrees with the file.
	now := c.now()
	if err := os.Chtimes(c.Path, now, now); err != nil {
		return fmt.Errorf("%w: failed to touch key cache file: %v", kerrors.ErrIO, err)
	}
	return nil
}
