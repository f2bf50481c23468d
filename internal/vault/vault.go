package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/pmanager/pm/internal/errors"
	logger "github.com/pmanager/pm/internal/logging"
	"github.com/pmanager/pm/internal/secrets"
	"github.com/pmanager/pm/internal/store"
	"github.com/pmanager/pm/internal/utils"
)

const (
	setPrompt     = "Set passphrase (not displayed): "
	confirmPrompt = "Confirm passphrase (not displayed): "
)

// Vault is the encrypted store file on disk.
type Vault struct {
	Path    string
	Session *secrets.Session
	Log     logger.Logger
}

// New returns a vault for the store file at path.
func New(path string, session *secrets.Session, log logger.Logger) *Vault {
	return &Vault{Path: path, Session: session, Log: log}
}

// Exists reports whether the store file has been created.
func (v *Vault) Exists() bool {
	return utils.FileExists(v.Path)
}

// Load reads and decrypts the store. On first use it asks for a passphrase
// and writes the seed store before reading it back.
func (v *Vault) Load(ctx context.Context) (*store.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !v.Exists() {
		if err := v.bootstrap(ctx); err != nil {
			return nil, err
		}
	}

	payload, err := os.ReadFile(v.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read store: %v", kerrors.ErrIO, err)
	}

	plaintext, err := v.Session.Decrypt(payload)
	if err != nil {
		return nil, err
	}

	s, err := store.Parse(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrCorruptStore, err)
	}

	v.Log.Debugf("Loaded %d scope(s) from %s", s.Len(), v.Path)
	return s, nil
}

// Save encrypts s under the active key and atomically replaces the store file.
func (v *Vault) Save(ctx context.Context, s *store.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := v.Session.Encrypt(store.Marshal(s))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(v.Path), 0700); err != nil {
		return fmt.Errorf("%w: failed to create store directory: %v", kerrors.ErrIO, err)
	}
	if err := utils.WriteFileAtomic(v.Path, payload, 0600); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrIO, err)
	}

	v.Log.Debugf("Wrote %d scope(s) to %s", s.Len(), v.Path)
	return nil
}

// ChangePassphrase asks for a new passphrase, twice, and makes its key
// active. The caller saves the store to re-encrypt it.
func (v *Vault) ChangePassphrase() error {
	passphrase, err := v.askNewPassphrase()
	if err != nil {
		return err
	}
	return v.Session.SetPassphrase(passphrase)
}

// Lock forgets the cached passphrase key.
func (v *Vault) Lock() error {
	return v.Session.Lock()
}

func (v *Vault) bootstrap(ctx context.Context) error {
	v.Log.Infof("No store found at %s, creating one", v.Path)

	if err := v.ChangePassphrase(); err != nil {
		return err
	}
	if err := v.Save(ctx, store.Seed()); err != nil {
		return fmt.Errorf("failed to initialise data storage: %w", err)
	}
	return nil
}

func (v *Vault) askNewPassphrase() (string, error) {
	for {
		first, err := v.Session.Prompter.AskSecret(setPrompt)
		if err != nil {
			return "", err
		}
		second, err := v.Session.Prompter.AskSecret(confirmPrompt)
		if err != nil {
			return "", err
		}
		if first == second {
			return first, nil
		}
		v.Log.WarnfUser("Passphrases do not match, try again")
	}
}
