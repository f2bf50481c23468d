package workflows

import (
	"context"

	"github.com/pmanager/pm/internal/audit"
)

// ResetPassphrase re-encrypts the store under a new passphrase, asked for
// twice by the repository.
func (e *Engine) ResetPassphrase(ctx context.Context) (*Result, error) {
	s, err := e.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := e.Repo.ChangePassphrase(); err != nil {
		return nil, err
	}

	digest, err := e.commit(ctx, s, audit.NewEntry("reset-passphrase"))
	if err != nil {
		return nil, err
	}

	e.Log.Infof("Store re-encrypted under the new passphrase")
	return &Result{Message: "Passphrase updated", Hashcode: digest}, nil
}

// Lock forgets the cached key so the next operation asks for the passphrase.
func (e *Engine) Lock(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.Repo.Lock(); err != nil {
		return nil, err
	}
	return &Result{Message: "Passphrase cache cleared"}, nil
}

// Verify loads the store once, prompting for the passphrase if needed, so
// that slow work afterwards runs with an authenticated key.
func (e *Engine) Verify(ctx context.Context) error {
	_, err := e.Repo.Load(ctx)
	return err
}
