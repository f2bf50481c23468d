package secrets

import (
	"errors"
	"fmt"
	"time"

	kerrors "github.com/pmanager/pm/internal/errors"
	logger "github.com/pmanager/pm/internal/logging"
)

const (
	// DefaultMaxAttempts is the number of passphrase prompts after the cached key fails.
	DefaultMaxAttempts = 5

	// DefaultBackoff is the delay step between failed attempts.
	DefaultBackoff = 500 * time.Millisecond
)

// Prompter reads a secret from the user without echoing it.
// Implementations return kerrors.ErrCancelled when the user aborts.
type Prompter interface {
	AskSecret(prompt string) (string, error)
}

// Session owns the active encryption key of one process. The key comes from
// the key cache when it is fresh, otherwise from the empty passphrase, and
// is replaced by a prompted passphrase whenever it fails to authenticate.
type Session struct {
	Cache    *KeyCache
	Prompter Prompter
	Log      logger.Logger

	// MaxAttempts bounds the prompts after the first failure.
	MaxAttempts int

	// Backoff is multiplied by the attempt number before each retry.
	Backoff time.Duration

	// Sleep waits between attempts; time.Sleep when nil.
	Sleep func(time.Duration)

	key []byte
}

// NewSession returns a session with the default retry policy.
func NewSession(cache *KeyCache, prompter Prompter, log logger.Logger) *Session {
	return &Session{
		Cache:       cache,
		Prompter:    prompter,
		Log:         log,
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     DefaultBackoff,
	}
}

// Encrypt seals plaintext under the active key.
func (s *Session) Encrypt(plaintext []byte) ([]byte, error) {
	key, err := s.activeKey(false)
	if err != nil {
		return nil, err
	}
	return Seal(key, plaintext)
}

// Decrypt opens payload, re-prompting for the passphrase after every
// authentication failure. It gives up with ErrTooManyAttempts once
// MaxAttempts prompts have failed. Errors other than an authentication
// failure are returned at once.
func (s *Session) Decrypt(payload []byte) ([]byte, error) {
	for attempt := 0; attempt <= s.MaxAttempts; attempt++ {
		if attempt > 1 {
			s.sleep(time.Duration(attempt-1) * s.Backoff)
		}

		key, err := s.activeKey(attempt > 0)
		if err != nil {
			return nil, err
		}

		plaintext, err := Open(key, payload)
		if err == nil {
			return plaintext, nil
		}
		if !errors.Is(err, kerrors.ErrAuthenticationFailed) {
			return nil, err
		}

		s.key = nil
		if attempt == 0 {
			s.Log.Debugf("Cached key failed to authenticate the store, asking for the passphrase")
		} else if left := s.MaxAttempts - attempt; left > 0 {
			s.Log.WarnfUser("Wrong passphrase, %d attempt(s) left", left)
		}
	}
	return nil, kerrors.ErrTooManyAttempts
}

// SetPassphrase derives the key for passphrase, caches it and makes it active.
func (s *Session) SetPassphrase(passphrase string) error {
	key, err := DeriveKey(passphrase)
	if err != nil {
		return err
	}
	if err := s.Cache.Store(key); err != nil {
		return err
	}
	s.key = key
	return nil
}

// Lock replaces the cached key with the empty passphrase key, so the next
// operation on a protected store asks for the passphrase again.
func (s *Session) Lock() error {
	s.Log.Debugf("Locking key cache at %s", s.Cache.Path)
	return s.SetPassphrase("")
}

func (s *Session) activeKey(reprompt bool) ([]byte, error) {
	if s.key != nil && !reprompt {
		return s.key, nil
	}

	if reprompt {
		passphrase, err := s.Prompter.AskSecret("Passphrase (not displayed): ")
		if err != nil {
			return nil, err
		}
		if err := s.SetPassphrase(passphrase); err != nil {
			return nil, err
		}
		return s.key, nil
	}

	fresh, err := s.Cache.Fresh()
	if err != nil {
		return nil, err
	}
	if fresh {
		key, err := s.Cache.Load()
		if err == nil {
			s.Log.Debugf("Using cached key from %s", s.Cache.Path)
			s.key = key
			return key, nil
		}
		s.Log.Debugf("Discarding unreadable key cache: %v", err)
	} else {
		s.Log.Debugf("Key cache missing or expired, trying the empty passphrase")
	}

	if err := s.SetPassphrase(""); err != nil {
		return nil, fmt.Errorf("refreshing key cache: %w", err)
	}
	return s.key, nil
}

func (s *Session) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}
