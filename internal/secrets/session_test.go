package secrets

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	kerrors "github.com/pmanager/pm/internal/errors"
	logger "github.com/pmanager/pm/internal/logging"
)

// scriptedPrompter answers prompts from a fixed list.
type scriptedPrompter struct {
	answers []string
	err     error
	asked   int
}

func (p *scriptedPrompter) AskSecret(string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	if p.asked >= len(p.answers) {
		return "", errors.New("no more answers")
	}
	answer := p.answers[p.asked]
	p.asked++
	return answer, nil
}

func newTestSession(t *testing.T, prompter Prompter) (*Session, *[]time.Duration) {
	t.Helper()
	cache := &KeyCache{Path: filepath.Join(t.TempDir(), "pmanager", "KEYCACHE"), Expiry: time.Minute}
	s := NewSession(cache, prompter, logger.Logger{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	var sleeps []time.Duration
	s.Sleep = func(d time.Duration) { sleeps = append(sleeps, d) }
	return s, &sleeps
}

func sealWith(t *testing.T, passphrase, plaintext string) []byte {
	t.Helper()
	payload, err := Seal(testKey(t, passphrase), []byte(plaintext))
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	return payload
}

func TestSessionEmptyPassphraseWithoutCache(t *testing.T) {
	prompter := &scriptedPrompter{}
	s, _ := newTestSession(t, prompter)

	got, err := s.Decrypt(sealWith(t, "", "open data"))
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if string(got) != "open data" {
		t.Errorf("expected %q, got %q", "open data", got)
	}
	if prompter.asked != 0 {
		t.Errorf("expected no prompt, got %d", prompter.asked)
	}
	if _, err := os.Stat(s.Cache.Path); err != nil {
		t.Errorf("expected key cache to be written: %v", err)
	}
}

func TestSessionPromptsAfterWrongCachedKey(t *testing.T) {
	prompter := &scriptedPrompter{answers: []string{"nope", "secret"}}
	s, sleeps := newTestSession(t, prompter)

	got, err := s.Decrypt(sealWith(t, "secret", "protected"))
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if string(got) != "protected" {
		t.Errorf("expected %q, got %q", "protected", got)
	}
	if prompter.asked != 2 {
		t.Errorf("expected 2 prompts, got %d", prompter.asked)
	}
	if len(*sleeps) != 1 || (*sleeps)[0] != DefaultBackoff {
		t.Errorf("expected a single %v backoff, got %v", DefaultBackoff, *sleeps)
	}

	cached, err := s.Cache.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(cached, testKey(t, "secret")) {
		t.Error("expected the accepted passphrase key to be cached")
	}
}

func TestSessionTooManyAttempts(t *testing.T) {
	prompter := &scriptedPrompter{answers: []string{"a", "b", "c1", "d", "e", "f"}}
	s, sleeps := newTestSession(t, prompter)

	_, err := s.Decrypt(sealWith(t, "secret", "protected"))
	if !errors.Is(err, kerrors.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if prompter.asked != DefaultMaxAttempts {
		t.Errorf("expected %d prompts, got %d", DefaultMaxAttempts, prompter.asked)
	}
	want := []time.Duration{DefaultBackoff, 2 * DefaultBackoff, 3 * DefaultBackoff, 4 * DefaultBackoff}
	if len(*sleeps) != len(want) {
		t.Fatalf("expected sleeps %v, got %v", want, *sleeps)
	}
	for i := range want {
		if (*sleeps)[i] != want[i] {
			t.Errorf("sleep %d: expected %v, got %v", i, want[i], (*sleeps)[i])
		}
	}
}

func TestSessionCancelled(t *testing.T) {
	prompter := &scriptedPrompter{err: kerrors.ErrCancelled}
	s, _ := newTestSession(t, prompter)

	_, err := s.Decrypt(sealWith(t, "secret", "protected"))
	if !errors.Is(err, kerrors.ErrCancelled) {
		t.Errorf("expected ErrCancelled, got %v", err)
	}
}

func TestSessionCorruptPayloadIsNotRetried(t *testing.T) {
	prompter := &scriptedPrompter{answers: []string{"x"}}
	s, _ := newTestSession(t, prompter)

	_, err := s.Decrypt([]byte("short"))
	if !errors.Is(err, kerrors.ErrCorruptStore) {
		t.Errorf("expected ErrCorruptStore, got %v", err)
	}
	if prompter.asked != 0 {
		t.Errorf("expected no prompt, got %d", prompter.asked)
	}
}

func TestSessionEncryptUsesActiveKey(t *testing.T) {
	s, _ := newTestSession(t, &scriptedPrompter{})
	if err := s.SetPassphrase("pw"); err != nil {
		t.Fatalf("SetPassphrase failed: %v", err)
	}

	payload, err := s.Encrypt([]byte("data"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if _, err := Open(testKey(t, "pw"), payload); err != nil {
		t.Errorf("payload did not open under the set passphrase: %v", err)
	}
}

func TestSessionLockResetsCache(t *testing.T) {
	s, _ := newTestSession(t, &scriptedPrompter{})
	if err := s.SetPassphrase("pw"); err != nil {
		t.Fatalf("SetPassphrase failed: %v", err)
	}
	if err := s.Lock(); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	cached, err := s.Cache.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(cached, testKey(t, "")) {
		t.Error("expected the empty passphrase key after Lock")
	}
}

func TestKeyCacheExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := &KeyCache{
		Path:   filepath.Join(t.TempDir(), "KEYCACHE"),
		Expiry: 5 * time.Minute,
		Now:    func() time.Time { return now },
	}

	fresh, err := cache.Fresh()
	if err != nil || fresh {
		t.Fatalf("missing cache: expected not fresh, got %v, %v", fresh, err)
	}

	if err := cache.Store(testKey(t, "")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if fresh, _ := cache.Fresh(); !fresh {
		t.Error("expected a just written cache to be fresh")
	}

	now = now.Add(6 * time.Minute)
	if fresh, _ := cache.Fresh(); fresh {
		t.Error("expected the cache to expire")
	}

	cache.Expiry = 0
	if fresh, _ := cache.Fresh(); !fresh {
		t.Error("expected zero expiry to never expire")
	}
}

func TestKeyCacheStorePermissions(t *testing.T) {
	cache := &KeyCache{Path: filepath.Join(t.TempDir(), "nested", "KEYCACHE")}
	if err := cache.Store(testKey(t, "")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	info, err := os.Stat(cache.Path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600, got %o", info.Mode().Perm())
	}
}

func TestKeyCacheRejectsBadLength(t *testing.T) {
	cache := &KeyCache{Path: filepath.Join(t.TempDir(), "KEYCACHE")}
	if err := os.WriteFile(cache.Path, []byte("short"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := cache.Load(); !errors.Is(err, kerrors.ErrInvalidKeyLength) {
		t.Errorf("expected ErrInvalidKeyLength, got %v", err)
	}
}
