package workflows

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pmanager/pm/internal/audit"
	logger "github.com/pmanager/pm/internal/logging"
	"github.com/pmanager/pm/internal/store"
)

// memRepo keeps the store as canonical JSON so every Load hands out a
// fresh copy, the same way the vault reads through.
type memRepo struct {
	data        []byte
	saves       int
	locks       int
	passChanges int
	loadErr     error
}

func (r *memRepo) Load(ctx context.Context) (*store.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return store.Parse(r.data)
}

func (r *memRepo) Save(_ context.Context, s *store.Store) error {
	r.data = store.Marshal(s)
	r.saves++
	return nil
}

func (r *memRepo) ChangePassphrase() error {
	r.passChanges++
	return nil
}

func (r *memRepo) Lock() error {
	r.locks++
	return nil
}

func newTestEngine(t *testing.T, data string) (*Engine, *memRepo) {
	t.Helper()
	_, err := store.Parse([]byte(data))
	require.NoError(t, err, "fixture must parse")

	repo := &memRepo{data: []byte(data)}
	trail := &audit.Trail{Path: filepath.Join(t.TempDir(), "audit.jsonl")}
	e := NewEngine(repo, trail, logger.Logger{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	return e, repo
}

// unchanged asserts that a failed call left the repository as it was.
func unchanged(t *testing.T, repo *memRepo, before string) {
	t.Helper()
	require.Equal(t, 0, repo.saves, "failed operation must not save")
	require.Equal(t, before, string(repo.data))
}

var errBoom = errors.New("boom")
