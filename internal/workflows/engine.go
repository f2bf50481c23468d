package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/pmanager/pm/internal/audit"
	logger "github.com/pmanager/pm/internal/logging"
	"github.com/pmanager/pm/internal/store"
)

// AllDocuments is the Index that selects every document of a scope in Get.
const AllDocuments = 0

// Repository loads and persists the document store.
type Repository interface {
	// Load reads the whole store, authenticating the active key.
	Load(ctx context.Context) (*store.Store, error)

	// Save replaces the persisted store with s.
	Save(ctx context.Context, s *store.Store) error

	// ChangePassphrase asks for a new passphrase and activates its key.
	ChangePassphrase() error

	// Lock forgets the cached key.
	Lock() error
}

// Engine runs queries and mutations against a Repository. Every call reads
// the store through; mutations write it back only after they fully succeed.
type Engine struct {
	Repo Repository

	// Trail records mutations; nil disables the audit log.
	Trail *audit.Trail

	Log logger.Logger

	// HTTPClient fetches remote imports. A cleanhttp client is used when nil.
	HTTPClient *http.Client

	// ImportTimeout bounds a remote import. Zero means no timeout.
	ImportTimeout time.Duration

	// Stdin and Stdout replace the process streams for import and export.
	Stdin  io.Reader
	Stdout io.Writer
}

// NewEngine returns an engine over repo.
func NewEngine(repo Repository, trail *audit.Trail, log logger.Logger) *Engine {
	return &Engine{Repo: repo, Trail: trail, Log: log}
}

// Result is the outcome of an engine operation.
type Result struct {
	// Message is a human readable summary.
	Message string

	// Scope is the resolved scope name.
	Scope string

	// Index is the 1-based document index, or 0 when Values come from
	// several documents.
	Index int

	// Total is the number of documents in Scope.
	Total int

	// Values holds the queried values.
	Values []store.Value

	// Hashcode is the store digest after a mutation, or the queried digest.
	Hashcode string
}

// Digest returns the SHA-256 hex digest of the canonical encoding of s.
func Digest(s *store.Store) string {
	sum := sha256.Sum256(store.Marshal(s))
	return hex.EncodeToString(sum[:])
}

// commit saves s and records entry with the new digest.
func (e *Engine) commit(ctx context.Context, s *store.Store, entry audit.Entry) (string, error) {
	if err := e.Repo.Save(ctx, s); err != nil {
		return "", err
	}

	digest := Digest(s)
	if e.Trail != nil {
		entry.Hashcode = digest
		e.Trail.Log(entry)
	}
	return digest, nil
}
