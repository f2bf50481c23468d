package workflows

import (
	"context"
	"fmt"

	kerrors "github.com/pmanager/pm/internal/errors"
	"github.com/pmanager/pm/internal/store"
)

// GetOptions configures a query.
type GetOptions struct {
	// Scope is matched against scope names; store.Wildcard matches all
	// unless Exact is set.
	Scope string

	// Index is the 1-based document index, or AllDocuments.
	Index int

	// KeyChain addresses a sentence inside the document. Empty returns
	// the whole document.
	KeyChain []string

	// Exact disables fuzzy scope matching.
	Exact bool

	// Candidate selects among several matching scopes (1-based).
	Candidate int
}

// Get queries the store.
//
// With AllDocuments the key chain is followed in every document of the
// scope and documents lacking it are skipped; ErrNoMatch is returned when
// none has it. With an index the document must exist and the key chain
// must resolve, otherwise ErrIndexNotFound or ErrKeyNotFound name the
// failing position.
func (e *Engine) Get(ctx context.Context, opts GetOptions) (*Result, error) {
	s, err := e.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return get(s, opts)
}

func get(s *store.Store, opts GetOptions) (*Result, error) {
	matches := ResolveScopes(s, opts.Scope, !opts.Exact)
	scope, err := selectCandidate(matches, opts.Candidate, fmt.Errorf("%w: %q", kerrors.ErrScopeNotFound, opts.Scope))
	if err != nil {
		return nil, err
	}

	docs, _ := s.Scope(scope)
	result := &Result{Scope: scope, Total: len(docs)}

	if opts.Index != AllDocuments {
		docs, pos, err := document(s, scope, opts.Index)
		if err != nil {
			return nil, err
		}
		v, err := lookup(docs[pos], opts.KeyChain)
		if err != nil {
			return nil, err
		}
		result.Index = opts.Index
		result.Values = []store.Value{v}
		result.Message = describeDocument(scope, opts.Index, len(docs))
		return result, nil
	}

	for _, doc := range docs {
		if v, err := lookup(doc, opts.KeyChain); err == nil {
			result.Values = append(result.Values, v)
		}
	}

	switch len(result.Values) {
	case 0:
		return nil, fmt.Errorf("%w under scope %q", kerrors.ErrNoMatch, scope)
	case 1:
		result.Message = fmt.Sprintf("Scope: %q", scope)
		if len(docs) == 1 {
			result.Index = 1
		}
	default:
		result.Message = fmt.Sprintf("Scope: %q, %d documents/objects found", scope, len(result.Values))
	}
	return result, nil
}
