package workflows

import (
	"context"
	"fmt"
	"strings"

	kerrors "github.com/pmanager/pm/internal/errors"
	"github.com/pmanager/pm/internal/store"
	"github.com/pmanager/pm/internal/utils"
)

// SearchOptions configures a search.
type SearchOptions struct {
	// Text is compared with every key and string value.
	Text string

	// Exact requires equality instead of a case-insensitive substring.
	Exact bool

	// Candidate selects among several matching scopes (1-based).
	Candidate int
}

// Search finds the scopes holding a document with a key or string value
// matching Text. A single match, or a selected candidate, returns every
// document of that scope.
func (e *Engine) Search(ctx context.Context, opts SearchOptions) (*Result, error) {
	if strings.TrimSpace(opts.Text) == "" {
		return nil, fmt.Errorf("%w: search text cannot be empty", kerrors.ErrValidation)
	}

	s, err := e.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	matches := SearchScopes(s, opts.Text, !opts.Exact)
	scope, err := selectCandidate(matches, opts.Candidate, fmt.Errorf("%w: nothing matches %q", kerrors.ErrNoMatch, opts.Text))
	if err != nil {
		return nil, err
	}

	return get(s, GetOptions{Scope: scope, Index: AllDocuments, Exact: true})
}

// SearchScopes returns, in store order, the scopes with at least one
// document containing text.
func SearchScopes(s *store.Store, text string, fuzzy bool) []string {
	var matches []string
	for _, name := range s.Names() {
		docs, _ := s.Scope(name)
		for _, doc := range docs {
			if documentContains(doc, text, fuzzy) {
				matches = append(matches, name)
				break
			}
		}
	}
	return matches
}

func documentContains(doc *store.Node, text string, fuzzy bool) bool {
	return doc.Walk(func(key string, v store.Value) bool {
		return utils.Match(key, text, fuzzy) || (v.IsLeaf() && utils.Match(v.String(), text, fuzzy))
	})
}
