package workflows

import (
	"fmt"
	"strings"

	kerrors "github.com/pmanager/pm/internal/errors"
	"github.com/pmanager/pm/internal/store"
	"github.com/pmanager/pm/internal/utils"
)

// ResolveScopes returns the scope names matching target in store order.
// Exact matching compares case-sensitively and yields at most one name;
// fuzzy matching is a case-insensitive substring test, so an empty target
// matches every scope, and so does the wildcard target. With exact matching
// the wildcard is an ordinary name, which no scope can have.
func ResolveScopes(s *store.Store, target string, fuzzy bool) []string {
	if fuzzy && target == store.Wildcard {
		return s.Names()
	}

	if !fuzzy {
		if s.HasScope(target) {
			return []string{target}
		}
		return nil
	}

	var matches []string
	for _, name := range s.Names() {
		if utils.Match(name, target, true) {
			matches = append(matches, name)
		}
	}
	return matches
}

// selectCandidate picks one name out of matches. Several matches need a
// 1-based candidate; without one, or with one out of range, the matches are
// reported in an AmbiguousError.
func selectCandidate(matches []string, candidate int, notFound error) (string, error) {
	switch {
	case len(matches) == 0:
		return "", notFound
	case len(matches) == 1:
		return matches[0], nil
	case candidate == 0:
		return "", &kerrors.AmbiguousError{Candidates: matches}
	case candidate < 1 || candidate > len(matches):
		return "", &kerrors.AmbiguousError{Candidates: matches, Selection: candidate}
	default:
		return matches[candidate-1], nil
	}
}

// checkScopeName rejects names a scope can never have.
func checkScopeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: scope name cannot be empty", kerrors.ErrInvalidScopeName)
	}
	if name == store.Wildcard {
		return fmt.Errorf("%w: scope name cannot be %q", kerrors.ErrInvalidScopeName, store.Wildcard)
	}
	return nil
}

// document returns the documents of scope and the 0-based position of the
// 1-based index.
func document(s *store.Store, scope string, index int) ([]*store.Node, int, error) {
	docs, ok := s.Scope(scope)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", kerrors.ErrScopeNotFound, scope)
	}
	if index < 1 || index > len(docs) {
		return nil, 0, fmt.Errorf("%w: scope %q does not have index %d", kerrors.ErrIndexNotFound, scope, index)
	}
	return docs, index - 1, nil
}

// lookup follows chain from doc. A missing key, or a key below a string
// sentence, fails with the deepest prefix that did not resolve.
func lookup(doc *store.Node, chain []string) (store.Value, error) {
	v := store.Object(doc)
	for i, key := range chain {
		var ok bool
		if !v.IsLeaf() {
			v, ok = v.Node().Get(key)
		}
		if !ok {
			return store.Value{}, missingKey(chain[:i+1])
		}
	}
	return v, nil
}

func missingKey(prefix []string) error {
	return fmt.Errorf("%w: %q", kerrors.ErrKeyNotFound, strings.Join(prefix, "."))
}

func describeDocument(scope string, index, total int) string {
	if total > 1 {
		return fmt.Sprintf("Scope: %q, document %d (%d in total)", scope, index, total)
	}
	return fmt.Sprintf("Scope: %q", scope)
}
