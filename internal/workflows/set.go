package workflows

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/pmanager/pm/internal/audit"
	kerrors "github.com/pmanager/pm/internal/errors"
	"github.com/pmanager/pm/internal/store"
)

// SetOptions configures an edit.
type SetOptions struct {
	// Scope is the exact scope name.
	Scope string

	// Index is the 1-based document index.
	Index int

	// KeyChain addresses the sentence to write. It cannot be empty.
	KeyChain []string

	// Value is the new sentence text.
	Value string

	// Insert splices a new empty document in at Index. It implies Create.
	Insert bool

	// Create makes missing scopes, documents and keys, and refuses to
	// touch a key that already exists.
	Create bool

	// Force allows replacing an object with a string.
	Force bool
}

// Set writes a sentence.
//
// Without Create the scope, document and every key must exist. Replacing a
// string is always allowed; replacing an object needs Force. With Create,
// whatever is missing is made, but an existing final key fails with
// ErrKeyExists. Nothing is saved unless the whole edit succeeds.
func (e *Engine) Set(ctx context.Context, opts SetOptions) (*Result, error) {
	if len(opts.KeyChain) == 0 {
		return nil, kerrors.ErrKeyChainRequired
	}
	if err := checkScopeName(opts.Scope); err != nil {
		return nil, err
	}
	create := opts.Create || opts.Insert

	s, err := e.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	docs, ok := s.Scope(opts.Scope)
	if !ok && !create {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrScopeNotFound, opts.Scope)
	}

	pos := opts.Index - 1
	switch {
	case pos < 0 || pos >= len(docs):
		if !create {
			return nil, fmt.Errorf("%w: scope %q does not have index %d", kerrors.ErrIndexNotFound, opts.Scope, opts.Index)
		}
		docs = append(docs, store.NewNode())
		pos = len(docs) - 1
	case opts.Insert:
		docs = slices.Insert(docs, pos, store.NewNode())
	}
	s.SetScope(opts.Scope, docs)

	if err := setSentence(docs[pos], opts.KeyChain, opts.Value, create, opts.Force); err != nil {
		return nil, err
	}

	digest, err := e.commit(ctx, s, audit.NewEntry("set"))
	if err != nil {
		return nil, err
	}

	e.Log.Infof("Set %s in scope %q, document %d", strings.Join(opts.KeyChain, "."), opts.Scope, pos+1)
	return &Result{
		Message:  fmt.Sprintf("Updated %q in %s", strings.Join(opts.KeyChain, "."), describeDocument(opts.Scope, pos+1, len(docs))),
		Scope:    opts.Scope,
		Index:    pos + 1,
		Total:    len(docs),
		Hashcode: digest,
	}, nil
}

func setSentence(doc *store.Node, chain []string, value string, create, force bool) error {
	node := doc
	last := len(chain) - 1

	for i, key := range chain[:last] {
		v, ok := node.Get(key)
		if !ok {
			if !create {
				return missingKey(chain[:i+1])
			}
			child := store.NewNode()
			node.Set(key, store.Object(child))
			node = child
			continue
		}
		if v.IsLeaf() {
			return fmt.Errorf("%w: %q", kerrors.ErrNotAnObject, strings.Join(chain[:i+1], "."))
		}
		node = v.Node()
	}

	existing, ok := node.Get(chain[last])
	switch {
	case ok && create:
		return fmt.Errorf("%w: %q", kerrors.ErrKeyExists, strings.Join(chain, "."))
	case ok && !existing.IsLeaf() && !force:
		return fmt.Errorf("%w: %q", kerrors.ErrOverwriteObject, strings.Join(chain, "."))
	case !ok && !create:
		return missingKey(chain)
	}

	node.Set(chain[last], store.Leaf(value))
	return nil
}
