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

// DeleteOptions configures a deletion.
type DeleteOptions struct {
	// Scope is the exact scope name.
	Scope string

	// Index is the 1-based document index.
	Index int

	// KeyChain addresses the sentence to remove. Empty removes the whole
	// document, which needs Force.
	KeyChain []string

	// Force allows removing whole documents and non-empty objects.
	Force bool
}

// Delete removes a sentence, an object or a whole document. A document left
// empty is removed from its scope, and a scope left without documents is
// removed from the store.
func (e *Engine) Delete(ctx context.Context, opts DeleteOptions) (*Result, error) {
	s, err := e.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	docs, pos, err := document(s, opts.Scope, opts.Index)
	if err != nil {
		return nil, err
	}

	if len(opts.KeyChain) == 0 {
		if !opts.Force {
			return nil, fmt.Errorf("%w: index %d of scope %q", kerrors.ErrDeleteDocument, opts.Index, opts.Scope)
		}
	} else if err := deleteSentence(docs[pos], opts.KeyChain, opts.Force); err != nil {
		return nil, err
	}

	var removed []string
	if len(opts.KeyChain) == 0 || docs[pos].Len() == 0 {
		docs = slices.Delete(docs, pos, pos+1)
		removed = append(removed, fmt.Sprintf("document %d", opts.Index))
		s.SetScope(opts.Scope, docs)
	}
	if len(docs) == 0 {
		s.DeleteScope(opts.Scope)
		removed = append(removed, fmt.Sprintf("scope %q", opts.Scope))
	}

	digest, err := e.commit(ctx, s, audit.NewEntry("delete"))
	if err != nil {
		return nil, err
	}

	msg := "Deleted"
	if len(opts.KeyChain) > 0 {
		msg += fmt.Sprintf(" %q", strings.Join(opts.KeyChain, "."))
	}
	if len(removed) > 0 {
		msg += ", removed " + strings.Join(removed, " and ")
	}
	e.Log.Infof("%s", msg)

	return &Result{
		Message:  msg,
		Scope:    opts.Scope,
		Index:    opts.Index,
		Total:    len(docs),
		Hashcode: digest,
	}, nil
}

func deleteSentence(doc *store.Node, chain []string, force bool) error {
	node := doc
	last := len(chain) - 1

	for i, key := range chain[:last] {
		v, ok := node.Get(key)
		if !ok || v.IsLeaf() {
			return missingKey(chain[:i+1])
		}
		node = v.Node()
	}

	v, ok := node.Get(chain[last])
	if !ok {
		return missingKey(chain)
	}
	if !v.IsLeaf() && v.Node().Len() > 0 && !force {
		return fmt.Errorf("%w: %q", kerrors.ErrDeleteObject, strings.Join(chain, "."))
	}

	node.Delete(chain[last])
	return nil
}
