package workflows

import (
	"context"
	"fmt"
	"slices"

	"github.com/pmanager/pm/internal/audit"
	kerrors "github.com/pmanager/pm/internal/errors"
)

// MoveOptions configures a document move.
type MoveOptions struct {
	Scope string
	Index int

	// Target is created when missing. A TargetIndex past the end appends.
	Target      string
	TargetIndex int
}

// Move takes a document out of its scope and inserts it before the
// document at TargetIndex in Target. The source scope is removed when the
// move leaves it empty.
func (e *Engine) Move(ctx context.Context, opts MoveOptions) (*Result, error) {
	if err := checkScopeName(opts.Target); err != nil {
		return nil, err
	}

	s, err := e.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	docs, pos, err := document(s, opts.Scope, opts.Index)
	if err != nil {
		return nil, err
	}

	doc := docs[pos]
	s.SetScope(opts.Scope, slices.Delete(slices.Clone(docs), pos, pos+1))

	// Re-read after the removal so a move within one scope sees the
	// shortened list.
	target, _ := s.Scope(opts.Target)
	target = slices.Clone(target)
	at := opts.TargetIndex - 1
	if at >= 0 && at < len(target) {
		target = slices.Insert(target, at, doc)
	} else {
		target = append(target, doc)
		at = len(target) - 1
	}
	s.SetScope(opts.Target, target)

	if rest, _ := s.Scope(opts.Scope); len(rest) == 0 {
		s.DeleteScope(opts.Scope)
	}

	digest, err := e.commit(ctx, s, audit.NewEntry("move"))
	if err != nil {
		return nil, err
	}

	e.Log.Infof("Moved document %d of %q to %q at %d", opts.Index, opts.Scope, opts.Target, at+1)
	return &Result{
		Message:  fmt.Sprintf("Moved to %s", describeDocument(opts.Target, at+1, len(target))),
		Scope:    opts.Target,
		Index:    at + 1,
		Total:    len(target),
		Hashcode: digest,
	}, nil
}

// RenameOptions configures a scope rename.
type RenameOptions struct {
	Scope  string
	Target string
}

// Rename gives a scope a new name, keeping its place in the store order.
func (e *Engine) Rename(ctx context.Context, opts RenameOptions) (*Result, error) {
	if err := checkScopeName(opts.Target); err != nil {
		return nil, err
	}

	s, err := e.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	if !s.HasScope(opts.Scope) {
		return nil, fmt.Errorf("%w: source scope %q", kerrors.ErrScopeNotFound, opts.Scope)
	}
	if s.HasScope(opts.Target) {
		return nil, fmt.Errorf("%w: target scope %q", kerrors.ErrScopeExists, opts.Target)
	}
	s.RenameScope(opts.Scope, opts.Target)

	digest, err := e.commit(ctx, s, audit.NewEntry("rename"))
	if err != nil {
		return nil, err
	}

	docs, _ := s.Scope(opts.Target)
	e.Log.Infof("Renamed scope %q to %q", opts.Scope, opts.Target)
	return &Result{
		Message:  fmt.Sprintf("Renamed scope %q to %q", opts.Scope, opts.Target),
		Scope:    opts.Target,
		Total:    len(docs),
		Hashcode: digest,
	}, nil
}
