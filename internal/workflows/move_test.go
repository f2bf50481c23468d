package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/pmanager/pm/internal/errors"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
		opts    MoveOptions
		want    string
		index   int
	}{
		{
			"OutOfRangeAppendsAndRemovesEmptySource",
			`{"s1":[{"k":"v"}]}`,
			MoveOptions{Scope: "s1", Index: 1, Target: "s2", TargetIndex: 5},
			`{"s2":[{"k":"v"}]}`,
			1,
		},
		{
			"InsertBeforeExisting",
			`{"a":[{"n":"1"},{"n":"2"}],"b":[{"m":"1"},{"m":"2"}]}`,
			MoveOptions{Scope: "a", Index: 2, Target: "b", TargetIndex: 2},
			`{"a":[{"n":"1"}],"b":[{"m":"1"},{"n":"2"},{"m":"2"}]}`,
			2,
		},
		{
			"WithinScopeForward",
			`{"a":[{"n":"1"},{"n":"2"},{"n":"3"}]}`,
			MoveOptions{Scope: "a", Index: 1, Target: "a", TargetIndex: 3},
			`{"a":[{"n":"2"},{"n":"3"},{"n":"1"}]}`,
			3,
		},
		{
			"WithinScopeBackward",
			`{"a":[{"n":"1"},{"n":"2"},{"n":"3"}]}`,
			MoveOptions{Scope: "a", Index: 3, Target: "a", TargetIndex: 1},
			`{"a":[{"n":"3"},{"n":"1"},{"n":"2"}]}`,
			1,
		},
		{
			"LastDocumentToItself",
			`{"a":[{"n":"1"}],"b":[{"m":"1"}]}`,
			MoveOptions{Scope: "a", Index: 1, Target: "a", TargetIndex: 2},
			`{"a":[{"n":"1"}],"b":[{"m":"1"}]}`,
			1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, repo := newTestEngine(t, tc.fixture)

			res, err := e.Move(context.Background(), tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(repo.data))
			assert.Equal(t, tc.index, res.Index)
		})
	}
}

func TestMoveFailures(t *testing.T) {
	const fixture = `{"a":[{"n":"1"}]}`

	tests := []struct {
		name    string
		opts    MoveOptions
		wantErr error
	}{
		{"MissingSource", MoveOptions{Scope: "x", Index: 1, Target: "b", TargetIndex: 1}, kerrors.ErrScopeNotFound},
		{"MissingIndex", MoveOptions{Scope: "a", Index: 2, Target: "b", TargetIndex: 1}, kerrors.ErrIndexNotFound},
		{"WildcardTarget", MoveOptions{Scope: "a", Index: 1, Target: "*", TargetIndex: 1}, kerrors.ErrInvalidScopeName},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, repo := newTestEngine(t, fixture)

			_, err := e.Move(context.Background(), tc.opts)
			assert.ErrorIs(t, err, tc.wantErr)
			unchanged(t, repo, fixture)
		})
	}
}

func TestRename(t *testing.T) {
	e, repo := newTestEngine(t, `{"a":[{"k":"1"}],"b":[{"k":"2"}],"c":[{"k":"3"}]}`)

	res, err := e.Rename(context.Background(), RenameOptions{Scope: "b", Target: "bee"})
	require.NoError(t, err)
	assert.Equal(t, `{"a":[{"k":"1"}],"bee":[{"k":"2"}],"c":[{"k":"3"}]}`, string(repo.data))
	assert.Equal(t, "bee", res.Scope)
}

func TestRenameFailures(t *testing.T) {
	const fixture = `{"a":[{"k":"1"}],"b":[{"k":"2"}]}`

	tests := []struct {
		name    string
		opts    RenameOptions
		wantErr error
	}{
		{"MissingSource", RenameOptions{Scope: "x", Target: "y"}, kerrors.ErrScopeNotFound},
		{"ExistingTarget", RenameOptions{Scope: "a", Target: "b"}, kerrors.ErrScopeExists},
		{"EmptyTarget", RenameOptions{Scope: "a", Target: ""}, kerrors.ErrInvalidScopeName},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, repo := newTestEngine(t, fixture)

			_, err := e.Rename(context.Background(), tc.opts)
			assert.ErrorIs(t, err, tc.wantErr)
			unchanged(t, repo, fixture)
		})
	}
}
