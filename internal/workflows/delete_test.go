package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/pmanager/pm/internal/errors"
)

func TestDeleteScenario(t *testing.T) {
	const seed = `{"demo":[{"a":{"b":"v1"}}]}`
	e, repo := newTestEngine(t, seed)
	ctx := context.Background()

	res, err := e.Get(ctx, GetOptions{Scope: "demo", Index: 1, KeyChain: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{`"v1"`}, values(t, res))

	_, err = e.Set(ctx, SetOptions{Scope: "demo", Index: 1, KeyChain: []string{"a", "b"}, Value: "v2"})
	require.NoError(t, err)
	res, err = e.Get(ctx, GetOptions{Scope: "demo", Index: 1, KeyChain: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{`"v2"`}, values(t, res))

	before := string(repo.data)
	_, err = e.Delete(ctx, DeleteOptions{Scope: "demo", Index: 1, KeyChain: []string{"a"}})
	assert.ErrorIs(t, err, kerrors.ErrDeleteObject)
	assert.ErrorIs(t, err, kerrors.ErrForbidden)
	assert.Equal(t, before, string(repo.data))

	res, err = e.Delete(ctx, DeleteOptions{Scope: "demo", Index: 1, KeyChain: []string{"a"}, Force: true})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(repo.data))
	assert.Contains(t, res.Message, `scope "demo"`)
}

func TestDelete(t *testing.T) {
	const fixture = `{"s":[{"k":"v","o":{},"n":{"x":"y"}},{"only":"one"}],"t":[{"k":"v"}]}`

	tests := []struct {
		name string
		opts DeleteOptions
		want string
	}{
		{
			"Leaf",
			DeleteOptions{Scope: "s", Index: 1, KeyChain: []string{"k"}},
			`{"s":[{"o":{},"n":{"x":"y"}},{"only":"one"}],"t":[{"k":"v"}]}`,
		},
		{
			"EmptyObjectWithoutForce",
			DeleteOptions{Scope: "s", Index: 1, KeyChain: []string{"o"}},
			`{"s":[{"k":"v","n":{"x":"y"}},{"only":"one"}],"t":[{"k":"v"}]}`,
		},
		{
			"NestedLeafKeepsEmptyParent",
			DeleteOptions{Scope: "s", Index: 1, KeyChain: []string{"n", "x"}},
			`{"s":[{"k":"v","o":{},"n":{}},{"only":"one"}],"t":[{"k":"v"}]}`,
		},
		{
			"LastSentenceRemovesDocument",
			DeleteOptions{Scope: "s", Index: 2, KeyChain: []string{"only"}},
			`{"s":[{"k":"v","o":{},"n":{"x":"y"}}],"t":[{"k":"v"}]}`,
		},
		{
			"WholeDocumentWithForce",
			DeleteOptions{Scope: "s", Index: 1, Force: true},
			`{"s":[{"only":"one"}],"t":[{"k":"v"}]}`,
		},
		{
			"LastDocumentRemovesScope",
			DeleteOptions{Scope: "t", Index: 1, Force: true},
			`{"s":[{"k":"v","o":{},"n":{"x":"y"}},{"only":"one"}]}`,
		},
		{
			"ForceOnKeyKeepsNonEmptyDocument",
			DeleteOptions{Scope: "s", Index: 1, KeyChain: []string{"n"}, Force: true},
			`{"s":[{"k":"v","o":{}},{"only":"one"}],"t":[{"k":"v"}]}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, repo := newTestEngine(t, fixture)

			_, err := e.Delete(context.Background(), tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(repo.data))
		})
	}
}

func TestDeleteFailuresLeaveStoreUnchanged(t *testing.T) {
	const fixture = `{"s":[{"k":"v","n":{"x":"y"}}]}`

	tests := []struct {
		name    string
		opts    DeleteOptions
		wantErr error
	}{
		{"MissingScope", DeleteOptions{Scope: "nope", Index: 1, KeyChain: []string{"k"}}, kerrors.ErrScopeNotFound},
		{"FuzzyNameIsNotEnough", DeleteOptions{Scope: "S", Index: 1, KeyChain: []string{"k"}}, kerrors.ErrScopeNotFound},
		{"MissingIndex", DeleteOptions{Scope: "s", Index: 2, KeyChain: []string{"k"}}, kerrors.ErrIndexNotFound},
		{"ZeroIndex", DeleteOptions{Scope: "s", Index: 0, KeyChain: []string{"k"}}, kerrors.ErrIndexNotFound},
		{"DocumentWithoutForce", DeleteOptions{Scope: "s", Index: 1}, kerrors.ErrDeleteDocument},
		{"NonEmptyObjectWithoutForce", DeleteOptions{Scope: "s", Index: 1, KeyChain: []string{"n"}}, kerrors.ErrDeleteObject},
		{"MissingIntermediate", DeleteOptions{Scope: "s", Index: 1, KeyChain: []string{"z", "x"}}, kerrors.ErrKeyNotFound},
		{"MissingFinal", DeleteOptions{Scope: "s", Index: 1, KeyChain: []string{"n", "z"}}, kerrors.ErrKeyNotFound},
		{"ThroughLeaf", DeleteOptions{Scope: "s", Index: 1, KeyChain: []string{"k", "x"}}, kerrors.ErrKeyNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, repo := newTestEngine(t, fixture)

			_, err := e.Delete(context.Background(), tc.opts)
			assert.ErrorIs(t, err, tc.wantErr)
			unchanged(t, repo, fixture)
		})
	}
}
