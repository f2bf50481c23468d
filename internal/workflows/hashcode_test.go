package workflows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmanager/pm/internal/store"
)

func TestDigestIgnoresFormatting(t *testing.T) {
	a, err := store.Parse([]byte(`{"s":[{"k":"v","o":{"x":"y"}}]}`))
	require.NoError(t, err)
	b, err := store.Parse([]byte("{\n  \"s\": [ { \"k\": \"v\", \"o\": { \"x\": \"y\" } } ]\n}"))
	require.NoError(t, err)
	c, err := store.Parse([]byte(`{"s":[{"o":{"x":"y"},"k":"v"}]}`))
	require.NoError(t, err)

	assert.Equal(t, Digest(a), Digest(b))
	assert.NotEqual(t, Digest(a), Digest(c), "key order is part of the content")
	assert.Len(t, Digest(a), 64)
}

func TestHashcodeMatchesMutationDigest(t *testing.T) {
	e, _ := newTestEngine(t, `{"s":[{"k":"v"}]}`)
	ctx := context.Background()

	set, err := e.Set(ctx, SetOptions{Scope: "s", Index: 1, KeyChain: []string{"k"}, Value: "w"})
	require.NoError(t, err)

	res, err := e.Hashcode(ctx)
	require.NoError(t, err)
	assert.Equal(t, set.Hashcode, res.Hashcode)
}

func TestShortCode(t *testing.T) {
	tests := []struct {
		digest string
		want   string
	}{
		{"01", "1"},
		{"f4240", "0"},
		{"f4241", "1"},
		{"00000000000000000000000000000000000000000000000000000000000003e7", "999"},
	}

	for _, tc := range tests {
		got, ok := ShortCode(tc.digest)
		require.True(t, ok, tc.digest)
		assert.Equal(t, tc.want, got, tc.digest)
	}

	_, ok := ShortCode("not hex")
	assert.False(t, ok)
}

func TestShortCodeRoundsLikeFloat(t *testing.T) {
	// 2^53 + 1 is not representable and rounds down to 2^53.
	got, ok := ShortCode("20000000000001")
	require.True(t, ok)
	assert.Equal(t, "740992", got)
}
