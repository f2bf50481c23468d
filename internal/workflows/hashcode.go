package workflows

import (
	"context"
	"math/big"
)

// Hashcode returns the digest of the current store in Result.Hashcode.
func (e *Engine) Hashcode(ctx context.Context) (*Result, error) {
	s, err := e.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{Hashcode: Digest(s)}, nil
}

var shortCodeModulus = big.NewInt(1_000_000)

// ShortCode reduces a hex digest to a number below one million. The digest
// is first rounded to a float64, the way earlier releases read it, so short
// codes stay comparable across versions.
func ShortCode(digest string) (string, bool) {
	n, ok := new(big.Int).SetString(digest, 16)
	if !ok {
		return "", false
	}

	f := new(big.Float).SetPrec(53).SetMode(big.ToNearestEven).SetInt(n)
	rounded, _ := f.Int(nil)
	return rounded.Mod(rounded, shortCodeModulus).String(), true
}
