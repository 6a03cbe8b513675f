package cid

import (
	"context"
	"fmt"

	"github.com/containerd/errdefs"

	"github.com/rtibuludji/nitro-enclave-cvv/internal/diag"
)

// Result is the outcome of one provider.
type Result struct {
	Strategy string
	CID      uint32
	Err      error
}

// Discover runs each provider in turn. It never stops early: every provider
// gets a result.
func Discover(ctx context.Context, providers []Provider) []Result {
	results := make([]Result, 0, len(providers))
	for _, p := range providers {
		cid, err := p.LocalCID(ctx)
		results = append(results, Result{Strategy: p.Name(), CID: cid, Err: err})
	}
	return results
}

// Agree returns the CID reported by every successful result. It fails when no
// result succeeded or when two successful results differ.
func Agree(results []Result) (uint32, error) {
	var first *Result
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		if first == nil {
			first = r
			continue
		}
		if r.CID != first.CID {
			return 0, diag.Op("compare CID", fmt.Errorf("%s reports %d but %s reports %d: %w",
				first.Strategy, first.CID, r.Strategy, r.CID, errdefs.ErrConflict))
		}
	}
	if first == nil {
		return 0, diag.Op("discover CID", fmt.Errorf("no strategy succeeded: %w", errdefs.ErrUnavailable))
	}
	return first.CID, nil
}
