package mt

import (
	"fmt"

	"vecvcg/grid"
)

// Bids computes the marginal-bid sequence of a 1-D concave valuation v:
// bids[k] = v[k+1] - v[k] for k in [0, len(v)-1). Concavity requires this
// sequence to be non-increasing; Bids validates that and returns
// ErrNotConcave (naming the offending index) otherwise, so callers never
// feed a non-concave valuation into the greedy solver; concavity is
// checked up front, before the main call, the same way an options struct's
// Validate() checks option combinations before a solver's main loop runs.
func Bids[T grid.Number](v *grid.Grid[T]) ([]T, error) {
	values, err := v.Slice1D()
	if err != nil {
		return nil, err
	}
	if len(values) < 1 {
		return nil, grid.ErrBadAxisSize
	}

	bids := make([]T, len(values)-1)
	for k := range bids {
		bids[k] = values[k+1] - values[k]
	}
	for k := 1; k < len(bids); k++ {
		if bids[k] > bids[k-1] {
			return nil, fmt.Errorf("%w: at index %d (bid %v > previous bid %v)", ErrNotConcave, k, bids[k], bids[k-1])
		}
	}
	return bids, nil
}
