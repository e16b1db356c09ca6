package vcg

import (
	"vecvcg/grid"
	"vecvcg/statsagg"
)

// eps is the floating tolerance used for the consistency checks (sw vs.
// sum of private values, forward vs. reverse chain welfare, payment
// bounds).
const eps = 1e-6

// Result is the output record of a VCG solve: optimal welfare, the
// argmax allocation point, per-bidder bundles and private values,
// payments (nil unless requested), aggregated statistics, and — for the
// join engine only — the forward/reverse value grids and the
// order-indifference diagnostic.
type Result[T grid.Number] struct {
	SW            T
	UsedResources []int
	Allocations   [][]int
	PrivateValues []T
	Payments      []T
	Stats         statsagg.Record

	// Join-engine-only diagnostics; zero values under the MT engine.
	ForwardGrid      *grid.Grid[T]
	ReverseGrid      *grid.Grid[T]
	OrderIndifferent bool
}

// approxEqual reports whether a and b agree within eps, generically over
// both integer and floating scalar types (integers compare exactly since
// eps < 1).
func approxEqual[T grid.Number](a, b T) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return float64(diff) <= eps
}
