package vcg

import (
	"fmt"

	"vecvcg/grid"
	"vecvcg/mt"
	"vecvcg/statsagg"
)

// MTVCG computes the VCG outcome for N >= 2 bidders whose valuations are
// separable, concave, and 1-D per resource, using the Maille–Tuffin
// engine. separable[i][k] is bidder i's 1-D valuation over resource k
// alone; valuations[i] is the same bidder's full D-dimensional valuation,
// read only to extract private values and the social-welfare check.
//
// Leave-one-out welfare for a bidder with a nonzero bundle costs one
// full re-solve of the (N-1)-bidder multi-resource problem; unlike the
// join engine there is no amortised shortcut, since greedy assignment
// has no associative fold to reuse across removals. Payments are
// additionally clamped to [0, v_i(a_i)] to absorb floating error at the
// greedy algorithm's boundary.
func MTVCG[T grid.Number](valuations []*grid.Grid[T], separable [][]*grid.Grid[T], opts Options) (*Result[T], error) {
	n := len(valuations)
	if n < 2 {
		return nil, ErrTooFewValuations
	}
	d := len(opts.MaxAlloc)
	for i, v := range valuations {
		if v.D() != d {
			return nil, fmt.Errorf("%w: player %d has D=%d, want %d", ErrDimensionMismatch, i, v.D(), d)
		}
	}
	if len(separable) != n {
		return nil, fmt.Errorf("%w: %d separable rows, want %d", ErrDimensionMismatch, len(separable), n)
	}

	res, err := mt.SolveMultiResource(valuations, separable, opts.MaxAlloc)
	if err != nil {
		return nil, err
	}

	var valuesSum T
	for _, v := range res.PrivateValues {
		valuesSum += v
	}
	if !approxEqual(valuesSum, res.SW) {
		return nil, fmt.Errorf("%w: sw=%v sum(private_values)=%v", ErrWelfareMismatch, res.SW, valuesSum)
	}
	var separableSum T
	for i, row := range separable {
		for k, g := range row {
			v, err := g.At([]int{res.Allocations[i][k]})
			if err != nil {
				return nil, fmt.Errorf("vcg: player %d: %w", i, err)
			}
			separableSum += v
		}
	}
	if !approxEqual(separableSum, res.SW) {
		return nil, fmt.Errorf("%w: sw=%v sum(separable values)=%v", ErrWelfareMismatch, res.SW, separableSum)
	}

	result := &Result[T]{
		SW:            res.SW,
		UsedResources: res.UsedResources,
		Allocations:   res.Allocations,
		PrivateValues: res.PrivateValues,
	}

	if !opts.CalcPayments {
		result.Stats = res.Stats
		return result, nil
	}

	stats := []statsagg.Record{res.Stats}
	payments := make([]T, n)
	for i := 0; i < n; i++ {
		if isZeroBundle(res.Allocations[i]) {
			payments[i] = 0
			continue
		}

		subValuations := without(valuations, i)
		subSeparable := without(separable, i)
		subRes, err := mt.SolveMultiResource(subValuations, subSeparable, opts.MaxAlloc)
		if err != nil {
			return nil, err
		}
		stats = append(stats, subRes.Stats)

		payment := subRes.SW - (res.SW - res.PrivateValues[i])
		if payment < 0 {
			payment = 0
		}
		if payment > res.PrivateValues[i] {
			payment = res.PrivateValues[i]
		}
		if !validPayment(payment, res.PrivateValues[i]) {
			return nil, fmt.Errorf("%w: player %d payment=%v value=%v", ErrPaymentBounds, i, payment, res.PrivateValues[i])
		}
		payments[i] = payment
	}
	result.Payments = payments
	result.Stats = statsagg.Aggregate(stats...)

	return result, nil
}

// without returns a copy of s with index i removed.
func without[S any](s []S, i int) []S {
	out := make([]S, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out
}
