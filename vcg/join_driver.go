package vcg

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"vecvcg/chain"
	"vecvcg/grid"
	"vecvcg/join"
	"vecvcg/statsagg"
)

// JoinVCG computes the VCG outcome for N >= 2 bidders with arbitrary
// (not necessarily concave) D-dimensional valuations, using the general
// join (max-plus convolution) engine.
//
// Leave-one-out welfare is amortised as follows: the forward chain
// F (fold left-to-right) and reverse chain R (fold right-to-left) are
// each built once; W_{-i}(M) for an interior bidder costs one extra
// build of F_{i-1} ⊕ R_{i+1}, and the two endpoints reuse an existing
// chain link with no extra build at all.
func JoinVCG[T grid.Number](valuations []*grid.Grid[T], opts Options) (*Result[T], error) {
	n := len(valuations)
	if n < 2 {
		return nil, ErrTooFewValuations
	}
	d := valuations[0].D()
	for i, v := range valuations {
		if v.D() != d {
			return nil, fmt.Errorf("%w: player %d has D=%d, want %d", ErrDimensionMismatch, i, v.D(), d)
		}
	}
	if len(opts.MaxAlloc) != d {
		return nil, ErrDimensionMismatch
	}

	vals := make([]grid.Valuation[T], n)
	for i, v := range valuations {
		vals[i] = v
	}

	order := identity(n)
	if opts.ChangeJoinOrder {
		order, _ = chain.Reorder(vals)
	}
	valsOrdered := chain.Apply(vals, order)

	var fchain, rchain []*join.JointGrid[T]
	var forward, reverseForward *join.JointGrid[T]

	if opts.CalcPayments {
		reversed := make([]grid.Valuation[T], n)
		for i, v := range valsOrdered {
			reversed[n-1-i] = v
		}
		g, _ := errgroup.WithContext(context.Background())
		g.Go(func() error {
			c, err := chain.Reduce(valsOrdered, opts.MaxAlloc, opts.JoinFlags)
			if err != nil {
				return err
			}
			fchain = c
			return nil
		})
		g.Go(func() error {
			c, err := chain.Reduce(reversed, opts.MaxAlloc, opts.JoinFlags)
			if err != nil {
				return err
			}
			rchain = c
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		reverseForward = rchain[len(rchain)-1]
	} else {
		c, err := chain.Reduce(valsOrdered, opts.MaxAlloc, opts.JoinFlags)
		if err != nil {
			return nil, err
		}
		fchain = c
	}

	forward = fchain[len(fchain)-1]
	swArgmax := forward.ArgMax()
	swMax := forward.Max()

	argsOrdered, err := forward.RecoverArgs(swArgmax)
	if err != nil {
		return nil, err
	}
	allocations := make([][]int, n)
	for pos, origIdx := range order {
		allocations[origIdx] = argsOrdered[pos]
	}

	totalAlloc := sumAllocations(allocations, d)
	if !grid.Equal(totalAlloc, swArgmax) {
		return nil, fmt.Errorf("%w: got %v, want %v", ErrAllocationMismatch, totalAlloc, swArgmax)
	}

	privateValues := make([]T, n)
	var valuesSum T
	for i, v := range valuations {
		pv, err := v.At(allocations[i])
		if err != nil {
			return nil, fmt.Errorf("vcg: player %d: %w", i, err)
		}
		privateValues[i] = pv
		valuesSum += pv
	}
	if !approxEqual(valuesSum, swMax) {
		return nil, fmt.Errorf("%w: sw=%v sum(private_values)=%v", ErrWelfareMismatch, swMax, valuesSum)
	}

	stats := []statsagg.Record{}
	for _, jg := range fchain {
		stats = append(stats, jg.Stats().Record())
	}

	result := &Result[T]{
		SW:            swMax,
		UsedResources: swArgmax,
		Allocations:   allocations,
		PrivateValues: privateValues,
	}

	if !opts.CalcPayments {
		result.Stats = statsagg.Aggregate(stats...)
		return result, nil
	}

	for _, jg := range rchain {
		stats = append(stats, jg.Stats().Record())
	}

	revSW := reverseForward.Max()
	if !approxEqual(swMax, revSW) {
		return nil, fmt.Errorf("%w: sw=%v sw_reverse=%v", ErrOrderDependence, swMax, revSW)
	}

	forwardGrid, err := toGrid(forward)
	if err != nil {
		return nil, err
	}
	reverseGrid, err := toGrid(reverseForward)
	if err != nil {
		return nil, err
	}
	result.ForwardGrid = forwardGrid
	result.ReverseGrid = reverseGrid
	result.OrderIndifferent = gridsApproxEqual(forwardGrid, reverseGrid)
	if !result.OrderIndifferent {
		return nil, fmt.Errorf("%w: forward and reverse joint grids disagree elementwise", ErrOrderDependence)
	}

	foldPrefix := func(p int) grid.Valuation[T] {
		if p == 0 {
			return valsOrdered[0]
		}
		return fchain[p-1]
	}
	foldSuffix := func(p int) grid.Valuation[T] {
		if p == n-1 {
			return valsOrdered[n-1]
		}
		return rchain[n-p-2]
	}

	orderedPrivateValues := make([]T, n)
	for pos, origIdx := range order {
		orderedPrivateValues[pos] = privateValues[origIdx]
	}

	payments := make([]T, n)
	for p := 0; p < n; p++ {
		origIdx := order[p]
		if isZeroBundle(allocations[origIdx]) {
			payments[origIdx] = 0
			continue
		}

		var wMinusI T
		switch {
		case p == 0:
			wMinusI = foldSuffix(1).Max()
		case p == n-1:
			wMinusI = foldPrefix(n - 2).Max()
		default:
			jv, err := join.Build(foldPrefix(p-1), foldSuffix(p+1), opts.MaxAlloc, opts.JoinFlags)
			if err != nil {
				return nil, err
			}
			stats = append(stats, jv.Stats().Record())
			wMinusI = jv.Max()
		}

		payment := wMinusI - (swMax - orderedPrivateValues[p])
		if !validPayment(payment, orderedPrivateValues[p]) {
			return nil, fmt.Errorf("%w: player %d payment=%v value=%v", ErrPaymentBounds, origIdx, payment, orderedPrivateValues[p])
		}
		payments[origIdx] = payment
	}
	result.Payments = payments
	result.Stats = statsagg.Aggregate(stats...)

	return result, nil
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func sumAllocations(allocations [][]int, d int) []int {
	out := make([]int, d)
	for _, a := range allocations {
		for k := 0; k < d; k++ {
			out[k] += a[k]
		}
	}
	return out
}

func isZeroBundle(a []int) bool {
	for _, x := range a {
		if x != 0 {
			return false
		}
	}
	return true
}

func validPayment[T grid.Number](payment, value T) bool {
	return float64(payment) >= -eps && float64(payment) <= float64(value)+eps
}

func toGrid[T grid.Number](jg *join.JointGrid[T]) (*grid.Grid[T], error) {
	return grid.New(jg.Shape(), jg.ValuesCopy())
}

func gridsApproxEqual[T grid.Number](a, b *grid.Grid[T]) bool {
	sa, sb := a.Shape(), b.Shape()
	if !grid.Equal(sa, sb) {
		return false
	}
	total := grid.Size(sa)
	x := make([]int, len(sa))
	for i := 0; i < total; i++ {
		va, _ := a.At(x)
		vb, _ := b.At(x)
		if !approxEqual(va, vb) {
			return false
		}
		if i < total-1 {
			grid.NextIndex(x, sa)
		}
	}
	return true
}
