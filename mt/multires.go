package mt

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"vecvcg/grid"
	"vecvcg/statsagg"
)

// Result is the output of a multi-resource Maille–Tuffin solve.
type Result[T grid.Number] struct {
	Allocations   [][]int
	PrivateValues []T
	SW            T
	UsedResources []int
	Stats         statsagg.Record
}

// SolveMultiResource implements the multi-resource
// composition: given each bidder's D-dimensional valuation (for reading
// private values) alongside its separable per-dimension form (a D-tuple
// of 1-D valuations), it solves each resource dimension independently —
// concurrently, since dimensions are independent — and composes the
// allocations coordinate-wise. The caller warrants separability; it is
// not checked here: private values and SW are read from the full
// valuations at the composed bundles (vcg.MTVCG compares them against
// the separable forms).
func SolveMultiResource[T grid.Number](valuations []*grid.Grid[T], separable [][]*grid.Grid[T], maxAlloc []int) (*Result[T], error) {
	n := len(valuations)
	if n < 1 {
		return nil, ErrTooFewPlayers
	}
	d := len(maxAlloc)
	for i, row := range separable {
		if len(row) != d {
			return nil, fmt.Errorf("%w: player %d has %d separable valuations, want %d", ErrDimensionMismatch, i, len(row), d)
		}
	}

	perDimAlloc := make([][]int, d)
	perDimStats := make([]statsagg.Record, d)

	g, _ := errgroup.WithContext(context.Background())
	for k := 0; k < d; k++ {
		k := k
		g.Go(func() error {
			dimBids := make([]*grid.Grid[T], n)
			for i := range separable {
				dimBids[i] = separable[i][k]
			}
			bids, err := BidsForPlayers(dimBids)
			if err != nil {
				return err
			}
			alloc, stats := Solve(bids, maxAlloc[k])
			perDimAlloc[k] = alloc
			perDimStats[k] = stats.Record()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bundles := make([][]int, n)
	usedResources := make([]int, d)
	for i := 0; i < n; i++ {
		bundles[i] = make([]int, d)
		for k := 0; k < d; k++ {
			bundles[i][k] = perDimAlloc[k][i]
			usedResources[k] += perDimAlloc[k][i]
		}
	}
	for k := 0; k < d; k++ {
		if usedResources[k] > maxAlloc[k] {
			return nil, fmt.Errorf("%w: axis %d used %d > max %d", ErrOverAllocation, k, usedResources[k], maxAlloc[k])
		}
	}

	privateValues := make([]T, n)
	var sw T
	for i := 0; i < n; i++ {
		v, err := valuations[i].At(bundles[i])
		if err != nil {
			return nil, fmt.Errorf("mt: player %d: %w", i, err)
		}
		privateValues[i] = v
		sw += v
	}

	return &Result[T]{
		Allocations:   bundles,
		PrivateValues: privateValues,
		SW:            sw,
		UsedResources: usedResources,
		Stats:         statsagg.Aggregate(perDimStats...),
	}, nil
}
