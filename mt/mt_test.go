package mt_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vecvcg/grid"
	"vecvcg/mt"
)

func mustGrid(t *testing.T, shape []int, values []int64) *grid.Grid[int64] {
	t.Helper()
	g, err := grid.New(shape, values)
	require.NoError(t, err)
	return g
}

func TestBids_ConcaveValuationSucceeds(t *testing.T) {
	v := mustGrid(t, []int{5}, []int64{0, 5, 8, 9, 9}) // diffs: 5,3,1,0 (non-increasing)
	bids, err := mt.Bids(v)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 3, 1, 0}, bids)
}

func TestBids_NonConcaveRejected(t *testing.T) {
	v := mustGrid(t, []int{4}, []int64{0, 1, 4, 5}) // diffs: 1,3,1 -- 3>1 violates concavity
	_, err := mt.Bids(v)
	assert.ErrorIs(t, err, mt.ErrNotConcave)
}

func TestBidsForPlayers_NamesOffendingPlayer(t *testing.T) {
	good := mustGrid(t, []int{3}, []int64{0, 2, 3})
	bad := mustGrid(t, []int{3}, []int64{0, 1, 5}) // diffs: 1,4 -- increasing

	_, err := mt.BidsForPlayers([]*grid.Grid[int64]{good, bad})
	require.Error(t, err)
	var perr *mt.PlayerError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Player)
	assert.ErrorIs(t, err, mt.ErrNotConcave)
}

func TestSolve_GreedyAssignsToHighestMarginalBid(t *testing.T) {
	// Player 0: bids 5,3,1 ; Player 1: bids 4,4,4
	bids := [][]int64{{5, 3, 1}, {4, 4, 4}}
	alloc, stats := mt.Solve(bids, 4)

	// Greedy order: 5(p0), then p1's 4,4,4 all beat p0's next bid 3, so
	// the four units go 1 to player 0 and 3 to player 1.
	assert.Equal(t, 4, alloc[0]+alloc[1])
	assert.Equal(t, 1, alloc[0])
	assert.Equal(t, 3, alloc[1])
	assert.Equal(t, 4, stats.UnitsAwarded)
	assert.Equal(t, 2, stats.PlayerCount)
}

func TestSolve_CapBelowTotalBidsStopsEarly(t *testing.T) {
	bids := [][]int64{{5, 3}, {4, 2}}
	alloc, stats := mt.Solve(bids, 1)
	assert.Equal(t, 1, alloc[0]+alloc[1])
	assert.Equal(t, 1, stats.UnitsAwarded)
	// The single awarded unit must be the globally largest bid (5, player 0).
	assert.Equal(t, 1, alloc[0])
	assert.Equal(t, 0, alloc[1])
}

func TestSolve_TiesBreakByAscendingPlayerIndex(t *testing.T) {
	bids := [][]int64{{5}, {5}, {5}}
	alloc, stats := mt.Solve(bids, 1)
	assert.Equal(t, 1, alloc[0])
	assert.Equal(t, 0, alloc[1])
	assert.Equal(t, 0, alloc[2])
	assert.Equal(t, 1, stats.UnitsAwarded)
}

func TestSolveMultiResource_ComposesBundlesCoordinatewise(t *testing.T) {
	// Two players, two resources, each separable into concave 1-D forms.
	p0r0 := mustGrid(t, []int{3}, []int64{0, 5, 8})
	p0r1 := mustGrid(t, []int{2}, []int64{0, 2})
	p1r0 := mustGrid(t, []int{3}, []int64{0, 3, 5})
	p1r1 := mustGrid(t, []int{2}, []int64{0, 6})

	full0 := mustGrid(t, []int{3, 2}, []int64{0, 2, 5, 7, 8, 10})
	full1 := mustGrid(t, []int{3, 2}, []int64{0, 6, 3, 9, 5, 11})

	separable := [][]*grid.Grid[int64]{{p0r0, p0r1}, {p1r0, p1r1}}
	valuations := []*grid.Grid[int64]{full0, full1}

	res, err := mt.SolveMultiResource(valuations, separable, []int{2, 1})
	require.NoError(t, err)
	assert.Len(t, res.Allocations, 2)
	for k, cap := range []int{2, 1} {
		used := 0
		for _, a := range res.Allocations {
			used += a[k]
		}
		assert.Equal(t, res.UsedResources[k], used)
		assert.LessOrEqual(t, used, cap)
	}
}

func TestSolveMultiResource_TooFewPlayers(t *testing.T) {
	_, err := mt.SolveMultiResource(nil, nil, []int{1})
	assert.ErrorIs(t, err, mt.ErrTooFewPlayers)
}

func TestSolveMultiResource_SinglePlayerSucceeds(t *testing.T) {
	// A single remaining bidder is a valid call (the VCG driver's
	// leave-one-out re-solve for N=2 hits exactly this case).
	p := mustGrid(t, []int{3}, []int64{0, 5, 8})
	full := mustGrid(t, []int{3}, []int64{0, 5, 8})
	res, err := mt.SolveMultiResource([]*grid.Grid[int64]{full}, [][]*grid.Grid[int64]{{p}}, []int{2})
	require.NoError(t, err)
	assert.Equal(t, int64(8), res.SW)
	assert.Equal(t, []int{2}, res.Allocations[0])
}
