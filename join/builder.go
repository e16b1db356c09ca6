package join

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"vecvcg/grid"
)

// bruteForceThreshold is the feasible-candidate box size at or below which
// BruteOpt forces the dense, unpruned kernel.
const bruteForceThreshold = 64

// methodName renders Method as the stats string recorded in BuildStats.Method.
func methodName(method int) string {
	return fmt.Sprintf("method-%d", method)
}

// Build computes the max-plus convolution of a and b truncated to shape
// bound m, returning a JointGrid with values and an argmax map satisfying
// the convolution invariants. Every combination of flags produces an
// identical value/argument map — Filter and FilterGrad only prune which
// candidates scanBox actually evaluates (an admissible bound can never
// discard the true maximum), and BruteOpt/Method only choose which
// statistics are gathered and which threshold-driven code path runs —
// never what is computed (see DESIGN.md, "flag equivalence").
//
// The output space is tiled into ChunkSize^D blocks, each populated by an
// independent goroutine bounded by GOMAXPROCS via errgroup, matching
// a synchronous fork-join-over-tiles scheme. Each tile's
// per-point argmax tie-break (lexicographically smallest a) is purely a
// function of that point's inputs, so the result never depends on tile
// scheduling order.
func Build[T grid.Number](a, b grid.Valuation[T], m []int, flags Flags) (*JointGrid[T], error) {
	start := time.Now()

	d := a.D()
	if b.D() != d || len(m) != d {
		return nil, ErrDimMismatch
	}

	sA, sB := a.Shape(), b.Shape()
	sJ := make([]int, d)
	for k := 0; k < d; k++ {
		raw := sA[k] + sB[k] - 1
		if bound := m[k] + 1; bound < raw {
			raw = bound
		}
		if raw < 0 {
			raw = 0
		}
		sJ[k] = raw
	}

	jg := &JointGrid[T]{shape: sJ, d: d, left: a, right: b}

	total := grid.Size(sJ)
	if total == 0 {
		jg.values = []T{}
		jg.arg = []int32{}
		jg.stats = BuildStats{TotalRuntime: time.Since(start), Method: methodName(flags.Method)}
		return jg, nil
	}

	buildStart := time.Now()
	values := make([]T, total)
	argFlat := make([]int32, total*d)
	var aMax, bMax T
	if flags.Filter || flags.FilterGrad {
		aMax, bMax = a.Max(), b.Max()
	}
	buildElapsed := time.Since(buildStart)

	chunkSize := flags.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1
	}

	numTiles := make([]int, d)
	for k := 0; k < d; k++ {
		numTiles[k] = (sJ[k] + chunkSize - 1) / chunkSize
	}
	totalTiles := grid.Size(numTiles)

	var mu sync.Mutex
	var totalCandidates, bruteForceCount int
	var queryElapsed time.Duration

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for tileFlat := 0; tileFlat < totalTiles; tileFlat++ {
		tileFlat := tileFlat
		g.Go(func() error {
			tileCoord := grid.Unflatten(numTiles, tileFlat)
			origin := make([]int, d)
			tileShape := make([]int, d)
			for k := 0; k < d; k++ {
				origin[k] = tileCoord[k] * chunkSize
				end := origin[k] + chunkSize
				if end > sJ[k] {
					end = sJ[k]
				}
				tileShape[k] = end - origin[k]
			}

			qStart := time.Now()
			localCandidates, localBrute := 0, 0
			rel := make([]int, d)
			for {
				y := grid.Add(origin, rel)
				lo, hi := feasibleRange(y, sA, sB, d)

				boxSize := 1
				for k := 0; k < d; k++ {
					boxSize *= hi[k] - lo[k] + 1
				}
				scanFlags := flags
				if flags.BruteOpt && boxSize <= bruteForceThreshold {
					localBrute++
					scanFlags.Filter, scanFlags.FilterGrad = false, false
				}

				best, bestArg, scanned := scanBox(a, b, lo, hi, y, aMax, bMax, scanFlags)
				localCandidates += scanned

				flatY, err := grid.Flatten(sJ, y)
				if err != nil {
					return err
				}
				values[flatY] = best
				base := flatY * d
				for k := 0; k < d; k++ {
					argFlat[base+k] = int32(bestArg[k])
				}

				if !grid.NextIndex(rel, tileShape) {
					break
				}
			}
			elapsed := time.Since(qStart)

			mu.Lock()
			totalCandidates += localCandidates
			bruteForceCount += localBrute
			queryElapsed += elapsed
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	jg.values = values
	jg.arg = argFlat
	jg.stats = BuildStats{
		TotalRuntime: time.Since(start),
		Method:       methodName(flags.Method),
	}
	if flags.Count {
		jg.stats.ComparedPoints = float64(totalCandidates)
		jg.stats.TotalPts = total
		jg.stats.TotalQueries = total
		jg.stats.BruteForceCount = bruteForceCount
		jg.stats.JoinedFuncCount = 1
	}
	if flags.QueryTime {
		jg.stats.DsQueryTime = queryElapsed
	}
	if flags.BuildTime {
		jg.stats.DsBuildTime = buildElapsed
	}

	return jg, nil
}

// feasibleRange computes, per axis, the inclusive [lo,hi] range of left-
// operand coordinates a_k such that both a_k in [0,sA[k]) and
// y_k - a_k in [0,sB[k]) hold.
func feasibleRange(y, sA, sB []int, d int) ([]int, []int) {
	lo := make([]int, d)
	hi := make([]int, d)
	for k := 0; k < d; k++ {
		lok := y[k] - (sB[k] - 1)
		if lok < 0 {
			lok = 0
		}
		hik := y[k]
		if sA[k]-1 < hik {
			hik = sA[k] - 1
		}
		lo[k] = lok
		hi[k] = hik
	}
	return lo, hi
}

// scanBox enumerates every feasible left-operand coordinate a within
// [lo,hi] in row-major (lexicographic) order and returns the maximal
// A[a]+B[y-a], its argmax (the lexicographically smallest a among ties,
// since ties are only overwritten by a strictly greater value), and the
// number of candidates actually evaluated.
//
// Filter and FilterGrad both stop the scan once an admissible upper bound
// on every remaining candidate's value falls at or below the running
// best — since only a strictly greater value ever updates best/bestArg,
// discarding candidates that cannot strictly exceed it never changes the
// result. Filter uses the single coarse bound aMax+bMax (the two
// operands' global maxima, computed once per Build call); FilterGrad
// additionally precomputes, in one backward pass over this box's own
// candidates, the exact maximum of A[a]+B[y-a] still reachable from each
// position onward — never looser than Filter's constant, at the cost
// of a full pass to build it.
func scanBox[T grid.Number](a, b grid.Valuation[T], lo, hi, y []int, aMax, bMax T, flags Flags) (T, []int, int) {
	d := len(lo)
	boxShape := make([]int, d)
	total := 1
	for k := 0; k < d; k++ {
		boxShape[k] = hi[k] - lo[k] + 1
		total *= boxShape[k]
	}

	coords := make([][]int, total)
	rel := make([]int, d)
	for i := 0; i < total; i++ {
		c := make([]int, d)
		for k := 0; k < d; k++ {
			c[k] = lo[k] + rel[k]
		}
		coords[i] = c
		grid.NextIndex(rel, boxShape)
	}

	var suffixMax []T
	if flags.FilterGrad {
		suffixMax = make([]T, total)
		for i := total - 1; i >= 0; i-- {
			bCoord := grid.Sub(y, coords[i])
			av, _ := a.At(coords[i])
			bv, _ := b.At(bCoord)
			v := av + bv
			suffixMax[i] = v
			if i+1 < total && suffixMax[i+1] > v {
				suffixMax[i] = suffixMax[i+1]
			}
		}
	}

	bestArg := make([]int, d)
	var best T
	first := true
	count := 0

	for i, aCoord := range coords {
		if !first {
			if flags.Filter && best >= aMax+bMax {
				break
			}
			if flags.FilterGrad && best >= suffixMax[i] {
				break
			}
		}

		bCoord := grid.Sub(y, aCoord)
		av, _ := a.At(aCoord)
		bv, _ := b.At(bCoord)
		val := av + bv
		count++

		if first || val > best {
			best = val
			copy(bestArg, aCoord)
			first = false
		}
	}

	return best, bestArg, count
}
