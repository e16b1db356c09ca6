package chain

import (
	"sort"

	"vecvcg/grid"
	"vecvcg/join"
)

// Reorder implements the zig-zag ordering heuristic: sort valuations by
// their scalar maxima ascending, then place the largest-max valuation
// first, alternate small/large extremes through the middle, and put the
// second-largest last. It returns the permutation to apply (order[i] is
// the original index placed at position i) and its inverse
// (inverse[originalIndex] is the position that valuation ended up at),
// so callers can restore input order on allocations and payments.
//
// This is one design point among several valid deterministic reorderings;
// any ordering that demonstrably reduces peak intermediate size is an
// acceptable substitute.
func Reorder[T grid.Number](grids []grid.Valuation[T]) (order, inverse []int) {
	n := len(grids)
	byMax := make([]int, n)
	for i := range byMax {
		byMax[i] = i
	}
	// Ascending sort by Max(), stable so ties keep original relative order
	// (keeps the heuristic itself deterministic).
	sort.SliceStable(byMax, func(i, j int) bool {
		return grids[byMax[i]].Max() < grids[byMax[j]].Max()
	})

	order = zigzag(byMax)

	inverse = make([]int, n)
	for pos, orig := range order {
		inverse[orig] = pos
	}
	return order, inverse
}

// zigzag reproduces, for ascending-sorted index list s, the interleave
// order = [s[-1], s[:-2:2]..., reverse(s[1:-2:2]), s[-2]].
func zigzag(s []int) []int {
	n := len(s)
	if n == 1 {
		return []int{s[0]}
	}

	last := s[n-1]
	secondLast := s[n-2]

	var part1 []int
	for i := 0; i < n-2; i += 2 {
		part1 = append(part1, s[i])
	}
	var part2 []int
	for i := 1; i < n-2; i += 2 {
		part2 = append(part2, s[i])
	}
	for l, r := 0, len(part2)-1; l < r; l, r = l+1, r-1 {
		part2[l], part2[r] = part2[r], part2[l]
	}

	order := make([]int, 0, n)
	order = append(order, last)
	order = append(order, part1...)
	order = append(order, part2...)
	order = append(order, secondLast)
	return order
}

// Apply returns grids permuted by order: result[i] = grids[order[i]].
func Apply[T grid.Number](grids []grid.Valuation[T], order []int) []grid.Valuation[T] {
	out := make([]grid.Valuation[T], len(order))
	for i, orig := range order {
		out[i] = grids[orig]
	}
	return out
}

// ReduceOrdered applies Reorder, folds the reordered valuations via
// Reduce, and returns the chain together with the inverse permutation
// needed to restore caller-visible (original) bidder indices.
func ReduceOrdered[T grid.Number](grids []grid.Valuation[T], m []int, flags join.Flags) (chain []*join.JointGrid[T], order, inverse []int, err error) {
	order, inverse = Reorder(grids)
	reordered := Apply(grids, order)
	chain, err = Reduce(reordered, m, flags)
	return chain, order, inverse, err
}
