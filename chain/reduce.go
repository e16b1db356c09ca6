package chain

import (
	"vecvcg/grid"
	"vecvcg/join"
)

// Reduce folds grids left-to-right through the join builder: J_1 =
// Build(grids[0], grids[1], m); J_i = Build(J_{i-1}, grids[i], m). It
// returns the full list [J_1, ..., J_{N-1}]; the last element is the
// grand-coalition optimum, and every intermediate is retained because the
// VCG driver's leave-one-out amortisation consumes them.
//
// Builds happen strictly sequentially: J_i genuinely depends on J_{i-1},
// so this call is not internally parallelized (only a single build's own
// tile fan-out is, inside join.Build).
func Reduce[T grid.Number](grids []grid.Valuation[T], m []int, flags join.Flags) ([]*join.JointGrid[T], error) {
	if len(grids) < 2 {
		return nil, ErrTooFewValuations
	}

	chain := make([]*join.JointGrid[T], 0, len(grids)-1)
	var acc grid.Valuation[T] = grids[0]
	for _, g := range grids[1:] {
		jg, err := join.Build(acc, g, m, flags)
		if err != nil {
			return nil, err
		}
		chain = append(chain, jg)
		acc = jg
	}
	return chain, nil
}
