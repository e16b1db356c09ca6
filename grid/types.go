// Package grid defines the dense D-dimensional valuation array and the
// generic Valuation interface shared by every leaf and internal node
// (join.JointGrid) in a valuation chain.
package grid

import "errors"

// Sentinel errors for grid construction and indexing.
var (
	// ErrEmptyShape indicates a shape of length zero was supplied.
	ErrEmptyShape = errors.New("grid: shape must have at least one dimension")

	// ErrBadAxisSize indicates some shape[k] <= 0.
	ErrBadAxisSize = errors.New("grid: every axis size must be >= 1")

	// ErrValuesLengthMismatch indicates len(values) != product(shape).
	ErrValuesLengthMismatch = errors.New("grid: values length does not match shape product")

	// ErrIndexRank indicates a coordinate with the wrong number of axes was supplied.
	ErrIndexRank = errors.New("grid: coordinate rank does not match grid dimensionality")

	// ErrIndexOutOfRange indicates a coordinate axis fell outside [0, shape[k]).
	ErrIndexOutOfRange = errors.New("grid: coordinate out of range")

	// ErrNot1D indicates Slice1D was called on a grid with D != 1.
	ErrNot1D = errors.New("grid: operation requires a 1-dimensional grid")
)

// Number is the set of scalar types a Grid may hold: 32- or 64-bit signed
// integers, or IEEE floats.
type Number interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// Valuation is implemented by both a leaf Grid and an internal join node
// (join.JointGrid), so the chain reducer and argument-recovery walk can
// treat both uniformly.
type Valuation[T Number] interface {
	// Shape returns a copy of the per-axis sizes.
	Shape() []int

	// D returns the dimensionality (len(Shape())).
	D() int

	// At returns the value at coordinate x. x must have rank D and every
	// axis in range; otherwise an error is returned, since Valuation
	// crosses package boundaries and out-of-range indexing is a recoverable
	// condition here rather than a programmer error to panic on.
	At(x []int) (T, error)

	// Max returns the maximal value over the whole grid.
	Max() T

	// ArgMax returns a coordinate attaining Max, chosen deterministically
	// (lexicographically smallest among ties).
	ArgMax() []int
}
