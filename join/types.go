// Package join implements the Joint-Function Builder: max-plus (tropical)
// convolution of two valuations, with argmax bookkeeping sufficient to
// recover individual bidder allocations. This is the computationally
// dominant subsystem of the solver.
package join

import (
	"errors"
	"time"
)

// Sentinel errors for join construction and lookups.
var (
	// ErrDimMismatch indicates the two operand valuations have different D,
	// or the shape bound m has the wrong arity.
	ErrDimMismatch = errors.New("join: operand dimensionality mismatch")

	// ErrEmptyJoint indicates a query was attempted against a Joint Grid
	// whose truncated shape collapsed to zero along some axis; chaining
	// past such a build is undefined.
	ErrEmptyJoint = errors.New("join: joint grid has a zero-sized axis")
)

// Flags selects algorithmic variants of the builder's inner loop. Every
// combination MUST produce identical value and argument maps — only the
// statistics differ.
type Flags struct {
	// Filter stops scanning a point's feasible candidate box once the
	// running best reaches aMax+bMax (the two operands' global maxima),
	// an admissible bound no remaining candidate can strictly exceed.
	Filter bool

	// FilterGrad adds a tighter, per-box admissible bound on top of
	// Filter: the exact maximum still reachable from each remaining
	// candidate onward, precomputed in one backward pass over the box.
	FilterGrad bool

	// BruteOpt switches to the dense, unpruned kernel on points whose
	// feasible-candidate box holds at most bruteForceThreshold candidates.
	// The threshold is a fixed constant; it does not adapt to the inputs.
	BruteOpt bool

	// Count gathers candidate-count statistics.
	Count bool

	// BuildTime gathers data-structure construction timings.
	BuildTime bool

	// QueryTime gathers per-query timings.
	QueryTime bool

	// ChunkSize is the tile edge length points are processed in, for
	// locality and for bounding parallel fan-out. Must be >= 1.
	ChunkSize int

	// Method is recorded in BuildStats.Method as "method-<n>". Build has
	// no auxiliary acceleration structure, so no value of Method changes
	// which candidates are scanned or what is computed.
	Method int
}

// DefaultFlags returns Flags with the documented defaults: all boolean
// toggles off, ChunkSize=64, Method=0.
func DefaultFlags() Flags {
	return Flags{ChunkSize: 64, Method: 0}
}

// Option configures a Flags instance, for callers that prefer the
// With... functional-option idiom over a struct literal.
type Option func(*Flags)

// WithFilter toggles Filter.
func WithFilter(v bool) Option { return func(f *Flags) { f.Filter = v } }

// WithFilterGrad toggles FilterGrad.
func WithFilterGrad(v bool) Option { return func(f *Flags) { f.FilterGrad = v } }

// WithBruteOpt toggles BruteOpt.
func WithBruteOpt(v bool) Option { return func(f *Flags) { f.BruteOpt = v } }

// WithCount toggles Count.
func WithCount(v bool) Option { return func(f *Flags) { f.Count = v } }

// WithBuildTime toggles BuildTime.
func WithBuildTime(v bool) Option { return func(f *Flags) { f.BuildTime = v } }

// WithQueryTime toggles QueryTime.
func WithQueryTime(v bool) Option { return func(f *Flags) { f.QueryTime = v } }

// WithChunkSize overrides ChunkSize.
func WithChunkSize(n int) Option { return func(f *Flags) { f.ChunkSize = n } }

// WithMethod overrides Method.
func WithMethod(m int) Option { return func(f *Flags) { f.Method = m } }

// NewFlags builds a Flags starting from DefaultFlags and applying opts
// left to right.
func NewFlags(opts ...Option) Flags {
	f := DefaultFlags()
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// BuildStats is a fixed-layout statistics record: named timers and
// counters returned by a single Build call.
type BuildStats struct {
	TotalRuntime       time.Duration
	DsCreatePointsTime time.Duration
	DsBuildTime        time.Duration
	DsQueryTime        time.Duration
	DsQueryFetchTime   time.Duration

	ExpectedComparedPoints float64
	ComparedPoints         float64
	ComparedInBoundPoints  float64
	ComparedEdgePoints     float64
	ComparedBruteForce     float64

	DsPts         int
	TotalPts      int
	TotalQueries  int
	JoinedFuncCount int
	BruteForceCount int

	Method string
}
