// Package vcg implements the VCG driver: it wraps the
// join and mt engines, orchestrating N+1 optimisations (the grand
// coalition plus one leave-one-out per bidder) and deriving each
// bidder's Vickrey–Clarke–Groves payment.
package vcg

import (
	"errors"

	"vecvcg/join"
)

// Sentinel errors for driver-level misuse and invariant violations.
var (
	// ErrTooFewValuations indicates fewer than two bidders were supplied.
	ErrTooFewValuations = errors.New("vcg: need at least two valuations")

	// ErrDimensionMismatch indicates the bidders' valuations disagree in
	// dimensionality, max_alloc's arity disagrees with it, or (MTVCG) the
	// separable form does not have one row per bidder.
	ErrDimensionMismatch = errors.New("vcg: max_alloc arity mismatch")

	// ErrAllocationMismatch indicates the recovered per-bidder allocations
	// did not sum to used_resources.
	ErrAllocationMismatch = errors.New("vcg: allocations do not sum to used resources")

	// ErrWelfareMismatch indicates the sum of private values disagreed
	// with the reported social welfare beyond tolerance.
	ErrWelfareMismatch = errors.New("vcg: sum of private values disagrees with social welfare")

	// ErrOrderDependence indicates forward and reverse chain welfare, or
	// their final joint value grids elementwise, disagreed beyond
	// tolerance — since the builder is deterministic,
	// this can only indicate a bug, so it is treated as a hard failure
	// rather than a diagnostic-only anomaly.
	ErrOrderDependence = errors.New("vcg: forward and reverse chain welfare disagree")

	// ErrPaymentBounds indicates a computed payment fell outside [0, v_i(a_i)].
	ErrPaymentBounds = errors.New("vcg: payment outside [0, private value] bounds")
)

// Options configures a VCG driver call. Unlike the builder's functional
// Flags (tuned per call site, often programmatically), Options is a flat
// validated struct — the driver is the terminal call site, where a
// single struct reads clearer than a long option chain, matching
// tsp.Options' choice for its own top-level solver entry point.
type Options struct {
	// MaxAlloc is the D-vector total-allocation cap.
	MaxAlloc []int

	// CalcPayments, if false, skips the leave-one-out payment phase
	// entirely (the Output Record's Payments field is left nil).
	CalcPayments bool

	// JoinFlags tunes the join engine's builder (ignored by MTVCG).
	JoinFlags join.Flags

	// ChangeJoinOrder enables the chain reducer's zig-zag ordering
	// heuristic (ignored by MTVCG).
	ChangeJoinOrder bool
}

// DefaultOptions returns Options with CalcPayments=true,
// ChangeJoinOrder=true, and join.DefaultFlags(); MaxAlloc must still be
// set by the caller.
func DefaultOptions(maxAlloc []int) Options {
	return Options{
		MaxAlloc:        maxAlloc,
		CalcPayments:    true,
		JoinFlags:       join.DefaultFlags(),
		ChangeJoinOrder: true,
	}
}
