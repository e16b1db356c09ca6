// Package vecvcg is the documentation umbrella for a combinatorial-auction
// solver computing Vickrey–Clarke–Groves (VCG) outcomes over
// multi-dimensional integer allocations.
//
// 🚀 What is vecvcg?
//
//	A compute-only core that, given N bidders' integer-grid valuations,
//	finds the socially optimal allocation and every bidder's VCG payment:
//
//	  • Grids: dense D-dimensional valuation arrays, generic over scalar type
//	  • Join engine: max-plus (tropical) convolution for arbitrary valuations
//	  • Maille–Tuffin engine: O(total bids · log) greedy solver for
//	    separable, concave, 1-D valuations
//	  • A VCG driver wrapping both engines with leave-one-out payments
//
// ✨ Design goals
//
//   - Deterministic — identical inputs and tuning flags always produce
//     identical allocations and payments; only statistics vary.
//   - Generic         — one codebase over int32/int64/float32/float64 valuations.
//   - No I/O          — no serialization, no CLI, no wire protocol; the caller
//     supplies already-materialised valuation grids and receives
//     in-memory results.
//
// Everything lives in six subpackages:
//
//	grid/     — dense D-dimensional valuation grids + the Valuation interface
//	join/     — max-plus convolution builder with argmax bookkeeping
//	chain/    — sequential fold of valuations into a joint grid
//	mt/       — Maille–Tuffin greedy solver for separable concave valuations
//	vcg/      — the driver: welfare, allocations, VCG payments
//	statsagg/ — merges per-call statistics records
//
//	go get vecvcg
package vecvcg
