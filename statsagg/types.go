// Package statsagg merges per-call statistics records produced by the
// join builder and the Maille–Tuffin solver. Numeric-valued keys become
// lists (history-of-scalars) across sequential stages; non-numeric keys
// keep their first occurrence.
package statsagg

// Record is a flat mapping from named counters/timers to their values.
// Accepted value kinds are float64, int, []float64 (already-aggregated
// numeric history) and any other type (kept as an opaque, non-numeric
// value).
type Record map[string]any
