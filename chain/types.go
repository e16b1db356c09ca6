// Package chain folds a sequence of valuations pairwise into a single
// joint grid via the max-plus convolution builder, and
// implements the ordering heuristic that reduces peak intermediate size.
package chain

import "errors"

// ErrTooFewValuations indicates fewer than two valuations were supplied;
// a chain reduction needs at least one build.
var ErrTooFewValuations = errors.New("chain: need at least two valuations")
