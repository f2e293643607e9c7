// Package montecarlo runs an analysis function over many failure-sampled
// NetworkViews of a shared graph, deduplicating identical exclusion
// patterns across iterations and running the unique set in parallel
// (spec §4.8: "the Failure Monte Carlo engine").
//
// Grounded on the Python original's
// ngraph/failure/manager/manager.py:FailureManager.run_monte_carlo_analysis:
// the same baseline-override-at-iteration-0 rule, dedup by the sorted
// exclusion pattern (the analysis function is fixed for one Run, so it is
// not part of the key), an 8-byte blake2s-family (BLAKE2Xs) failure
// pattern ID (hex of an empty-exclusion
// pattern is the empty string; the baseline iteration's ID is always the
// literal "baseline" regardless of its — empty — exclusion pattern), and
// the same parallel-only-if-worth-it heuristic (parallelism > 1 and more
// than one unique pattern).
//
// There is no teacher (katalvlaran/lvlath) counterpart to a
// failure-sampling Monte Carlo driver; concurrency follows this tree's own
// idiom of using golang.org/x/sync/errgroup (already exercised nowhere
// else in this module, first pulled in here) with SetLimit rather than
// hand-rolled worker pools — the teacher's single-threaded graph
// algorithms never needed a worker pool, but x/sync is the ecosystem's
// standard bounded-fan-out primitive and a closer analogue to the
// original's ProcessPoolExecutor than manually managed goroutines/
// channels would be.
//
// Unlike the Python original, which deep-copies each unique result into
// every duplicate iteration slot (guarding against workflow code mutating
// a shared Python object), this package hands every duplicate iteration
// index the same Go value: callers that treat AnalysisFunc's return value
// as immutable output data (the idiom the rest of this module follows)
// see no difference, and deep-copying an arbitrary `any` in Go would
// require reflection-based cloning with no general correctness guarantee
// across caller-defined result types.
//
// Failure-pattern IDs use golang.org/x/crypto/blake2s's XOF (BLAKE2Xs)
// with an 8-byte output. That output is not the same value as a plain
// BLAKE2s digest computed with an 8-byte digest size, so the IDs are
// stable within this module but do not equal such digests.
package montecarlo

import "errors"

// Sentinel errors returned by Run.
var (
	// ErrIterationsWithoutPolicy indicates iterations > 1 was requested
	// without an effective failure policy and without baseline — every
	// iteration would be identical, so the caller almost certainly made a
	// mistake.
	ErrIterationsWithoutPolicy = errors.New("montecarlo: iterations > 1 has no effect without a failure policy with rules (set iterations=1, add rules, or set Baseline)")

	// ErrBaselineNeedsTwoIterations indicates Baseline was requested with
	// fewer than 2 iterations (the first iteration is the baseline; there
	// must be at least one more failure-sampled iteration).
	ErrBaselineNeedsTwoIterations = errors.New("montecarlo: baseline requires iterations >= 2")
)
