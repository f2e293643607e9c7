// Package msd searches for the Maximum Supported Demand: the largest
// uniform scaling factor alpha such that every demand in a traffic
// matrix can be fully placed (spec §4.9). The search brackets a
// feasible/infeasible interval around an initial guess, then bisects on
// feasibility until the interval shrinks below a resolution tolerance.
//
// Grounded on the Python original's
// ngraph/workflow/maximum_supported_demand.py (MaximumSupportedDemandAnalysis):
// the bracket-then-bisect control flow (grow alpha by GrowthFactor while
// feasible to find an infeasible upper bound, or shrink while infeasible to
// find a feasible lower bound, then bisect the bracket), the
// majority-vote-over-SeedsPerAlpha feasibility decision per probed alpha,
// and the per-probe record (alpha, feasible, seeds, feasible_seeds,
// min_placement_ratio) are reproduced closely. Only the "hard" acceptance
// rule (every demand fully placed) is implemented, matching the original's
// only-implemented rule.
//
// Scope divergence: the original scales and re-expands TrafficDemand specs
// through a TrafficManager (Network-layer orchestration out of this
// module's C1-C10 scope, per the same reasoning recorded for schedule's
// Demand type). This package instead takes a caller-supplied slice of
// DemandTemplate — each already a concrete (src, dst, priority,
// base-volume, FlowPolicy factory) — and scales Volume by alpha directly,
// pushing matrix-name resolution and path-pattern expansion to whatever
// layer constructs the DemandTemplate slice.
//
// There is no teacher (katalvlaran/lvlath) counterpart to a bracket-and-
// bisect feasibility search; the package shape follows this tree's own
// schedule/policy idiom (plain functions over explicit slices, sentinel
// errors for construction-time validation).
package msd

import "errors"

// Sentinel errors returned by Search.
var (
	ErrSeedsPerAlphaTooLow   = errors.New("msd: seeds_per_alpha must be >= 1")
	ErrGrowthFactorTooLow    = errors.New("msd: growth_factor must be > 1.0")
	ErrResolutionNotPositive = errors.New("msd: resolution must be positive")
	ErrNoFeasibleAlpha       = errors.New("msd: no feasible alpha found above alpha_min")
)
