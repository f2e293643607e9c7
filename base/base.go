// Package base holds the small set of types and numeric constants shared
// across spf, capacity, placement, policy, and schedule: the flow-placement
// strategy enum, the edge-selection mode enum, and the two numeric
// thresholds spec §4.1 requires to be identical everywhere ("Implementations
// must use the same fixed values across solver, placement, and policy to
// avoid oscillation").
//
// The retrieval pack's original_source/ never ships ngraph/algorithms/base.py
// itself (only its callers: capacity.py, placement.py, policy.py) — its
// contract here is inferred from spec §4.1–§4.5 and from how those callers
// use base.MIN_CAP, base.MIN_FLOW, base.FlowPlacement, and base.EdgeSelect.
package base

// MinCap is the residual-capacity threshold below which a value is treated
// as zero capacity (spec §4.1 "MIN_CAP").
const MinCap = 1e-12

// MinFlow is the flow-magnitude threshold below which a value is treated as
// zero flow (spec §4.1 "MIN_FLOW").
const MinFlow = 1e-12

// FlowPlacement selects how the capacity solver and placement distribute a
// volume across parallel paths/edges (spec §4.1, §4.4).
type FlowPlacement int

const (
	// Proportional splits volume in proportion to residual capacity
	// (WCMP/UCMP semantics).
	Proportional FlowPlacement = iota
	// EqualBalanced splits volume evenly across parallel paths/edges
	// regardless of capacity (ECMP semantics), bottlenecked by the
	// smallest parallel capacity.
	EqualBalanced
)

func (p FlowPlacement) String() string {
	switch p {
	case Proportional:
		return "PROPORTIONAL"
	case EqualBalanced:
		return "EQUAL_BALANCED"
	default:
		return "UNKNOWN"
	}
}

// EdgeSelect names an edge-selection mode (spec §4.2).
type EdgeSelect int

const (
	// AllMinCost exposes the min edge cost and every edge tied at it.
	AllMinCost EdgeSelect = iota
	// SingleMinCost exposes the min edge cost and a single deterministic
	// edge at it (lowest link ID).
	SingleMinCost
	// AllMinCostWithCapRemaining exposes the min cost among edges with
	// residual capacity >= max(selectValue, MinCap), and every edge tied
	// at it meeting the threshold.
	AllMinCostWithCapRemaining
	// SingleMinCostWithCapRemainingLoadFactored exposes the min cost
	// among edges meeting the residual-capacity threshold, tie-broken by
	// lower current load (lower FlowTotal), and returns a single edge.
	SingleMinCostWithCapRemainingLoadFactored
	// UserDefined delegates entirely to a caller-supplied selector.
	UserDefined
)

func (m EdgeSelect) String() string {
	switch m {
	case AllMinCost:
		return "ALL_MIN_COST"
	case SingleMinCost:
		return "SINGLE_MIN_COST"
	case AllMinCostWithCapRemaining:
		return "ALL_MIN_COST_WITH_CAP_REMAINING"
	case SingleMinCostWithCapRemainingLoadFactored:
		return "SINGLE_MIN_COST_WITH_CAP_REMAINING_LOAD_FACTORED"
	case UserDefined:
		return "USER_DEFINED"
	default:
		return "UNKNOWN"
	}
}

// PathAlg names the shortest-path algorithm used to build the predecessor
// DAG. Only Spf is implemented (spec §1 Non-goals: "we do not specify a new
// shortest-path algorithm beyond the contract that a predecessor DAG... is
// produced"); the enum exists so FlowPolicy configuration shapes match the
// original's, leaving room for a future alternative without a breaking
// change.
type PathAlg int

// Spf is the only supported path algorithm.
const Spf PathAlg = 0
