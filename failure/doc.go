// Package failure implements FailurePolicy: a declarative set of rules
// that map a snapshot of node/link/risk-group attributes to a set of
// failed entity IDs, with optional risk-group and risk-group-children
// expansion (spec §4.7).
//
// Grounded on the Python original's ngraph/failure/policy.py
// (FailureCondition, FailureRule, FailurePolicy.apply_failures) —
// condition operators, rule selection strategies ("all"/"random"/
// "choice"), and the two BFS expansion passes are reproduced closely.
// There is no teacher counterpart; the struct/method shape (string
// constants for scope, operator, rule type and logic, sentinel errors, a
// functional-options-free plain struct since every field here is public
// declarative configuration rather than constructed state) follows this
// tree's own base package idiom.
//
// Unlike the Python original (which takes generic {id: dict} maps for
// nodes/links/risk groups, decoupled from any concrete network type),
// this package reads attributes directly off a *core.Graph's Node/Link
// Attrs and RiskGroups fields, since this module's core.Graph already
// carries exactly the attribute surface a condition needs — building a
// parallel generic-map abstraction over it would duplicate, not simplify,
// what core.Graph already provides.
//
// Errors (sentinel):
//
//	– ErrInvalidProbability if a "random" rule's probability is outside [0,1].
//	– ErrUnsupportedLogic / ErrUnsupportedRuleType / ErrUnsupportedOperator.
package failure

import "errors"

// Sentinel errors returned by this package.
var (
	ErrInvalidProbability  = errors.New("failure: probability must be within [0,1] for rule_type random")
	ErrUnsupportedLogic    = errors.New("failure: unsupported rule logic")
	ErrUnsupportedRuleType = errors.New("failure: unsupported rule_type")
	ErrUnsupportedOperator = errors.New("failure: unsupported operator")
)
