// Package capacity computes the maximum feasible placement volume between a
// source and destination over the multipath subgraph described by an
// spf.PredDAG, together with the fractional split of that volume across
// every (predecessor, successor) hop — the two-part contract of spec §4.1.
//
// The subgraph induced by a PredDAG is acyclic by construction (every hop
// u→v satisfies cost[u] < cost[v], or cost[u] == cost[v] only across a
// zero-cost tie at the same SPF layer), so the blocking-flow loop below
// never needs residual cancellation across more than one phase in practice;
// it is still written as general Dinic for correctness on degenerate
// zero-cost cycles.
//
// Adapted from the teacher's flow/dinic.go: the same level-graph-then-
// blocking-flow shape (buildLevels, DFS push with iter[] pointers,
// capMap residual bookkeeping) generalized from a single-source-sink
// max-flow query over an entire core.Graph to a query restricted to the
// PredDAG-induced subgraph, with a second placement mode
// (base.EqualBalanced) that has no counterpart in dinic.go and is grounded
// instead on the original Python's _equal_balance_bfs.
//
// Options (none — Solve takes its placement mode directly):
//
// Errors (sentinel):
//
//	– ErrNilGraph if the View is nil.
//
// Example usage:
//
//	feasible, fractions, err := capacity.Solve(v, pred, "S", "T", base.Proportional)
package capacity

import "errors"

// ErrNilGraph indicates a nil View was passed to Solve.
var ErrNilGraph = errors.New("capacity: graph is nil")
