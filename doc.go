// Package netgraph is a network capacity-planning and reliability-analysis
// engine: a residual-graph flow solver, a FlowPolicy routing layer, a
// demand scheduler, a failure policy and Monte Carlo engine, and a
// Maximum Supported Demand search, all built over a strict directed
// multigraph.
//
// Packages:
//
//	core/        — StrictMultiDiGraph: nodes, parallel directed links, flow bookkeeping
//	view/        — NetworkView: a cheap, non-copying exclusion-masked projection of a Graph
//	spf/         — shortest-path-first search producing multipath predecessor DAGs
//	capacity/    — blocking-flow capacity solver over an spf.PredDAG
//	placement/   — per-link fractional flow placement from a capacity solution
//	policy/      — FlowPolicy: flow lifecycle, presets, and placement orchestration
//	schedule/    — priority-bucketed, round-robin demand placement scheduler
//	failure/     — failure policy rules and risk-group-aware entity selection
//	montecarlo/  — failure Monte Carlo engine and convenience analysis functions
//	msd/         — Maximum Supported Demand bracket-and-bisect search
//	results/     — serialization-ready result shapes (FlowEntry, CapacityEnvelope, ...)
package netgraph
