// Package placement places a requested flow volume between a src and dst
// onto a core.Graph, using a precomputed capacity.Solve result to decide
// how much to place and a per-hop remaining-capacity (or equal) split to
// decide which individual parallel links carry it (spec §4.1's "placement
// distributes the feasible volume across individual parallel edges using
// current remaining capacity", as distinct from capacity.Solve's coarser
// per-hop-group fractions).
//
// Grounded on the Python original's
// ngraph/algorithms/placement.py:place_flow_on_graph and
// remove_flow_from_graph — there is no teacher counterpart since
// katalvlaran/lvlath's flow package computes max-flow without persisting
// it back onto the graph's own vertex/edge attributes; the mutation style
// (core.Graph.AddFlow, core.Graph.ResetFlowUsages) instead follows this
// tree's own core package, built in the teacher's idiom.
//
// Errors (sentinel):
//
//	– ErrNilGraph if the View is nil.
//
// Example usage:
//
//	meta, err := placement.Place(v, pred, "S", "T", 100, flowID, base.Proportional)
package placement

import "errors"

// ErrNilGraph indicates a nil View was passed to Place.
var ErrNilGraph = errors.New("placement: graph is nil")
