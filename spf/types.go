// Package spf computes predecessor DAGs by shortest-path search over a
// core.Graph masked by a view.View, using a pluggable edge Selector (spec
// §4.2, §4.3).
//
// Adapted from the teacher's dijkstra package (dijkstra/dijkstra.go,
// dijkstra/types.go): the same functional-options configuration, the same
// lazy-decrease-key binary heap, and the same doc-comment register
// (Complexity/Options/Errors/Example Usage). What changes is the contract:
// instead of a single predecessor per node, SPF here records every
// tied-for-minimum predecessor link group, producing the multipath
// PathBundle of spec §3 rather than a single shortest path.
package spf

import (
	"errors"
)

// Sentinel errors returned by SPF.
var (
	// ErrEmptySource indicates that the provided source node ID is empty.
	ErrEmptySource = errors.New("spf: source node ID is empty")

	// ErrNilGraph indicates that a nil graph was passed to SPF.
	ErrNilGraph = errors.New("spf: graph is nil")

	// ErrSourceNotFound indicates the source node does not exist in the graph.
	ErrSourceNotFound = errors.New("spf: source node not found in graph")
)

// PredDAG records, for each reachable node v, the immediate predecessors u
// and the parallel link IDs that realize the u→v hop at minimum cost — the
// concrete form of spec §3's PathBundle.pred. PredDAG[src] is always empty.
type PredDAG map[string]map[string][]uint64

// Options configures an SPF search.
type Options struct {
	// Source is the root node ID.
	Source string
	// Selector picks eligible links and their exposed cost per hop.
	Selector Selector
	// MaxCost, if > 0, stops exploring beyond this cumulative cost.
	MaxCost float64
}

// Option is a functional option for SPF.
type Option func(*Options)

// WithSelector sets the edge Selector used at every hop.
func WithSelector(sel Selector) Option {
	return func(o *Options) { o.Selector = sel }
}

// WithMaxCost caps exploration at the given cumulative cost.
func WithMaxCost(max float64) Option {
	return func(o *Options) { o.MaxCost = max }
}
