// Package core provides NetGraph's strict multi-digraph: a directed,
// capacity/cost-bearing graph that permits parallel links and self-loops,
// validates every mutation, and assigns monotonically increasing link IDs.
//
// Graph G = (V,E) supports:
//
//   - Parallel links between the same ordered pair, each with a distinct,
//     strictly increasing uint64 ID (AddLink).
//   - Self-loops (no restriction at the graph layer; the capacity solver
//     treats src==dst as a degenerate zero-flow case per spec §4.1).
//   - Per-link and per-node flow bookkeeping (FlowTotal, FlowByID) as plain
//     struct fields rather than attribute-map entries, so the capacity
//     solver's hot inner loop never touches a map keyed by string.
//   - Deterministic iteration: Nodes(), Links(), LinksBetween(),
//     OutLinks()/InLinks() all return sorted IDs.
//   - Separate sync.RWMutex for nodes (muNode) and links+adjacency
//     (muLink), matching the teacher's two-lock layout so that Monte Carlo
//     workers can read concurrently while the single owning goroutine
//     writes (spec §5: solver/policy/scheduler are synchronous; only the
//     Monte Carlo engine is concurrent, and it only reads).
//
// Errors:
//
//	ErrEmptyNodeID      - node ID is the empty string.
//	ErrNodeExists       - AddNode called twice for the same ID.
//	ErrNodeNotFound     - requested node does not exist.
//	ErrLinkNotFound     - requested link does not exist.
//	ErrNegativeCapacity - link capacity < 0.
//	ErrNegativeCost     - link cost < 0.
//
// Example usage:
//
//	g := core.NewGraph()
//	_ = g.AddNode("A", nil)
//	_ = g.AddNode("B", nil)
//	id, _ := g.AddLink("A", "B", 10, 1, nil)
//	_ = g.AddFlow(id, core.FlowID{Src: "A", Dst: "B", Class: "ip", Seq: 1}, 4)
package core
