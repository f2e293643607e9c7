// Package view implements NetworkView: a read-only, non-copying projection
// of a core.Graph with an exclusion set applied.
//
// This is adapted, not copied, from the teacher's core.UnweightedView /
// core.InducedSubgraph (core/view.go in the retrieval pack), which build a
// brand-new cloned *core.Graph. Spec §9 "Exclusion masks vs. mutated
// copies" explicitly forbids that approach here: "Do not materialize a
// masked graph by cloning edges; implement NetworkView as a filter over the
// canonical graph." A View therefore holds only a pointer to the shared
// graph plus two exclusion sets, and every query method consults the
// exclusion sets before returning a node or link to the caller — the graph
// itself is never touched.
package view

import (
	"sort"

	"github.com/networmix/netgraph/core"
)

// View is a read-only projection of a Graph with excluded nodes/links
// masked out. It is cheap to construct (spec §6: "must be cheap, no data
// copying") and safe to share read-only across Monte Carlo workers — it
// holds no mutable state of its own.
type View struct {
	g             *core.Graph
	excludedNodes map[string]struct{}
	excludedLinks map[uint64]struct{}
}

// New builds a View over g with the given exclusion sets. Either set may be
// nil, meaning "no exclusions of that kind." This is the core's
// implementation of the external NetworkView.from_excluded_sets contract
// (spec §6).
//
// Complexity: O(|excludedNodes| + |excludedLinks|) to build the lookup sets;
// no traversal of g itself.
func New(g *core.Graph, excludedNodes []string, excludedLinks []uint64) *View {
	en := make(map[string]struct{}, len(excludedNodes))
	for _, n := range excludedNodes {
		en[n] = struct{}{}
	}
	el := make(map[uint64]struct{}, len(excludedLinks))
	for _, l := range excludedLinks {
		el[l] = struct{}{}
	}
	return &View{g: g, excludedNodes: en, excludedLinks: el}
}

// Unmasked builds a View with no exclusions — the baseline iteration of
// spec §4.8 step 1, and the "unmasked network view" used directly by
// callers that bypass Monte Carlo entirely.
func Unmasked(g *core.Graph) *View {
	return &View{g: g}
}

// Graph returns the underlying shared graph. Callers must treat it as
// read-only through a View; only the owning goroutine mutates it, per
// spec §5.
func (v *View) Graph() *core.Graph { return v.g }

// NodeExcluded reports whether id is masked out, either directly or
// because the underlying node is Disabled.
func (v *View) NodeExcluded(id string) bool {
	if _, ok := v.excludedNodes[id]; ok {
		return true
	}
	n, err := v.g.Node(id)
	if err != nil {
		return true
	}
	return n.Disabled
}

// LinkExcluded reports whether a link is masked out: directly excluded,
// Disabled, or incident to an excluded node.
func (v *View) LinkExcluded(id uint64) bool {
	if _, ok := v.excludedLinks[id]; ok {
		return true
	}
	l, err := v.g.Link(id)
	if err != nil {
		return true
	}
	if l.Disabled {
		return true
	}
	return v.NodeExcluded(l.From) || v.NodeExcluded(l.To)
}

// Nodes returns the sorted IDs of every node visible through this view.
func (v *View) Nodes() []string {
	out := make([]string, 0)
	for _, id := range v.g.Nodes() {
		if !v.NodeExcluded(id) {
			out = append(out, id)
		}
	}
	return out
}

// OutLinks returns the sorted IDs of every non-excluded link leaving id.
// Returns nil (not an error) if id itself is excluded, so callers can treat
// an excluded node as having no outgoing links without a separate check.
func (v *View) OutLinks(id string) []uint64 {
	if v.NodeExcluded(id) {
		return nil
	}
	all := v.g.OutLinks(id)
	out := make([]uint64, 0, len(all))
	for _, lid := range all {
		if !v.LinkExcluded(lid) {
			out = append(out, lid)
		}
	}
	return out
}

// LinksBetween returns the sorted IDs of every non-excluded parallel link
// from→to.
func (v *View) LinksBetween(from, to string) []uint64 {
	if v.NodeExcluded(from) || v.NodeExcluded(to) {
		return nil
	}
	all := v.g.LinksBetween(from, to)
	out := make([]uint64, 0, len(all))
	for _, lid := range all {
		if !v.LinkExcluded(lid) {
			out = append(out, lid)
		}
	}
	return out
}

// ExcludedNodes returns the directly excluded node IDs, sorted.
func (v *View) ExcludedNodes() []string {
	out := make([]string, 0, len(v.excludedNodes))
	for n := range v.excludedNodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ExcludedLinks returns the directly excluded link IDs, sorted.
func (v *View) ExcludedLinks() []uint64 {
	out := make([]uint64, 0, len(v.excludedLinks))
	for l := range v.excludedLinks {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SelectNodeGroupsByPath mirrors the external Network.select_node_groups_by_path
// contract of spec §6, restricted to the subset of syntax this module
// needs: plain regular expressions and an "attr:<name>" directive that
// groups nodes by the string value of a top-level attribute. Group labels
// are the first capture group when it matched non-empty text, otherwise
// the matched substring (for patterns), or the attribute value (for
// attr: directives); nodes are listed in sorted-ID order within each group.
func (v *View) SelectNodeGroupsByPath(pattern string) (map[string][]string, error) {
	return selectNodeGroups(v, pattern)
}
