package placement

import (
	"math"

	"github.com/networmix/netgraph/base"
	"github.com/networmix/netgraph/capacity"
	"github.com/networmix/netgraph/core"
	"github.com/networmix/netgraph/spf"
	"github.com/networmix/netgraph/view"
)

// Meta describes how much flow was actually placed, how much could not be,
// and which nodes/links participated — the Go shape of the Python
// original's FlowPlacementMeta dataclass.
type Meta struct {
	PlacedFlow    float64
	RemainingFlow float64
	Nodes         map[string]struct{}
	Links         map[uint64]struct{}
}

func newMeta(requested float64) Meta {
	return Meta{RemainingFlow: requested, Nodes: map[string]struct{}{}, Links: map[uint64]struct{}{}}
}

// Place routes up to requested units of flow from src to dst over pred,
// mutating v's underlying graph's link and node flow bookkeeping via
// core.Graph.AddFlow. requested may be math.Inf(1) to mean "place as much
// as is feasible". The degenerate src == dst case places nothing, matching
// spec §4.1's capacity solver: conservation forces zero net flow at a
// self-loop.
func Place(v *view.View, pred spf.PredDAG, src, dst string, requested float64, flowID core.FlowID, mode base.FlowPlacement) (Meta, error) {
	if v == nil {
		return Meta{}, ErrNilGraph
	}
	if src == dst {
		return newMeta(requested), nil
	}

	feasible, fractions, err := capacity.Solve(v, pred, src, dst, mode)
	if err != nil {
		return Meta{}, err
	}

	placed := math.Min(feasible, requested)
	var remaining float64
	if math.IsInf(requested, 1) {
		remaining = math.Inf(1)
	} else {
		remaining = math.Max(requested-feasible, 0)
	}
	if placed <= 0 {
		return newMeta(requested), nil
	}

	meta := Meta{PlacedFlow: placed, RemainingFlow: remaining, Nodes: map[string]struct{}{src: {}, dst: {}}, Links: map[uint64]struct{}{}}

	g := v.Graph()
	for from, toMap := range fractions {
		for to, frac := range toMap {
			if frac <= 0 {
				continue
			}
			meta.Nodes[from] = struct{}{}
			meta.Nodes[to] = struct{}{}

			linkGroup := pred[to][from]
			if len(linkGroup) == 0 {
				continue
			}
			hopFlow := frac * placed

			switch mode {
			case base.EqualBalanced:
				perLink := hopFlow / float64(len(linkGroup))
				for _, lid := range linkGroup {
					if perLink <= 0 {
						continue
					}
					if err := g.AddFlow(lid, flowID, perLink); err != nil {
						return Meta{}, err
					}
					meta.Links[lid] = struct{}{}
				}
			default:
				var totalRem float64
				links := make([]*core.Link, 0, len(linkGroup))
				for _, lid := range linkGroup {
					l, err := g.Link(lid)
					if err != nil {
						continue
					}
					links = append(links, l)
					totalRem += l.Capacity - l.FlowTotal
				}
				if totalRem <= 0 {
					continue
				}
				for _, l := range links {
					unused := l.Capacity - l.FlowTotal
					if unused <= 0 {
						continue
					}
					sub := hopFlow / totalRem * unused
					if sub <= 0 {
						continue
					}
					if err := g.AddFlow(l.ID, flowID, sub); err != nil {
						return Meta{}, err
					}
					meta.Links[l.ID] = struct{}{}
				}
			}
		}
	}

	return meta, nil
}

// Remove subtracts flowID's contribution from every link it touched, or
// zeroes every link's flow bookkeeping entirely when all is true (flowID
// is then ignored) — the Go counterpart of the Python original's
// remove_flow_from_graph.
func Remove(g *core.Graph, flowID core.FlowID, all bool) {
	if all {
		g.ResetFlowUsages()
		return
	}
	for _, lid := range g.Links() {
		l, err := g.Link(lid)
		if err != nil {
			continue
		}
		if amt, ok := l.FlowByID[flowID]; ok {
			_ = g.AddFlow(lid, flowID, -amt)
		}
	}
}
