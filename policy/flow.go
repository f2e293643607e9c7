package policy

import (
	"github.com/networmix/netgraph/base"
	"github.com/networmix/netgraph/core"
	"github.com/networmix/netgraph/placement"
	"github.com/networmix/netgraph/spf"
	"github.com/networmix/netgraph/view"
)

// PathBundle is the concrete realization of spec §3's multipath path
// structure: a predecessor DAG rooted at Src, restricted to the links that
// were eligible at the cost recorded in Cost.
type PathBundle struct {
	Src, Dst string
	Pred     spf.PredDAG
	Cost     float64
}

// Links flattens every parallel-link group in the bundle into the set of
// link IDs it spans, used to validate staleness and reuse eligibility.
func (pb PathBundle) Links() []uint64 {
	seen := make(map[uint64]struct{})
	var out []uint64
	for _, preds := range pb.Pred {
		for _, ids := range preds {
			for _, id := range ids {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	}
	return out
}

// Nodes returns every node ID referenced anywhere in the bundle.
func (pb PathBundle) Nodes() []string {
	seen := map[string]struct{}{pb.Src: {}, pb.Dst: {}}
	for to, preds := range pb.Pred {
		seen[to] = struct{}{}
		for from := range preds {
			seen[from] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	return out
}

// clone deep-copies a PathBundle's Pred map so callers in different Flow
// copies never alias the same slice.
func (pb PathBundle) clone() PathBundle {
	pred := make(spf.PredDAG, len(pb.Pred))
	for to, preds := range pb.Pred {
		inner := make(map[string][]uint64, len(preds))
		for from, ids := range preds {
			cp := make([]uint64, len(ids))
			copy(cp, ids)
			inner[from] = cp
		}
		pred[to] = inner
	}
	return PathBundle{Src: pb.Src, Dst: pb.Dst, Pred: pred, Cost: pb.Cost}
}

// Flow represents a fraction of a demand routed along a PathBundle — the
// Go shape of the Python original's Flow/FlowIndex. A Flow may model an
// MPLS LSP, an ECMP/WCMP forwarding split, or any other named portion of
// a demand that follows one fixed set of equal-cost paths.
type Flow struct {
	Index         core.FlowID
	Bundle        PathBundle
	ExcludedLinks map[uint64]struct{}
	ExcludedNodes map[string]struct{}
	PlacedFlow    float64
}

func newFlow(bundle PathBundle, index core.FlowID, excludedLinks map[uint64]struct{}, excludedNodes map[string]struct{}) *Flow {
	if excludedLinks == nil {
		excludedLinks = map[uint64]struct{}{}
	}
	if excludedNodes == nil {
		excludedNodes = map[string]struct{}{}
	}
	return &Flow{Index: index, Bundle: bundle, ExcludedLinks: excludedLinks, ExcludedNodes: excludedNodes}
}

// PlaceFlow routes up to toPlace units of this flow's remaining demand
// along its PathBundle, returning the amount actually placed and the
// amount requested but not placed.
func (f *Flow) PlaceFlow(v *view.View, toPlace float64, mode base.FlowPlacement) (placed, remaining float64, err error) {
	if toPlace < base.MinFlow {
		return 0, toPlace, nil
	}
	meta, err := placement.Place(v, f.Bundle.Pred, f.Bundle.Src, f.Bundle.Dst, toPlace, f.Index, mode)
	if err != nil {
		return 0, toPlace, err
	}
	f.PlacedFlow += meta.PlacedFlow
	return meta.PlacedFlow, meta.RemainingFlow, nil
}

// RemoveFlow strips this flow's contribution from every link it touched
// and resets its placed-volume counter to zero.
func (f *Flow) RemoveFlow(g *core.Graph) {
	placement.Remove(g, f.Index, false)
	f.PlacedFlow = 0
}

func (f *Flow) clone() *Flow {
	links := make(map[uint64]struct{}, len(f.ExcludedLinks))
	for id := range f.ExcludedLinks {
		links[id] = struct{}{}
	}
	nodes := make(map[string]struct{}, len(f.ExcludedNodes))
	for n := range f.ExcludedNodes {
		nodes[n] = struct{}{}
	}
	return &Flow{Index: f.Index, Bundle: f.Bundle.clone(), ExcludedLinks: links, ExcludedNodes: nodes, PlacedFlow: f.PlacedFlow}
}
