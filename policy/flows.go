package policy

import (
	"github.com/networmix/netgraph/base"
	"github.com/networmix/netgraph/core"
	"github.com/networmix/netgraph/view"
)

// createFlow finds a path bundle (reusing the last one found if it is
// still valid) and registers a new Flow for it. Returns nil, nil if no
// eligible path exists.
func (p *FlowPolicy) createFlow(v *view.View, src, dst string, class any, minFlow *float64, bundle *PathBundle) (*Flow, error) {
	if bundle == nil {
		if reused := p.tryReuseLastBundle(v, src, dst, minFlow); reused != nil {
			bundle = reused
		}
	}
	if bundle == nil {
		found, err := p.getPathBundle(v, src, dst, minFlow, nil, nil)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, nil
		}
		bundle = found
	}

	idx := p.nextFlowIndex(src, dst, class)
	f := newFlow(*bundle, idx, nil, nil)
	p.flows[idx] = f
	p.flowOrder = append(p.flowOrder, idx)
	p.metricsTotals["flows_created_total"]++
	cp := *bundle
	p.lastPathBundle = &cp
	return f, nil
}

// tryReuseLastBundle mirrors the Python original's perf shortcut: if the
// previous path bundle for the same (src, dst) still has every link
// present with at least minFlow (or base.MinFlow) of remaining capacity,
// reuse it instead of running another spf search.
func (p *FlowPolicy) tryReuseLastBundle(v *view.View, src, dst string, minFlow *float64) *PathBundle {
	last := p.lastPathBundle
	if last == nil || last.Src != src || last.Dst != dst {
		return nil
	}
	required := base.MinFlow
	if minFlow != nil {
		required = *minFlow
	}
	g := v.Graph()
	for _, lid := range last.Links() {
		l, err := g.Link(lid)
		if err != nil {
			return nil
		}
		if l.Capacity-l.FlowTotal < required {
			return nil
		}
	}
	cp := *last
	return &cp
}

// createFlows populates the initial set of flows for a new demand: from
// static paths if configured, otherwise MinFlowCount freshly-searched
// flows.
func (p *FlowPolicy) createFlows(v *view.View, src, dst string, class any, minFlow *float64) error {
	if len(p.StaticPaths) > 0 {
		for _, bundle := range p.StaticPaths {
			if bundle.Src != src || bundle.Dst != dst {
				return ErrStaticPathCountMismatch
			}
			b := bundle
			if _, err := p.createFlow(v, src, dst, class, minFlow, &b); err != nil {
				return err
			}
		}
		return nil
	}
	for i := 0; i < p.MinFlowCount; i++ {
		if _, err := p.createFlow(v, src, dst, class, minFlow, nil); err != nil {
			return err
		}
	}
	return nil
}

// deleteFlow removes a flow from both the policy's bookkeeping and the
// graph.
func (p *FlowPolicy) deleteFlow(g *core.Graph, idx core.FlowID) {
	f, ok := p.flows[idx]
	if !ok {
		return
	}
	delete(p.flows, idx)
	for i, id := range p.flowOrder {
		if id == idx {
			p.flowOrder = append(p.flowOrder[:i], p.flowOrder[i+1:]...)
			break
		}
	}
	f.RemoveFlow(g)
}

// reoptimizeFlow searches for a better path that can accommodate
// currentVolume+headroom; if none is found (or it is the same set of
// links), the original placement is restored.
func (p *FlowPolicy) reoptimizeFlow(v *view.View, idx core.FlowID, headroom float64) (*Flow, error) {
	f, ok := p.flows[idx]
	if !ok {
		return nil, nil
	}
	current := f.PlacedFlow
	newMinVolume := current + headroom
	f.RemoveFlow(v.Graph())

	bundle, err := p.getPathBundle(v, f.Bundle.Src, f.Bundle.Dst, &newMinVolume, f.ExcludedLinks, f.ExcludedNodes)
	if err != nil {
		return nil, err
	}
	if bundle == nil || sameLinkSet(bundle.Links(), f.Bundle.Links()) {
		if _, _, err := f.PlaceFlow(v, current, p.FlowPlacement); err != nil {
			return nil, err
		}
		return nil, nil
	}

	newFlow := newFlow(*bundle, idx, f.ExcludedLinks, f.ExcludedNodes)
	if _, _, err := newFlow.PlaceFlow(v, current, p.FlowPlacement); err != nil {
		return nil, err
	}
	p.flows[idx] = newFlow
	p.metricsTotals["reopt_calls_total"]++
	return newFlow, nil
}

func sameLinkSet(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[uint64]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

// RemoveDemand removes every tracked flow from the graph without clearing
// the policy's internal bookkeeping, allowing a subsequent
// PlaceDemand/RebalanceDemand call to re-place it.
func (p *FlowPolicy) RemoveDemand(g *core.Graph) {
	for _, idx := range p.flowOrder {
		if f, ok := p.flows[idx]; ok {
			f.RemoveFlow(g)
		}
	}
}
