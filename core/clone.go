package core

// Clone returns a copy of the graph: independent node and link maps,
// independent RiskGroups and FlowByID maps, and a fresh next-link-ID
// counter continuing from the source's. The Attrs maps are shared with the
// source graph, not copied. Useful for snapshotting a graph before a
// destructive experiment without disturbing the original.
//
// Complexity: O(V+E).
func (g *Graph) Clone() *Graph {
	g.muNode.RLock()
	g.muLink.RLock()
	defer g.muNode.RUnlock()
	defer g.muLink.RUnlock()

	out := NewGraph()
	out.nextLinkID = g.nextLinkID

	for id, n := range g.nodes {
		rg := make(map[string]struct{}, len(n.RiskGroups))
		for k := range n.RiskGroups {
			rg[k] = struct{}{}
		}
		fb := make(map[FlowID]float64, len(n.FlowByID))
		for k, v := range n.FlowByID {
			fb[k] = v
		}
		out.nodes[id] = &Node{
			ID:         n.ID,
			Disabled:   n.Disabled,
			RiskGroups: rg,
			Attrs:      n.Attrs,
			FlowTotal:  n.FlowTotal,
			FlowByID:   fb,
		}
	}

	for id, l := range g.links {
		rg := make(map[string]struct{}, len(l.RiskGroups))
		for k := range l.RiskGroups {
			rg[k] = struct{}{}
		}
		fb := make(map[FlowID]float64, len(l.FlowByID))
		for k, v := range l.FlowByID {
			fb[k] = v
		}
		out.links[id] = &Link{
			ID:         l.ID,
			From:       l.From,
			To:         l.To,
			Capacity:   l.Capacity,
			Cost:       l.Cost,
			Disabled:   l.Disabled,
			RiskGroups: rg,
			Attrs:      l.Attrs,
			FlowTotal:  l.FlowTotal,
			FlowByID:   fb,
		}
		if out.adjOut[l.From] == nil {
			out.adjOut[l.From] = make(map[uint64]struct{})
		}
		out.adjOut[l.From][id] = struct{}{}
		if out.adjIn[l.To] == nil {
			out.adjIn[l.To] = make(map[uint64]struct{})
		}
		out.adjIn[l.To][id] = struct{}{}
	}

	return out
}
