package spf

import (
	"container/heap"
	"fmt"

	"github.com/networmix/netgraph/view"
)

// Run computes a predecessor DAG rooted at opts.Source: for every reachable
// node v, PredDAG[v] records every immediate predecessor u whose u→v hop
// lies on a minimum-cost path from src to v, together with the parallel
// link IDs the Selector deemed eligible for that hop (spec §4.3: "pred[v]
// records parallel-edge groups keyed by predecessor, supporting multipath
// DAGs").
//
// Complexity: O((V+E) log V) with the binary heap below, matching the
// teacher's dijkstra package; each node is finalized once, each link
// relaxed at most once per direction.
func Run(v *view.View, opts ...Option) (cost map[string]float64, pred PredDAG, err error) {
	o := Options{Selector: NewSelector(0, 0, nil)}
	for _, opt := range opts {
		opt(&o)
	}

	if o.Source == "" {
		return nil, nil, ErrEmptySource
	}
	if v == nil {
		return nil, nil, ErrNilGraph
	}
	if v.NodeExcluded(o.Source) {
		return nil, nil, fmt.Errorf("spf: %w: %q", ErrSourceNotFound, o.Source)
	}

	cost = map[string]float64{o.Source: 0}
	pred = PredDAG{o.Source: map[string][]uint64{}}
	visited := make(map[string]bool)

	pq := &nodePQ{{id: o.Source, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*nodeItem)
		u := item.id
		if visited[u] {
			continue
		}
		// Lazy decrease-key: skip stale entries whose distance no longer
		// matches the best known cost.
		if item.dist != cost[u] {
			continue
		}
		visited[u] = true

		for _, to := range uniqueTargets(v, u) {
			if visited[to] {
				continue
			}
			parallel := v.LinksBetween(u, to)
			if len(parallel) == 0 {
				continue
			}
			hopCost, eligible := o.Selector(v, u, to, parallel)
			if len(eligible) == 0 {
				continue
			}
			cand := cost[u] + hopCost
			if o.MaxCost > 0 && cand > o.MaxCost {
				continue
			}
			existing, known := cost[to]
			switch {
			case !known || cand < existing:
				cost[to] = cand
				pred[to] = map[string][]uint64{u: eligible}
				heap.Push(pq, &nodeItem{id: to, dist: cand})
			case cand == existing:
				// Tied minimum: add another predecessor group rather than
				// replacing — this is what makes pred a multipath DAG
				// instead of a single shortest-path tree.
				if pred[to] == nil {
					pred[to] = map[string][]uint64{}
				}
				pred[to][u] = eligible
			}
		}
	}

	return cost, pred, nil
}

// uniqueTargets returns the sorted, deduplicated set of nodes reachable
// from u by at least one non-excluded outgoing link.
func uniqueTargets(v *view.View, u string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, lid := range v.OutLinks(u) {
		l, err := v.Graph().Link(lid)
		if err != nil {
			continue
		}
		if _, ok := seen[l.To]; ok {
			continue
		}
		if v.NodeExcluded(l.To) {
			continue
		}
		seen[l.To] = struct{}{}
		out = append(out, l.To)
	}
	return out
}

type nodeItem struct {
	id   string
	dist float64
}

type nodePQ []*nodeItem

func (pq nodePQ) Len() int           { return len(pq) }
func (pq nodePQ) Less(i, j int) bool { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
