package capacity

import (
	"github.com/networmix/netgraph/base"
	"github.com/networmix/netgraph/spf"
	"github.com/networmix/netgraph/view"
)

// Solve computes the feasible placement volume from src to dst over the
// subgraph induced by pred, and the fractional split of that volume across
// every (u, v) hop, per spec §4.1. The degenerate src == dst case and the
// unreachable-dst case both return (0, empty map, nil) — infeasibility is
// never an error.
func Solve(v *view.View, pred spf.PredDAG, src, dst string, placement base.FlowPlacement) (feasible float64, fractions map[string]map[string]float64, err error) {
	if v == nil {
		return 0, nil, ErrNilGraph
	}
	if src == dst {
		return 0, map[string]map[string]float64{}, nil
	}
	if _, reachable := pred[dst]; !reachable {
		return 0, map[string]map[string]float64{}, nil
	}

	switch placement {
	case base.EqualBalanced:
		return solveEqualBalanced(v, pred, src, dst)
	default:
		return solveProportional(v, pred, src, dst)
	}
}

// hop is one (predecessor, successor) pair in the PredDAG-induced subgraph,
// carrying the parallel link IDs the selector deemed eligible for it.
type hop struct {
	from, to string
	links    []uint64
}

// hops flattens a PredDAG into the forward (u→v) adjacency it implies:
// pred is indexed child-first, so walking it and re-keying by predecessor
// reconstructs the natural successor direction ("reversed adjacency, from
// pred" per spec §4.1's wording — the reversal is in how pred is indexed,
// not in the arc orientation itself).
func hops(pred spf.PredDAG) []hop {
	var out []hop
	for to, preds := range pred {
		for from, links := range preds {
			out = append(out, hop{from: from, to: to, links: links})
		}
	}
	return out
}

// residualPerLink returns, for a single link, its remaining capacity
// clamped at zero and below base.MinCap.
func residualPerLink(v *view.View, id uint64) float64 {
	l, err := v.Graph().Link(id)
	if err != nil {
		return 0
	}
	rem := l.Capacity - l.FlowTotal
	if rem < base.MinCap {
		return 0
	}
	return rem
}

// solveProportional runs a Dinic-like blocking-flow loop on the capacity
// map induced by hops(pred), forward from src to dst (spec §4.1
// PROPORTIONAL). Flow recovered per arc after the loop gives the
// fractional split once divided by the total feasible volume.
func solveProportional(v *view.View, pred spf.PredDAG, src, dst string) (float64, map[string]map[string]float64, error) {
	cap0 := make(map[string]map[string]float64)
	ensure := func(u, w string) {
		if cap0[u] == nil {
			cap0[u] = make(map[string]float64)
		}
		if _, ok := cap0[u][w]; !ok {
			cap0[u][w] = 0
		}
	}
	for _, h := range hops(pred) {
		var sum float64
		for _, lid := range h.links {
			sum += residualPerLink(v, lid)
		}
		ensure(h.from, h.to)
		ensure(h.to, h.from)
		cap0[h.from][h.to] += sum
	}

	capMap := make(map[string]map[string]float64, len(cap0))
	for u, nbrs := range cap0 {
		capMap[u] = make(map[string]float64, len(nbrs))
		for w, c := range nbrs {
			capMap[u][w] = c
		}
	}

	var maxFlow float64
	for {
		level := bfsLevels(capMap, src)
		if level[dst] < 0 {
			break
		}
		next := levelAdjacency(capMap, level)
		iter := make(map[string]int, len(next))
		for {
			pushed := dfsBlockingPush(capMap, next, iter, src, dst, posInf)
			if pushed <= 0 {
				break
			}
			maxFlow += pushed
		}
	}

	if maxFlow < base.MinFlow {
		return 0, map[string]map[string]float64{}, nil
	}

	fractions := make(map[string]map[string]float64)
	for u, nbrs := range cap0 {
		for w, c0 := range nbrs {
			remaining := capMap[u][w]
			flowUW := c0 - remaining
			if flowUW < base.MinFlow {
				continue
			}
			frac := flowUW / maxFlow
			if fractions[u] == nil {
				fractions[u] = make(map[string]float64)
			}
			fractions[u][w] = frac
		}
	}

	return maxFlow, fractions, nil
}

const posInf = 1e18

func bfsLevels(capMap map[string]map[string]float64, src string) map[string]int {
	level := make(map[string]int, len(capMap))
	for u := range capMap {
		level[u] = -1
	}
	level[src] = 0
	queue := []string{src}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for w, c := range capMap[u] {
			if c > 0 && level[w] < 0 {
				level[w] = level[u] + 1
				queue = append(queue, w)
			}
		}
	}
	return level
}

func levelAdjacency(capMap map[string]map[string]float64, level map[string]int) map[string][]string {
	next := make(map[string][]string, len(capMap))
	for u, nbrs := range capMap {
		for w, c := range nbrs {
			if c > 0 && level[w] == level[u]+1 {
				next[u] = append(next[u], w)
			}
		}
	}
	return next
}

// dfsBlockingPush pushes one augmenting unit of blocking flow along the
// level graph, mirroring the teacher's dfsDinicPush: iter[] pointers avoid
// re-scanning exhausted neighbors within a phase, and successful pushes
// update both the forward and reverse residual capacities.
func dfsBlockingPush(capMap map[string]map[string]float64, next map[string][]string, iter map[string]int, u, dst string, available float64) float64 {
	if u == dst {
		return available
	}
	for i := iter[u]; i < len(next[u]); i++ {
		iter[u] = i + 1
		w := next[u][i]
		capUW := capMap[u][w]
		if capUW <= 0 {
			continue
		}
		send := available
		if capUW < send {
			send = capUW
		}
		if send <= 0 {
			continue
		}
		pushed := dfsBlockingPush(capMap, next, iter, w, dst, send)
		if pushed > 0 {
			capMap[u][w] -= pushed
			if capMap[w] == nil {
				capMap[w] = make(map[string]float64)
			}
			capMap[w][u] += pushed
			return pushed
		}
	}
	return 0
}

// solveEqualBalanced distributes one nominal unit of flow from src across
// the PredDAG breadth-first, splitting proportionally to parallel-edge
// count at every fan-out, then scales the whole nominal assignment by the
// largest ratio that stays within every hop's residual capacity (spec
// §4.1 EQUAL_BALANCED; grounded on the Python original's
// _equal_balance_bfs).
func solveEqualBalanced(v *view.View, pred spf.PredDAG, src, dst string) (float64, map[string]map[string]float64, error) {
	succ := make(map[string][]hop)
	for _, h := range hops(pred) {
		succ[h.from] = append(succ[h.from], h)
	}

	order := topoOrderByCost(pred, src)

	nominalIn := map[string]float64{src: 1.0}
	nominal := make(map[string]map[string]float64)
	for _, u := range order {
		in := nominalIn[u]
		if in <= 0 {
			continue
		}
		children := succ[u]
		if len(children) == 0 {
			continue
		}
		total := 0
		for _, h := range children {
			total += len(h.links)
		}
		if total == 0 {
			continue
		}
		for _, h := range children {
			share := in * float64(len(h.links)) / float64(total)
			if nominal[u] == nil {
				nominal[u] = make(map[string]float64)
			}
			nominal[u][h.to] += share
			nominalIn[h.to] += share
		}
	}

	residual := make(map[string]map[string]float64)
	for _, h := range hops(pred) {
		if len(h.links) == 0 {
			continue
		}
		minRem := residualPerLink(v, h.links[0])
		for _, lid := range h.links[1:] {
			if r := residualPerLink(v, lid); r < minRem {
				minRem = r
			}
		}
		groupCap := minRem * float64(len(h.links))
		if residual[h.from] == nil {
			residual[h.from] = make(map[string]float64)
		}
		residual[h.from][h.to] = groupCap
	}

	r := posInf
	any := false
	for u, nbrs := range nominal {
		for w, n := range nbrs {
			if n <= 0 {
				continue
			}
			groupCap := residual[u][w]
			ratio := groupCap / n
			if ratio < r {
				r = ratio
			}
			any = true
		}
	}
	if !any || r < base.MinFlow {
		return 0, map[string]map[string]float64{}, nil
	}

	fractions := make(map[string]map[string]float64)
	for u, nbrs := range nominal {
		for w, n := range nbrs {
			scaled := n * r
			if scaled < base.MinFlow {
				continue
			}
			frac := scaled / r
			if fractions[u] == nil {
				fractions[u] = make(map[string]float64)
			}
			fractions[u][w] = frac
		}
	}

	return r, fractions, nil
}

// topoOrderByCost returns every node in pred (plus src) ordered so that
// every predecessor appears before its successors — sufficient for a
// single forward pass to accumulate nominalIn correctly, since cost is
// monotonically non-decreasing along every pred hop.
func topoOrderByCost(pred spf.PredDAG, src string) []string {
	seen := map[string]struct{}{src: {}}
	order := []string{src}
	depth := map[string]int{src: 0}
	for node := range pred {
		if _, ok := seen[node]; ok {
			continue
		}
		seen[node] = struct{}{}
	}
	changed := true
	for changed {
		changed = false
		for to, preds := range pred {
			if _, placed := depth[to]; placed {
				continue
			}
			maxPredDepth := -1
			allKnown := len(preds) > 0
			for from := range preds {
				d, ok := depth[from]
				if !ok {
					allKnown = false
					break
				}
				if d > maxPredDepth {
					maxPredDepth = d
				}
			}
			if allKnown {
				depth[to] = maxPredDepth + 1
				changed = true
			}
		}
	}
	nodes := make([]string, 0, len(seen))
	for n := range seen {
		nodes = append(nodes, n)
	}
	return append([]string{src}, sortedExceptSrc(nodes, depth, src)...)
}

func sortByDepth(nodes []string, depth map[string]int) {
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && less(nodes[j], nodes[j-1], depth); j-- {
			nodes[j], nodes[j-1] = nodes[j-1], nodes[j]
		}
	}
}

func less(a, b string, depth map[string]int) bool {
	da, db := depth[a], depth[b]
	if da != db {
		return da < db
	}
	return a < b
}

func sortedExceptSrc(nodes []string, depth map[string]int, src string) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n != src {
			out = append(out, n)
		}
	}
	sortByDepth(out, depth)
	return out
}
