package schedule

import (
	"log/slog"
	"sort"

	"github.com/networmix/netgraph/base"
	"github.com/networmix/netgraph/view"
)

// PlaceDemandsRoundRobin places demands using priority buckets and
// round-robin fairness within each bucket, per spec §4.6. Returns the
// total volume placed across every demand during this call (not each
// demand's cumulative Placed).
func PlaceDemandsRoundRobin(v *view.View, demands []*Demand, placementRounds int, reoptimizeAfterEachRound bool) float64 {
	byPriority := make(map[int][]*Demand)
	for _, d := range demands {
		byPriority[d.Priority] = append(byPriority[d.Priority], d)
	}
	priorities := make([]int, 0, len(byPriority))
	for p := range byPriority {
		priorities = append(priorities, p)
	}
	sort.Ints(priorities)

	slog.Debug("schedule:start", slog.Int("placement_rounds", placementRounds), slog.Int("total_demands", len(demands)))

	var totalPlaced float64
	for _, prio := range priorities {
		group := byPriority[prio]
		placedBefore := sumPlaced(group)

		reoptAttempted := false
		for round := 0; round < placementRounds; round++ {
			var order []*Demand
			if round == 0 {
				order = append([]*Demand{}, group...)
			} else {
				order = append([]*Demand{}, group...)
				sort.Slice(order, func(i, j int) bool {
					ri, rj := servedRatio(order[i]), servedRatio(order[j])
					if ri != rj {
						return ri < rj
					}
					return order[i].Placed < order[j].Placed
				})
			}

			var placedInRound float64
			for _, d := range order {
				leftover := d.Volume - d.Placed
				if leftover < base.MinFlow {
					continue
				}
				placedNow, _, err := d.place(v)
				if err != nil {
					slog.Debug("schedule:place error", slog.String("src", d.Src), slog.String("dst", d.Dst), slog.Any("err", err))
					continue
				}
				placedInRound += placedNow
			}

			if reoptimizeAfterEachRound && placedInRound > 0 {
				reoptimizePriorityDemands(v, group, prio)
			}

			if placedInRound < base.MinFlow {
				anyLeftover := false
				for _, d := range group {
					if d.Volume-d.Placed >= base.MinFlow {
						anyLeftover = true
						break
					}
				}
				if !anyLeftover {
					break
				}
				if !reoptAttempted {
					reoptimizePriorityDemands(v, group, prio)
					reoptAttempted = true
					continue
				}
				break
			}
		}

		placedAfter := sumPlaced(group)
		delta := placedAfter - placedBefore
		if delta < 0 {
			delta = 0
		}
		totalPlaced += delta
	}

	return totalPlaced
}

func sumPlaced(demands []*Demand) float64 {
	var total float64
	for _, d := range demands {
		total += d.Placed
	}
	return total
}

func servedRatio(d *Demand) float64 {
	if d.Volume > 0 {
		return d.Placed / d.Volume
	}
	return 1.0
}

// reoptimizePriorityDemands removes every demand's flows and re-places
// them at their current placed volume, giving the policy a chance to
// claim capacity freed up elsewhere in this round. Each demand is
// re-placed under a unique FlowClass key so parallel demands between the
// same (src, dst) don't collide inside a shared FlowPolicy's flow map.
func reoptimizePriorityDemands(v *view.View, demands []*Demand, priority int) {
	for _, d := range demands {
		if d.Policy == nil {
			continue
		}
		placedVolume := d.Placed
		d.Policy.RemoveDemand(v.Graph())
		key := demandKey{priority: priority, src: d.Src, dst: d.Dst, demand: d}
		if _, _, err := d.Policy.PlaceDemand(v, d.Src, d.Dst, key, placedVolume, nil, nil); err != nil {
			slog.Debug("schedule:reoptimize error", slog.String("src", d.Src), slog.String("dst", d.Dst), slog.Any("err", err))
		}
		d.Placed = d.Policy.PlacedDemand()
	}
}

// demandKey is a unique, comparable identifier used as a FlowClass during
// reoptimization — the Go analogue of the Python original's
// (demand_class, src_node, dst_node, id(dmd)) tuple key.
type demandKey struct {
	priority int
	src, dst string
	demand   *Demand
}
