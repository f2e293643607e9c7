package spf

import (
	"sort"

	"github.com/networmix/netgraph/base"
	"github.com/networmix/netgraph/core"
	"github.com/networmix/netgraph/view"
)

// Selector picks, for a given (u, v) and its parallel link IDs, the cost to
// expose for that hop and which of those links are eligible to carry flow
// (spec §4.2). A Selector must be exclusion-agnostic — the View passed to
// it already reflects any masking, and the selector itself applies no
// additional exclusion logic — so that a single Selector instance can be
// cached and reused across many SPF calls with different exclusion sets
// (spec §4.2: "the selector is built once per (mode, select_value) pair and
// cached inside a FlowPolicy... selectors themselves are exclusion-agnostic
// so the cache is reusable").
type Selector func(v *view.View, u, to string, parallel []uint64) (cost float64, eligible []uint64)

// NewSelector builds the Selector for the given mode and select value,
// matching the table in spec §4.2. selectValue is only consulted by the
// two capacity-aware modes; user is only consulted by UserDefined.
func NewSelector(mode base.EdgeSelect, selectValue float64, user Selector) Selector {
	switch mode {
	case base.AllMinCost:
		return allMinCost
	case base.SingleMinCost:
		return singleMinCost
	case base.AllMinCostWithCapRemaining:
		return allMinCostWithCapRemaining(selectValue)
	case base.SingleMinCostWithCapRemainingLoadFactored:
		return singleMinCostWithCapRemainingLoadFactored(selectValue)
	case base.UserDefined:
		return user
	default:
		return allMinCost
	}
}

func eligibleLinks(v *view.View, parallel []uint64) []*core.Link {
	out := make([]*core.Link, 0, len(parallel))
	for _, id := range parallel {
		if v.LinkExcluded(id) {
			continue
		}
		l, err := v.Graph().Link(id)
		if err != nil {
			continue
		}
		out = append(out, l)
	}
	return out
}

func allMinCost(v *view.View, _, _ string, parallel []uint64) (float64, []uint64) {
	links := eligibleLinks(v, parallel)
	if len(links) == 0 {
		return 0, nil
	}
	min := links[0].Cost
	for _, l := range links[1:] {
		if l.Cost < min {
			min = l.Cost
		}
	}
	var eligible []uint64
	for _, l := range links {
		if l.Cost == min {
			eligible = append(eligible, l.ID)
		}
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i] < eligible[j] })
	return min, eligible
}

func singleMinCost(v *view.View, u, to string, parallel []uint64) (float64, []uint64) {
	cost, eligible := allMinCost(v, u, to, parallel)
	if len(eligible) == 0 {
		return cost, nil
	}
	return cost, eligible[:1]
}

func allMinCostWithCapRemaining(selectValue float64) Selector {
	threshold := selectValue
	if threshold < base.MinCap {
		threshold = base.MinCap
	}
	return func(v *view.View, _, _ string, parallel []uint64) (float64, []uint64) {
		links := eligibleLinks(v, parallel)
		var withCap []*core.Link
		for _, l := range links {
			if l.Capacity-l.FlowTotal >= threshold {
				withCap = append(withCap, l)
			}
		}
		if len(withCap) == 0 {
			return 0, nil
		}
		min := withCap[0].Cost
		for _, l := range withCap[1:] {
			if l.Cost < min {
				min = l.Cost
			}
		}
		var eligible []uint64
		for _, l := range withCap {
			if l.Cost == min {
				eligible = append(eligible, l.ID)
			}
		}
		sort.Slice(eligible, func(i, j int) bool { return eligible[i] < eligible[j] })
		return min, eligible
	}
}

func singleMinCostWithCapRemainingLoadFactored(selectValue float64) Selector {
	threshold := selectValue
	if threshold < base.MinCap {
		threshold = base.MinCap
	}
	return func(v *view.View, _, _ string, parallel []uint64) (float64, []uint64) {
		links := eligibleLinks(v, parallel)
		var withCap []*core.Link
		for _, l := range links {
			if l.Capacity-l.FlowTotal >= threshold {
				withCap = append(withCap, l)
			}
		}
		if len(withCap) == 0 {
			return 0, nil
		}
		min := withCap[0].Cost
		for _, l := range withCap[1:] {
			if l.Cost < min {
				min = l.Cost
			}
		}
		var best *core.Link
		for _, l := range withCap {
			if l.Cost != min {
				continue
			}
			if best == nil || l.FlowTotal < best.FlowTotal || (l.FlowTotal == best.FlowTotal && l.ID < best.ID) {
				best = l
			}
		}
		if best == nil {
			return min, nil
		}
		return min, []uint64{best.ID}
	}
}
