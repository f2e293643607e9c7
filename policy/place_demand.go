package policy

import (
	"log/slog"
	"math"

	"github.com/networmix/netgraph/base"
	"github.com/networmix/netgraph/core"
	"github.com/networmix/netgraph/spf"
	"github.com/networmix/netgraph/view"
)

// PlaceDemand places volume units of demand from src to dst on v's graph,
// creating or reoptimizing flows as needed per the configured policy (spec
// §4.4/§4.5). targetFlowVolume, if non-nil, caps how much any single flow
// absorbs per iteration; it defaults to volume. minFlow, if non-nil,
// overrides EdgeSelectValue for capacity-aware selectors during path
// search.
func (p *FlowPolicy) PlaceDemand(v *view.View, src, dst string, class any, volume float64, targetFlowVolume *float64, minFlow *float64) (placedTotal, remaining float64, err error) {
	p.pruneStaleFlows(v.Graph())

	if len(p.flows) == 0 {
		if err := p.createFlows(v, src, dst, class, minFlow); err != nil {
			return 0, volume, err
		}
	}

	queue := append([]core.FlowID{}, p.flowOrder...)
	target := volume
	if targetFlowVolume != nil {
		target = *targetFlowVolume
	}

	totalsBefore := cloneMetrics(p.metricsTotals)
	initialRequest := volume

	var totalPlaced float64
	var consecutiveNoProgress, totalIterations int
	recent := make([]float64, 0, p.DiminishingReturnsWindow)
	cutoffTriggered := false

	for volume >= base.MinFlow && len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		f, ok := p.flows[idx]
		if !ok {
			continue
		}

		toPlace := math.Min(target, volume)
		placed, _, perr := f.PlaceFlow(v, toPlace, p.FlowPlacement)
		if perr != nil {
			return totalPlaced, volume, perr
		}
		volume -= placed
		totalPlaced += placed
		totalIterations++
		recent = append(recent, placed)
		if len(recent) > p.DiminishingReturnsWindow {
			recent = recent[1:]
		}
		p.metricsTotals["place_iterations_total"]++

		if placed < base.MinFlow {
			consecutiveNoProgress++
			if consecutiveNoProgress == 1 || consecutiveNoProgress%25 == 0 {
				p.logger.Debug("place_demand no-progress",
					slog.String("src", src), slog.String("dst", dst),
					slog.Float64("vol_left", volume), slog.Int("flows", len(p.flows)),
					slog.Int("queue", len(queue)), slog.Int("iters", totalIterations))
			}
			if consecutiveNoProgress >= p.MaxNoProgressIterations {
				return totalPlaced, volume, ErrInfiniteLoop
			}
		} else {
			consecutiveNoProgress = 0
		}

		if totalIterations > p.MaxTotalIterations {
			return totalPlaced, volume, ErrMaxIterationsExceeded
		}

		if p.DiminishingReturnsEnabled && len(recent) == p.DiminishingReturnsWindow {
			var sum float64
			for _, r := range recent {
				sum += r
			}
			threshold := math.Max(base.MinFlow, p.DiminishingReturnsEpsilonFrac*initialRequest)
			if sum < threshold {
				p.logger.Debug("place_demand cutoff",
					slog.String("src", src), slog.String("dst", dst),
					slog.Float64("recent_sum", sum), slog.Float64("threshold", threshold))
				cutoffTriggered = true
				break
			}
		}

		if target-f.PlacedFlow >= base.MinFlow && len(p.StaticPaths) == 0 {
			var newFlow *Flow
			if p.MaxFlowCount == nil || len(p.flows) < *p.MaxFlowCount {
				nonCapAware := p.EdgeSelect == base.AllMinCost || p.EdgeSelect == base.SingleMinCost
				if placed < base.MinFlow && p.FlowPlacement == base.Proportional && nonCapAware {
					newFlow = nil
				} else {
					newFlow, err = p.createFlow(v, src, dst, class, nil, nil)
					if err != nil {
						return totalPlaced, volume, err
					}
				}
			} else {
				newFlow, err = p.reoptimizeFlow(v, f.Index, base.MinFlow)
				if err != nil {
					return totalPlaced, volume, err
				}
			}
			if newFlow != nil {
				queue = append(queue, newFlow.Index)
			}
		}
	}

	if p.FlowPlacement == base.EqualBalanced && len(p.flows) > 0 {
		targetEq := p.PlacedDemand() / float64(len(p.flows))
		needsRebalance := false
		for _, f := range p.flows {
			if math.Abs(targetEq-f.PlacedFlow) >= base.MinFlow {
				needsRebalance = true
				break
			}
		}
		if needsRebalance {
			prevReopt := p.ReoptimizeFlowsOnEachPlacement
			p.ReoptimizeFlowsOnEachPlacement = false
			replaced, excess, rerr := p.RebalanceDemand(v, src, dst, class, targetEq)
			p.ReoptimizeFlowsOnEachPlacement = prevReopt
			if rerr != nil {
				return totalPlaced, volume, rerr
			}
			totalPlaced = replaced
			volume += excess
		}
	}

	if p.ReoptimizeFlowsOnEachPlacement {
		for _, idx := range p.flowOrder {
			if _, err := p.reoptimizeFlow(v, idx, 0); err != nil {
				return totalPlaced, volume, err
			}
		}
	}

	totalsAfter := p.metricsTotals
	cutoffFloat := 0.0
	if cutoffTriggered {
		cutoffFloat = 1.0
	}
	p.LastMetrics = map[string]float64{
		"placed":          totalPlaced,
		"remaining":       volume,
		"iterations":      float64(totalIterations),
		"flows_created":   totalsAfter["flows_created_total"] - totalsBefore["flows_created_total"],
		"spf_calls":       totalsAfter["spf_calls_total"] - totalsBefore["spf_calls_total"],
		"reopt_calls":     totalsAfter["reopt_calls_total"] - totalsBefore["reopt_calls_total"],
		"cutoff_triggered": cutoffFloat,
		"initial_request": initialRequest,
	}

	return totalPlaced, volume, nil
}

// RebalanceDemand removes every flow, then re-places the total previously
// placed demand with a per-flow target of targetFlowVolume.
func (p *FlowPolicy) RebalanceDemand(v *view.View, src, dst string, class any, targetFlowVolume float64) (placed, remaining float64, err error) {
	volume := p.PlacedDemand()
	p.RemoveDemand(v.Graph())
	for _, f := range p.flows {
		f.PlacedFlow = 0
	}
	return p.PlaceDemand(v, src, dst, class, volume, &targetFlowVolume, nil)
}

func (p *FlowPolicy) pruneStaleFlows(g *core.Graph) {
	if len(p.flows) == 0 {
		return
	}
	var stale []core.FlowID
	for idx, f := range p.flows {
		for _, lid := range f.Bundle.Links() {
			if !g.HasLinkByID(lid) {
				stale = append(stale, idx)
				break
			}
		}
	}
	for _, idx := range stale {
		delete(p.flows, idx)
		for i, id := range p.flowOrder {
			if id == idx {
				p.flowOrder = append(p.flowOrder[:i], p.flowOrder[i+1:]...)
				break
			}
		}
	}
}

func cloneMetrics(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// DeepCopy returns an independent copy of this policy, including every
// tracked flow, suitable for the repeated snapshot/restore pattern Monte
// Carlo iteration needs (spec §4.8).
func (p *FlowPolicy) DeepCopy() *FlowPolicy {
	cp := &FlowPolicy{
		PathAlg: p.PathAlg, FlowPlacement: p.FlowPlacement, EdgeSelect: p.EdgeSelect,
		Multipath: p.Multipath, MinFlowCount: p.MinFlowCount,
		EdgeSelectFunc: p.EdgeSelectFunc, ReoptimizeFlowsOnEachPlacement: p.ReoptimizeFlowsOnEachPlacement,
		MaxNoProgressIterations: p.MaxNoProgressIterations, MaxTotalIterations: p.MaxTotalIterations,
		DiminishingReturnsEnabled: p.DiminishingReturnsEnabled, DiminishingReturnsWindow: p.DiminishingReturnsWindow,
		DiminishingReturnsEpsilonFrac: p.DiminishingReturnsEpsilonFrac,
		flows:         make(map[core.FlowID]*Flow, len(p.flows)),
		flowOrder:     append([]core.FlowID{}, p.flowOrder...),
		nextFlowID:    p.nextFlowID,
		metricsTotals: cloneMetrics(p.metricsTotals),
		LastMetrics:   cloneMetrics(p.LastMetrics),
		selectorCache: map[selectorCacheKey]spf.Selector{},
		logger:        p.logger,
	}
	if p.MaxFlowCount != nil {
		v := *p.MaxFlowCount
		cp.MaxFlowCount = &v
	}
	if p.MaxPathCost != nil {
		v := *p.MaxPathCost
		cp.MaxPathCost = &v
	}
	if p.MaxPathCostFactor != nil {
		v := *p.MaxPathCostFactor
		cp.MaxPathCostFactor = &v
	}
	if p.EdgeSelectValue != nil {
		v := *p.EdgeSelectValue
		cp.EdgeSelectValue = &v
	}
	if p.bestPathCost != nil {
		v := *p.bestPathCost
		cp.bestPathCost = &v
	}
	for _, sp := range p.StaticPaths {
		cp.StaticPaths = append(cp.StaticPaths, sp.clone())
	}
	for idx, f := range p.flows {
		cp.flows[idx] = f.clone()
	}
	return cp
}
