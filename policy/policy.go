package policy

import (
	"log/slog"

	"github.com/networmix/netgraph/base"
	"github.com/networmix/netgraph/core"
	"github.com/networmix/netgraph/spf"
	"github.com/networmix/netgraph/view"
)

// Option configures a FlowPolicy at construction time.
type Option func(*FlowPolicy)

func WithMinFlowCount(n int) Option { return func(p *FlowPolicy) { p.MinFlowCount = n } }
func WithMaxFlowCount(n int) Option { return func(p *FlowPolicy) { v := n; p.MaxFlowCount = &v } }
func WithMaxPathCost(c float64) Option {
	return func(p *FlowPolicy) { v := c; p.MaxPathCost = &v }
}
func WithMaxPathCostFactor(f float64) Option {
	return func(p *FlowPolicy) { v := f; p.MaxPathCostFactor = &v }
}
func WithStaticPaths(paths []PathBundle) Option { return func(p *FlowPolicy) { p.StaticPaths = paths } }
func WithEdgeSelectFunc(sel spf.Selector) Option {
	return func(p *FlowPolicy) { p.EdgeSelectFunc = sel }
}
func WithEdgeSelectValue(v float64) Option {
	return func(p *FlowPolicy) { val := v; p.EdgeSelectValue = &val }
}
func WithReoptimizeOnEachPlacement(b bool) Option {
	return func(p *FlowPolicy) { p.ReoptimizeFlowsOnEachPlacement = b }
}
func WithMaxNoProgressIterations(n int) Option {
	return func(p *FlowPolicy) { p.MaxNoProgressIterations = n }
}
func WithMaxTotalIterations(n int) Option { return func(p *FlowPolicy) { p.MaxTotalIterations = n } }
func WithDiminishingReturns(enabled bool, window int, epsilonFrac float64) Option {
	return func(p *FlowPolicy) {
		p.DiminishingReturnsEnabled = enabled
		p.DiminishingReturnsWindow = window
		p.DiminishingReturnsEpsilonFrac = epsilonFrac
	}
}

// FlowPolicy creates, places, rebalances, and removes flows on a network
// graph: it converts a demand into one or more Flow objects subject to
// capacity constraints and the configured path-selection, edge-selection,
// and placement strategy (spec §4.4).
type FlowPolicy struct {
	PathAlg                        base.PathAlg
	FlowPlacement                  base.FlowPlacement
	EdgeSelect                     base.EdgeSelect
	Multipath                      bool
	MinFlowCount                   int
	MaxFlowCount                   *int
	MaxPathCost                    *float64
	MaxPathCostFactor              *float64
	StaticPaths                    []PathBundle
	EdgeSelectFunc                 spf.Selector
	EdgeSelectValue                *float64
	ReoptimizeFlowsOnEachPlacement bool
	MaxNoProgressIterations        int
	MaxTotalIterations             int
	DiminishingReturnsEnabled      bool
	DiminishingReturnsWindow       int
	DiminishingReturnsEpsilonFrac  float64

	flows          map[core.FlowID]*Flow
	flowOrder      []core.FlowID
	bestPathCost   *float64
	nextFlowID     uint64
	metricsTotals  map[string]float64
	LastMetrics    map[string]float64
	selectorCache  map[selectorCacheKey]spf.Selector
	lastPathBundle *PathBundle
	logger         *slog.Logger
}

type selectorCacheKey struct {
	mode  base.EdgeSelect
	value float64
	unset bool
}

// NewFlowPolicy constructs a FlowPolicy, validating the static-paths /
// max-flow-count and EQUAL_BALANCED / max-flow-count invariants spec §4.4
// requires.
func NewFlowPolicy(pathAlg base.PathAlg, placement base.FlowPlacement, edgeSelect base.EdgeSelect, multipath bool, opts ...Option) (*FlowPolicy, error) {
	p := &FlowPolicy{
		PathAlg:                       pathAlg,
		FlowPlacement:                 placement,
		EdgeSelect:                    edgeSelect,
		Multipath:                     multipath,
		MinFlowCount:                  1,
		MaxNoProgressIterations:       100,
		MaxTotalIterations:            10000,
		DiminishingReturnsEnabled:     true,
		DiminishingReturnsWindow:      8,
		DiminishingReturnsEpsilonFrac: 1e-3,
		flows:                        map[core.FlowID]*Flow{},
		metricsTotals: map[string]float64{
			"spf_calls_total": 0, "flows_created_total": 0,
			"reopt_calls_total": 0, "place_iterations_total": 0,
		},
		LastMetrics:   map[string]float64{},
		selectorCache: map[selectorCacheKey]spf.Selector{},
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if len(p.StaticPaths) > 0 {
		if p.MaxFlowCount != nil && *p.MaxFlowCount != len(p.StaticPaths) {
			return nil, ErrStaticPathCountMismatch
		}
		n := len(p.StaticPaths)
		p.MaxFlowCount = &n
	}
	if p.FlowPlacement == base.EqualBalanced && p.MaxFlowCount == nil {
		return nil, ErrEqualBalancedNeedsMaxFlowCount
	}

	return p, nil
}

// FlowCount returns the number of flows currently tracked.
func (p *FlowPolicy) FlowCount() int { return len(p.flows) }

// PlacedDemand sums the placed volume of every tracked flow.
func (p *FlowPolicy) PlacedDemand() float64 {
	var total float64
	for _, f := range p.flows {
		total += f.PlacedFlow
	}
	return total
}

// GetMetrics returns cumulative placement metrics for this policy's
// lifetime.
func (p *FlowPolicy) GetMetrics() map[string]float64 {
	out := make(map[string]float64, len(p.metricsTotals))
	for k, v := range p.metricsTotals {
		out[k] = v
	}
	return out
}

// CostDistribution sums each tracked flow's placed volume keyed by its
// path bundle's cost, for callers reporting a FlowEntry.cost_distribution
// (spec §6).
func (p *FlowPolicy) CostDistribution() map[float64]float64 {
	out := make(map[float64]float64)
	for _, f := range p.flows {
		if f.PlacedFlow <= 0 {
			continue
		}
		out[f.Bundle.Cost] += f.PlacedFlow
	}
	return out
}

// UsedLinks returns the set of link ids spanned by every tracked flow's
// path bundle, for callers reporting a FlowEntry.data "used edges" set.
func (p *FlowPolicy) UsedLinks() []uint64 {
	seen := make(map[uint64]struct{})
	var out []uint64
	for _, f := range p.flows {
		if f.PlacedFlow <= 0 {
			continue
		}
		for _, id := range f.Bundle.Links() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func (p *FlowPolicy) nextFlowIndex(src, dst string, class any) core.FlowID {
	id := p.nextFlowID
	p.nextFlowID++
	return core.FlowID{Src: src, Dst: dst, Class: class, Seq: id}
}

func mergedView(v *view.View, extraNodes map[string]struct{}, extraLinks map[uint64]struct{}) *view.View {
	if len(extraNodes) == 0 && len(extraLinks) == 0 {
		return v
	}
	nodes := append([]string{}, v.ExcludedNodes()...)
	for n := range extraNodes {
		nodes = append(nodes, n)
	}
	links := append([]uint64{}, v.ExcludedLinks()...)
	for l := range extraLinks {
		links = append(links, l)
	}
	return view.New(v.Graph(), nodes, links)
}

// getPathBundle builds (and caches) the edge Selector for this policy's
// configured mode, runs spf.Run, and converts the result into a
// PathBundle — enforcing MaxPathCost / MaxPathCostFactor along the way.
// A nil, nil result means "no eligible path", not an error.
func (p *FlowPolicy) getPathBundle(v *view.View, src, dst string, minFlow *float64, excludedLinks map[uint64]struct{}, excludedNodes map[string]struct{}) (*PathBundle, error) {
	effective := p.EdgeSelectValue
	if minFlow != nil {
		effective = minFlow
	}

	var sel spf.Selector
	if p.EdgeSelectFunc != nil {
		sel = p.EdgeSelectFunc
	} else {
		key := selectorCacheKey{mode: p.EdgeSelect}
		if effective != nil {
			key.value = *effective
		} else {
			key.unset = true
		}
		cached, ok := p.selectorCache[key]
		if !ok {
			var val float64
			if effective != nil {
				val = *effective
			}
			cached = spf.NewSelector(p.EdgeSelect, val, nil)
			p.selectorCache[key] = cached
		}
		sel = cached
	}

	mv := mergedView(v, excludedNodes, excludedLinks)
	p.metricsTotals["spf_calls_total"]++

	cost, pred, err := spf.Run(mv, spf.WithSelector(sel), func(o *spf.Options) { o.Source = src })
	if err != nil {
		return nil, err
	}

	if _, ok := pred[dst]; !ok {
		return nil, nil
	}
	dstCost := cost[dst]
	if p.bestPathCost == nil || dstCost < *p.bestPathCost {
		bp := dstCost
		p.bestPathCost = &bp
	}
	if p.MaxPathCost != nil || p.MaxPathCostFactor != nil {
		factor := 1.0
		if p.MaxPathCostFactor != nil {
			factor = *p.MaxPathCostFactor
		}
		ceiling := posInf
		if p.MaxPathCost != nil {
			ceiling = *p.MaxPathCost
		}
		bestCeiling := posInf
		if p.bestPathCost != nil {
			bestCeiling = *p.bestPathCost * factor
		}
		limit := ceiling
		if bestCeiling < limit {
			limit = bestCeiling
		}
		if dstCost > limit {
			return nil, nil
		}
	}

	return &PathBundle{Src: src, Dst: dst, Pred: pred, Cost: dstCost}, nil
}

const posInf = 1e18
