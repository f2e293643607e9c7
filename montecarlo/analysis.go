package montecarlo

import (
	"math"

	"github.com/networmix/netgraph/base"
	"github.com/networmix/netgraph/capacity"
	"github.com/networmix/netgraph/core"
	"github.com/networmix/netgraph/placement"
	"github.com/networmix/netgraph/policy"
	"github.com/networmix/netgraph/results"
	"github.com/networmix/netgraph/schedule"
	"github.com/networmix/netgraph/spf"
	"github.com/networmix/netgraph/view"
)

// maxFlowTiers bounds the number of successive min-cost-with-residual-
// capacity augmentation tiers MaxFlowAnalysis's full-max-flow mode will
// drive: each tier saturates at least one link, so this is generous for
// any graph this module is expected to size.
const maxFlowTiers = 10000

// MaxFlowAnalysisOptions configures MaxFlowAnalysis — the Go analogue of
// the original's max_flow_analysis(**kwargs).
type MaxFlowAnalysisOptions struct {
	Source, Sink string
	// ShortestPath restricts the flow to the single lowest-cost DAG
	// between Source and Sink (one capacity.Solve call). When false, the
	// full max flow is found by repeatedly running spf.Run with a
	// capacity-aware selector and placing the feasible volume on each
	// resulting min-cost DAG until no path with residual capacity remains
	// — successive shortest augmenting paths, matching the original's
	// network_view.max_flow_with_summary.
	ShortestPath       bool
	FlowPlacement      base.FlowPlacement
	IncludeFlowDetails bool
}

// MaxFlowAnalysis computes the maximum flow between Source and Sink — spec
// §4.9's "max-flow analysis" convenience, adapted to Go: source/sink are a
// single resolved node pair rather than the original's source_regex/
// sink_regex/mode=combine|pairwise node-group selection, since group
// resolution is a Network-layer concern (external collaborator per spec
// §6, the same boundary already drawn for schedule's Demand and msd's
// DemandTemplate). A caller driving "combine"/"pairwise" semantics over
// regex-selected node groups resolves those groups itself and issues one
// MaxFlowAnalysis call per resulting (source, sink) pair.
func MaxFlowAnalysis(v *view.View, opts MaxFlowAnalysisOptions) (results.FlowIterationResult, error) {
	var placed float64
	costDist := map[float64]float64{}

	if opts.ShortestPath {
		cost, pred, err := spf.Run(v, func(o *spf.Options) { o.Source = opts.Source })
		if err != nil {
			return results.FlowIterationResult{}, err
		}
		feasible, _, err := capacity.Solve(v, pred, opts.Source, opts.Sink, opts.FlowPlacement)
		if err != nil {
			return results.FlowIterationResult{}, err
		}
		placed = feasible
		if opts.IncludeFlowDetails && feasible > 0 {
			if c, ok := cost[opts.Sink]; ok {
				costDist[c] = feasible
			}
		}
	} else {
		selector := spf.NewSelector(base.AllMinCostWithCapRemaining, base.MinCap, nil)
		for tier := 0; tier < maxFlowTiers; tier++ {
			cost, pred, err := spf.Run(v, func(o *spf.Options) {
				o.Source = opts.Source
				o.Selector = selector
			})
			if err != nil {
				return results.FlowIterationResult{}, err
			}
			if _, reachable := pred[opts.Sink]; !reachable {
				break
			}
			flowID := core.FlowID{Src: opts.Source, Dst: opts.Sink, Class: "max_flow_analysis", Seq: uint64(tier)}
			meta, err := placement.Place(v, pred, opts.Source, opts.Sink, math.Inf(1), flowID, opts.FlowPlacement)
			if err != nil {
				return results.FlowIterationResult{}, err
			}
			if meta.PlacedFlow < base.MinFlow {
				break
			}
			placed += meta.PlacedFlow
			if opts.IncludeFlowDetails {
				if c, ok := cost[opts.Sink]; ok {
					costDist[c] += meta.PlacedFlow
				}
			}
		}
	}

	entry := results.FlowEntry{
		Source:      opts.Source,
		Destination: opts.Sink,
		Demand:      placed,
		Placed:      placed,
		Dropped:     0,
	}
	if opts.IncludeFlowDetails {
		entry.CostDistribution = costDist
	}

	summary := results.SummarizeFlows([]results.FlowEntry{entry})
	return results.FlowIterationResult{Flows: []results.FlowEntry{entry}, Summary: summary}, nil
}

// DemandTemplate is one demand in a DemandPlacementAnalysis request —
// already resolved to a concrete (src, dst) pair, mirroring msd's
// DemandTemplate scope decision.
type DemandTemplate struct {
	Src, Dst  string
	Priority  int
	Volume    float64
	NewPolicy func() (*policy.FlowPolicy, error)
}

// DemandPlacementAnalysisOptions configures DemandPlacementAnalysis.
type DemandPlacementAnalysisOptions struct {
	PlacementRounds    int
	IncludeFlowDetails bool
	IncludeUsedEdges   bool
}

// DemandPlacementAnalysis places a fixed set of demands against v and
// reports one FlowEntry per demand plus aggregated iteration-level engine
// metrics in Data["iteration_metrics"] — spec §4.9's "demand placement
// analysis" convenience. demands is already expanded and concrete, the
// same scope divergence as MaxFlowAnalysis: the original's
// demands_config/TrafficManager matrix expansion is a Network-layer
// concern out of this module's scope.
func DemandPlacementAnalysis(v *view.View, demands []DemandTemplate, opts DemandPlacementAnalysisOptions) (results.FlowIterationResult, error) {
	scheduled := make([]*schedule.Demand, 0, len(demands))
	for _, dt := range demands {
		p, err := dt.NewPolicy()
		if err != nil {
			return results.FlowIterationResult{}, err
		}
		scheduled = append(scheduled, &schedule.Demand{
			Priority: dt.Priority,
			Src:      dt.Src,
			Dst:      dt.Dst,
			Volume:   dt.Volume,
			Policy:   p,
		})
	}

	rounds := opts.PlacementRounds
	if rounds <= 0 {
		rounds = 2
	}
	schedule.PlaceDemandsRoundRobin(v, scheduled, rounds, false)

	iterationMetrics := map[string]float64{
		"spf_calls_total":        0,
		"flows_created_total":    0,
		"reopt_calls_total":      0,
		"place_iterations_total": 0,
	}

	entries := make([]results.FlowEntry, 0, len(scheduled))
	for _, d := range scheduled {
		entry := results.FlowEntry{
			Source:      d.Src,
			Destination: d.Dst,
			Priority:    d.Priority,
			Demand:      d.Volume,
			Placed:      d.Placed,
			Dropped:     d.Volume - d.Placed,
			Data:        map[string]any{},
		}

		if d.Policy != nil {
			if opts.IncludeFlowDetails {
				entry.CostDistribution = d.Policy.CostDistribution()
			}
			if opts.IncludeUsedEdges {
				if edges := d.Policy.UsedLinks(); len(edges) > 0 {
					entry.Data["edges"] = edges
					entry.Data["edges_kind"] = "used"
				}
			}
			totals := d.Policy.GetMetrics()
			entry.Data["policy_metrics"] = totals
			for key := range iterationMetrics {
				if val, ok := totals[key]; ok {
					iterationMetrics[key] += val
				}
			}
		}

		entries = append(entries, entry)
	}

	summary := results.SummarizeFlows(entries)
	return results.FlowIterationResult{
		Flows:   entries,
		Summary: summary,
		Data:    map[string]any{"iteration_metrics": iterationMetrics},
	}, nil
}
