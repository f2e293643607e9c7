package msd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networmix/netgraph/core"
	"github.com/networmix/netgraph/msd"
	"github.com/networmix/netgraph/policy"
)

func buildGraph(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, id := range []string{"S", "A", "T"} {
		require.NoError(t, g.AddNode(id, nil))
	}
	_, err := g.AddLink("S", "A", 10, 1, nil)
	require.NoError(t, err)
	_, err = g.AddLink("A", "T", 10, 1, nil)
	require.NoError(t, err)
	return g
}

func demandTemplates(volume float64) []msd.DemandTemplate {
	return []msd.DemandTemplate{
		{
			Src:      "S",
			Dst:      "T",
			Priority: 0,
			Volume:   volume,
			NewPolicy: func() (*policy.FlowPolicy, error) {
				return policy.GetFlowPolicy(policy.ShortestPathsWCMP)
			},
		},
	}
}

func TestSearch_rejectsSeedsPerAlphaBelowOne(t *testing.T) {
	g := buildGraph(t)
	cfg := msd.DefaultConfig()
	cfg.SeedsPerAlpha = 0
	_, err := msd.Search(g, demandTemplates(10), cfg)
	assert.ErrorIs(t, err, msd.ErrSeedsPerAlphaTooLow)
}

func TestSearch_rejectsGrowthFactorAtOrBelowOne(t *testing.T) {
	g := buildGraph(t)
	cfg := msd.DefaultConfig()
	cfg.GrowthFactor = 1.0
	_, err := msd.Search(g, demandTemplates(10), cfg)
	assert.ErrorIs(t, err, msd.ErrGrowthFactorTooLow)
}

func TestSearch_rejectsNonPositiveResolution(t *testing.T) {
	g := buildGraph(t)
	cfg := msd.DefaultConfig()
	cfg.Resolution = 0
	_, err := msd.Search(g, demandTemplates(10), cfg)
	assert.ErrorIs(t, err, msd.ErrResolutionNotPositive)
}

func TestSearch_findsAlphaStarAtBottleneckCapacity(t *testing.T) {
	g := buildGraph(t)
	cfg := msd.DefaultConfig()
	cfg.AlphaStart = 1.0
	cfg.Resolution = 0.05

	// Demand template at volume 5 against a 10-unit bottleneck: the
	// largest feasible scaling factor is alpha == 2.0 (5 * 2 == 10).
	res, err := msd.Search(g, demandTemplates(5), cfg)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.AlphaStar, cfg.Resolution)
	assert.NotEmpty(t, res.Probes)
}

func TestSearch_growsBracketWhenInitialAlphaIsFeasible(t *testing.T) {
	g := buildGraph(t)
	cfg := msd.DefaultConfig()
	cfg.AlphaStart = 0.1
	cfg.Resolution = 0.05

	res, err := msd.Search(g, demandTemplates(5), cfg)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.AlphaStar, cfg.Resolution)
}

func TestSearch_shrinksBracketWhenInitialAlphaIsInfeasible(t *testing.T) {
	g := buildGraph(t)
	cfg := msd.DefaultConfig()
	cfg.AlphaStart = 100.0
	cfg.Resolution = 0.05

	res, err := msd.Search(g, demandTemplates(5), cfg)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.AlphaStar, cfg.Resolution)
}

func TestSearch_noFeasibleAlphaAboveMinIsRejected(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("S", nil))
	require.NoError(t, g.AddNode("T", nil))
	// No link at all between S and T: every alpha above zero is infeasible.
	cfg := msd.DefaultConfig()
	cfg.AlphaStart = 1.0
	cfg.AlphaMin = 0.5
	cfg.MaxBracketIters = 4

	_, err := msd.Search(g, demandTemplates(5), cfg)
	assert.ErrorIs(t, err, msd.ErrNoFeasibleAlpha)
}

func TestSearch_recordsSeedVotingDetailPerProbe(t *testing.T) {
	g := buildGraph(t)
	cfg := msd.DefaultConfig()
	cfg.SeedsPerAlpha = 3
	cfg.Resolution = 0.1

	res, err := msd.Search(g, demandTemplates(5), cfg)
	require.NoError(t, err)
	require.NotEmpty(t, res.Probes)
	for _, p := range res.Probes {
		assert.Equal(t, 3, p.Seeds)
		// Placement here is deterministic given a fixed FlowPolicy preset,
		// so every seed should agree with the overall feasibility verdict.
		if p.Feasible {
			assert.Equal(t, 3, p.FeasibleSeeds)
		} else {
			assert.Equal(t, 0, p.FeasibleSeeds)
		}
	}
}
