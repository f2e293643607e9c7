package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networmix/netgraph/base"
	"github.com/networmix/netgraph/core"
	"github.com/networmix/netgraph/policy"
	"github.com/networmix/netgraph/view"
)

func buildDiamond(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, id := range []string{"S", "A", "B", "T"} {
		require.NoError(t, g.AddNode(id, nil))
	}
	_, err := g.AddLink("S", "A", 10, 1, nil)
	require.NoError(t, err)
	_, err = g.AddLink("A", "T", 10, 1, nil)
	require.NoError(t, err)
	_, err = g.AddLink("S", "B", 30, 1, nil)
	require.NoError(t, err)
	_, err = g.AddLink("B", "T", 30, 1, nil)
	require.NoError(t, err)
	return g
}

func TestGetFlowPolicy_shortestPathsWCMPPlacesFullDemand(t *testing.T) {
	g := buildDiamond(t)
	v := view.Unmasked(g)

	p, err := policy.GetFlowPolicy(policy.ShortestPathsWCMP)
	require.NoError(t, err)

	placed, remaining, err := p.PlaceDemand(v, "S", "T", nil, 40, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 40.0, placed)
	assert.Zero(t, remaining)
	assert.Equal(t, 1, p.FlowCount())
}

func TestPlaceDemand_requestExceedingCapacityLeavesRemainder(t *testing.T) {
	g := buildDiamond(t)
	v := view.Unmasked(g)

	p, err := policy.GetFlowPolicy(policy.ShortestPathsWCMP)
	require.NoError(t, err)

	placed, remaining, err := p.PlaceDemand(v, "S", "T", nil, 100, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 40.0, placed)
	assert.Equal(t, 60.0, remaining)
}

func TestNewFlowPolicy_equalBalancedRequiresMaxFlowCount(t *testing.T) {
	_, err := policy.NewFlowPolicy(base.Spf, base.EqualBalanced, base.AllMinCost, true)
	assert.ErrorIs(t, err, policy.ErrEqualBalancedNeedsMaxFlowCount)
}

func TestRemoveDemand_zeroesPlacedFlow(t *testing.T) {
	g := buildDiamond(t)
	v := view.Unmasked(g)

	p, err := policy.GetFlowPolicy(policy.ShortestPathsWCMP)
	require.NoError(t, err)
	_, _, err = p.PlaceDemand(v, "S", "T", nil, 40, nil, nil)
	require.NoError(t, err)

	p.RemoveDemand(g)
	assert.Zero(t, p.PlacedDemand())
}
