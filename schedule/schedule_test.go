package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networmix/netgraph/core"
	"github.com/networmix/netgraph/policy"
	"github.com/networmix/netgraph/schedule"
	"github.com/networmix/netgraph/view"
)

func buildLine(t *testing.T, capacity float64) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	require.NoError(t, g.AddNode("S", nil))
	require.NoError(t, g.AddNode("T", nil))
	_, err := g.AddLink("S", "T", capacity, 1, nil)
	require.NoError(t, err)
	return g
}

func newPolicy(t *testing.T) *policy.FlowPolicy {
	t.Helper()
	p, err := policy.GetFlowPolicy(policy.ShortestPathsWCMP)
	require.NoError(t, err)
	return p
}

func TestPlaceDemandsRoundRobin_higherPriorityClassServedFirst(t *testing.T) {
	g := buildLine(t, 10)
	v := view.Unmasked(g)

	high := &schedule.Demand{Priority: 0, Src: "S", Dst: "T", Volume: 10, Policy: newPolicy(t)}
	low := &schedule.Demand{Priority: 1, Src: "S", Dst: "T", Volume: 10, Policy: newPolicy(t)}

	total := schedule.PlaceDemandsRoundRobin(v, []*schedule.Demand{low, high}, 2, false)

	assert.Equal(t, 10.0, total)
	assert.Equal(t, 10.0, high.Placed)
	assert.Zero(t, low.Placed)
}

func TestPlaceDemandsRoundRobin_samePriorityBothGetSomeCapacity(t *testing.T) {
	g := buildLine(t, 40)
	v := view.Unmasked(g)

	d1 := &schedule.Demand{Priority: 0, Src: "S", Dst: "T", Volume: 30, Policy: newPolicy(t)}
	d2 := &schedule.Demand{Priority: 0, Src: "S", Dst: "T", Volume: 30, Policy: newPolicy(t)}

	total := schedule.PlaceDemandsRoundRobin(v, []*schedule.Demand{d1, d2}, 2, false)

	assert.InDelta(t, 40.0, total, 1e-6)
	assert.InDelta(t, 40.0, d1.Placed+d2.Placed, 1e-6)
}
