package placement_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networmix/netgraph/base"
	"github.com/networmix/netgraph/core"
	"github.com/networmix/netgraph/placement"
	"github.com/networmix/netgraph/spf"
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

func withSource(id string) spf.Option {
	return func(o *spf.Options) { o.Source = id }
}

func TestPlace_proportionalSaturatesAtFeasibleCapacity(t *testing.T) {
	g := buildDiamond(t)
	v := view.Unmasked(g)
	sel := spf.NewSelector(base.AllMinCost, 0, nil)
	_, pred, err := spf.Run(v, spf.WithSelector(sel), withSource("S"))
	require.NoError(t, err)

	flowID := core.FlowID{Src: "S", Dst: "T", Class: 0, Seq: 1}
	meta, err := placement.Place(v, pred, "S", "T", math.Inf(1), flowID, base.Proportional)
	require.NoError(t, err)
	assert.Equal(t, 40.0, meta.PlacedFlow)
	assert.True(t, math.IsInf(meta.RemainingFlow, 1))

	linkA, err := g.Link(linkFromTo(t, g, "S", "A"))
	require.NoError(t, err)
	assert.InDelta(t, 10.0, linkA.FlowTotal, 1e-9)

	linkB, err := g.Link(linkFromTo(t, g, "S", "B"))
	require.NoError(t, err)
	assert.InDelta(t, 30.0, linkB.FlowTotal, 1e-9)
}

func TestPlace_requestBelowFeasiblePlacesOnlyWhatWasAsked(t *testing.T) {
	g := buildDiamond(t)
	v := view.Unmasked(g)
	sel := spf.NewSelector(base.AllMinCost, 0, nil)
	_, pred, err := spf.Run(v, spf.WithSelector(sel), withSource("S"))
	require.NoError(t, err)

	flowID := core.FlowID{Src: "S", Dst: "T", Class: 0, Seq: 1}
	meta, err := placement.Place(v, pred, "S", "T", 4, flowID, base.Proportional)
	require.NoError(t, err)
	assert.Equal(t, 4.0, meta.PlacedFlow)
	assert.Zero(t, meta.RemainingFlow)
}

func TestPlace_degenerateSameNodePlacesNothing(t *testing.T) {
	g := buildDiamond(t)
	v := view.Unmasked(g)
	sel := spf.NewSelector(base.AllMinCost, 0, nil)
	_, pred, err := spf.Run(v, spf.WithSelector(sel), withSource("S"))
	require.NoError(t, err)

	flowID := core.FlowID{Src: "S", Dst: "S", Class: 0, Seq: 1}
	meta, err := placement.Place(v, pred, "S", "S", 10, flowID, base.Proportional)
	require.NoError(t, err)
	assert.Zero(t, meta.PlacedFlow)
}

func TestRemove_zeroesBookkeepingForOneFlow(t *testing.T) {
	g := buildDiamond(t)
	v := view.Unmasked(g)
	sel := spf.NewSelector(base.AllMinCost, 0, nil)
	_, pred, err := spf.Run(v, spf.WithSelector(sel), withSource("S"))
	require.NoError(t, err)

	flowID := core.FlowID{Src: "S", Dst: "T", Class: 0, Seq: 1}
	_, err = placement.Place(v, pred, "S", "T", 4, flowID, base.Proportional)
	require.NoError(t, err)

	placement.Remove(g, flowID, false)

	linkA, err := g.Link(linkFromTo(t, g, "S", "A"))
	require.NoError(t, err)
	assert.Zero(t, linkA.FlowTotal)
}

func linkFromTo(t *testing.T, g *core.Graph, from, to string) uint64 {
	t.Helper()
	ids := g.LinksBetween(from, to)
	require.Len(t, ids, 1)
	return ids[0]
}
