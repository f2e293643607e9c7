package capacity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networmix/netgraph/base"
	"github.com/networmix/netgraph/capacity"
	"github.com/networmix/netgraph/core"
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

func run(t *testing.T, g *core.Graph) (*view.View, spf.PredDAG) {
	t.Helper()
	v := view.Unmasked(g)
	sel := spf.NewSelector(base.AllMinCost, 0, nil)
	_, pred, err := spf.Run(v, spf.WithSelector(sel), withSource("S"))
	require.NoError(t, err)
	return v, pred
}

func withSource(id string) spf.Option {
	return func(o *spf.Options) { o.Source = id }
}

func TestSolve_proportionalUsesFullResidualOnEachPath(t *testing.T) {
	g := buildDiamond(t)
	v, pred := run(t, g)

	feasible, fractions, err := capacity.Solve(v, pred, "S", "T", base.Proportional)
	require.NoError(t, err)
	assert.Equal(t, 40.0, feasible)
	assert.InDelta(t, 10.0/40.0, fractions["S"]["A"], 1e-9)
	assert.InDelta(t, 30.0/40.0, fractions["S"]["B"], 1e-9)
}

func TestSolve_equalBalancedSplitsEvenlyAtFanout(t *testing.T) {
	g := buildDiamond(t)
	v, pred := run(t, g)

	feasible, fractions, err := capacity.Solve(v, pred, "S", "T", base.EqualBalanced)
	require.NoError(t, err)
	// Nominal split is 50/50 at S; the tighter 10-capacity arm caps the
	// scaled volume at 20 total (10 on each of the two equal shares).
	assert.Equal(t, 20.0, feasible)
	assert.InDelta(t, 0.5, fractions["S"]["A"], 1e-9)
	assert.InDelta(t, 0.5, fractions["S"]["B"], 1e-9)
}

func TestSolve_degenerateSameNode(t *testing.T) {
	g := buildDiamond(t)
	v, pred := run(t, g)

	feasible, fractions, err := capacity.Solve(v, pred, "S", "S", base.Proportional)
	require.NoError(t, err)
	assert.Zero(t, feasible)
	assert.Empty(t, fractions)
}

func TestSolve_unreachableDestination(t *testing.T) {
	g := buildDiamond(t)
	require.NoError(t, g.AddNode("Z", nil))
	v, pred := run(t, g)

	feasible, fractions, err := capacity.Solve(v, pred, "S", "Z", base.Proportional)
	require.NoError(t, err)
	assert.Zero(t, feasible)
	assert.Empty(t, fractions)
}
