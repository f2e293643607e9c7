package spf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networmix/netgraph/base"
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

func TestRun_diamondHasTwoPredecessorGroups(t *testing.T) {
	g := buildDiamond(t)
	v := view.Unmasked(g)
	sel := spf.NewSelector(base.AllMinCost, 0, nil)

	cost, pred, err := spf.Run(v, spf.WithSelector(sel), spfSource("S"))
	require.NoError(t, err)

	assert.Equal(t, 2.0, cost["T"])
	assert.Len(t, pred["T"], 2, "both A and B should be equal-cost predecessors of T")
	assert.Empty(t, pred["S"])
}

func TestRun_emptySource(t *testing.T) {
	g := buildDiamond(t)
	v := view.Unmasked(g)
	_, _, err := spf.Run(v)
	assert.ErrorIs(t, err, spf.ErrEmptySource)
}

func TestRun_excludedSourceNotFound(t *testing.T) {
	g := buildDiamond(t)
	v := view.New(g, []string{"S"}, nil)
	_, _, err := spf.Run(v, spfSource("S"))
	assert.ErrorIs(t, err, spf.ErrSourceNotFound)
}

func spfSource(id string) spf.Option {
	return func(o *spf.Options) { o.Source = id }
}
