package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networmix/netgraph/core"
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

func TestView_excludesNode(t *testing.T) {
	g := buildDiamond(t)
	v := view.New(g, []string{"A"}, nil)

	assert.True(t, v.NodeExcluded("A"))
	assert.False(t, v.NodeExcluded("B"))
	assert.Empty(t, v.OutLinks("A"))
	assert.NotEmpty(t, v.OutLinks("S"))

	// Links incident to an excluded node are excluded transitively.
	for _, lid := range g.OutLinks("S") {
		l, _ := g.Link(lid)
		if l.To == "A" {
			assert.True(t, v.LinkExcluded(lid))
		}
	}
}

func TestView_excludesLinkDirectly(t *testing.T) {
	g := buildDiamond(t)
	ids := g.LinksBetween("S", "A")
	require.Len(t, ids, 1)

	v := view.New(g, nil, []uint64{ids[0]})
	assert.Empty(t, v.LinksBetween("S", "A"))
	assert.NotEmpty(t, v.LinksBetween("S", "B"))
}

func TestUnmasked(t *testing.T) {
	g := buildDiamond(t)
	v := view.Unmasked(g)
	assert.ElementsMatch(t, g.Nodes(), v.Nodes())
}

func TestSelectNodeGroupsByPath_regex(t *testing.T) {
	g := buildDiamond(t)
	v := view.Unmasked(g)

	groups, err := v.SelectNodeGroupsByPath("^(S|T)$")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"S"}, groups["S"])
	assert.ElementsMatch(t, []string{"T"}, groups["T"])
}
