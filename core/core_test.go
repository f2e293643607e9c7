package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networmix/netgraph/core"
)

func TestAddNode_duplicate(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("A", nil))
	err := g.AddNode("A", nil)
	assert.ErrorIs(t, err, core.ErrNodeExists)
}

func TestAddLink_monotonicIDs(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("A", nil))
	require.NoError(t, g.AddNode("B", nil))

	id1, err := g.AddLink("A", "B", 10, 1, nil)
	require.NoError(t, err)
	id2, err := g.AddLink("A", "B", 5, 2, nil)
	require.NoError(t, err)

	assert.Less(t, id1, id2)
	assert.Equal(t, []uint64{id1, id2}, g.LinksBetween("A", "B"))
}

func TestAddLink_missingEndpoint(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("A", nil))

	_, err := g.AddLink("A", "B", 1, 1, nil)
	assert.ErrorIs(t, err, core.ErrNodeNotFound)
}

func TestRemoveNode_removesIncidentLinks(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("A", nil))
	require.NoError(t, g.AddNode("B", nil))
	id, err := g.AddLink("A", "B", 1, 1, nil)
	require.NoError(t, err)

	require.NoError(t, g.RemoveNode("B"))
	assert.False(t, g.HasLinkByID(id))
	assert.Equal(t, 0, g.LinkCount())
}

func TestAddFlow_aggregatesOnNodeAndLink(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("A", nil))
	require.NoError(t, g.AddNode("B", nil))
	id, err := g.AddLink("A", "B", 10, 1, nil)
	require.NoError(t, err)

	fid := core.FlowID{Src: "A", Dst: "B", Class: "ip", Seq: 1}
	require.NoError(t, g.AddFlow(id, fid, 4))

	l, err := g.Link(id)
	require.NoError(t, err)
	assert.Equal(t, 4.0, l.FlowTotal)
	assert.Equal(t, 4.0, l.FlowByID[fid])

	n, err := g.Node("A")
	require.NoError(t, err)
	assert.Equal(t, 4.0, n.FlowTotal)
}

func TestResetFlowUsages(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("A", nil))
	require.NoError(t, g.AddNode("B", nil))
	id, err := g.AddLink("A", "B", 10, 1, nil)
	require.NoError(t, err)

	fid := core.FlowID{Src: "A", Dst: "B", Class: "ip", Seq: 1}
	require.NoError(t, g.AddFlow(id, fid, 4))

	g.ResetFlowUsages()

	l, _ := g.Link(id)
	assert.Equal(t, 0.0, l.FlowTotal)
	assert.Empty(t, l.FlowByID)
}

func TestAddReverse(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("A", nil))
	require.NoError(t, g.AddNode("B", nil))
	_, err := g.AddLink("A", "B", 10, 1, nil)
	require.NoError(t, err)

	require.NoError(t, g.AddReverse())

	assert.Len(t, g.LinksBetween("B", "A"), 1)
	// Idempotent: calling again must not add a second reverse.
	require.NoError(t, g.AddReverse())
	assert.Len(t, g.LinksBetween("B", "A"), 1)
}

func TestClone_isIndependent(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("A", nil))
	require.NoError(t, g.AddNode("B", nil))
	id, err := g.AddLink("A", "B", 10, 1, nil)
	require.NoError(t, err)

	clone := g.Clone()
	fid := core.FlowID{Src: "A", Dst: "B", Class: "ip", Seq: 1}
	require.NoError(t, clone.AddFlow(id, fid, 5))

	orig, _ := g.Link(id)
	assert.Equal(t, 0.0, orig.FlowTotal)
}
