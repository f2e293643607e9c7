package results_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/networmix/netgraph/results"
)

func TestSummarizeFlows_emptyDemandHasRatioOne(t *testing.T) {
	s := results.SummarizeFlows(nil)
	assert.Equal(t, 1.0, s.OverallRatio)
	assert.Zero(t, s.NumFlows)
}

func TestSummarizeFlows_aggregatesDemandPlacedAndDropped(t *testing.T) {
	entries := []results.FlowEntry{
		{Source: "A", Destination: "B", Demand: 10, Placed: 10, Dropped: 0},
		{Source: "C", Destination: "D", Demand: 10, Placed: 4, Dropped: 6},
	}
	s := results.SummarizeFlows(entries)
	assert.Equal(t, 20.0, s.TotalDemand)
	assert.Equal(t, 14.0, s.TotalPlaced)
	assert.Equal(t, 0.7, s.OverallRatio)
	assert.Equal(t, 1, s.DroppedFlows)
	assert.Equal(t, 2, s.NumFlows)
}

func TestBuildCapacityEnvelope_computesRangeAndMoments(t *testing.T) {
	env := results.BuildCapacityEnvelope("S", "T", "combine", []float64{10, 10, 20, 40})
	assert.Equal(t, 10.0, env.Min)
	assert.Equal(t, 40.0, env.Max)
	assert.InDelta(t, 20.0, env.Mean, 1e-9)
	assert.Equal(t, 2, env.Frequencies[10.0])
	assert.Equal(t, 1, env.Frequencies[20.0])
}

func TestBuildCapacityEnvelope_emptySamplesIsZeroValue(t *testing.T) {
	env := results.BuildCapacityEnvelope("S", "T", "combine", nil)
	assert.Zero(t, env.Min)
	assert.Zero(t, env.Max)
	assert.Empty(t, env.Frequencies)
}
