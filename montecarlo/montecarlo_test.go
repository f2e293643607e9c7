package montecarlo_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networmix/netgraph/core"
	"github.com/networmix/netgraph/failure"
	"github.com/networmix/netgraph/montecarlo"
	"github.com/networmix/netgraph/view"
)

func buildGraph(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	require.NoError(t, g.AddNode("S", nil))
	require.NoError(t, g.AddNode("T", nil))
	_, err := g.AddLink("S", "T", 10, 1, nil)
	require.NoError(t, err)
	return g
}

func countReachable(v *view.View) (any, error) {
	return len(v.Nodes()), nil
}

func TestRun_noPolicyRunsExactlyOneIteration(t *testing.T) {
	g := buildGraph(t)
	res, err := montecarlo.Run(g, nil, nil, montecarlo.Config{Iterations: 1}, countReachable)
	require.NoError(t, err)
	assert.Len(t, res.Results, 1)
	assert.Equal(t, 1, res.Metadata.UniquePatterns)
}

func TestRun_iterationsWithoutPolicyIsRejected(t *testing.T) {
	g := buildGraph(t)
	_, err := montecarlo.Run(g, nil, nil, montecarlo.Config{Iterations: 5}, countReachable)
	assert.ErrorIs(t, err, montecarlo.ErrIterationsWithoutPolicy)
}

func TestRun_baselineRequiresAtLeastTwoIterations(t *testing.T) {
	g := buildGraph(t)
	seed := int64(1)
	policy := &failure.Policy{
		Rules: []failure.Rule{{Scope: failure.ScopeNode, Type: failure.RuleAll}},
		Seed:  &seed,
	}
	_, err := montecarlo.Run(g, policy, nil, montecarlo.Config{Iterations: 1, Baseline: true}, countReachable)
	assert.ErrorIs(t, err, montecarlo.ErrBaselineNeedsTwoIterations)
}

func TestRun_baselineIterationUsesNoExclusions(t *testing.T) {
	g := buildGraph(t)
	seed := int64(1)
	policy := &failure.Policy{
		Rules: []failure.Rule{{Scope: failure.ScopeNode, Type: failure.RuleAll}},
		Seed:  &seed,
	}
	res, err := montecarlo.Run(g, policy, nil, montecarlo.Config{Iterations: 2, Baseline: true}, countReachable)
	require.NoError(t, err)
	require.Len(t, res.Results, 2)
	assert.Equal(t, 2, res.Results[0])
	assert.Equal(t, "baseline", res.FailureIDs[0])
}

func TestRun_deduplicatesIdenticalExclusionPatternsAcrossIterations(t *testing.T) {
	g := buildGraph(t)
	seed := int64(99)
	policy := &failure.Policy{
		Rules: []failure.Rule{{Scope: failure.ScopeNode, Type: failure.RuleAll}},
		Seed:  &seed,
	}

	var calls int64
	counting := func(v *view.View) (any, error) {
		atomic.AddInt64(&calls, 1)
		return len(v.Nodes()), nil
	}

	res, err := montecarlo.Run(g, policy, nil, montecarlo.Config{Iterations: 5, Seed: &seed}, counting)
	require.NoError(t, err)
	assert.Len(t, res.Results, 5)
	// RuleAll with a fixed seed selects the same nodes every iteration, so
	// every iteration collapses into a single unique pattern.
	assert.Equal(t, 1, res.Metadata.UniquePatterns)
	assert.EqualValues(t, 1, calls)
}

func TestRun_parallelExecutionMatchesSerialResults(t *testing.T) {
	g := buildGraph(t)
	seed := int64(5)
	policy := &failure.Policy{
		Rules: []failure.Rule{{Scope: failure.ScopeNode, Type: failure.RuleChoice, Count: 1}},
		Seed:  &seed,
	}

	serial, err := montecarlo.Run(g, policy, nil, montecarlo.Config{Iterations: 4, Seed: &seed, Parallelism: 1}, countReachable)
	require.NoError(t, err)
	parallel, err := montecarlo.Run(g, policy, nil, montecarlo.Config{Iterations: 4, Seed: &seed, Parallelism: 4}, countReachable)
	require.NoError(t, err)

	assert.Equal(t, serial.Results, parallel.Results)
	assert.Equal(t, serial.FailureIDs, parallel.FailureIDs)
}

func TestRun_storeFailurePatternsPopulatesPerIterationDetail(t *testing.T) {
	g := buildGraph(t)
	seed := int64(3)
	policy := &failure.Policy{
		Rules: []failure.Rule{{Scope: failure.ScopeNode, Type: failure.RuleAll}},
		Seed:  &seed,
	}
	res, err := montecarlo.Run(g, policy, nil, montecarlo.Config{Iterations: 2, Seed: &seed, StoreFailurePatterns: true}, countReachable)
	require.NoError(t, err)
	require.Len(t, res.FailurePatterns, 2)
	assert.Equal(t, 0, res.FailurePatterns[0].IterationIndex)
}
