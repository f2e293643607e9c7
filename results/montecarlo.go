package results

import "time"

// PatternRecord is one stored failure pattern within a MonteCarloResult —
// spec §6 MonteCarloResult.failure_patterns. Link ids are strings here
// (unlike the engine's native []uint64), matching spec §6's
// FlowIterationResult.failure_state shape, which fixes excluded_links as
// list[string] for serialization.
type PatternRecord struct {
	IterationIndex int
	IsBaseline     bool
	ExcludedNodes  []string
	ExcludedLinks  []string
	FailureID      string
}

// MonteCarloMetadata is spec §6 MonteCarloResult.metadata.
type MonteCarloMetadata struct {
	Iterations       int
	Parallelism      int
	Baseline         bool
	AnalysisFunction string
	PolicyName       string
	ExecutionTime    time.Duration
	UniquePatterns   int
}

// MonteCarloResult is spec §6 MonteCarloResult: the externally-facing,
// serialization-ready wrapper around one Monte Carlo engine run. RunID tags
// the batch for correlating logs across a parallel run (DOMAIN STACK:
// github.com/google/uuid — stamped by the montecarlo package's result
// adapter, which constructs this type from its own internal Result shape).
type MonteCarloResult struct {
	RunID           string
	Results         []any
	FailurePatterns []PatternRecord
	Metadata        MonteCarloMetadata
}
