package montecarlo

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/networmix/netgraph/results"
)

// BuildResult adapts this package's internal Result (C8's engine return
// shape) into the externally-facing spec §6 results.MonteCarloResult,
// stamping a fresh run id (DOMAIN STACK: github.com/google/uuid) and
// recording the analysis function / policy names the engine itself does
// not carry.
func BuildResult(r Result, analysisFunction, policyName string) results.MonteCarloResult {
	patterns := make([]results.PatternRecord, len(r.FailurePatterns))
	for i, p := range r.FailurePatterns {
		patterns[i] = results.PatternRecord{
			IterationIndex: p.IterationIndex,
			IsBaseline:     p.IsBaseline,
			ExcludedNodes:  p.ExcludedNodes,
			ExcludedLinks:  stringifyLinkIDs(p.ExcludedLinks),
			FailureID:      p.FailureID,
		}
	}

	return results.MonteCarloResult{
		RunID:           uuid.NewString(),
		Results:         r.Results,
		FailurePatterns: patterns,
		Metadata: results.MonteCarloMetadata{
			Iterations:       r.Metadata.Iterations,
			Parallelism:      r.Metadata.Parallelism,
			Baseline:         r.Metadata.Baseline,
			AnalysisFunction: analysisFunction,
			PolicyName:       policyName,
			ExecutionTime:    r.Metadata.ExecutionTime,
			UniquePatterns:   r.Metadata.UniquePatterns,
		},
	}
}

func stringifyLinkIDs(ids []uint64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatUint(id, 10)
	}
	return out
}
