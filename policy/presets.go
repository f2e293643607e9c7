package policy

import "github.com/networmix/netgraph/base"

// GetFlowPolicy builds one of the five ready-made FlowPolicy presets of
// spec §4.4, matching the Python original's get_flow_policy factory.
func GetFlowPolicy(cfg Config) (*FlowPolicy, error) {
	switch cfg {
	case ShortestPathsECMP:
		// Hop-by-hop equal-cost balanced routing, similar to IP ECMP
		// forwarding: a single flow object, but multipath SPF fans out
		// over every equal-cost parallel path.
		return NewFlowPolicy(base.Spf, base.EqualBalanced, base.AllMinCost, true,
			WithMaxFlowCount(1))
	case ShortestPathsWCMP:
		// Hop-by-hop WCMP: proportional split over equal-cost paths.
		return NewFlowPolicy(base.Spf, base.Proportional, base.AllMinCost, true,
			WithMaxFlowCount(1))
	case TEWCMPUnlimited:
		// Traffic engineering with WCMP and capacity-aware edge selection.
		return NewFlowPolicy(base.Spf, base.Proportional, base.AllMinCostWithCapRemaining, true)
	case TEECMPUpTo256LSP:
		// TE with up to 256 LSPs, each single-path, ECMP-balanced.
		return NewFlowPolicy(base.Spf, base.EqualBalanced, base.SingleMinCostWithCapRemainingLoadFactored, false,
			WithMaxFlowCount(256), WithReoptimizeOnEachPlacement(true))
	case TEECMP16LSP:
		// TE with exactly 16 LSPs, ECMP-balanced.
		return NewFlowPolicy(base.Spf, base.EqualBalanced, base.SingleMinCostWithCapRemainingLoadFactored, false,
			WithMinFlowCount(16), WithMaxFlowCount(16), WithReoptimizeOnEachPlacement(true))
	default:
		return nil, ErrUnknownPresetConfig
	}
}
