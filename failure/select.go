package failure

import (
	"fmt"
	"math/rand"
)

// selectEntities picks the subset of sorted matched IDs that fail under
// rule's strategy, using rng for "random"/"choice" rule types.
//
// matched must already be sorted; this keeps "random"'s independent
// per-entity draws and "choice"'s sample reproducible for a given rng
// regardless of map iteration order upstream.
func selectEntities(matched []string, rule Rule, rng *rand.Rand) ([]string, error) {
	if len(matched) == 0 {
		return nil, nil
	}
	switch rule.ruleType() {
	case RuleAll:
		out := make([]string, len(matched))
		copy(out, matched)
		return out, nil
	case RuleRandom:
		var out []string
		for _, id := range matched {
			if rng.Float64() < rule.Probability {
				out = append(out, id)
			}
		}
		return out, nil
	case RuleChoice:
		count := rule.Count
		if count > len(matched) {
			count = len(matched)
		}
		if count <= 0 {
			return nil, nil
		}
		return sampleWithoutReplacement(matched, count, rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRuleType, rule.Type)
	}
}

// sampleWithoutReplacement draws count distinct items from ids via a
// partial Fisher-Yates shuffle, leaving the caller's slice untouched.
func sampleWithoutReplacement(src []string, count int, rng *rand.Rand) []string {
	pool := make([]string, len(src))
	copy(pool, src)
	for i := 0; i < count; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count]
}
