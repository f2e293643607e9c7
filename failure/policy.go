package failure

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/networmix/netgraph/core"
)

// Apply runs every Rule against g's current nodes/links and riskGroups,
// unions the selected entities, optionally expands the union by shared
// risk-group membership and risk-group children, and returns the three
// failed-entity sets separately (the Python original returns one merged
// sorted list of IDs; this package keeps nodes and links apart since
// callers feed them straight into view.New's distinct excludedNodes/
// excludedLinks parameters).
//
// If seedOverride is non-nil it takes precedence over p.Seed for this call
// only, matching the Python original's per-call seed override.
//
// Complexity: O(V+E) to build attribute maps, plus O(rules * matches) for
// condition evaluation.
func (p *Policy) Apply(g *core.Graph, riskGroups map[string]RiskGroup, seedOverride *int64) (failedNodes []string, failedLinks []uint64, failedRiskGroups []string, err error) {
	if riskGroups == nil {
		riskGroups = map[string]RiskGroup{}
	}

	nodeEntities, nodeRiskGroups := nodeEntitySet(g)
	linkEntities, linkRiskGroups := linkEntitySet(g)
	rgEntities := riskGroupEntitySet(riskGroups)

	effectiveSeed := p.Seed
	if seedOverride != nil {
		effectiveSeed = seedOverride
	}
	// A fresh rng is built once per Apply call for the unseeded path, so
	// successive rules in the same call draw from a continuing stream —
	// the Go analogue of the Python original sharing the process-global
	// random module across rule evaluations within one apply_failures call.
	var sharedRng *rand.Rand
	if effectiveSeed == nil {
		sharedRng = rand.New(rand.NewSource(rand.Int63()))
	}

	failedNodeSet := map[string]struct{}{}
	failedLinkSet := map[string]struct{}{}
	failedRGSet := map[string]struct{}{}

	if p.matchCache == nil && p.UseCache {
		p.matchCache = map[int]map[string]struct{}{}
	}

	for idx, rule := range p.Rules {
		if err := rule.validate(); err != nil {
			return nil, nil, nil, err
		}

		matched, err := p.matchScope(idx, rule, nodeEntities, linkEntities, rgEntities)
		if err != nil {
			return nil, nil, nil, err
		}

		// Each seeded rule reseeds its own rng from the same effective
		// seed, exactly as the Python original constructs a fresh
		// random.Random(seed) inside _select_entities per call — so two
		// rules given the same seed make the same independent draw, they
		// do not share a continuing stream.
		rng := sharedRng
		if effectiveSeed != nil {
			rng = rand.New(rand.NewSource(*effectiveSeed))
		}

		selected, err := selectEntities(matched, rule, rng)
		if err != nil {
			return nil, nil, nil, err
		}

		switch rule.Scope {
		case ScopeNode:
			for _, id := range selected {
				failedNodeSet[id] = struct{}{}
			}
		case ScopeLink:
			for _, id := range selected {
				failedLinkSet[id] = struct{}{}
			}
		case ScopeRiskGroup:
			for _, id := range selected {
				failedRGSet[id] = struct{}{}
			}
		}
	}

	if p.FailRiskGroups {
		expandRiskGroups(failedNodeSet, failedLinkSet, nodeRiskGroups, linkRiskGroups)
	}
	if p.FailRiskGroupChildren && len(failedRGSet) > 0 {
		expandRiskGroupChildren(failedRGSet, riskGroups)
	}

	return sortedKeys(failedNodeSet), sortedLinkIDs(failedLinkSet), sortedKeys(failedRGSet), nil
}

// matchScope returns the rule's matched entity IDs, consulting (and, if
// UseCache is set, populating) the per-rule match cache.
func (p *Policy) matchScope(idx int, rule Rule, nodeEntities, linkEntities, rgEntities entitySet) ([]string, error) {
	if p.UseCache {
		if cached, ok := p.matchCache[idx]; ok {
			out := make([]string, 0, len(cached))
			for id := range cached {
				out = append(out, id)
			}
			sort.Strings(out)
			return out, nil
		}
	}

	var scope entitySet
	switch rule.Scope {
	case ScopeNode:
		scope = nodeEntities
	case ScopeLink:
		scope = linkEntities
	default:
		scope = rgEntities
	}

	matched, err := matchEntities(scope, rule.Conditions, rule.logic())
	if err != nil {
		return nil, err
	}

	if p.UseCache {
		set := make(map[string]struct{}, len(matched))
		for _, id := range matched {
			set[id] = struct{}{}
		}
		p.matchCache[idx] = set
	}
	return matched, nil
}

// nodeEntitySet flattens every node's Disabled/RiskGroups/Attrs into a flat
// attribute map keyed by node ID, and separately returns each node's
// risk-group tags for _expand_risk_groups.
func nodeEntitySet(g *core.Graph) (entitySet, map[string][]string) {
	out := make(entitySet)
	rgs := make(map[string][]string)
	for _, id := range g.Nodes() {
		n, err := g.Node(id)
		if err != nil {
			continue
		}
		attrs := map[string]any{
			"disabled":    n.Disabled,
			"risk_groups": sortedKeys(n.RiskGroups),
		}
		for k, v := range n.Attrs {
			attrs[k] = v
		}
		out[id] = attrs
		rgs[id] = attrs["risk_groups"].([]string)
	}
	return out, rgs
}

// linkEntitySet mirrors nodeEntitySet for links, keying entities by the
// link's decimal ID string so entitySet's generic map[string]any shape
// works uniformly across scopes; sortedLinkIDs converts selections back.
func linkEntitySet(g *core.Graph) (entitySet, map[uint64][]string) {
	out := make(entitySet)
	rgs := make(map[uint64][]string)
	for _, id := range g.Links() {
		l, err := g.Link(id)
		if err != nil {
			continue
		}
		key := strconv.FormatUint(id, 10)
		attrs := map[string]any{
			"capacity":    l.Capacity,
			"cost":        l.Cost,
			"disabled":    l.Disabled,
			"risk_groups": sortedKeys(l.RiskGroups),
		}
		for k, v := range l.Attrs {
			attrs[k] = v
		}
		out[key] = attrs
		rgs[id] = attrs["risk_groups"].([]string)
	}
	return out, rgs
}

func riskGroupEntitySet(riskGroups map[string]RiskGroup) entitySet {
	out := make(entitySet, len(riskGroups))
	for name, rg := range riskGroups {
		attrs := map[string]any{"children": rg.Children}
		for k, v := range rg.Attrs {
			attrs[k] = v
		}
		out[name] = attrs
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// sortedLinkIDs parses the decimal-string link IDs accumulated in
// failedLinkSet back into uint64s.
func sortedLinkIDs(failedLinkSet map[string]struct{}) []uint64 {
	out := make([]uint64, 0, len(failedLinkSet))
	for k := range failedLinkSet {
		id, err := strconv.ParseUint(k, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
