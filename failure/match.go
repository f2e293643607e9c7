package failure

import "sort"

// entitySet maps an entity ID (node ID, stringified link ID, or risk-group
// name) to the flattened attribute map conditions are evaluated against.
type entitySet map[string]map[string]any

// matchEntities returns the sorted IDs of every entity whose attributes
// satisfy conds under logic.
func matchEntities(entities entitySet, conds []Condition, logic string) ([]string, error) {
	out := make([]string, 0, len(entities))
	for id, attrs := range entities {
		ok, err := evaluateConditions(attrs, conds, logic)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}
