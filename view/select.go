package view

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// selectNodeGroups implements View.SelectNodeGroupsByPath (spec §6's
// select_node_groups_by_path). The montecarlo convenience analyses take
// resolved node IDs and do not call it. Spec §1 scopes the
// full thin network model (arbitrary attribute selectors, scenario
// loading) out of the core; this is the minimal concrete subset the core
// itself needs to exercise its own tests and examples without a real
// external Network implementation.
//
// Two forms are supported:
//   - "attr:<name>" groups every node by the string value of Attrs[name];
//     nodes missing the attribute are omitted.
//   - any other string is a regular expression matched against node IDs;
//     nodes are grouped by the first capture group if present, otherwise
//     by the full match.
func selectNodeGroups(v *View, pattern string) (map[string][]string, error) {
	groups := make(map[string][]string)

	if name, ok := strings.CutPrefix(pattern, "attr:"); ok {
		for _, id := range v.Nodes() {
			n, err := v.g.Node(id)
			if err != nil {
				continue
			}
			val, ok := n.Attrs[name]
			if !ok {
				continue
			}
			label := fmt.Sprintf("%v", val)
			groups[label] = append(groups[label], id)
		}
	} else {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("view: invalid pattern %q: %w", pattern, err)
		}
		for _, id := range v.Nodes() {
			m := re.FindStringSubmatch(id)
			if m == nil {
				continue
			}
			label := m[0]
			if len(m) > 1 && m[1] != "" {
				label = m[1]
			}
			groups[label] = append(groups[label], id)
		}
	}

	for label := range groups {
		sort.Strings(groups[label])
	}
	return groups, nil
}
