package failure

import "strconv"

func linkKey(id uint64) string { return strconv.FormatUint(id, 10) }

func parseLinkKey(key string) (uint64, bool) {
	id, err := strconv.ParseUint(key, 10, 64)
	return id, err == nil
}

// expandRiskGroups implements the Python original's _expand_risk_groups:
// starting from the union of already-failed nodes and links, BFS through a
// risk-group -> {node,link} index so that any entity sharing a risk-group
// tag with a failed entity also fails. Mutates failedNodes/failedLinks
// (keyed by node ID / decimal link-ID string, matching the rest of this
// package's entitySet convention) in place.
func expandRiskGroups(failedNodes, failedLinks map[string]struct{}, nodeRiskGroups map[string][]string, linkRiskGroups map[uint64][]string) {
	rgToNodes := make(map[string][]string)
	for id, rgs := range nodeRiskGroups {
		for _, rg := range rgs {
			rgToNodes[rg] = append(rgToNodes[rg], id)
		}
	}
	rgToLinks := make(map[string][]uint64)
	for id, rgs := range linkRiskGroups {
		for _, rg := range rgs {
			rgToLinks[rg] = append(rgToLinks[rg], id)
		}
	}

	type queueItem struct {
		isLink bool
		nodeID string
		linkID uint64
	}

	visitedNodes := make(map[string]struct{}, len(failedNodes))
	visitedLinks := make(map[uint64]struct{}, len(failedLinks))
	var queue []queueItem

	for id := range failedNodes {
		visitedNodes[id] = struct{}{}
		queue = append(queue, queueItem{nodeID: id})
	}
	for key := range failedLinks {
		id, ok := parseLinkKey(key)
		if !ok {
			continue
		}
		visitedLinks[id] = struct{}{}
		queue = append(queue, queueItem{isLink: true, linkID: id})
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		var rgs []string
		if item.isLink {
			rgs = linkRiskGroups[item.linkID]
		} else {
			rgs = nodeRiskGroups[item.nodeID]
		}

		for _, rg := range rgs {
			for _, otherNode := range rgToNodes[rg] {
				if _, seen := visitedNodes[otherNode]; seen {
					continue
				}
				visitedNodes[otherNode] = struct{}{}
				failedNodes[otherNode] = struct{}{}
				queue = append(queue, queueItem{nodeID: otherNode})
			}
			for _, otherLink := range rgToLinks[rg] {
				if _, seen := visitedLinks[otherLink]; seen {
					continue
				}
				visitedLinks[otherLink] = struct{}{}
				failedLinks[linkKey(otherLink)] = struct{}{}
				queue = append(queue, queueItem{isLink: true, linkID: otherLink})
			}
		}
	}
}

// expandRiskGroupChildren implements the Python original's
// _expand_failed_risk_group_children: BFS over each failed risk group's
// Children list, recursively failing descendants.
func expandRiskGroupChildren(failedRiskGroups map[string]struct{}, riskGroups map[string]RiskGroup) {
	var queue []string
	for name := range failedRiskGroups {
		queue = append(queue, name)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		rg, ok := riskGroups[name]
		if !ok {
			continue
		}
		for _, child := range rg.Children {
			if _, seen := failedRiskGroups[child]; seen {
				continue
			}
			failedRiskGroups[child] = struct{}{}
			queue = append(queue, child)
		}
	}
}
