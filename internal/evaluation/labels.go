package evaluation

// Labels holds the aligned label vectors for one group.
type Labels struct {
	Items     []Item
	True      []int
	Predicted []int

	// Reassignments of an item already labelled by an earlier predicted
	// cluster, and repeated occurrences of an item in the ground truth.
	DuplicatePredicted int
	DuplicateTruth     int
}

// ExtractLabels aligns ground truth and prediction over their common items.
//
// A predicted item that recurs keeps the label of its last cluster. True
// labels keep every occurrence, so a repeated ground-truth item adds one
// entry per occurrence. Items come out in ground-truth declaration order.
func ExtractLabels(pred []Cluster, truth GroupTruth) Labels {
	predicted := make(map[Item]int)
	var l Labels
	for idx, c := range pred {
		for _, id := range c {
			if _, seen := predicted[id]; seen {
				l.DuplicatePredicted++
			}
			predicted[id] = idx
		}
	}

	seen := make(map[Item]struct{})
	for label, c := range truth.Clusters {
		for _, id := range c {
			if _, dup := seen[id]; dup {
				l.DuplicateTruth++
			}
			seen[id] = struct{}{}

			p, ok := predicted[id]
			if !ok {
				continue
			}
			l.Items = append(l.Items, id)
			l.True = append(l.True, label)
			l.Predicted = append(l.Predicted, p)
		}
	}
	return l
}

// HasDuplicates reports whether any item was seen in more than one cluster.
func (l Labels) HasDuplicates() bool {
	return l.DuplicatePredicted > 0 || l.DuplicateTruth > 0
}
