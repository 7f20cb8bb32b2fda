package evaluation

import "strconv"

// Shape is the detected layout of a group's ground truth.
type Shape int

const (
	// ShapeUnknown marks a value that is neither supported layout.
	ShapeUnknown Shape = iota
	// ShapeMapOfClusters is {cluster_id: [item, ...], ...}.
	ShapeMapOfClusters
	// ShapeSequenceOfClusters is [[item, ...] | item, ...].
	ShapeSequenceOfClusters
)

// String implements fmt.Stringer.
func (s Shape) String() string {
	switch s {
	case ShapeMapOfClusters:
		return "map"
	case ShapeSequenceOfClusters:
		return "sequence"
	default:
		return "unknown"
	}
}

// MarshalText lets Shape render by name in JSON output.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ItemKind separates identifiers that print alike but differ in type.
type ItemKind uint8

const (
	ItemString ItemKind = iota + 1
	ItemNumber
	ItemBool
)

// Item is one opaque identifier. Two items are the same entity only when
// both Kind and Text match.
type Item struct {
	Kind ItemKind
	Text string
}

// StringItem wraps a string identifier.
func StringItem(s string) Item { return Item{Kind: ItemString, Text: s} }

// NumberItem wraps an integer identifier.
func NumberItem(n int64) Item { return Item{Kind: ItemNumber, Text: strconv.FormatInt(n, 10)} }

// String implements fmt.Stringer. Strings are quoted so "12" and 12 read apart.
func (i Item) String() string {
	if i.Kind == ItemString {
		return strconv.Quote(i.Text)
	}
	return i.Text
}

// Cluster is the set of items assigned to one entity.
type Cluster []Item

// GroupTruth is one group's ground truth resolved into clusters.
// Cluster position is the true label.
type GroupTruth struct {
	Shape    Shape
	Clusters []Cluster
}

// PairCounts holds the pair totals behind pairwise precision and recall.
type PairCounts struct {
	TP   int64 `json:"tp"`    // pairs together in both truth and prediction
	TPFP int64 `json:"tp_fp"` // pairs predicted together
	TPFN int64 `json:"tp_fn"` // pairs together in truth
}

// Score is pairwise precision, recall and F1.
type Score struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// GroupResult contains metrics for a single scored group.
type GroupResult struct {
	Group      string     `json:"group"`
	TruthShape Shape      `json:"truth_shape"`
	Items      int        `json:"items"` // common items after filtering
	Pairs      PairCounts `json:"pairs"`
	Score

	DuplicatePredicted int `json:"duplicate_predicted,omitempty"`
	DuplicateTruth     int `json:"duplicate_truth,omitempty"`
}

// SkippedGroup records why a group did not contribute to the aggregate.
type SkippedGroup struct {
	Group  string `json:"group"`
	Reason string `json:"reason"` // error code
	Detail string `json:"detail"`
}

// Summary aggregates metrics across scored groups.
type Summary struct {
	RunID string `json:"run_id"`

	GroupsScored    int `json:"groups_scored"`
	PredictedGroups int `json:"predicted_groups"`
	TruthGroups     int `json:"truth_groups"`
	CommonGroups    int `json:"common_groups"`

	MeanPrecision float64 `json:"mean_precision"`
	MeanRecall    float64 `json:"mean_recall"`
	MeanF1        float64 `json:"mean_f1"`
	StdDevF1      float64 `json:"stddev_f1"`

	Groups  []GroupResult  `json:"groups,omitempty"`
	Skipped []SkippedGroup `json:"skipped,omitempty"`
}

// Scorable reports whether at least one group was scored.
func (s *Summary) Scorable() bool {
	return s.GroupsScored > 0
}

// SkippedByReason counts skipped groups per reason code.
func (s *Summary) SkippedByReason() map[string]int {
	counts := make(map[string]int)
	for _, sk := range s.Skipped {
		counts[sk.Reason]++
	}
	return counts
}
