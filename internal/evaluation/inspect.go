package evaluation

import (
	"encoding/json"
	"sort"

	"github.com/namedisambig/clustereval/internal/loader"
)

// nameSampleSize bounds the group names listed when nothing overlaps.
const nameSampleSize = 5

// InspectReport describes how a sample of groups is laid out on each side.
type InspectReport struct {
	CommonGroups int `json:"common_groups"`

	// Filled only when no group is common to both sides.
	PredictedNames []string `json:"predicted_names,omitempty"`
	TruthNames     []string `json:"truth_names,omitempty"`

	Groups []GroupFormat `json:"groups,omitempty"`
}

// GroupFormat is the detected format of one group on both sides.
type GroupFormat struct {
	Group string `json:"group"`

	PredictedKind     string `json:"predicted_kind"`
	PredictedClusters int    `json:"predicted_clusters"`

	TruthKind   string   `json:"truth_kind"`
	TruthShape  Shape    `json:"truth_shape"`
	TruthSize   int      `json:"truth_size"`
	TruthSample []string `json:"truth_sample,omitempty"` // JSON of the first entries
}

// Inspect reports the detected shape of up to maxGroups common groups.
func Inspect(pred, truth loader.Document, maxGroups, sampleSize int) *InspectReport {
	groups := CommonGroups(pred, truth)
	report := &InspectReport{CommonGroups: len(groups)}

	if len(groups) == 0 {
		report.PredictedNames = sampleNames(pred)
		report.TruthNames = sampleNames(truth)
		return report
	}

	if maxGroups > 0 && len(groups) > maxGroups {
		groups = groups[:maxGroups]
	}
	for _, name := range groups {
		report.Groups = append(report.Groups, inspectGroup(name, pred[name], truth[name], sampleSize))
	}
	return report
}

func inspectGroup(name string, predVal, truthVal any, sampleSize int) GroupFormat {
	f := GroupFormat{
		Group:             name,
		PredictedKind:     kindOf(predVal),
		PredictedClusters: sizeOf(predVal),
		TruthKind:         kindOf(truthVal),
		TruthSize:         sizeOf(truthVal),
	}

	// Shape detection matches scoring exactly.
	if gt, err := ParseGroundTruth(name, truthVal); err == nil {
		f.TruthShape = gt.Shape
	}

	switch t := truthVal.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range limit(keys, sampleSize) {
			f.TruthSample = append(f.TruthSample, render(map[string]any{k: t[k]}))
		}
	case []any:
		for _, el := range limit(t, sampleSize) {
			f.TruthSample = append(f.TruthSample, render(el))
		}
	}
	return f
}

func sampleNames(doc loader.Document) []string {
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)
	return limit(names, nameSampleSize)
}

func sizeOf(v any) int {
	switch t := v.(type) {
	case map[string]any:
		return len(t)
	case []any:
		return len(t)
	default:
		return 0
	}
}

func limit[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}

func render(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "<unrenderable>"
	}
	return string(data)
}
