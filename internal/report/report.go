// Package report renders evaluation summaries and format diagnostics.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/namedisambig/clustereval/internal/evaluation"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// WriteSummary renders s. With details, text output adds one row per scored
// group and one line per skipped group.
func WriteSummary(w io.Writer, s *evaluation.Summary, format string, details bool) error {
	if format == FormatJSON {
		out := *s
		if !details {
			out.Groups = nil
		}
		return writeJSON(w, out)
	}

	if !s.Scorable() {
		fmt.Fprintln(w, "Error: no groups could be evaluated")
	}
	fmt.Fprintf(w, "Average Pairwise F1: %.3f\n", s.MeanF1)
	fmt.Fprintf(w, "Groups evaluated: %d\n", s.GroupsScored)
	fmt.Fprintf(w, "Groups in prediction: %d\n", s.PredictedGroups)
	fmt.Fprintf(w, "Groups in ground truth: %d\n", s.TruthGroups)
	if len(s.Skipped) > 0 {
		fmt.Fprintf(w, "Groups skipped: %d (%s)\n", len(s.Skipped), reasons(s.SkippedByReason()))
	}

	if !details {
		return nil
	}

	if len(s.Groups) > 0 {
		fmt.Fprintln(w)
		table := tablewriter.NewWriter(w)
		table.Header("Group", "Shape", "Items", "TP", "TP+FP", "TP+FN", "Precision", "Recall", "F1")
		for _, g := range s.Groups {
			table.Append(
				g.Group,
				g.TruthShape.String(),
				fmt.Sprintf("%d", g.Items),
				fmt.Sprintf("%d", g.Pairs.TP),
				fmt.Sprintf("%d", g.Pairs.TPFP),
				fmt.Sprintf("%d", g.Pairs.TPFN),
				fmt.Sprintf("%.3f", g.Precision),
				fmt.Sprintf("%.3f", g.Recall),
				fmt.Sprintf("%.3f", g.F1),
			)
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("rendering group table: %w", err)
		}
	}

	for _, sk := range s.Skipped {
		fmt.Fprintf(w, "Warning: %s skipped (%s): %s\n", sk.Group, sk.Reason, sk.Detail)
	}
	return nil
}

// WriteInspect renders a format diagnostic.
func WriteInspect(w io.Writer, r *evaluation.InspectReport, format string) error {
	if format == FormatJSON {
		return writeJSON(w, r)
	}

	fmt.Fprintln(w, "=== DATA FORMATS ===")
	fmt.Fprintf(w, "Common groups: %d\n", r.CommonGroups)

	if r.CommonGroups == 0 {
		fmt.Fprintln(w, "ERROR: no common groups!")
		fmt.Fprintf(w, "Prediction groups sample: %s\n", strings.Join(r.PredictedNames, ", "))
		fmt.Fprintf(w, "Ground truth groups sample: %s\n", strings.Join(r.TruthNames, ", "))
		return nil
	}

	for _, g := range r.Groups {
		fmt.Fprintf(w, "\n--- %s ---\n", g.Group)
		fmt.Fprintf(w, "Prediction format: %s with %d clusters\n", g.PredictedKind, g.PredictedClusters)
		fmt.Fprintf(w, "Ground truth format: %s (%s)\n", g.TruthKind, g.TruthShape)
		switch g.TruthShape {
		case evaluation.ShapeMapOfClusters:
			fmt.Fprintf(w, "  keys: %d\n", g.TruthSize)
		case evaluation.ShapeSequenceOfClusters:
			fmt.Fprintf(w, "  length: %d\n", g.TruthSize)
		}
		for _, sample := range g.TruthSample {
			fmt.Fprintf(w, "  sample: %s\n", sample)
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func reasons(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, ", ")
}
