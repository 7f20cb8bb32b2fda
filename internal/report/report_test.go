package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/namedisambig/clustereval/internal/evaluation"
)

func sampleSummary() *evaluation.Summary {
	s := evaluation.Summarize(
		[]evaluation.GroupResult{
			{
				Group:      "alice",
				TruthShape: evaluation.ShapeMapOfClusters,
				Items:      3,
				Pairs:      evaluation.PairCounts{TP: 1, TPFP: 1, TPFN: 1},
				Score:      evaluation.Score{Precision: 1, Recall: 1, F1: 1},
			},
			{
				Group:      "carol",
				TruthShape: evaluation.ShapeSequenceOfClusters,
				Items:      3,
				Pairs:      evaluation.PairCounts{TP: 1, TPFP: 3, TPFN: 1},
				Score:      evaluation.Score{Precision: 1.0 / 3, Recall: 1, F1: 0.5},
			},
		},
		[]evaluation.SkippedGroup{{Group: "dave", Reason: "NO_COMMON_ITEMS", Detail: "no common items for dave"}},
	)
	s.PredictedGroups = 3
	s.TruthGroups = 4
	return s
}

func TestWriteSummary_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleSummary(), FormatText, false); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Average Pairwise F1: 0.750",
		"Groups evaluated: 2",
		"Groups in prediction: 3",
		"Groups in ground truth: 4",
		"Groups skipped: 1 (NO_COMMON_ITEMS=1)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "carol") {
		t.Errorf("output without details should not list groups, got:\n%s", out)
	}
}

func TestWriteSummary_TextDetails(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleSummary(), FormatText, true); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"alice", "carol", "0.333", "Warning: dave skipped (NO_COMMON_ITEMS)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteSummary_NotScorable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, evaluation.Summarize(nil, nil), FormatText, false); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}
	if !strings.Contains(buf.String(), "no groups could be evaluated") {
		t.Errorf("output should flag the degenerate run, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Average Pairwise F1: 0.000") {
		t.Errorf("output should report 0.000, got:\n%s", buf.String())
	}
}

func TestWriteSummary_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, sampleSummary(), FormatJSON, false); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if decoded["mean_f1"] != 0.75 {
		t.Errorf("mean_f1 = %v, want 0.75", decoded["mean_f1"])
	}
	if _, ok := decoded["groups"]; ok {
		t.Error("groups should be omitted without details")
	}
	if _, ok := decoded["skipped"]; !ok {
		t.Error("skipped should always be present")
	}
}

func TestWriteInspect(t *testing.T) {
	r := &evaluation.InspectReport{
		CommonGroups: 1,
		Groups: []evaluation.GroupFormat{{
			Group:             "alice",
			PredictedKind:     "array",
			PredictedClusters: 2,
			TruthKind:         "object",
			TruthShape:        evaluation.ShapeMapOfClusters,
			TruthSize:         2,
			TruthSample:       []string{`{"a":["p1","p2"]}`},
		}},
	}

	var buf bytes.Buffer
	if err := WriteInspect(&buf, r, FormatText); err != nil {
		t.Fatalf("WriteInspect() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Common groups: 1",
		"--- alice ---",
		"Prediction format: array with 2 clusters",
		"Ground truth format: object (map)",
		"keys: 2",
		`sample: {"a":["p1","p2"]}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteInspect_NoCommonGroups(t *testing.T) {
	r := &evaluation.InspectReport{PredictedNames: []string{"a", "b"}, TruthNames: []string{"z"}}

	var buf bytes.Buffer
	if err := WriteInspect(&buf, r, FormatText); err != nil {
		t.Fatalf("WriteInspect() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "no common groups") || !strings.Contains(out, "a, b") || !strings.Contains(out, "z") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
