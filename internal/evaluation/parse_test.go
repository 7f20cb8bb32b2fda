package evaluation

import (
	"encoding/json"
	"reflect"
	"testing"

	apperrors "github.com/namedisambig/clustereval/internal/pkg/errors"
)

func TestParseGroundTruth(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		wantShape Shape
		want      []Cluster
	}{
		{
			name: "map of clusters in key order",
			value: map[string]any{
				"b": []any{"p3"},
				"a": []any{"p1", "p2"},
			},
			wantShape: ShapeMapOfClusters,
			want:      []Cluster{strs("p1", "p2"), strs("p3")},
		},
		{
			name:      "map with bare item",
			value:     map[string]any{"a": "p1"},
			wantShape: ShapeMapOfClusters,
			want:      []Cluster{strs("p1")},
		},
		{
			name:      "sequence of clusters",
			value:     []any{[]any{"p1", "p2"}, []any{"p3"}},
			wantShape: ShapeSequenceOfClusters,
			want:      []Cluster{strs("p1", "p2"), strs("p3")},
		},
		{
			name:      "sequence with bare items",
			value:     []any{[]any{"p1", "p2"}, "p3", json.Number("4")},
			wantShape: ShapeSequenceOfClusters,
			want:      []Cluster{strs("p1", "p2"), strs("p3"), {NumberItem(4)}},
		},
		{
			name:      "empty sequence",
			value:     []any{},
			wantShape: ShapeSequenceOfClusters,
			want:      []Cluster{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt, err := ParseGroundTruth("g", tt.value)
			if err != nil {
				t.Fatalf("ParseGroundTruth() error = %v", err)
			}
			if gt.Shape != tt.wantShape {
				t.Errorf("Shape = %v, want %v", gt.Shape, tt.wantShape)
			}
			if !reflect.DeepEqual(gt.Clusters, tt.want) {
				t.Errorf("Clusters = %v, want %v", gt.Clusters, tt.want)
			}
		})
	}
}

func TestParseGroundTruth_UnknownShape(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"string", "p1"},
		{"number", json.Number("3")},
		{"null", nil},
		{"object inside sequence", []any{map[string]any{"a": []any{"p1"}}}},
		{"nested list inside cluster", []any{[]any{[]any{"p1"}}}},
		{"object as map cluster", map[string]any{"a": map[string]any{}}},
		{"null item", []any{[]any{"p1", nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGroundTruth("g", tt.value)
			if !apperrors.HasCode(err, apperrors.CodeUnknownGroundTruthShape) {
				t.Errorf("ParseGroundTruth() error = %v, want %s", err, apperrors.CodeUnknownGroundTruthShape)
			}
		})
	}
}

func TestParsePrediction(t *testing.T) {
	clusters, err := ParsePrediction("g", []any{[]any{"p1", "p2"}, "p3", []any{}})
	if err != nil {
		t.Fatalf("ParsePrediction() error = %v", err)
	}
	want := []Cluster{strs("p1", "p2"), strs("p3"), {}}
	if !reflect.DeepEqual(clusters, want) {
		t.Errorf("ParsePrediction() = %v, want %v", clusters, want)
	}

	for _, bad := range []any{
		map[string]any{"a": []any{"p1"}},
		"p1",
		nil,
		[]any{map[string]any{}},
	} {
		if _, err := ParsePrediction("g", bad); !apperrors.HasCode(err, apperrors.CodeInvalidPrediction) {
			t.Errorf("ParsePrediction(%#v) error = %v, want %s", bad, err, apperrors.CodeInvalidPrediction)
		}
	}
}

func TestParseItem(t *testing.T) {
	num := func(s string) Item { return Item{Kind: ItemNumber, Text: s} }
	tests := []struct {
		in   any
		want Item
	}{
		{"p1", StringItem("p1")},
		{"12", StringItem("12")},
		{json.Number("12"), num("12")},
		{json.Number("12.0"), num("12")},
		{json.Number("1.2e1"), num("12")},
		{json.Number("2.5"), num("5/2")},
		{json.Number("12345678901234567890"), num("12345678901234567890")},
		{json.Number("12345678901234567891"), num("12345678901234567891")},
		{float64(3), num("3")},
		{2.5, num("5/2")},
		{7, num("7")},
		{int64(-4), num("-4")},
		{uint64(18446744073709551615), num("18446744073709551615")},
		{true, Item{Kind: ItemBool, Text: "true"}},
	}

	for _, tt := range tests {
		got, ok := ParseItem(tt.in)
		if !ok {
			t.Errorf("ParseItem(%#v) not ok", tt.in)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseItem(%#v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []any{nil, []any{}, map[string]any{}} {
		if _, ok := ParseItem(bad); ok {
			t.Errorf("ParseItem(%#v) should not be ok", bad)
		}
	}
}

func TestItemString(t *testing.T) {
	if got := StringItem("12").String(); got != `"12"` {
		t.Errorf("StringItem.String() = %s", got)
	}
	if got := NumberItem(12).String(); got != "12" {
		t.Errorf("NumberItem.String() = %s", got)
	}
}

func TestShapeString(t *testing.T) {
	if ShapeMapOfClusters.String() != "map" || ShapeSequenceOfClusters.String() != "sequence" || ShapeUnknown.String() != "unknown" {
		t.Error("unexpected Shape names")
	}
	data, err := json.Marshal(ShapeMapOfClusters)
	if err != nil || string(data) != `"map"` {
		t.Errorf("json.Marshal(Shape) = %s, %v", data, err)
	}
}

func strs(ids ...string) Cluster {
	c := make(Cluster, len(ids))
	for i, id := range ids {
		c[i] = StringItem(id)
	}
	return c
}
