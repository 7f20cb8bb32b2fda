package evaluation

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strconv"

	apperrors "github.com/namedisambig/clustereval/internal/pkg/errors"
)

// ParseGroundTruth resolves one group's ground-truth value into clusters.
// A bare item where a cluster is expected becomes a singleton cluster.
// Map clusters are visited in sorted key order.
func ParseGroundTruth(group string, v any) (GroupTruth, error) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		clusters := make([]Cluster, 0, len(keys))
		for _, k := range keys {
			c, ok := toCluster(t[k])
			if !ok {
				return GroupTruth{}, apperrors.UnknownShapeError(group, fmt.Sprintf("cluster %q is %s", k, kindOf(t[k])))
			}
			clusters = append(clusters, c)
		}
		return GroupTruth{Shape: ShapeMapOfClusters, Clusters: clusters}, nil

	case []any:
		clusters := make([]Cluster, 0, len(t))
		for i, el := range t {
			c, ok := toCluster(el)
			if !ok {
				return GroupTruth{}, apperrors.UnknownShapeError(group, fmt.Sprintf("element %d is %s", i, kindOf(el)))
			}
			clusters = append(clusters, c)
		}
		return GroupTruth{Shape: ShapeSequenceOfClusters, Clusters: clusters}, nil

	default:
		return GroupTruth{}, apperrors.UnknownShapeError(group, kindOf(v))
	}
}

// ParsePrediction resolves one group's predicted clusters. Order is kept:
// the cluster index is the predicted label.
func ParsePrediction(group string, v any) ([]Cluster, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, apperrors.InvalidPredictionError(group, kindOf(v))
	}

	clusters := make([]Cluster, 0, len(list))
	for i, el := range list {
		c, ok := toCluster(el)
		if !ok {
			return nil, apperrors.InvalidPredictionError(group, fmt.Sprintf("element %d is %s", i, kindOf(el)))
		}
		clusters = append(clusters, c)
	}
	return clusters, nil
}

// toCluster accepts a list of items or a single bare item.
func toCluster(v any) (Cluster, bool) {
	if it, ok := ParseItem(v); ok {
		return Cluster{it}, true
	}

	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	c := make(Cluster, 0, len(list))
	for _, el := range list {
		it, ok := ParseItem(el)
		if !ok {
			return nil, false
		}
		c = append(c, it)
	}
	return c, true
}

// ParseItem turns a scalar identifier into an Item. Numbers are keyed by
// their exact value, so 12 and 12.0 name the same item while the string
// "12" stays distinct. Integers of any size keep every digit.
func ParseItem(v any) (Item, bool) {
	switch t := v.(type) {
	case string:
		return StringItem(t), true
	case json.Number:
		return jsonNumberItem(t.String()), true
	case float64:
		return floatItem(t), true
	case float32:
		return floatItem(float64(t)), true
	case int:
		return NumberItem(int64(t)), true
	case int64:
		return NumberItem(t), true
	case int32:
		return NumberItem(int64(t)), true
	case uint64:
		return Item{Kind: ItemNumber, Text: strconv.FormatUint(t, 10)}, true
	case uint:
		return Item{Kind: ItemNumber, Text: strconv.FormatUint(uint64(t), 10)}, true
	case bool:
		return Item{Kind: ItemBool, Text: strconv.FormatBool(t)}, true
	default:
		return Item{}, false
	}
}

// floatItem keys f by its shortest decimal form, the same literal a JSON
// round trip would produce.
func floatItem(f float64) Item {
	return jsonNumberItem(strconv.FormatFloat(f, 'g', -1, 64))
}

func jsonNumberItem(lit string) Item {
	r, ok := new(big.Rat).SetString(lit)
	if !ok { // Inf, NaN
		return Item{Kind: ItemNumber, Text: lit}
	}
	return Item{Kind: ItemNumber, Text: r.RatString()}
}

// kindOf names the JSON kind of a decoded value.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		if _, ok := ParseItem(v); ok {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}
