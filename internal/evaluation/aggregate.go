package evaluation

import (
	"gonum.org/v1/gonum/stat"
)

// Summarize aggregates scored groups using an unweighted mean. With no
// results every mean stays 0.
func Summarize(results []GroupResult, skipped []SkippedGroup) *Summary {
	summary := &Summary{
		GroupsScored: len(results),
		Groups:       results,
		Skipped:      skipped,
	}
	if len(results) == 0 {
		return summary
	}

	n := len(results)
	precision := make([]float64, n)
	recall := make([]float64, n)
	f1 := make([]float64, n)
	for i, r := range results {
		precision[i] = r.Precision
		recall[i] = r.Recall
		f1[i] = r.F1
	}

	summary.MeanPrecision = stat.Mean(precision, nil)
	summary.MeanRecall = stat.Mean(recall, nil)
	if n > 1 {
		summary.MeanF1, summary.StdDevF1 = stat.MeanStdDev(f1, nil)
	} else {
		summary.MeanF1 = f1[0]
	}

	return summary
}
