package evaluation

// CountPairs compares every item pair (i<j) in two aligned label vectors.
// Vectors of different lengths are not aligned and count no pairs.
func CountPairs(trueLabels, predLabels []int) PairCounts {
	if len(trueLabels) != len(predLabels) {
		return PairCounts{}
	}

	var c PairCounts
	for i := 0; i < len(trueLabels); i++ {
		for j := i + 1; j < len(trueLabels); j++ {
			sameTrue := trueLabels[i] == trueLabels[j]
			samePred := predLabels[i] == predLabels[j]
			if sameTrue {
				c.TPFN++
			}
			if samePred {
				c.TPFP++
			}
			if sameTrue && samePred {
				c.TP++
			}
		}
	}
	return c
}

// Score derives precision, recall and F1 from the pair counts.
// Empty denominators yield 0, and everything is 0 when TP is 0.
func (c PairCounts) Score() Score {
	if c.TP == 0 {
		return Score{}
	}

	var s Score
	if c.TPFP > 0 {
		s.Precision = float64(c.TP) / float64(c.TPFP)
	}
	if c.TPFN > 0 {
		s.Recall = float64(c.TP) / float64(c.TPFN)
	}
	if s.Precision+s.Recall > 0 {
		s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
	}
	return s
}

// PairwiseEvaluate scores predicted labels against true labels.
func PairwiseEvaluate(trueLabels, predLabels []int) (precision, recall, f1 float64) {
	s := CountPairs(trueLabels, predLabels).Score()
	return s.Precision, s.Recall, s.F1
}
