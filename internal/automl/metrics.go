package automl

import "sort"

// rocAUC computes the area under the ROC curve via the rank-sum statistic,
// with average ranks over tied scores. Returns ErrSingleClass when the
// labels contain only one class, since AUC is undefined there.
func rocAUC(positive []bool, scores []float64) (float64, error) {
	n := len(scores)

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	sort.Slice(idx, func(a, b int) bool {
		return scores[idx[a]] < scores[idx[b]]
	})

	ranks := make([]float64, n)

	for i := 0; i < n; {
		j := i
		for j < n && scores[idx[j]] == scores[idx[i]] {
			j++
		}

		// average rank for the tie group, 1-based
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}

		i = j
	}

	var nPos, nNeg int
	var rankSum float64

	for i, pos := range positive {
		if pos {
			nPos++
			rankSum += ranks[i]
		} else {
			nNeg++
		}
	}

	if nPos == 0 || nNeg == 0 {
		return 0, ErrSingleClass
	}

	u := rankSum - float64(nPos)*float64(nPos+1)/2

	return u / (float64(nPos) * float64(nNeg)), nil
}
