package automl

import (
	"fmt"
	"math"
	"sort"

	"github.com/soclabs/dgahound/internal/features"
	"github.com/soclabs/dgahound/internal/predict"
	"github.com/soclabs/dgahound/internal/types"
)

// probClamp keeps initial class ratios away from 0 and 1 so the starting
// log-odds stay finite on degenerate datasets
const probClamp = 1e-6

// stump is a depth-1 regression tree: one feature, one threshold, two leaves
type stump struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      float64 `json:"left"`
	Right     float64 `json:"right"`
}

// gbmParams is the full serializable state of a trained boosted-stump model
type gbmParams struct {
	// InitScore is the starting log-odds of the positive class
	InitScore float64 `json:"init_score"`
	// LearnRate shrinks each stump's contribution
	LearnRate float64 `json:"learn_rate"`
	Trees     []stump `json:"trees"`
}

// GBM is a gradient-boosted ensemble of depth-1 trees on logistic loss. Its
// prediction rows carry class-named probability columns.
type GBM struct {
	id     string
	params gbmParams
}

// gbmRecipe fixes the hyperparameters of one GBM candidate
type gbmRecipe struct {
	nTrees    int
	learnRate float64
}

// fallbackRecipe is the fixed small recipe used when the model search fails;
// training it on the full dataset guarantees an exportable artifact
var fallbackRecipe = gbmRecipe{nTrees: 60, learnRate: 0.1}

// trainGBM fits boosted stumps with Newton leaf updates
func trainGBM(id string, recipe gbmRecipe, rows []trainRow) *GBM {
	n := len(rows)
	dim := len(features.FeatureNames)

	var positives float64
	for _, r := range rows {
		positives += r.target
	}

	p0 := clamp(positives/float64(n), probClamp, 1-probClamp)
	initScore := math.Log(p0 / (1 - p0))

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = initScore
	}

	// candidate thresholds per feature: midpoints between sorted distinct values
	thresholds := make([][]float64, dim)
	for j := 0; j < dim; j++ {
		vals := make([]float64, n)
		for i, r := range rows {
			vals[i] = r.values[j]
		}
		sort.Float64s(vals)

		for i := 1; i < n; i++ {
			if vals[i] != vals[i-1] {
				thresholds[j] = append(thresholds[j], (vals[i]+vals[i-1])/2)
			}
		}
	}

	trees := make([]stump, 0, recipe.nTrees)

	for t := 0; t < recipe.nTrees; t++ {
		grad := make([]float64, n)
		hess := make([]float64, n)

		for i := range rows {
			p := sigmoid(scores[i])
			grad[i] = rows[i].target - p
			hess[i] = p * (1 - p)
		}

		best, ok := bestStump(rows, grad, hess, thresholds)
		if !ok {
			break
		}

		trees = append(trees, best)

		for i, r := range rows {
			scores[i] += recipe.learnRate * best.apply(r.values)
		}
	}

	return &GBM{
		id: id,
		params: gbmParams{
			InitScore: initScore,
			LearnRate: recipe.learnRate,
			Trees:     trees,
		},
	}
}

// bestStump finds the split minimizing Newton-step loss over all candidates
func bestStump(rows []trainRow, grad, hess []float64, thresholds [][]float64) (stump, bool) {
	var totalG, totalH float64
	for i := range grad {
		totalG += grad[i]
		totalH += hess[i]
	}

	best := stump{}
	bestGain := math.Inf(-1)
	found := false

	for j := range thresholds {
		for _, thr := range thresholds[j] {
			var leftG, leftH float64

			for i, r := range rows {
				if r.values[j] < thr {
					leftG += grad[i]
					leftH += hess[i]
				}
			}

			rightG := totalG - leftG
			rightH := totalH - leftH

			if leftH < probClamp || rightH < probClamp {
				continue
			}

			gain := leftG*leftG/leftH + rightG*rightG/rightH

			if gain > bestGain {
				bestGain = gain
				best = stump{
					Feature:   j,
					Threshold: thr,
					Left:      leftG / leftH,
					Right:     rightG / rightH,
				}
				found = true
			}
		}
	}

	return best, found
}

// apply evaluates the stump on a raw feature slice
func (s stump) apply(values []float64) float64 {
	if values[s.Feature] < s.Threshold {
		return s.Left
	}
	return s.Right
}

// ModelID returns the model identifier
func (m *GBM) ModelID() string { return m.id }

// Algo returns the algorithm name
func (m *GBM) Algo() string { return "gbm" }

// Predict scores a feature vector into a class-named row
func (m *GBM) Predict(fv features.Vector) predict.RawRow {
	p := sigmoid(m.score(fv))

	label := types.LabelLegit
	if p >= 0.5 {
		label = types.LabelDGA
	}

	return predict.RawRow{Cells: []predict.Cell{
		{Name: "predict", Value: label.String()},
		{Name: "legit", Value: formatProb(1 - p)},
		{Name: "dga", Value: formatProb(p)},
	}}
}

// score sums the ensemble output on the logit scale
func (m *GBM) score(fv features.Vector) float64 {
	vals := fv.Values()

	s := m.params.InitScore
	for _, tree := range m.params.Trees {
		s += m.params.LearnRate * tree.apply(vals)
	}

	return s
}

// clamp bounds v into [lo, hi]
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// gbmID builds a model identifier for a GBM candidate
func gbmID(idx int, r gbmRecipe) string {
	return fmt.Sprintf("gbm_%d_nt%d_lr%.2f", idx, r.nTrees, r.learnRate)
}
