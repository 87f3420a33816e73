package automl

import (
	"fmt"
	"math"
	"strconv"

	"github.com/soclabs/dgahound/internal/explain"
	"github.com/soclabs/dgahound/internal/features"
	"github.com/soclabs/dgahound/internal/predict"
	"github.com/soclabs/dgahound/internal/types"
)

// glmParams is the full serializable state of a trained logistic regression
type glmParams struct {
	// Weights are the coefficients over standardized features, aligned with
	// features.FeatureNames
	Weights []float64 `json:"weights"`
	// Intercept is the bias term on the logit scale
	Intercept float64 `json:"intercept"`
	// Means and Stds hold the training-set standardization parameters
	Means []float64 `json:"means"`
	Stds  []float64 `json:"stds"`
}

// GLM is a logistic regression over standardized features. Its prediction
// rows use the conventional p0/p1 column layout.
type GLM struct {
	id     string
	params glmParams
}

// glmRecipe fixes the hyperparameters of one GLM candidate
type glmRecipe struct {
	learnRate float64
	epochs    int
}

// trainGLM fits a logistic regression with full-batch gradient descent
func trainGLM(id string, recipe glmRecipe, rows []trainRow) *GLM {
	n := len(rows)
	dim := len(features.FeatureNames)

	means := make([]float64, dim)
	stds := make([]float64, dim)

	for j := 0; j < dim; j++ {
		var sum float64
		for _, r := range rows {
			sum += r.values[j]
		}
		means[j] = sum / float64(n)

		var sq float64
		for _, r := range rows {
			d := r.values[j] - means[j]
			sq += d * d
		}
		stds[j] = math.Sqrt(sq / float64(n))
		if stds[j] == 0 {
			stds[j] = 1
		}
	}

	standardized := make([][]float64, n)
	for i, r := range rows {
		z := make([]float64, dim)
		for j := 0; j < dim; j++ {
			z[j] = (r.values[j] - means[j]) / stds[j]
		}
		standardized[i] = z
	}

	weights := make([]float64, dim)
	var intercept float64

	for epoch := 0; epoch < recipe.epochs; epoch++ {
		grad := make([]float64, dim)
		var gradB float64

		for i, z := range standardized {
			logit := intercept
			for j := 0; j < dim; j++ {
				logit += weights[j] * z[j]
			}

			err := sigmoid(logit) - rows[i].target
			for j := 0; j < dim; j++ {
				grad[j] += err * z[j]
			}
			gradB += err
		}

		for j := 0; j < dim; j++ {
			weights[j] -= recipe.learnRate * grad[j] / float64(n)
		}
		intercept -= recipe.learnRate * gradB / float64(n)
	}

	return &GLM{
		id: id,
		params: glmParams{
			Weights:   weights,
			Intercept: intercept,
			Means:     means,
			Stds:      stds,
		},
	}
}

// ModelID returns the model identifier
func (m *GLM) ModelID() string { return m.id }

// Algo returns the algorithm name
func (m *GLM) Algo() string { return "glm" }

// Predict scores a feature vector into a p0/p1-shaped row
func (m *GLM) Predict(fv features.Vector) predict.RawRow {
	p1 := sigmoid(m.logit(fv))

	label := types.LabelLegit
	if p1 >= 0.5 {
		label = types.LabelDGA
	}

	return predict.RawRow{Cells: []predict.Cell{
		{Name: "predict", Value: label.String()},
		{Name: "p0", Value: formatProb(1 - p1)},
		{Name: "p1", Value: formatProb(p1)},
	}}
}

// Contributions decomposes the logit into signed per-feature terms. For a
// linear model the contribution of feature j is its weight times the
// standardized value; the intercept is reported verbatim as the bias.
func (m *GLM) Contributions(fv features.Vector) (explain.Contributions, error) {
	vals := fv.Values()

	terms := make([]float64, len(m.params.Weights))
	for j := range m.params.Weights {
		z := (vals[j] - m.params.Means[j]) / m.params.Stds[j]
		terms[j] = m.params.Weights[j] * z
	}

	return explain.Contributions{
		Length:  terms[0],
		Entropy: terms[1],
		Bias:    m.params.Intercept,
	}, nil
}

// logit computes the raw linear score for a feature vector
func (m *GLM) logit(fv features.Vector) float64 {
	vals := fv.Values()

	logit := m.params.Intercept
	for j := range m.params.Weights {
		z := (vals[j] - m.params.Means[j]) / m.params.Stds[j]
		logit += m.params.Weights[j] * z
	}

	return logit
}

// sigmoid maps a logit to a probability
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// formatProb renders a probability cell at full precision
func formatProb(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}

// glmID builds a model identifier for a GLM candidate
func glmID(idx int, r glmRecipe) string {
	return fmt.Sprintf("glm_%d_lr%.2f_ep%d", idx, r.learnRate, r.epochs)
}
