// Package automl trains the DGA classifier through a small bounded model
// search and serializes the leader into a portable scoring artifact. It is
// the training-backend boundary of the pipeline: callers hand it an assembled
// dataset and get back a leader model plus a ranked leaderboard.
package automl

import (
	"github.com/soclabs/dgahound/internal/explain"
	"github.com/soclabs/dgahound/internal/features"
	"github.com/soclabs/dgahound/internal/predict"
)

// Model scores a feature vector and reports its identity. Predict returns a
// raw prediction row whose column layout depends on the algorithm; callers
// normalize it through the predict package.
type Model interface {
	// ModelID uniquely identifies the trained model instance
	ModelID() string
	// Algo names the training algorithm
	Algo() string
	// Predict scores a feature vector into a raw prediction row
	Predict(fv features.Vector) predict.RawRow
}

// Explainer is implemented by models that expose per-feature attribution
// values for a scored vector. Not every algorithm supports it.
type Explainer interface {
	Contributions(fv features.Vector) (explain.Contributions, error)
}

// vectorOf rebuilds a feature vector from a raw value slice aligned with
// features.FeatureNames
func vectorOf(values []float64) features.Vector {
	return features.Vector{Length: int(values[0]), Entropy: values[1]}
}

// probability runs a model's raw output through the normalizer and returns
// P(dga). Models in this package always emit a recognizable row, so a
// normalization failure here indicates a bug rather than bad input.
func probability(m Model, fv features.Vector) (float64, error) {
	res, err := predict.Normalize(m.Predict(fv))
	if err != nil {
		return 0, err
	}
	return res.Probability, nil
}
