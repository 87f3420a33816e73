package automl

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/soclabs/dgahound/internal/synth"
)

const (
	// defaultMaxModels caps the number of candidates in one search
	defaultMaxModels = 12
	// validationFraction is the share of the dataset held out for ranking
	validationFraction = 0.2
)

// trainRow is one dataset row prepared for fitting
type trainRow struct {
	values []float64
	target float64
}

// Entry is one leaderboard line
type Entry struct {
	ModelID string  `json:"model_id"`
	Algo    string  `json:"algo"`
	AUC     float64 `json:"auc"`
}

// Leaderboard ranks the candidate models by validation AUC, best first
type Leaderboard []Entry

// Trainer runs a bounded automated model search over a fixed recipe grid.
// The search makes a single pass; a failed search falls back to one fixed
// small GBM recipe rather than retrying.
type Trainer struct {
	// MaxRuntime bounds the whole search; zero means no time limit
	MaxRuntime time.Duration
	// MaxModels caps the candidate count; zero means the default
	MaxModels int
	// Seed drives the train/validation split
	Seed int64
}

// candidate pairs a model constructor with its identity
type candidate struct {
	id    string
	algo  string
	train func(rows []trainRow) Model
}

// Train searches for the best classifier on the dataset and returns the
// leader plus the ranked leaderboard. When the search produces no usable
// candidate (expired budget, degenerate validation split), it falls back to
// the fixed fallback GBM recipe trained on the full dataset so a model is
// always produced. Only an empty dataset is a hard error.
func (t Trainer) Train(ctx context.Context, records []synth.Record) (Model, Leaderboard, error) {
	if len(records) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	if t.MaxRuntime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.MaxRuntime)
		defer cancel()
	}

	rng := rand.New(rand.NewSource(t.Seed))
	trainRows, valRows := split(rng, records)

	var lb Leaderboard
	models := make(map[string]Model)

	for _, c := range t.candidates() {
		if ctx.Err() != nil {
			log.Warn().Str("model_id", c.id).Msg("runtime budget exhausted, stopping model search")
			break
		}

		m := c.train(trainRows)

		auc, err := validate(m, valRows)
		if err != nil {
			log.Warn().Err(err).Str("model_id", c.id).Msg("candidate validation failed")
			continue
		}

		lb = append(lb, Entry{ModelID: c.id, Algo: c.algo, AUC: auc})
		models[c.id] = m

		log.Debug().Str("model_id", c.id).Float64("auc", auc).Msg("candidate trained")
	}

	if len(lb) == 0 {
		return t.fallback(records)
	}

	sort.SliceStable(lb, func(i, j int) bool { return lb[i].AUC > lb[j].AUC })

	leader := models[lb[0].ModelID]
	log.Info().Str("model_id", leader.ModelID()).Float64("auc", lb[0].AUC).Msg("model search leader selected")

	return leader, lb, nil
}

// fallback trains the fixed small GBM recipe on the full dataset
func (t Trainer) fallback(records []synth.Record) (Model, Leaderboard, error) {
	log.Warn().Msg("model search produced no candidate, falling back to fixed gbm recipe")

	rows := toRows(records)
	m := trainGBM("gbm_fallback", fallbackRecipe, rows)

	lb := Leaderboard{{ModelID: m.ModelID(), Algo: "gbm (fallback)"}}

	return m, lb, nil
}

// candidates builds the recipe grid, capped at MaxModels
func (t Trainer) candidates() []candidate {
	var out []candidate

	for i, r := range []glmRecipe{
		{learnRate: 0.3, epochs: 400},
		{learnRate: 0.1, epochs: 400},
		{learnRate: 0.3, epochs: 200},
		{learnRate: 0.1, epochs: 200},
	} {
		recipe := r
		out = append(out, candidate{
			id:   glmID(i+1, recipe),
			algo: "glm",
			train: func(rows []trainRow) Model {
				return trainGLM(glmID(i+1, recipe), recipe, rows)
			},
		})
	}

	for i, r := range []gbmRecipe{
		{nTrees: 60, learnRate: 0.1},
		{nTrees: 30, learnRate: 0.3},
		{nTrees: 30, learnRate: 0.1},
		{nTrees: 60, learnRate: 0.3},
	} {
		recipe := r
		out = append(out, candidate{
			id:   gbmID(i+1, recipe),
			algo: "gbm",
			train: func(rows []trainRow) Model {
				return trainGBM(gbmID(i+1, recipe), recipe, rows)
			},
		})
	}

	max := t.MaxModels
	if max <= 0 {
		max = defaultMaxModels
	}
	if len(out) > max {
		out = out[:max]
	}

	return out
}

// validate scores the holdout set through the prediction normalizer and
// computes AUC
func validate(m Model, valRows []trainRow) (float64, error) {
	positive := make([]bool, len(valRows))
	scores := make([]float64, len(valRows))

	for i, r := range valRows {
		p, err := probability(m, vectorOf(r.values))
		if err != nil {
			return 0, err
		}

		scores[i] = p
		positive[i] = r.target == 1
	}

	return rocAUC(positive, scores)
}

// split partitions the dataset into train and validation rows, stratified by
// class so both splits keep examples of each label when possible
func split(rng *rand.Rand, records []synth.Record) (train, validation []trainRow) {
	byClass := make(map[bool][]trainRow)

	for _, r := range records {
		row := toRow(r)
		pos := r.Label.IsDGA()
		byClass[pos] = append(byClass[pos], row)
	}

	for _, rows := range byClass {
		rng.Shuffle(len(rows), func(i, j int) {
			rows[i], rows[j] = rows[j], rows[i]
		})

		nVal := int(float64(len(rows)) * validationFraction)
		if nVal == 0 && len(rows) > 1 {
			nVal = 1
		}

		validation = append(validation, rows[:nVal]...)
		train = append(train, rows[nVal:]...)
	}

	return train, validation
}

// toRows converts dataset records for fitting
func toRows(records []synth.Record) []trainRow {
	rows := make([]trainRow, len(records))
	for i, r := range records {
		rows[i] = toRow(r)
	}
	return rows
}

// toRow converts one dataset record
func toRow(r synth.Record) trainRow {
	var target float64
	if r.Label.IsDGA() {
		target = 1
	}

	return trainRow{values: r.Features().Values(), target: target}
}
