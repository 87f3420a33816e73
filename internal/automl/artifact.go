package automl

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/samber/lo"
)

// artifactSchemaVersion is the current artifact file layout version
const artifactSchemaVersion = 1

// artifactFile is the portable, dependency-free on-disk model representation
type artifactFile struct {
	SchemaVersion int             `json:"schema_version"`
	ModelID       string          `json:"model_id"`
	Algo          string          `json:"algo"`
	Params        json.RawMessage `json:"params"`
}

// Export serializes a trained model into a portable JSON artifact
func Export(path string, m Model) error {
	var params any

	switch model := m.(type) {
	case *GLM:
		params = model.params
	case *GBM:
		params = model.params
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAlgo, m.Algo())
	}

	rawParams, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encoding model params: %w", err)
	}

	data, err := json.MarshalIndent(artifactFile{
		SchemaVersion: artifactSchemaVersion,
		ModelID:       m.ModelID(),
		Algo:          m.Algo(),
		Params:        rawParams,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, 0o600); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}

	return nil
}

// Load reconstructs a scoring model from an exported artifact
func Load(path string) (Model, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	var af artifactFile
	if err := json.Unmarshal(data, &af); err != nil {
		return nil, fmt.Errorf("decoding artifact: %w", err)
	}

	if af.SchemaVersion != artifactSchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSchema, af.SchemaVersion)
	}

	switch af.Algo {
	case "glm":
		var p glmParams
		if err := json.Unmarshal(af.Params, &p); err != nil {
			return nil, fmt.Errorf("decoding glm params: %w", err)
		}
		return &GLM{id: af.ModelID, params: p}, nil
	case "gbm":
		var p gbmParams
		if err := json.Unmarshal(af.Params, &p); err != nil {
			return nil, fmt.Errorf("decoding gbm params: %w", err)
		}
		return &GBM{id: af.ModelID, params: p}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgo, af.Algo)
	}
}

// WriteLeaderboard writes the ranked candidate list as a tabular export
func WriteLeaderboard(path string, lb Leaderboard) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating leaderboard directory: %w", err)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("creating leaderboard file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)

	rows := append([][]string{{"model_id", "algo", "auc"}},
		lo.Map(lb, func(e Entry, _ int) []string {
			return []string{e.ModelID, e.Algo, strconv.FormatFloat(e.AUC, 'f', 6, 64)}
		})...)

	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing leaderboard rows: %w", err)
	}

	return nil
}
