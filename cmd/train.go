package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/soclabs/dgahound/config"
	"github.com/soclabs/dgahound/internal/automl"
	"github.com/soclabs/dgahound/internal/synth"
)

// dirPerm is the mode for created data and model directories
const dirPerm = 0o755

// trainCmd generates a synthetic dataset and runs the model search over it
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "generate a synthetic DGA dataset and train a leader model",
	Run: func(cmd *cobra.Command, _ []string) {
		err := train(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the train command and its flags on the root command
func init() {
	rootCmd.AddCommand(trainCmd)
	trainCmd.Flags().Int("rows", 6000, "total synthetic rows; split evenly between classes")
	trainCmd.Flags().Int("runtime", 30, "model search budget in seconds")
	trainCmd.Flags().Int("max-models", 0, "cap on candidate models; 0 uses the default")
	trainCmd.Flags().Int64("seed", time.Now().UnixNano(), "random seed for dataset generation and the search split")
	trainCmd.Flags().String("data-dir", "", "dataset output directory; overrides DGAHOUND_DATA_DIR")
	trainCmd.Flags().String("model-dir", "", "model artifact output directory; overrides DGAHOUND_MODEL_DIR")
}

// train assembles the dataset, searches for a leader model, and exports the
// artifact plus the ranked leaderboard
func train(ctx context.Context) error {
	cfg := config.New()

	if dir := k.String("data-dir"); dir != "" {
		cfg.DataDir = dir
	}

	if dir := k.String("model-dir"); dir != "" {
		cfg.ModelDir = dir
	}

	rows := k.Int("rows")
	if rows <= 0 {
		return fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidFlag, rows)
	}

	// odd totals give the extra row to the dga class
	nLegit := rows / 2
	nDga := rows - nLegit
	seed := k.Int64("seed")

	log.Info().Int("legit", nLegit).Int("dga", nDga).Int64("seed", seed).Msg("assembling synthetic dataset")

	records := synth.Assemble(rand.New(rand.NewSource(seed)), nLegit, nDga)

	if err := os.MkdirAll(cfg.DataDir, dirPerm); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	if err := synth.WriteCSV(cfg.DatasetPath(), records); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}

	log.Info().Str("path", cfg.DatasetPath()).Msg("dataset written")

	trainer := automl.Trainer{
		MaxRuntime: time.Duration(k.Int("runtime")) * time.Second,
		MaxModels:  k.Int("max-models"),
		Seed:       seed,
	}

	leader, leaderboard, err := trainer.Train(ctx, records)
	if err != nil {
		return fmt.Errorf("model search: %w", err)
	}

	if err := os.MkdirAll(cfg.ModelDir, dirPerm); err != nil {
		return fmt.Errorf("creating model dir: %w", err)
	}

	if err := automl.Export(cfg.ArtifactPath(), leader); err != nil {
		return fmt.Errorf("exporting artifact: %w", err)
	}

	if err := automl.WriteLeaderboard(cfg.LeaderboardPath(), leaderboard); err != nil {
		return fmt.Errorf("writing leaderboard: %w", err)
	}

	log.Info().
		Str("model_id", leader.ModelID()).
		Str("algo", leader.Algo()).
		Str("artifact", cfg.ArtifactPath()).
		Int("candidates", len(leaderboard)).
		Msg("leader model exported")

	return nil
}
