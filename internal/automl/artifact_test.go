package automl

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soclabs/dgahound/internal/features"
	"github.com/soclabs/dgahound/internal/synth"
)

func TestArtifactRoundTrip(t *testing.T) {
	records := synth.Assemble(rand.New(rand.NewSource(42)), 150, 150)

	leader, _, err := Trainer{Seed: 42}.Train(context.Background(), records)
	if err != nil {
		t.Fatalf("training: %v", err)
	}

	path := filepath.Join(t.TempDir(), "model", "dga_leader.json")

	if err := Export(path, leader); err != nil {
		t.Fatalf("export: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.ModelID() != leader.ModelID() {
		t.Errorf("expected model id %q, got %q", leader.ModelID(), loaded.ModelID())
	}

	if loaded.Algo() != leader.Algo() {
		t.Errorf("expected algo %q, got %q", leader.Algo(), loaded.Algo())
	}

	// loaded model must score identically
	for _, label := range []string{"google", "kq3v9z7j1x5f8g2h", "baxu-kola", "z9q1m2n8p4r7s3t6"} {
		fv := features.Extract(label)

		want, err := probability(leader, fv)
		if err != nil {
			t.Fatalf("scoring original: %v", err)
		}

		got, err := probability(loaded, fv)
		if err != nil {
			t.Fatalf("scoring loaded: %v", err)
		}

		if want != got {
			t.Errorf("%q: expected identical score %v, got %v", label, want, got)
		}
	}
}

func TestArtifactRoundTripGBM(t *testing.T) {
	records := synth.Assemble(rand.New(rand.NewSource(7)), 100, 100)

	m := trainGBM("gbm_roundtrip", gbmRecipe{nTrees: 30, learnRate: 0.1}, toRows(records))

	path := filepath.Join(t.TempDir(), "dga_leader.json")

	if err := Export(path, m); err != nil {
		t.Fatalf("export: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	fv := features.Extract("kq3v9z7j1x5f8g2h")

	want, _ := probability(m, fv)
	got, _ := probability(loaded, fv)

	if want != got {
		t.Errorf("expected identical score %v, got %v", want, got)
	}

	// gbm does not expose attributions
	if _, ok := loaded.(Explainer); ok {
		t.Error("expected loaded gbm not to implement Explainer")
	}
}

func TestLoadMissingArtifact(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrArtifactNotFound) {
		t.Errorf("expected ErrArtifactNotFound, got %v", err)
	}
}

func TestLoadUnknownAlgo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.json")

	data := `{"schema_version":1,"model_id":"x","algo":"deeplearning","params":{}}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrUnknownAlgo) {
		t.Errorf("expected ErrUnknownAlgo, got %v", err)
	}
}

func TestLoadUnsupportedSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.json")

	data := `{"schema_version":9,"model_id":"x","algo":"glm","params":{}}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedSchema) {
		t.Errorf("expected ErrUnsupportedSchema, got %v", err)
	}
}

func TestWriteLeaderboard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model", "leaderboard.csv")

	lb := Leaderboard{
		{ModelID: "glm_1_lr0.30_ep400", Algo: "glm", AUC: 0.991},
		{ModelID: "gbm_1_nt60_lr0.10", Algo: "gbm", AUC: 0.987},
	}

	if err := WriteLeaderboard(path, lb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading leaderboard: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	if lines[0] != "model_id,algo,auc" {
		t.Errorf("unexpected header: %q", lines[0])
	}

	if !strings.HasPrefix(lines[1], "glm_1_lr0.30_ep400,glm,0.991") {
		t.Errorf("unexpected first row: %q", lines[1])
	}
}
