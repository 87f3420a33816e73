package predict

import (
	"errors"
	"testing"

	"github.com/soclabs/dgahound/internal/types"
)

func row(cells ...Cell) RawRow {
	return RawRow{Cells: cells}
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name      string
		row       RawRow
		wantProb  float64
		wantLabel types.Label
	}{
		{
			name:      "named dga column",
			row:       row(Cell{"dga", "0.73"}, Cell{"legit", "0.27"}),
			wantProb:  0.73,
			wantLabel: types.LabelDGA,
		},
		{
			name:      "named dga column case insensitive",
			row:       row(Cell{"predict", "dga"}, Cell{"Legit", "0.61"}, Cell{"DGA", "0.39"}),
			wantProb:  0.39,
			wantLabel: types.LabelLegit,
		},
		{
			name:      "named p1 column",
			row:       row(Cell{"p0", "0.9"}, Cell{"p1", "0.1"}),
			wantProb:  0.1,
			wantLabel: types.LabelLegit,
		},
		{
			name:      "positional fallback takes last probability column",
			row:       row(Cell{"prob0", "0.8"}, Cell{"prob1", "0.2"}),
			wantProb:  0.2,
			wantLabel: types.LabelLegit,
		},
		{
			name:      "discrete predict dga",
			row:       row(Cell{"predict", "dga"}),
			wantProb:  1.0,
			wantLabel: types.LabelDGA,
		},
		{
			name:      "discrete predict numeric positive",
			row:       row(Cell{"predict", "1"}),
			wantProb:  1.0,
			wantLabel: types.LabelDGA,
		},
		{
			name:      "discrete predict legit",
			row:       row(Cell{"predict", "legit"}),
			wantProb:  0.0,
			wantLabel: types.LabelLegit,
		},
		{
			name:      "threshold boundary is inclusive toward dga",
			row:       row(Cell{"dga", "0.5"}),
			wantProb:  0.5,
			wantLabel: types.LabelDGA,
		},
		{
			name:      "named column wins over positional",
			row:       row(Cell{"p0", "0.9"}, Cell{"p1", "0.1"}, Cell{"dga", "0.7"}),
			wantProb:  0.7,
			wantLabel: types.LabelDGA,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.row)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.Probability != tc.wantProb {
				t.Errorf("probability: expected %v, got %v", tc.wantProb, got.Probability)
			}

			if got.Label != tc.wantLabel {
				t.Errorf("label: expected %q, got %q", tc.wantLabel, got.Label)
			}
		})
	}
}

func TestNormalizeNoMatch(t *testing.T) {
	_, err := Normalize(row(Cell{"score", "0.4"}, Cell{"class", "legit"}))
	if err == nil {
		t.Fatal("expected error for row with no recognized columns")
	}

	if !errors.Is(err, ErrNoProbabilityColumn) {
		t.Errorf("expected ErrNoProbabilityColumn, got %v", err)
	}
}

func TestNormalizeEmptyRow(t *testing.T) {
	_, err := Normalize(RawRow{})
	if !errors.Is(err, ErrNoProbabilityColumn) {
		t.Errorf("expected ErrNoProbabilityColumn, got %v", err)
	}
}

func TestRawRowString(t *testing.T) {
	s := row(Cell{"predict", "dga"}, Cell{"p1", "0.9"}).String()

	if s != "predict=dga  p1=0.9" {
		t.Errorf("unexpected rendering: %q", s)
	}
}
