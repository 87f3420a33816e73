package synth

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/samber/lo"

	"github.com/soclabs/dgahound/internal/features"
	"github.com/soclabs/dgahound/internal/types"
)

// Record is one labeled row of the training dataset. Length and Entropy are
// the features of the domain's second-level label, computed at synthesis
// time with the same extractor used at inference.
type Record struct {
	Domain  string      `json:"domain"`
	Length  int         `json:"length"`
	Entropy float64     `json:"entropy"`
	Label   types.Label `json:"label"`
}

// Features returns the record's feature vector
func (r Record) Features() features.Vector {
	return features.Vector{Length: r.Length, Entropy: r.Entropy}
}

// Assemble generates nLegit legit records and nDga dga records, then shuffles
// the combined set with the given random source. Class balance matches the
// input counts exactly; the same seed yields the same final order.
func Assemble(rng *rand.Rand, nLegit, nDga int) []Record {
	gen := NewGenerator(rng)

	records := make([]Record, 0, nLegit+nDga)

	for i := 0; i < nLegit; i++ {
		records = append(records, newRecord(gen, gen.LegitLabel(), types.LabelLegit))
	}

	for i := 0; i < nDga; i++ {
		records = append(records, newRecord(gen, gen.DGALabel(), types.LabelDGA))
	}

	rng.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})

	return records
}

// newRecord builds a record from a generated label
func newRecord(gen *Generator, label string, class types.Label) Record {
	fv := features.Extract(label)

	return Record{
		Domain:  gen.Domain(label),
		Length:  fv.Length,
		Entropy: fv.Entropy,
		Label:   class,
	}
}

// WriteCSV writes the dataset as a tabular export for later auditing
func WriteCSV(path string, records []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating dataset directory: %w", err)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("creating dataset file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)

	rows := append([][]string{{"domain", "length", "entropy", "label"}},
		lo.Map(records, func(r Record, _ int) []string {
			return []string{
				r.Domain,
				strconv.Itoa(r.Length),
				strconv.FormatFloat(r.Entropy, 'f', -1, 64),
				r.Label.String(),
			}
		})...)

	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing dataset rows: %w", err)
	}

	return nil
}
