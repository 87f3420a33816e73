// Package predict normalizes raw model prediction rows into a single
// probability of the positive (dga) class. Different model types name their
// probability columns differently, so extraction runs through an ordered list
// of named strategies.
package predict

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soclabs/dgahound/internal/types"
)

// classThreshold is the inclusive probability cutoff for the dga class
const classThreshold = 0.5

// Cell is a single named column value in a prediction row. Values are kept
// as text because the row layout, including discrete class columns, is not
// guaranteed by the model.
type Cell struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RawRow is one prediction row with an unknown column layout. Column order
// is preserved for the positional fallback.
type RawRow struct {
	Cells []Cell `json:"cells"`
}

// Result is the normalized prediction
type Result struct {
	// Probability is P(dga) in [0,1]
	Probability float64 `json:"probability"`
	// Label is dga when Probability >= 0.5, ties included
	Label types.Label `json:"label"`
}

// strategy attempts to extract P(dga) from a raw row
type strategy struct {
	name string
	try  func(RawRow) (float64, bool)
}

// strategies is the documented fallback order; first match wins
var strategies = []strategy{
	{name: "named dga column", try: namedColumn("dga")},
	{name: "named p1 column", try: namedColumn("p1")},
	{name: "last probability column", try: lastProbabilityColumn},
	{name: "discrete predict column", try: discretePredict},
}

// Normalize extracts P(dga) from a raw prediction row and derives the
// predicted label. A row matching none of the documented strategies violates
// the caller contract and yields ErrNoProbabilityColumn.
func Normalize(row RawRow) (Result, error) {
	for _, s := range strategies {
		if p, ok := s.try(row); ok {
			return Result{
				Probability: p,
				Label:       labelFor(p),
			}, nil
		}
	}

	return Result{}, fmt.Errorf("%w: columns %v", ErrNoProbabilityColumn, row.columnNames())
}

// labelFor applies the inclusive 0.5 threshold, ties favoring dga
func labelFor(p float64) types.Label {
	if p >= classThreshold {
		return types.LabelDGA
	}
	return types.LabelLegit
}

// namedColumn matches a column by case-insensitive name
func namedColumn(name string) func(RawRow) (float64, bool) {
	return func(row RawRow) (float64, bool) {
		for _, c := range row.Cells {
			if strings.EqualFold(c.Name, name) {
				return parseProbability(c.Value)
			}
		}
		return 0, false
	}
}

// lastProbabilityColumn assumes the conventional p0, p1, ... layout and takes
// the last p-prefixed column as the positive class. Requires at least two
// such columns. Known heuristic: for more than two classes the last column is
// not necessarily the positive one.
func lastProbabilityColumn(row RawRow) (float64, bool) {
	var probCells []Cell

	for _, c := range row.Cells {
		if strings.HasPrefix(strings.ToLower(c.Name), "p") {
			probCells = append(probCells, c)
		}
	}

	if len(probCells) < 2 {
		return 0, false
	}

	return parseProbability(probCells[len(probCells)-1].Value)
}

// discretePredict falls back to the discrete class column: probability 1.0
// when the value reads as the positive class, else 0.0
func discretePredict(row RawRow) (float64, bool) {
	for _, c := range row.Cells {
		if !strings.EqualFold(c.Name, "predict") {
			continue
		}

		v := strings.ToLower(strings.TrimSpace(c.Value))
		if v == "1" || v == "dga" {
			return 1.0, true
		}
		return 0.0, true
	}

	return 0, false
}

// parseProbability reads a numeric cell value
func parseProbability(v string) (float64, bool) {
	p, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}
	return p, true
}

// columnNames lists the row's column names for error reporting
func (r RawRow) columnNames() []string {
	names := make([]string, 0, len(r.Cells))
	for _, c := range r.Cells {
		names = append(names, c.Name)
	}
	return names
}

// String renders the row as a compact name=value table for report output
func (r RawRow) String() string {
	var sb strings.Builder

	for i, c := range r.Cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(c.Name)
		sb.WriteString("=")
		sb.WriteString(c.Value)
	}

	return sb.String()
}
