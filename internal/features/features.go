// Package features derives lexical features from a domain label. The same
// extraction runs during dataset synthesis and single-domain inference so the
// model always sees identically computed inputs.
package features

import "math"

// FeatureNames lists the model input columns in their canonical order
var FeatureNames = []string{"length", "entropy"}

// Vector holds the lexical features of a second-level label
type Vector struct {
	// Length is the character count of the label
	Length int `json:"length"`
	// Entropy is the Shannon entropy of the label's characters, in bits
	Entropy float64 `json:"entropy"`
}

// Extract computes the feature vector for a label. The label is expected to
// be the second-level label of a domain, already lower-cased and trimmed by
// the caller. Any input, including the empty string, yields a finite,
// non-negative result.
func Extract(label string) Vector {
	return Vector{
		Length:  len(label),
		Entropy: shannonEntropy(label),
	}
}

// Values returns the features as a slice aligned with FeatureNames
func (v Vector) Values() []float64 {
	return []float64{float64(v.Length), v.Entropy}
}

// shannonEntropy computes -sum(p*log2(p)) over the character frequencies of
// s. The empty string yields 0.0 by convention.
func shannonEntropy(s string) float64 {
	if s == "" {
		return 0.0
	}

	counts := make(map[rune]int)
	total := 0

	for _, r := range s {
		counts[r]++
		total++
	}

	var entropy float64

	for _, c := range counts {
		p := float64(c) / float64(total)
		entropy -= p * math.Log2(p)
	}

	return entropy
}
