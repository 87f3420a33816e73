// Package synth produces the labeled synthetic domain dataset used for
// training. Legit labels mimic pronounceable human-chosen names; DGA labels
// mimic the high-entropy output of domain generation algorithms.
package synth

import (
	"math/rand"
	"strings"
)

const (
	vowels     = "aeiou"
	consonants = "bcdfghjklmnpqrstvwxyz"
	alphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"

	// hyphenProbLegit is the chance a legit label carries a hyphenated suffix
	hyphenProbLegit = 0.2
	// hyphenProbDGA is the chance a DGA label gets an interior hyphen
	hyphenProbDGA = 0.3
)

// commonTLDs is the closed set of top-level domains used for synthesis
var commonTLDs = []string{"com", "net", "org", "io", "ai", "co", "info", "biz", "site", "top"}

// Generator produces randomized domain labels. The random source is supplied
// by the caller so dataset reproducibility is controlled by a single seed at
// the assembly boundary.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a label generator backed by the given random source
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// LegitLabel generates a pronounceable label: 5-12 characters alternating
// consonant/vowel starting with a consonant, with a 20% chance of a hyphen
// followed by 2-4 more alternating characters.
func (g *Generator) LegitLabel() string {
	var sb strings.Builder

	length := g.intBetween(5, 12)
	for i := 0; i < length; i++ {
		sb.WriteByte(g.alternating(i))
	}

	if g.rng.Float64() < hyphenProbLegit {
		sb.WriteByte('-')

		extra := g.intBetween(2, 4)
		for i := 0; i < extra; i++ {
			sb.WriteByte(g.alternating(i))
		}
	}

	return sb.String()
}

// DGALabel generates a high-entropy label: 12-26 characters drawn uniformly
// from lowercase letters and digits, with a 30% chance of an interior hyphen
// at least 3 characters from either end when possible.
func (g *Generator) DGALabel() string {
	length := g.intBetween(12, 26)

	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[g.rng.Intn(len(alphabet))]
	}

	s := string(b)

	if g.rng.Float64() < hyphenProbDGA {
		hi := length - 3
		if hi < 3 {
			hi = 3
		}
		pos := g.intBetween(3, hi)
		s = s[:pos] + "-" + s[pos:]
	}

	return s
}

// Domain joins a label with a uniformly drawn common TLD
func (g *Generator) Domain(label string) string {
	return label + "." + commonTLDs[g.rng.Intn(len(commonTLDs))]
}

// alternating returns a consonant on even positions and a vowel on odd ones
func (g *Generator) alternating(i int) byte {
	if i%2 == 0 {
		return consonants[g.rng.Intn(len(consonants))]
	}
	return vowels[g.rng.Intn(len(vowels))]
}

// intBetween draws uniformly from the inclusive range [lo, hi]
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}
