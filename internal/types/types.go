// Package types holds shared value types used across the scoring pipeline.
package types

// Label is the ground-truth or predicted class of a domain.
type Label string

const (
	// LabelLegit marks a human-registered, benign domain
	LabelLegit Label = "legit"
	// LabelDGA marks an algorithmically generated domain
	LabelDGA Label = "dga"
)

// IsDGA reports whether the label is the positive (dga) class
func (l Label) IsDGA() bool {
	return l == LabelDGA
}

// String returns the label as plain text
func (l Label) String() string {
	return string(l)
}
