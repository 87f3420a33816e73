package score

import "errors"

var (
	// ErrNoModel is returned when the engine is created without a model
	ErrNoModel = errors.New("scoring engine requires a model")
	// ErrEmptyDomain is returned when an empty domain is analyzed
	ErrEmptyDomain = errors.New("domain is required")
)
