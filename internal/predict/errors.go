package predict

import "errors"

var (
	// ErrNoProbabilityColumn is returned when no extraction strategy matches
	// the prediction row's columns
	ErrNoProbabilityColumn = errors.New("no probability column found in prediction row")
)
