package automl

import "errors"

var (
	// ErrEmptyDataset is returned when training is invoked with no records
	ErrEmptyDataset = errors.New("training dataset is empty")
	// ErrSingleClass is returned when AUC is requested over a single-class sample
	ErrSingleClass = errors.New("validation sample contains a single class")
	// ErrArtifactNotFound is returned when the model artifact file does not exist
	ErrArtifactNotFound = errors.New("model artifact not found")
	// ErrUnknownAlgo is returned when an artifact names an unsupported algorithm
	ErrUnknownAlgo = errors.New("unknown algorithm in model artifact")
	// ErrUnsupportedSchema is returned when an artifact has an unexpected schema version
	ErrUnsupportedSchema = errors.New("unsupported artifact schema version")
)
