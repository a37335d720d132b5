package classify

import "errors"

var (
	// ErrClassifierRequired is returned when NewDriver is called without a classifier.
	ErrClassifierRequired = errors.New("classifier is required")

	// ErrEmptyBatch is returned when Run is called with no papers.
	ErrEmptyBatch = errors.New("classification batch is empty")

	// ErrAllFailed is returned when every paper in a batch failed to classify.
	ErrAllFailed = errors.New("all papers in batch failed to classify")
)
