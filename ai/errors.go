package ai

import "fmt"

// ClassificationError reports a recoverable per-paper classification failure.
// The classification driver records it against the paper and moves on; it
// never aborts a batch.
type ClassificationError struct {
	Reason string
	Err    error
}

func (e *ClassificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("classification failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("classification failed: %s", e.Reason)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}
