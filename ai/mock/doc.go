// Package mock provides a test double implementation of the ai.Classifier
// interface.
//
// The mock allows tests to run without an external AI service and enables
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	classifier := mock.NewMockClassifier()
//	result, err := classifier.Classify(ctx, paper)
//
//	// Custom behavior injection
//	classifier := mock.NewMockClassifier()
//	classifier.ClassifyFunc = func(ctx context.Context, paper core.Paper) (core.Classification, error) {
//	    return core.Classification{}, errors.New("service down")
//	}
//
//	// Check call counts
//	count := classifier.CallCount()
//
// # Default Behavior
//
// Without an injected function, MockClassifier returns deterministic labels
// derived from the paper's ID, so repeated calls for the same paper always
// agree.
package mock
