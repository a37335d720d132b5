package mock

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/poiesic/paperflow/ai"
	"github.com/poiesic/paperflow/core"
)

// MockClassifier is a test double for ai.Classifier.
// It allows custom behavior injection via function fields and is safe for
// concurrent use, matching the contract of the real classifier.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, uses default deterministic labeling.
	ClassifyFunc func(ctx context.Context, paper core.Paper) (core.Classification, error)

	callCount atomic.Int64
}

var _ ai.Classifier = (*MockClassifier)(nil)

// NewMockClassifier creates a mock classifier with default behavior.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify labels a paper deterministically from its ID.
// Default behavior: picks a primary area by cycling through the taxonomy,
// so the same paper always gets the same labels.
func (m *MockClassifier) Classify(ctx context.Context, paper core.Paper) (core.Classification, error) {
	m.callCount.Add(1)

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, paper)
	}

	primary := ai.PrimaryAreas[int(uint64(paper.Id)%uint64(len(ai.PrimaryAreas)))]
	secondary := ai.SecondaryFocuses[int(uint64(paper.Id)%uint64(len(ai.SecondaryFocuses)))]
	domain := ai.ApplicationDomains[int(uint64(paper.Id)%uint64(len(ai.ApplicationDomains)))]

	return core.Classification{
		PaperId:           paper.Id,
		PrimaryArea:       primary.Label,
		SecondaryFocus:    secondary.Label,
		ApplicationDomain: domain.Label,
		TLDR:              "Mock summary of " + paper.Title,
		InterestTags:      []string{},
		ClassifiedAt:      time.Now().UTC(),
	}, nil
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	return int(m.callCount.Load())
}
