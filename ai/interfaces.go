package ai

import (
	"context"

	"github.com/poiesic/paperflow/core"
)

// Classifier assigns taxonomy labels and a short summary to a single paper
// via a remote language model.
// Implementations must be thread-safe for concurrent use: the classification
// driver invokes Classify from multiple workers at once.
//
// Recoverable per-paper issues (malformed response, remote error, timeout)
// surface as a ClassificationError from the single call; batching concerns
// live in the classify package, not here.
type Classifier interface {
	// Classify labels one paper. The returned classification carries the
	// paper's ID and is immutable once stored.
	Classify(ctx context.Context, paper core.Paper) (core.Classification, error)
}
