package storage

import (
	"context"
	"time"

	"github.com/poiesic/paperflow/core"
)

// FetchBatch records one fetch of a category for a given date. Papers are
// stored individually; the batch preserves which fetch produced them.
type FetchBatch struct {
	Id        string    `json:"id"`
	Day       string    `json:"day"`
	Category  string    `json:"category"`
	PaperIds  []core.ID `json:"paper_ids"`
	FetchedAt time.Time `json:"fetched_at"`
}

// StatusRepository persists per-date, per-stage completion markers. It is the
// sole durable coordination state the pipeline resumes from, so every mutation
// must be committed before the call returns.
// Implementations must be thread-safe and support concurrent access.
type StatusRepository interface {
	// GetMarker returns the marker for (day, stage). A legitimately missing
	// record is not an error: it returns a zero marker with StatusPending.
	GetMarker(ctx context.Context, day string, stage core.Stage) (core.StageMarker, error)

	// GetMarkers returns all recorded markers for a day, keyed by stage.
	// Stages with no record are absent from the map.
	GetMarkers(ctx context.Context, day string) (map[core.Stage]core.StageMarker, error)

	// MarkStarted transitions (day, stage) to in_progress.
	// Returns ErrMarkerRegression if the marker is already done.
	MarkStarted(ctx context.Context, day string, stage core.Stage) error

	// MarkDone transitions (day, stage) to done with item counts.
	MarkDone(ctx context.Context, day string, stage core.Stage, counts core.Counts) error

	// MarkFailed transitions (day, stage) to failed with a reason.
	// Returns ErrMarkerRegression if the marker is already done.
	MarkFailed(ctx context.Context, day string, stage core.Stage, reason string) error

	// Close closes the repository and releases resources.
	Close() error
}

// PaperRepository persists fetched papers. Writes are keyed by content-derived
// paper ID and are overwrite-safe: re-fetching a day rewrites identical records.
type PaperRepository interface {
	// AddPapers stores papers under the given day. Papers with Id 0 get an ID
	// derived from their arXiv ID. FetchedAt is set if zero. Returns the
	// papers with IDs and timestamps populated.
	AddPapers(ctx context.Context, day string, papers ...*core.Paper) ([]*core.Paper, error)

	// GetPaper retrieves a single paper by ID.
	// Returns ErrNotFound if the paper doesn't exist.
	GetPaper(ctx context.Context, id core.ID) (*core.Paper, error)

	// GetPapersByDay retrieves all papers fetched for a day, ordered by fetch
	// time then paper ID.
	GetPapersByDay(ctx context.Context, day string) ([]*core.Paper, error)

	// AddFetchBatch records which papers one category fetch produced and
	// returns the stored batch with its generated ID.
	AddFetchBatch(ctx context.Context, batch *FetchBatch) (*FetchBatch, error)

	// GetFetchBatches retrieves the fetch batches recorded for a day.
	GetFetchBatches(ctx context.Context, day string) ([]*FetchBatch, error)

	// Close closes the repository and releases resources.
	Close() error
}

// ClassificationRepository persists classification results, keyed by paper ID
// with a secondary taxonomy index. A stored result is what makes re-running
// the classify stage skip that paper.
type ClassificationRepository interface {
	// AddClassifications stores results. ClassifiedAt is set if zero.
	// Overwrites any existing result for the same paper.
	AddClassifications(ctx context.Context, results ...*core.Classification) error

	// GetClassification retrieves the result for one paper.
	// Returns ErrNotFound if the paper has no stored result.
	GetClassification(ctx context.Context, paperId core.ID) (*core.Classification, error)

	// GetClassifications retrieves results for multiple papers. Papers without
	// a stored result are simply absent from the map (no error).
	GetClassifications(ctx context.Context, paperIds ...core.ID) (map[core.ID]*core.Classification, error)

	// GetByTaxonomy returns the paper IDs archived under a taxonomy triple.
	// Labels narrow the scan left to right: an empty segment matches any
	// value for that level and every level after it, so segments following
	// an empty one are ignored.
	GetByTaxonomy(ctx context.Context, primaryArea, secondaryFocus, applicationDomain string) ([]core.ID, error)

	// Close closes the repository and releases resources.
	Close() error
}
