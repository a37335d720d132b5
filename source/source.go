package source

import (
	"context"
	"errors"
	"time"

	"github.com/poiesic/paperflow/core"
)

// ErrUnavailable indicates the upstream feed could not be reached or
// returned an unusable response. Callers may retry a later run.
var ErrUnavailable = errors.New("source unavailable")

// ErrUnknownSource indicates no factory is registered under the given name.
var ErrUnknownSource = errors.New("unknown source")

// Source retrieves the papers published on a given day.
//
// Implementations fetch from a public feed and return fully populated
// core.Paper values. Fetch must be safe to call more than once for the
// same day; the caller handles deduplication on storage.
type Source interface {
	// Name returns the registry name of this source.
	Name() string

	// Fetch returns the papers published on the given UTC day across the
	// requested categories. An empty result with a nil error means the day
	// genuinely had no papers.
	Fetch(ctx context.Context, day time.Time, categories []string) ([]core.Paper, error)
}
