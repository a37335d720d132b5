package notify

import (
	"context"
	"fmt"

	"github.com/poiesic/paperflow/core"
)

// Notifier delivers a digest to one channel.
type Notifier interface {
	// Name returns the registry name of this channel type.
	Name() string

	// Deliver sends the digest. Implementations handle their own
	// per-message retry; a returned error means the digest was not
	// fully delivered.
	Deliver(ctx context.Context, digest core.Digest) (core.DeliveryReceipt, error)

	// Notice sends a single plain-text message outside the digest flow.
	Notice(ctx context.Context, text string) error
}

// Error wraps a delivery failure with the channel it occurred on.
type Error struct {
	Channel string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("notify %s: %v", e.Channel, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
