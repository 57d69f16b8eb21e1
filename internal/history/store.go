package history

import (
	"context"
	"time"
)

// Store persists and retrieves build events.
type Store interface {
	// Append adds an event. A zero Timestamp is replaced by the current time.
	Append(ctx context.Context, e Event) error

	// ByBuild returns every event of one build in insertion order.
	ByBuild(ctx context.Context, buildID string) ([]Event, error)

	// Range returns events whose timestamp lies within [start, end].
	Range(ctx context.Context, start, end time.Time) ([]Event, error)

	Close() error
}
