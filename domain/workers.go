package domain

import "context"

// StatSyncer recomputes denormalized comment counters in the background.
// Send enqueues a comment whose stat row went stale; the worker batches and
// dedupes before touching the store.
type StatSyncer interface {
	Start(ctx context.Context)

	Send(commentID int64)
}
