package ledger

import "context"

// RawEvent is one event as emitted by the ledger: a fixed-length positional
// tuple of scalars. Field meaning is defined by the index table in
// decoder.go and nowhere else.
type RawEvent []any

// Client is the read-only ledger interface. Both calls are idempotent and
// may fail or time out; callers are expected to treat any failure as "no
// data" and continue on cache/fallback paths.
type Client interface {
	// GetUserCrops returns the crop IDs owned by a ledger identity.
	GetUserCrops(ctx context.Context, userID string) ([]string, error)

	// GetCropHistory returns a crop's full event history in append order.
	GetCropHistory(ctx context.Context, cropID string) ([]RawEvent, error)
}
