// Package cache is a TTL key/value store backed by a Mongo collection.
// Staleness is purely time-based: an expired entry reads as a miss, and a
// put replaces the entry wholesale with a fresh deadline. There is no
// eviction policy beyond expiry — the key space is bounded (one entry per
// crop plus one per user crop list).
package cache

import (
	"context"
	"time"
)

// TTL classes. The user crop list changes relatively often; a crop's full
// history is expensive to fetch and changes less per unit time.
const (
	UserCropsTTL = 2 * time.Minute
	HistoryTTL   = 5 * time.Minute
)

// HistoryKey is the cache key for one crop's decoded history.
func HistoryKey(cropID string) string {
	return "history:" + cropID
}

// UserCropsKey is the cache key for one user's crop-ID list.
func UserCropsKey(userID string) string {
	return "crops:" + userID
}

// Store is the cache contract. Get never surfaces errors: an absent,
// expired or unreadable entry is a miss and the caller recomputes. Put is an
// upsert; two writers racing on one key resolve last-writer-wins, which is
// fine because both derive from the same ledger truth.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Entry is the persisted document shape.
type Entry struct {
	Key       string    `bson:"_id"        json:"key"`
	Value     []byte    `bson:"value"      json:"value"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Expired reports whether the entry must be treated as a miss at now.
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
