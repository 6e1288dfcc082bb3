// Package fetch owns retrieval: cache-first reads of ledger data, with a
// bounded worker pool for multi-crop fans. Nothing here returns an error to
// callers — a failed ledger or cache interaction degrades to an empty result
// and the timeline layer substitutes off-chain fallback data.
package fetch

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"croptrace/cache"
	"croptrace/ledger"
	"croptrace/models"
)

// Fetcher retrieves one crop's history (or one user's crop list), consulting
// the TTL cache before the ledger and writing back on a successful fetch.
type Fetcher struct {
	client  ledger.Client
	cache   cache.Store
	timeout time.Duration
	logger  *log.Logger
}

func New(client ledger.Client, store cache.Store, timeout time.Duration, logger *log.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher{
		client:  client,
		cache:   store,
		timeout: timeout,
		logger:  logger,
	}
}

// History returns the crop's decoded history in ledger append order. An
// empty result means "unknown", never "definitively no history" — the caller
// decides whether to fall back to off-chain records.
func (f *Fetcher) History(ctx context.Context, cropID string) []models.CropEvent {
	key := cache.HistoryKey(cropID)
	if raw, ok := f.cache.Get(ctx, key); ok {
		var events []models.CropEvent
		if err := json.Unmarshal(raw, &events); err == nil {
			return events
		}
		// Unreadable entry: treat as a miss and refetch.
	}

	callCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	raws, err := f.client.GetCropHistory(callCtx, cropID)
	if err != nil {
		f.logger.Printf("ledger: history %s: %v", cropID, err)
		return nil
	}

	events := ledger.DecodeAll(raws)
	f.cacheJSON(ctx, key, events, cache.HistoryTTL)
	return events
}

// UserCrops returns the crop IDs owned by a ledger identity, under the short
// TTL class. Empty means unknown, same as History.
func (f *Fetcher) UserCrops(ctx context.Context, userID string) []string {
	key := cache.UserCropsKey(userID)
	if raw, ok := f.cache.Get(ctx, key); ok {
		var ids []string
		if err := json.Unmarshal(raw, &ids); err == nil {
			return ids
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	ids, err := f.client.GetUserCrops(callCtx, userID)
	if err != nil {
		f.logger.Printf("ledger: user crops %s: %v", userID, err)
		return nil
	}

	f.cacheJSON(ctx, key, ids, cache.UserCropsTTL)
	return ids
}

func (f *Fetcher) cacheJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	buf, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := f.cache.Put(ctx, key, buf, ttl); err != nil {
		f.logger.Printf("cache: put %s: %v", key, err)
	}
}
