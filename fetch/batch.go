package fetch

import (
	"context"
	"sync"

	"croptrace/models"
)

// DefaultWorkers caps in-flight ledger fetches regardless of how many crops
// a user owns.
const DefaultWorkers = 8

// HistorySource is the per-crop retrieval the batch fans out over.
type HistorySource interface {
	History(ctx context.Context, cropID string) []models.CropEvent
}

// BatchFetcher retrieves many crops' histories through a fixed-size worker
// pool and fans the results back into one map.
type BatchFetcher struct {
	source  HistorySource
	workers int
}

func NewBatch(source HistorySource, workers int) *BatchFetcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &BatchFetcher{source: source, workers: workers}
}

// FetchAll fetches every crop in cropIDs and returns the complete merged
// map once the whole batch has settled. Results complete in no particular
// order; a slow or failing crop never blocks the others, it just contributes
// an empty history.
func (b *BatchFetcher) FetchAll(ctx context.Context, cropIDs []string) map[string][]models.CropEvent {
	ids := dedupe(cropIDs)
	out := make(map[string][]models.CropEvent, len(ids))
	if len(ids) == 0 {
		return out
	}

	workers := b.workers
	if workers > len(ids) {
		workers = len(ids)
	}

	type result struct {
		id     string
		events []models.CropEvent
	}
	jobs := make(chan string)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				results <- result{id: id, events: b.source.History(ctx, id)}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, id := range ids {
			jobs <- id
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		out[r.id] = r.events
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
