// Package lifecycle refines raw ledger statuses into the states callers see.
// The contract tags both "handed to the manufacturer" and "processed into a
// batch" as StageProcessed; the split is a field-presence heuristic, kept
// here and nowhere else.
package lifecycle

import (
	"sort"

	"croptrace/models"
)

// ReceivedCandidate reports whether e records a crop received by actor and
// not yet processed: status Processed with blank processedDate, zero
// processedQuantity and blank batchCode. An empty actor matches any owner.
func ReceivedCandidate(e models.CropEvent, actor string) bool {
	return e.Status == models.StageProcessed && matchesActor(e, actor) &&
		e.ProcessedDate == "" && e.ProcessedQuantity == 0 && e.BatchCode == ""
}

// ProcessedFinal reports whether e records completed processing: status
// Processed with any of processedDate, processedQuantity or batchCode set.
// By construction this is the exact negation of ReceivedCandidate over the
// same fields; keep the two disjoint when changing field semantics.
func ProcessedFinal(e models.CropEvent, actor string) bool {
	return e.Status == models.StageProcessed && matchesActor(e, actor) &&
		(e.ProcessedDate != "" || e.ProcessedQuantity > 0 || e.BatchCode != "")
}

func matchesActor(e models.CropEvent, actor string) bool {
	return actor == "" || e.UserID == actor
}

// Classified holds the per-crop outcome: at most one of the two pointers is
// set. A crop that has been processed never surfaces as received.
type Classified struct {
	LatestReceived  *models.CropEvent
	LatestProcessed *models.CropEvent
}

// Classify scans one crop's history and keeps, per predicate, the event with
// the greatest timestamp. Equal timestamps resolve last-seen-wins, so for a
// fixed ledger history (append order preserved by the fetch layer) the
// result is deterministic. If both states matched, the received candidate is
// suppressed.
func Classify(events []models.CropEvent, actor string) Classified {
	var c Classified
	for i := range events {
		e := events[i]
		switch {
		case ReceivedCandidate(e, actor):
			if c.LatestReceived == nil || e.Timestamp >= c.LatestReceived.Timestamp {
				c.LatestReceived = &e
			}
		case ProcessedFinal(e, actor):
			if c.LatestProcessed == nil || e.Timestamp >= c.LatestProcessed.Timestamp {
				c.LatestProcessed = &e
			}
		}
	}
	if c.LatestProcessed != nil {
		c.LatestReceived = nil
	}
	return c
}

// ClassifyAll classifies every crop in histories against actor and shapes
// the two list views: received sorted by receivedDate descending, processed
// by processedDate descending. The dates are zero-padded ISO-like strings,
// so lexical comparison orders them.
func ClassifyAll(histories map[string][]models.CropEvent, actor string) models.ClassifiedCrops {
	out := models.ClassifiedCrops{
		Received:  []models.CropEvent{},
		Processed: []models.CropEvent{},
	}
	for _, events := range histories {
		c := Classify(events, actor)
		switch {
		case c.LatestProcessed != nil:
			out.Processed = append(out.Processed, *c.LatestProcessed)
		case c.LatestReceived != nil:
			out.Received = append(out.Received, *c.LatestReceived)
		}
	}
	sort.SliceStable(out.Received, func(i, j int) bool {
		return out.Received[i].ReceivedDate > out.Received[j].ReceivedDate
	})
	sort.SliceStable(out.Processed, func(i, j int) bool {
		return out.Processed[i].ProcessedDate > out.Processed[j].ProcessedDate
	})
	return out
}
