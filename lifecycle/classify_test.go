package lifecycle

import (
	"testing"

	"croptrace/models"
)

func receivedEvent(cropID, actor string, ts int64) models.CropEvent {
	return models.CropEvent{
		Status:    models.StageProcessed,
		UserID:    actor,
		CropID:    cropID,
		Timestamp: ts,
	}
}

func processedEvent(cropID, actor string, ts int64, date, batch string, qty int64) models.CropEvent {
	return models.CropEvent{
		Status:            models.StageProcessed,
		UserID:            actor,
		CropID:            cropID,
		Timestamp:         ts,
		ProcessedDate:     date,
		ProcessedQuantity: qty,
		BatchCode:         batch,
	}
}

func TestPredicatesDisjoint(t *testing.T) {
	events := []models.CropEvent{
		receivedEvent("C1", "U1", 100),
		processedEvent("C1", "U1", 200, "2024-01-02", "B1", 50),
		processedEvent("C1", "U1", 300, "", "B2", 0),  // batch code alone
		processedEvent("C1", "U1", 400, "", "", 10),   // quantity alone
		{Status: models.StageHarvested, UserID: "U1"}, // wrong status
		receivedEvent("C1", "U2", 100),                // wrong actor
	}
	for i, e := range events {
		r := ReceivedCandidate(e, "U1")
		p := ProcessedFinal(e, "U1")
		if r && p {
			t.Errorf("event %d matched both predicates: %+v", i, e)
		}
	}
}

// The ledger tags both sub-states Processed; a crop with a processed-final
// event must surface only as processed.
func TestClassifySuppressesReceived(t *testing.T) {
	events := []models.CropEvent{
		receivedEvent("C1", "U1", 100),
		processedEvent("C1", "U1", 200, "2024-01-02", "B1", 50),
	}
	c := Classify(events, "U1")
	if c.LatestReceived != nil {
		t.Error("received candidate should be suppressed when processed exists")
	}
	if c.LatestProcessed == nil {
		t.Fatal("processed event missing")
	}
	if c.LatestProcessed.Timestamp != 200 {
		t.Errorf("processed ts = %d, want 200", c.LatestProcessed.Timestamp)
	}
}

func TestClassifyPicksMaxTimestamp(t *testing.T) {
	events := []models.CropEvent{
		processedEvent("C1", "U1", 300, "2024-01-03", "B3", 30),
		processedEvent("C1", "U1", 100, "2024-01-01", "B1", 10),
		processedEvent("C1", "U1", 200, "2024-01-02", "B2", 20),
	}
	c := Classify(events, "U1")
	if c.LatestProcessed == nil || c.LatestProcessed.Timestamp != 300 {
		t.Fatalf("latest processed = %+v, want ts=300", c.LatestProcessed)
	}
	if c.LatestProcessed.BatchCode != "B3" {
		t.Errorf("batch = %q, want B3", c.LatestProcessed.BatchCode)
	}
}

// Equal timestamps resolve last-seen-wins over input (ledger append) order.
func TestClassifyTieBreakLastSeen(t *testing.T) {
	events := []models.CropEvent{
		processedEvent("C1", "U1", 100, "2024-01-01", "FIRST", 1),
		processedEvent("C1", "U1", 100, "2024-01-01", "SECOND", 2),
	}
	c := Classify(events, "U1")
	if c.LatestProcessed == nil || c.LatestProcessed.BatchCode != "SECOND" {
		t.Errorf("tie should go to the later event, got %+v", c.LatestProcessed)
	}
}

func TestClassifyActorScope(t *testing.T) {
	events := []models.CropEvent{
		receivedEvent("C1", "U2", 100),
	}
	if c := Classify(events, "U1"); c.LatestReceived != nil {
		t.Error("other actor's event should not classify for U1")
	}
	// Empty actor matches any owner.
	if c := Classify(events, ""); c.LatestReceived == nil {
		t.Error("empty actor should match any owner")
	}
}

func TestClassifyAllShapesLists(t *testing.T) {
	histories := map[string][]models.CropEvent{
		"C1": {
			receivedEvent("C1", "U1", 100),
			processedEvent("C1", "U1", 200, "2024-01-02", "B1", 50),
		},
		"C2": {
			func() models.CropEvent {
				e := receivedEvent("C2", "U1", 150)
				e.ReceivedDate = "2024-02-01"
				return e
			}(),
		},
		"C3": {
			func() models.CropEvent {
				e := receivedEvent("C3", "U1", 160)
				e.ReceivedDate = "2024-03-01"
				return e
			}(),
		},
		"C4": {}, // no events at all
	}

	out := ClassifyAll(histories, "U1")

	if len(out.Processed) != 1 || out.Processed[0].CropID != "C1" {
		t.Fatalf("processed = %+v, want only C1", out.Processed)
	}
	if len(out.Received) != 2 {
		t.Fatalf("received = %+v, want C2 and C3", out.Received)
	}
	// receivedDate descending.
	if out.Received[0].CropID != "C3" || out.Received[1].CropID != "C2" {
		t.Errorf("received order = %s,%s, want C3,C2",
			out.Received[0].CropID, out.Received[1].CropID)
	}
	for _, e := range out.Received {
		if e.CropID == "C1" {
			t.Error("C1 must not appear as received")
		}
	}
}

func TestClassifyAllProcessedOrder(t *testing.T) {
	histories := map[string][]models.CropEvent{
		"C1": {processedEvent("C1", "U1", 1, "2024-01-05", "B1", 1)},
		"C2": {processedEvent("C2", "U1", 2, "2024-03-05", "B2", 1)},
		"C3": {processedEvent("C3", "U1", 3, "2024-02-05", "B3", 1)},
	}
	out := ClassifyAll(histories, "U1")
	want := []string{"C2", "C3", "C1"}
	if len(out.Processed) != 3 {
		t.Fatalf("processed len = %d", len(out.Processed))
	}
	for i, w := range want {
		if out.Processed[i].CropID != w {
			t.Errorf("processed[%d] = %s, want %s", i, out.Processed[i].CropID, w)
		}
	}
}
