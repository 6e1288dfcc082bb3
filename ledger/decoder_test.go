package ledger

import (
	"reflect"
	"testing"

	"croptrace/models"
)

func rawTuple() RawEvent {
	return RawEvent{
		"Harvested", "Nakuru", "Jane Farmer", float64(1700000000),
		"2023-03-01", "2023-11-10", "", "", "", "John Harvester",
		float64(120), float64(2550), "U1", "C1", "Maize", float64(0), "",
	}
}

func TestVerifySchema(t *testing.T) {
	if err := VerifySchema(); err != nil {
		t.Fatalf("VerifySchema: %v", err)
	}
}

func TestDecodeDeterministic(t *testing.T) {
	raw := rawTuple()
	first := Decode(raw)
	second := Decode(raw)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("decoding is not deterministic: %+v vs %+v", first, second)
	}

	if first.Status != models.StageHarvested {
		t.Errorf("status = %q, want %q", first.Status, models.StageHarvested)
	}
	if first.Timestamp != 1700000000 {
		t.Errorf("timestamp = %d, want 1700000000", first.Timestamp)
	}
	if first.HarvestQuantity != 120 {
		t.Errorf("harvestQuantity = %d, want 120", first.HarvestQuantity)
	}
	if first.AreaSize.Float() != 25.5 {
		t.Errorf("areaSize = %v, want 25.5", first.AreaSize.Float())
	}
	if first.CropID != "C1" || first.UserID != "U1" {
		t.Errorf("ids = %q/%q, want C1/U1", first.CropID, first.UserID)
	}
}

func TestDecodeDefensiveIntegers(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"json number", float64(42), 42},
		{"native int", 42, 42},
		{"native int64", int64(42), 42},
		{"base-10 string", "42", 42},
		{"padded string", " 42 ", 42},
		{"garbage string", "forty-two", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawTuple()
			raw[idxHarvestQuantity] = tt.in
			if got := Decode(raw).HarvestQuantity; got != tt.want {
				t.Errorf("harvestQuantity = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDecodeShortTuple(t *testing.T) {
	e := Decode(RawEvent{"Planted", "Nairobi"})
	if e.Status != models.StagePlanted || e.Location != "Nairobi" {
		t.Errorf("prefix fields lost: %+v", e)
	}
	if e.Actor != "" || e.Timestamp != 0 || e.BatchCode != "" {
		t.Errorf("missing fields should be zero-valued: %+v", e)
	}
}

func TestDecodeNonStringInStringSlot(t *testing.T) {
	raw := rawTuple()
	raw[idxLocation] = float64(7)
	if got := Decode(raw).Location; got != "" {
		t.Errorf("location = %q, want empty", got)
	}
}

func TestDecodeAllPreservesOrder(t *testing.T) {
	raws := []RawEvent{rawTuple(), rawTuple(), rawTuple()}
	raws[0][idxStatus] = "Planted"
	raws[1][idxStatus] = "Harvested"
	raws[2][idxStatus] = "Processed"

	events := DecodeAll(raws)
	if len(events) != 3 {
		t.Fatalf("len = %d, want 3", len(events))
	}
	want := []string{"Planted", "Harvested", "Processed"}
	for i, w := range want {
		if events[i].Status != w {
			t.Errorf("events[%d].Status = %q, want %q", i, events[i].Status, w)
		}
	}

	if DecodeAll(nil) != nil {
		t.Error("DecodeAll(nil) should be nil")
	}
}

func TestAreaRoundTrip(t *testing.T) {
	a := models.AreaFromFloat(25.5)
	if a != 2550 {
		t.Errorf("AreaFromFloat(25.5) = %d, want 2550", a)
	}
	if a.Float() != 25.5 {
		t.Errorf("Float() = %v, want 25.5", a.Float())
	}
}
