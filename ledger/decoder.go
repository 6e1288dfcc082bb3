package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"croptrace/models"
)

// Index table for schema v1 of the contract's event tuple. This is the only
// place that maps tuple positions to fields; call sites never index into a
// RawEvent directly.
const (
	idxStatus            = 0
	idxLocation          = 1
	idxActor             = 2
	idxTimestamp         = 3
	idxDatePlanted       = 4
	idxHarvestDate       = 5
	idxReceivedDate      = 6
	idxProcessedDate     = 7
	idxPackagingType     = 8
	idxHarvesterName     = 9
	idxHarvestQuantity   = 10
	idxAreaSize          = 11
	idxUserID            = 12
	idxCropID            = 13
	idxCropType          = 14
	idxProcessedQuantity = 15
	idxBatchCode         = 16

	// SchemaWidth is the tuple length the contract emits for schema v1.
	SchemaWidth = 17
)

// VerifySchema checks the index table against the expected tuple width:
// every position in [0, SchemaWidth) mapped exactly once. Run at bootstrap
// so a careless edit to the table fails the process, not a decode.
func VerifySchema() error {
	indices := []int{
		idxStatus, idxLocation, idxActor, idxTimestamp, idxDatePlanted,
		idxHarvestDate, idxReceivedDate, idxProcessedDate, idxPackagingType,
		idxHarvesterName, idxHarvestQuantity, idxAreaSize, idxUserID,
		idxCropID, idxCropType, idxProcessedQuantity, idxBatchCode,
	}
	seen := make([]bool, SchemaWidth)
	for _, i := range indices {
		if i < 0 || i >= SchemaWidth {
			return fmt.Errorf("ledger: field index %d outside schema width %d", i, SchemaWidth)
		}
		if seen[i] {
			return fmt.Errorf("ledger: field index %d mapped twice", i)
		}
		seen[i] = true
	}
	for i, ok := range seen {
		if !ok {
			return fmt.Errorf("ledger: tuple position %d unmapped", i)
		}
	}
	return nil
}

// Decode maps one raw tuple to a CropEvent. Decoding never fails: missing or
// malformed scalars degrade to zero values so a damaged event still occupies
// its slot in the timeline.
func Decode(raw RawEvent) models.CropEvent {
	return models.CropEvent{
		Status:            stringAt(raw, idxStatus),
		Location:          stringAt(raw, idxLocation),
		Actor:             stringAt(raw, idxActor),
		Timestamp:         intAt(raw, idxTimestamp),
		DatePlanted:       stringAt(raw, idxDatePlanted),
		HarvestDate:       stringAt(raw, idxHarvestDate),
		ReceivedDate:      stringAt(raw, idxReceivedDate),
		ProcessedDate:     stringAt(raw, idxProcessedDate),
		PackagingType:     stringAt(raw, idxPackagingType),
		HarvesterName:     stringAt(raw, idxHarvesterName),
		HarvestQuantity:   intAt(raw, idxHarvestQuantity),
		AreaSize:          models.ScaledArea(intAt(raw, idxAreaSize)),
		UserID:            stringAt(raw, idxUserID),
		CropID:            stringAt(raw, idxCropID),
		CropType:          stringAt(raw, idxCropType),
		ProcessedQuantity: intAt(raw, idxProcessedQuantity),
		BatchCode:         stringAt(raw, idxBatchCode),
	}
}

// DecodeAll decodes a history preserving ledger append order.
func DecodeAll(raws []RawEvent) []models.CropEvent {
	if len(raws) == 0 {
		return nil
	}
	events := make([]models.CropEvent, len(raws))
	for i, raw := range raws {
		events[i] = Decode(raw)
	}
	return events
}

func stringAt(raw RawEvent, idx int) string {
	if idx >= len(raw) {
		return ""
	}
	s, _ := raw[idx].(string)
	return s
}

// intAt coerces a tuple scalar to int64: direct numeric conversion first,
// then a base-10 string parse, then 0.
func intAt(raw RawEvent, idx int) int64 {
	if idx >= len(raw) {
		return 0
	}
	switch v := raw[idx].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		// JSON numbers arrive as float64.
		return int64(v)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
