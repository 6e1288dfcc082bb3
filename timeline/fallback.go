package timeline

import (
	"sort"

	"croptrace/models"
)

// ComposeFallback reconstructs a best-effort timeline purely from off-chain
// records: Planted/Harvested from the farmer request, Received/Processed
// from the manufacturer record. Entries are ordered by the records' own
// string dates — a weaker guarantee than ledger timestamps, acceptable
// because the dates are zero-padded ISO-like strings.
func ComposeFallback(fr *models.FarmerRequest, mr *models.ManufacturerRecord) []models.TimelineEntry {
	var entries []models.TimelineEntry

	if fr != nil {
		entries = append(entries, models.TimelineEntry{
			Status:   models.StagePlanted,
			Location: fr.Location,
			Actor:    fr.FarmerName,
			Date:     fr.DatePlanted,
		})
		if fr.HarvestDate != "" {
			entries = append(entries, models.TimelineEntry{
				Status:   models.StageHarvested,
				Location: fr.Location,
				Actor:    fr.HarvesterName,
				Date:     fr.HarvestDate,
				Quantity: fr.HarvestQuantity,
			})
		}
	}

	if mr != nil {
		entries = append(entries, models.TimelineEntry{
			Status:   models.StageReceived,
			Location: mr.Location,
			Actor:    mr.UserID,
			Date:     mr.ReceivedDate,
		})
		if mr.ProcessedDate != "" || mr.ProcessedQuantity > 0 || mr.BatchCode != "" {
			entries = append(entries, models.TimelineEntry{
				Status:   models.StageProcessed,
				Location: mr.Location,
				Actor:    mr.UserID,
				Date:     mr.ProcessedDate,
				Quantity: mr.ProcessedQuantity,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	return entries
}
