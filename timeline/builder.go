package timeline

import (
	"context"
	"log"

	"croptrace/lifecycle"
	"croptrace/models"
)

// HistorySource is the chain-backed retrieval the builder composes over.
// An empty history means "unknown", which flips the view to fallback.
type HistorySource interface {
	History(ctx context.Context, cropID string) []models.CropEvent
}

// Builder composes the per-crop view: ledger-derived blocks when history is
// available, off-chain reconstruction otherwise, and the storage/shipment
// blocks in both cases. Build never fails — a crop with no data anywhere
// yields an empty fallback view.
type Builder struct {
	histories HistorySource
	records   RecordSource
	logger    *log.Logger
}

func NewBuilder(histories HistorySource, records RecordSource, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{histories: histories, records: records, logger: logger}
}

// Build returns the composed view for cropID. userID scopes the storage
// block to the requesting user; pass "" for an unscoped view.
func (b *Builder) Build(ctx context.Context, cropID, userID string) models.TimelineView {
	view := models.TimelineView{
		CropID: cropID,
		Source: models.SourceChain,
		Origin: models.OriginBlock{CropID: cropID},
		Events: []models.TimelineEntry{},
	}

	events := b.histories.History(ctx, cropID)

	fr, err := b.records.FarmerRequest(ctx, cropID)
	if err != nil {
		b.logger.Printf("records: farmer request %s: %v", cropID, err)
	}
	mr, err := b.records.ManufacturerRecord(ctx, cropID)
	if err != nil {
		b.logger.Printf("records: manufacturer record %s: %v", cropID, err)
	}

	if len(events) == 0 {
		view.Source = models.SourceFallback
		if entries := ComposeFallback(fr, mr); len(entries) > 0 {
			view.Events = entries
		}
		view.Origin = originFromRequest(cropID, fr)
		view.Processing = processingFromRecord(mr)
	} else {
		view.Origin = originFromEvents(cropID, events)
		c := lifecycle.Classify(events, "")
		if c.LatestProcessed != nil {
			view.Processing = processingFromEvent(*c.LatestProcessed)
		}
		if sold := latestSold(events); sold != nil {
			view.Sale = &models.SaleBlock{
				Actor:     sold.Actor,
				Location:  sold.Location,
				Timestamp: sold.Timestamp,
			}
		}
		view.Events = flatten(events)
	}

	if sr, err := b.records.LatestStorage(ctx, cropID, userID); err != nil {
		b.logger.Printf("records: storage %s: %v", cropID, err)
	} else if sr != nil {
		view.Storage = sr
	}
	if sh, err := b.records.Shipments(ctx, cropID); err != nil {
		b.logger.Printf("records: shipments %s: %v", cropID, err)
	} else if len(sh) > 0 {
		view.Shipments = sh
	}

	return view
}

// originFromEvents assembles the origin block from the planted/harvested
// events, falling back across the history for metadata fields the ledger
// repeats on every event.
func originFromEvents(cropID string, events []models.CropEvent) models.OriginBlock {
	origin := models.OriginBlock{CropID: cropID}
	for i := range events {
		e := events[i]
		if origin.CropType == "" && e.CropType != "" {
			origin.CropType = e.CropType
		}
		switch e.Status {
		case models.StagePlanted:
			origin.FarmerID = e.UserID
			origin.Location = e.Location
			origin.DatePlanted = e.DatePlanted
			if e.AreaSize != 0 {
				origin.AreaSize = e.AreaSize
			}
		case models.StageHarvested:
			origin.HarvestDate = e.HarvestDate
			origin.HarvesterName = e.HarvesterName
			origin.HarvestQuantity = e.HarvestQuantity
			if e.AreaSize != 0 {
				origin.AreaSize = e.AreaSize
			}
		}
	}
	return origin
}

func originFromRequest(cropID string, fr *models.FarmerRequest) models.OriginBlock {
	origin := models.OriginBlock{CropID: cropID}
	if fr == nil {
		return origin
	}
	origin.CropType = fr.CropType
	origin.FarmerID = fr.UserID
	origin.Location = fr.Location
	origin.DatePlanted = fr.DatePlanted
	origin.HarvestDate = fr.HarvestDate
	origin.HarvesterName = fr.HarvesterName
	origin.HarvestQuantity = fr.HarvestQuantity
	origin.AreaSize = fr.AreaSize
	return origin
}

func processingFromEvent(e models.CropEvent) *models.ProcessingBlock {
	return &models.ProcessingBlock{
		Actor:             e.UserID,
		Location:          e.Location,
		ReceivedDate:      e.ReceivedDate,
		ProcessedDate:     e.ProcessedDate,
		ProcessedQuantity: e.ProcessedQuantity,
		BatchCode:         e.BatchCode,
		PackagingType:     e.PackagingType,
	}
}

func processingFromRecord(mr *models.ManufacturerRecord) *models.ProcessingBlock {
	if mr == nil {
		return nil
	}
	if mr.ProcessedDate == "" && mr.ProcessedQuantity == 0 && mr.BatchCode == "" {
		return nil
	}
	return &models.ProcessingBlock{
		Actor:             mr.UserID,
		Location:          mr.Location,
		ReceivedDate:      mr.ReceivedDate,
		ProcessedDate:     mr.ProcessedDate,
		ProcessedQuantity: mr.ProcessedQuantity,
		BatchCode:         mr.BatchCode,
		PackagingType:     mr.PackagingType,
	}
}

func latestSold(events []models.CropEvent) *models.CropEvent {
	var sold *models.CropEvent
	for i := range events {
		e := events[i]
		if e.Status != models.StageSold {
			continue
		}
		if sold == nil || e.Timestamp >= sold.Timestamp {
			sold = &e
		}
	}
	return sold
}

// flatten maps the decoded history to timeline entries, preserving ledger
// append order.
func flatten(events []models.CropEvent) []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, models.TimelineEntry{
			Status:    e.Status,
			Location:  e.Location,
			Actor:     e.Actor,
			Date:      dateFor(e),
			Quantity:  quantityFor(e),
			Timestamp: e.Timestamp,
		})
	}
	return entries
}

// dateFor picks the stage-appropriate date field recorded on the event.
func dateFor(e models.CropEvent) string {
	switch e.Status {
	case models.StagePlanted:
		return e.DatePlanted
	case models.StageHarvested:
		return e.HarvestDate
	case models.StageProcessed, models.StageReceived:
		if e.ProcessedDate != "" {
			return e.ProcessedDate
		}
		return e.ReceivedDate
	default:
		return ""
	}
}

func quantityFor(e models.CropEvent) int64 {
	if e.ProcessedQuantity > 0 {
		return e.ProcessedQuantity
	}
	return e.HarvestQuantity
}
