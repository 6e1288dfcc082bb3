package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"croptrace/lifecycle"
	"croptrace/models"

	"github.com/go-chi/chi/v5"
	"github.com/montanaflynn/stats"
	"go.mongodb.org/mongo-driver/bson"
)

// actorFor resolves the requesting user's ledger identity.
func (a *App) actorFor(ctx context.Context, r *http.Request) (string, bool) {
	uid := mustUserID(r)
	var u models.User
	if err := a.users.FindOne(ctx, bson.M{"_id": uid}).Decode(&u); err != nil {
		return "", false
	}
	if u.ChainID != "" {
		return u.ChainID, true
	}
	return uid.Hex(), true
}

// handleListCrops returns the caller's crops classified into received and
// processed lists. The crop-ID list and every history come through the TTL
// cache; misses fan out to the ledger under the worker ceiling.
func (a *App) handleListCrops(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	actor, ok := a.actorFor(ctx, r)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	ids := a.fetcher.UserCrops(ctx, actor)
	histories := a.batch.FetchAll(ctx, ids)
	out := lifecycle.ClassifyAll(histories, actor)
	_ = json.NewEncoder(w).Encode(out)
}

// handleCropTimeline returns the composed view for one crop, tagged with
// its source ("chain" or "fallback"). This endpoint never fails hard: a
// crop with no data anywhere yields an empty fallback view.
func (a *App) handleCropTimeline(w http.ResponseWriter, r *http.Request) {
	cropID := chi.URLParam(r, "id")
	if cropID == "" {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	actor, ok := a.actorFor(ctx, r)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	view := a.builder.Build(ctx, cropID, actor)
	_ = json.NewEncoder(w).Encode(view)
}

// handleCropSummary aggregates quantity statistics over the caller's
// classified crops.
func (a *App) handleCropSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	actor, ok := a.actorFor(ctx, r)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	ids := a.fetcher.UserCrops(ctx, actor)
	histories := a.batch.FetchAll(ctx, ids)
	classified := lifecycle.ClassifyAll(histories, actor)

	resp := cropSummaryResp{
		Crops:      len(histories),
		Processed:  len(classified.Processed),
		Received:   len(classified.Received),
		ByCropType: map[string]int{},
	}

	var harvested, processed []float64
	for _, events := range histories {
		cropType := ""
		var maxHarvest int64
		for _, e := range events {
			if cropType == "" && e.CropType != "" {
				cropType = e.CropType
			}
			if e.HarvestQuantity > maxHarvest {
				maxHarvest = e.HarvestQuantity
			}
		}
		if cropType != "" {
			resp.ByCropType[cropType]++
		}
		if maxHarvest > 0 {
			harvested = append(harvested, float64(maxHarvest))
		}
	}
	for _, e := range classified.Processed {
		if e.ProcessedQuantity > 0 {
			processed = append(processed, float64(e.ProcessedQuantity))
		}
	}

	resp.HarvestQuantity = summarize(harvested)
	resp.ProcessedQuantity = summarize(processed)
	_ = json.NewEncoder(w).Encode(resp)
}

func summarize(values []float64) *quantityStats {
	if len(values) == 0 {
		return nil
	}
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	max, _ := stats.Max(values)
	return &quantityStats{Mean: mean, Median: median, Max: max}
}
