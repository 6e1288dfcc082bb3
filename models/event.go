package models

import "math"

// Lifecycle stages as tagged by the ledger contract. The contract reuses
// StageProcessed for both "received by manufacturer" and "processed into a
// batch"; the lifecycle package disambiguates the two.
const (
	StagePlanted     = "Planted"
	StageHarvested   = "Harvested"
	StageReceived    = "Received"
	StageProcessed   = "Processed"
	StageDistributed = "Distributed"
	StageSold        = "Sold"
)

// ScaledArea is a fixed-point land area: the real value multiplied by 100.
// The ledger stores areas this way; keep the scale in this one type instead
// of repeating the conversion at call sites.
type ScaledArea int64

// AreaFromFloat converts a real-valued area to its on-ledger representation.
func AreaFromFloat(v float64) ScaledArea {
	return ScaledArea(math.Round(v * 100))
}

// Float returns the real-valued area.
func (a ScaledArea) Float() float64 {
	return float64(a) / 100
}

// CropEvent is one immutable lifecycle record decoded from the ledger.
// A crop's full history is the list of these in ledger append order, which
// is not necessarily timestamp order across actors.
type CropEvent struct {
	Status            string     `json:"status"`
	Location          string     `json:"location"`
	Actor             string     `json:"actor"`
	Timestamp         int64      `json:"timestamp"` // epoch seconds, ledger-native
	DatePlanted       string     `json:"datePlanted"`
	HarvestDate       string     `json:"harvestDate"`
	ReceivedDate      string     `json:"receivedDate"`
	ProcessedDate     string     `json:"processedDate"`
	PackagingType     string     `json:"packagingType"`
	HarvesterName     string     `json:"harvesterName"`
	HarvestQuantity   int64      `json:"harvestQuantity"`
	AreaSize          ScaledArea `json:"areaSize"`
	UserID            string     `json:"userId"`
	CropID            string     `json:"cropId"`
	CropType          string     `json:"cropType"`
	ProcessedQuantity int64      `json:"processedQuantity"`
	BatchCode         string     `json:"batchCode"`
}
