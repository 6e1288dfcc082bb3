package models

// Source tags on a timeline view. Chain data is authoritative; fallback is a
// best-effort reconstruction from off-chain records.
const (
	SourceChain    = "chain"
	SourceFallback = "fallback"
)

// TimelineEntry is one flattened row of a crop's timeline. Chain-derived
// entries carry the ledger timestamp; fallback entries only carry the string
// date recorded off-chain.
type TimelineEntry struct {
	Status    string `json:"status"`
	Location  string `json:"location,omitempty"`
	Actor     string `json:"actor,omitempty"`
	Date      string `json:"date,omitempty"`
	Quantity  int64  `json:"quantity,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// OriginBlock describes planting and harvest. It is always present on a
// view, possibly mostly empty.
type OriginBlock struct {
	CropID          string     `json:"cropId"`
	CropType        string     `json:"cropType,omitempty"`
	FarmerID        string     `json:"farmerId,omitempty"`
	Location        string     `json:"location,omitempty"`
	DatePlanted     string     `json:"datePlanted,omitempty"`
	HarvestDate     string     `json:"harvestDate,omitempty"`
	HarvesterName   string     `json:"harvesterName,omitempty"`
	HarvestQuantity int64      `json:"harvestQuantity,omitempty"`
	AreaSize        ScaledArea `json:"areaSize,omitempty"`
}

// ProcessingBlock describes the manufacturer stage.
type ProcessingBlock struct {
	Actor             string `json:"actor,omitempty"`
	Location          string `json:"location,omitempty"`
	ReceivedDate      string `json:"receivedDate,omitempty"`
	ProcessedDate     string `json:"processedDate,omitempty"`
	ProcessedQuantity int64  `json:"processedQuantity,omitempty"`
	BatchCode         string `json:"batchCode,omitempty"`
	PackagingType     string `json:"packagingType,omitempty"`
}

// SaleBlock describes the final sale, when the ledger has one.
type SaleBlock struct {
	Actor     string `json:"actor,omitempty"`
	Location  string `json:"location,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// TimelineView is the composed per-crop result handed to callers.
type TimelineView struct {
	CropID     string           `json:"cropId"`
	Source     string           `json:"source"`
	Origin     OriginBlock      `json:"origin"`
	Processing *ProcessingBlock `json:"processing,omitempty"`
	Sale       *SaleBlock       `json:"sale,omitempty"`
	Storage    *StorageRecord   `json:"storage,omitempty"`
	Shipments  []ShipmentRecord `json:"shipments,omitempty"`
	Events     []TimelineEntry  `json:"events"`
}

// ClassifiedCrops carries, per caller, the latest received-but-unprocessed
// and the latest processed event for each crop. A crop appears in at most
// one of the two lists.
type ClassifiedCrops struct {
	Received  []CropEvent `json:"received"`
	Processed []CropEvent `json:"processed"`
}
