package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Off-chain supplementary documents. These collections are written by the
// request/registration flows and are the only source of lifecycle data when
// the ledger is unreachable or has no history for a crop yet.

// FarmerRequest — the farmer's registration of a planted crop.
type FarmerRequest struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"             json:"id"`
	CropID          string             `bson:"cropId"                    json:"cropId"`
	UserID          string             `bson:"userId"                    json:"userId"`
	CropType        string             `bson:"cropType"                  json:"cropType"`
	Location        string             `bson:"location,omitempty"        json:"location,omitempty"`
	FarmerName      string             `bson:"farmerName,omitempty"      json:"farmerName,omitempty"`
	DatePlanted     string             `bson:"datePlanted,omitempty"     json:"datePlanted,omitempty"`
	HarvestDate     string             `bson:"harvestDate,omitempty"     json:"harvestDate,omitempty"`
	HarvesterName   string             `bson:"harvesterName,omitempty"   json:"harvesterName,omitempty"`
	HarvestQuantity int64              `bson:"harvestQuantity,omitempty" json:"harvestQuantity,omitempty"`
	AreaSize        ScaledArea         `bson:"areaSize,omitempty"        json:"areaSize,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"                 json:"createdAt"`
}

// ManufacturerRecord — the manufacturer's receipt/processing paperwork.
type ManufacturerRecord struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"               json:"id"`
	CropID            string             `bson:"cropId"                      json:"cropId"`
	UserID            string             `bson:"userId"                      json:"userId"`
	Location          string             `bson:"location,omitempty"          json:"location,omitempty"`
	ReceivedDate      string             `bson:"receivedDate,omitempty"      json:"receivedDate,omitempty"`
	ProcessedDate     string             `bson:"processedDate,omitempty"     json:"processedDate,omitempty"`
	ProcessedQuantity int64              `bson:"processedQuantity,omitempty" json:"processedQuantity,omitempty"`
	BatchCode         string             `bson:"batchCode,omitempty"         json:"batchCode,omitempty"`
	PackagingType     string             `bson:"packagingType,omitempty"     json:"packagingType,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"                   json:"createdAt"`
}

// StorageRecord — where a crop batch currently sits.
type StorageRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"         json:"id"`
	CropID      string             `bson:"cropId"                json:"cropId"`
	UserID      string             `bson:"userId"                json:"userId"`
	Facility    string             `bson:"facility,omitempty"    json:"facility,omitempty"`
	Location    string             `bson:"location,omitempty"    json:"location,omitempty"`
	Conditions  string             `bson:"conditions,omitempty"  json:"conditions,omitempty"`
	StoredAt    string             `bson:"storedAt,omitempty"    json:"storedAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt"             json:"updatedAt"`
}

// ShipmentRecord — one leg of a crop batch's transport.
type ShipmentRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"          json:"id"`
	CropID       string             `bson:"cropId"                 json:"cropId"`
	Carrier      string             `bson:"carrier,omitempty"      json:"carrier,omitempty"`
	FromLocation string             `bson:"fromLocation,omitempty" json:"fromLocation,omitempty"`
	ToLocation   string             `bson:"toLocation,omitempty"   json:"toLocation,omitempty"`
	Status       string             `bson:"status,omitempty"       json:"status,omitempty"`
	ShippedAt    string             `bson:"shippedAt,omitempty"    json:"shippedAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"              json:"createdAt"`
}
