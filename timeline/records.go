package timeline

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"croptrace/models"
)

// RecordSource exposes the off-chain supplementary collections. Absence is
// not an error: a missing record comes back as (nil, nil) and the composed
// view simply omits that block.
type RecordSource interface {
	FarmerRequest(ctx context.Context, cropID string) (*models.FarmerRequest, error)
	ManufacturerRecord(ctx context.Context, cropID string) (*models.ManufacturerRecord, error)
	LatestStorage(ctx context.Context, cropID, userID string) (*models.StorageRecord, error)
	Shipments(ctx context.Context, cropID string) ([]models.ShipmentRecord, error)
}

// MongoRecords is the RecordSource over the application's Mongo database.
type MongoRecords struct {
	farmerRequests      *mongo.Collection
	manufacturerRecords *mongo.Collection
	storageRecords      *mongo.Collection
	shipmentRecords     *mongo.Collection
}

func NewMongoRecords(db *mongo.Database) *MongoRecords {
	return &MongoRecords{
		farmerRequests:      db.Collection("farmer_requests"),
		manufacturerRecords: db.Collection("manufacturer_records"),
		storageRecords:      db.Collection("storage_records"),
		shipmentRecords:     db.Collection("shipment_records"),
	}
}

// EnsureIndexes creates the cropId lookup indexes the finders rely on.
func (r *MongoRecords) EnsureIndexes(ctx context.Context) error {
	for _, coll := range []*mongo.Collection{
		r.farmerRequests, r.manufacturerRecords, r.storageRecords, r.shipmentRecords,
	} {
		if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "cropId", Value: 1}},
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *MongoRecords) FarmerRequest(ctx context.Context, cropID string) (*models.FarmerRequest, error) {
	var fr models.FarmerRequest
	err := r.farmerRequests.FindOne(ctx,
		bson.M{"cropId": cropID},
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	).Decode(&fr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fr, nil
}

func (r *MongoRecords) ManufacturerRecord(ctx context.Context, cropID string) (*models.ManufacturerRecord, error) {
	var mr models.ManufacturerRecord
	err := r.manufacturerRecords.FindOne(ctx,
		bson.M{"cropId": cropID},
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	).Decode(&mr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mr, nil
}

// LatestStorage returns the most recently updated storage record for the
// crop, scoped to userID when one is given.
func (r *MongoRecords) LatestStorage(ctx context.Context, cropID, userID string) (*models.StorageRecord, error) {
	filter := bson.M{"cropId": cropID}
	if userID != "" {
		filter["userId"] = userID
	}
	var sr models.StorageRecord
	err := r.storageRecords.FindOne(ctx, filter,
		options.FindOne().SetSort(bson.D{{Key: "updatedAt", Value: -1}}),
	).Decode(&sr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

// Shipments returns the crop's shipment legs ordered by their recorded
// departure date.
func (r *MongoRecords) Shipments(ctx context.Context, cropID string) ([]models.ShipmentRecord, error) {
	cur, err := r.shipmentRecords.Find(ctx,
		bson.M{"cropId": cropID},
		options.Find().SetSort(bson.D{{Key: "shippedAt", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ShipmentRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
