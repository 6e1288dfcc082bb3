package cache

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Store over one collection. Upserts are atomic per key,
// which is all the locking the fetch path needs: each key has a single owner
// during a fetch-then-write sequence.
type Mongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongo(coll *mongo.Collection) *Mongo {
	return &Mongo{coll: coll, now: time.Now}
}

// EnsureIndexes adds a TTL index on expires_at so Mongo reaps dead entries
// in the background. Reads still check expiry themselves — the janitor only
// bounds storage, it is not the freshness authority.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

// Get returns the value for key if a fresh entry exists. A store error reads
// the same as an absent key: the caller falls through to the ledger.
func (m *Mongo) Get(ctx context.Context, key string) ([]byte, bool) {
	var e Entry
	if err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&e); err != nil {
		return nil, false
	}
	if e.Expired(m.now()) {
		return nil, false
	}
	return e.Value, true
}

// Put upserts key with a fresh deadline of now+ttl.
func (m *Mongo) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := m.now()
	e := Entry{
		Key:       key,
		Value:     value,
		ExpiresAt: now.Add(ttl),
		UpdatedAt: now,
	}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key}, &e, options.Replace().SetUpsert(true))
	return err
}
