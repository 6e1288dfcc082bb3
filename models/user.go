package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that can query its crops. ChainID is the identity the
// user acts under on the ledger; when empty, the Mongo id hex is used.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"     json:"id"`
	Username     string             `bson:"username"          json:"username"`
	Email        string             `bson:"email"             json:"email"`
	PasswordHash string             `bson:"passwordHash"      json:"-"`
	ChainID      string             `bson:"chainId,omitempty" json:"chainId,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"         json:"createdAt"`
}
