package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Logbook is the top of a user's budgeting hierarchy. A logbook is owned by
// exactly one user and holds one overview and many entries.
type Logbook struct {
	ID      bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string        `bson:"name"          json:"name"`
	OwnerID bson.ObjectID `bson:"owner_id"      json:"ownerId"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
