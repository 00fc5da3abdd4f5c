package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Overview holds the income and savings figures of a logbook. Each logbook
// has exactly one overview.
type Overview struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Income    float64       `bson:"income"        json:"income"`
	Savings   float64       `bson:"savings"       json:"savings"`
	LogbookID bson.ObjectID `bson:"logbook_id"    json:"logbookId"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
