package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Category classifies a purchase.
type Category string

const (
	CategoryNeed    Category = "need"
	CategoryPlanned Category = "planned"
	CategoryImpulse Category = "impulse"
	CategoryRegret  Category = "regret"
)

// Purchase is a single spending item under an entry. Placement is the
// insertion-order position of the purchase within its entry and is unique per
// entry.
type Purchase struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Category    Category      `bson:"category"      json:"category"`
	Description string        `bson:"description"   json:"description"`
	Cost        float64       `bson:"cost"          json:"cost"`
	Placement   int           `bson:"placement"     json:"placement"`
	EntryID     bson.ObjectID `bson:"entry_id"      json:"entryId"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
