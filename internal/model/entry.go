package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Entry aggregates purchases under either an overview (recurring/incoming
// entries) or a logbook (day-to-day entries). Exactly one of OverviewID or
// LogbookID is expected to be set.
type Entry struct {
	ID                   bson.ObjectID  `bson:"_id,omitempty"           json:"id"`
	Name                 string         `bson:"name"                    json:"name"`
	TotalSpent           float64        `bson:"total_spent"             json:"totalSpent"`
	NonMonthlyTotalSpent float64        `bson:"non_monthly_total_spent" json:"nonMonthlyTotalSpent"`
	Budget               *float64       `bson:"budget"                  json:"budget"`
	OverviewID           *bson.ObjectID `bson:"overview_id"             json:"overviewId"`
	LogbookID            *bson.ObjectID `bson:"logbook_id"              json:"logbookId"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
