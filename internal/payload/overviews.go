package payload

// CreateOverviewRequest is the payload for POST /overviews.
type CreateOverviewRequest struct {
	Income    float64 `json:"income"    validate:"gte=0"`
	Savings   float64 `json:"savings"   validate:"gte=0"`
	LogbookID string  `json:"logbookId" validate:"required"`
}

// FetchLogbookOverviewRequest is the payload for POST /overviews/fetch-logbook-overview.
type FetchLogbookOverviewRequest struct {
	LogbookID string `json:"logbookId" validate:"required"`
}

// UpdateOverviewRequest is the payload for PATCH /overviews/{overviewId}.
type UpdateOverviewRequest struct {
	Income  *float64 `json:"income"  validate:"omitempty,gte=0"`
	Savings *float64 `json:"savings" validate:"omitempty,gte=0"`
}
