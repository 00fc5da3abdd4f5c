package payload

// CreateEntryRequest is the payload for POST /entries. Exactly one of
// OverviewID or LogbookID should be supplied.
type CreateEntryRequest struct {
	Name       string  `json:"name"       validate:"required,min=1,max=64"`
	OverviewID *string `json:"overviewId"`
	LogbookID  *string `json:"logbookId"`
}

// FetchOverviewEntriesRequest is the payload for POST /entries/fetch-overview-entries.
type FetchOverviewEntriesRequest struct {
	OverviewID string `json:"overviewId" validate:"required"`
}

// FetchLogbookEntriesRequest is the payload for POST /entries/fetch-logbook-entries.
type FetchLogbookEntriesRequest struct {
	LogbookID string `json:"logbookId" validate:"required"`
}

// UpdateEntryRequest is the payload for PATCH /entries/{entryId}.
type UpdateEntryRequest struct {
	Name                 *string  `json:"name"                 validate:"omitempty,min=1,max=64"`
	TotalSpent           *float64 `json:"totalSpent"           validate:"omitempty,gte=0"`
	NonMonthlyTotalSpent *float64 `json:"nonMonthlyTotalSpent" validate:"omitempty,gte=0"`
	Budget               *float64 `json:"budget"               validate:"omitempty,gte=0"`
	OverviewID           *string  `json:"overviewId"`
	LogbookID            *string  `json:"logbookId"`
}
