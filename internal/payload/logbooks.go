package payload

// CreateLogbookRequest is the payload for POST /logbooks.
type CreateLogbookRequest struct {
	Name    string `json:"name"    validate:"required,min=1,max=64"`
	OwnerID string `json:"ownerId" validate:"required"`
}

// FetchUserLogbooksRequest is the payload for POST /logbooks/fetch-user-logbooks.
type FetchUserLogbooksRequest struct {
	OwnerID string `json:"ownerId" validate:"required"`
}

// UpdateLogbookRequest is the payload for PATCH /logbooks/{logbookId}.
type UpdateLogbookRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=64"`
}
