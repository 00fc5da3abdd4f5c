package payload

// CreatePurchaseRequest is the payload for POST /purchases.
type CreatePurchaseRequest struct {
	Category    string  `json:"category"    validate:"required,oneof=need planned impulse regret"`
	Description string  `json:"description" validate:"max=256"`
	Cost        float64 `json:"cost"        validate:"gte=0"`
	EntryID     string  `json:"entryId"     validate:"required"`
}

// FetchEntryPurchasesRequest is the payload for POST /purchases/fetch-entry-purchases.
type FetchEntryPurchasesRequest struct {
	EntryID string `json:"entryId" validate:"required"`
}

// UpdatePurchaseRequest is the payload for PATCH /purchases/{purchaseId}.
type UpdatePurchaseRequest struct {
	Category    *string  `json:"category"    validate:"omitempty,oneof=need planned impulse regret"`
	Description *string  `json:"description" validate:"omitempty,max=256"`
	Cost        *float64 `json:"cost"        validate:"omitempty,gte=0"`
}

// BulkDeletePurchasesRequest is the payload for DELETE /purchases/bulk-delete-purchases.
type BulkDeletePurchasesRequest struct {
	PurchaseIDs []string `json:"purchaseIds" validate:"required,min=1"`
}

// DeleteEntryPurchasesRequest is the payload for DELETE /purchases/delete-all-entry-purchases.
type DeleteEntryPurchasesRequest struct {
	EntryID string `json:"entryId" validate:"required"`
}
