package payload

// OnboardPurchase seeds a purchase during onboarding.
type OnboardPurchase struct {
	Category    string  `json:"category"    validate:"required,oneof=need planned impulse regret"`
	Description string  `json:"description" validate:"max=256"`
	Cost        float64 `json:"cost"        validate:"gte=0"`
}

// OnboardEntry identifies an overview entry and its seeded total cost.
type OnboardEntry struct {
	ID        string  `json:"id"        validate:"required"`
	TotalCost float64 `json:"totalCost" validate:"gte=0"`
}

// OnboardRequest is the payload for POST /onboarding/onboard-new-user.
type OnboardRequest struct {
	UserID             string            `json:"userId"             validate:"required"`
	LogbookID          string            `json:"logbookId"          validate:"required"`
	Income             float64           `json:"income"             validate:"gte=0"`
	Savings            float64           `json:"savings"            validate:"gte=0"`
	RecurringPurchases []OnboardPurchase `json:"recurringPurchases" validate:"dive"`
	IncomingPurchases  []OnboardPurchase `json:"incomingPurchases"  validate:"dive"`
	RecurringEntry     OnboardEntry      `json:"recurringEntry"     validate:"required"`
	IncomingEntry      OnboardEntry      `json:"incomingEntry"      validate:"required"`
}
