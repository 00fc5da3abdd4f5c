package payload

// UpdateUserRequest is the payload for PATCH /users/{userId}. All fields are
// optional; only supplied fields are updated.
type UpdateUserRequest struct {
	Email        *string `json:"email"        validate:"omitempty,email"`
	Username     *string `json:"username"     validate:"omitempty,min=3,max=32"`
	Currency     *string `json:"currency"     validate:"omitempty,oneof=USD EUR GBP JPY"`
	Theme        *string `json:"theme"        validate:"omitempty,oneof=light dark system"`
	MobileNumber *string `json:"mobileNumber" validate:"omitempty,e164"`
	Onboarded    *bool   `json:"onboarded"`
}

// UpdatePasswordRequest is the payload for PATCH /users/{userId}/update-password.
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}
