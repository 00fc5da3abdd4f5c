package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Currency is the display currency of a user's budgeting data.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
)

// Theme is the user's preferred UI theme.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// User represents an account. Credential fields (password hash, verification
// code envelope, session token) are never serialized to clients.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"            json:"id"`
	Email        string        `bson:"email"                    json:"email"`
	Username     string        `bson:"username"                 json:"username"`
	PasswordHash string        `bson:"password_hash"            json:"-"`

	// VerificationCode holds the signed envelope of the pending one-time
	// code, or empty when no code is outstanding.
	VerificationCode string `bson:"verification_code,omitempty" json:"-"`
	EmailVerified    bool   `bson:"email_verified"              json:"emailVerified"`

	// SessionToken is the currently valid session credential, persisted so it
	// can be invalidated server-side. Empty means the user must authenticate.
	SessionToken string `bson:"session_token,omitempty" json:"-"`

	Currency     Currency `bson:"currency"      json:"currency"`
	Theme        Theme    `bson:"theme"         json:"theme"`
	MobileNumber *string  `bson:"mobile_number" json:"mobileNumber"`
	Onboarded    bool     `bson:"onboarded"     json:"onboarded"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
