package verification

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kujira-app/kujira-api/shared/auth"
)

// CodeTTL is how long an issued verification code stays valid.
const CodeTTL = 5 * time.Minute

const codeLength = 8

// Result is the outcome of checking a submitted verification code against the
// envelope persisted on a user record.
type Result int

const (
	// Valid means the envelope is intact, unexpired, and the submitted code
	// matches. The caller must clear the envelope in the same logical step.
	Valid Result = iota
	// Expired means the envelope failed its signature or expiry check.
	Expired
	// Mismatch means the envelope is intact and unexpired but the submitted
	// code differs.
	Mismatch
	// Absent means no envelope is persisted on the user record.
	Absent
)

func (r Result) String() string {
	switch r {
	case Valid:
		return "valid"
	case Expired:
		return "expired"
	case Mismatch:
		return "mismatch"
	case Absent:
		return "absent"
	default:
		return "unknown"
	}
}

type codeClaims struct {
	Code string `json:"code"`
	jwt.RegisteredClaims
}

// Codes issues and verifies one-time verification codes. Codes travel to the
// user in plain text over email; only the signed envelope is persisted.
type Codes struct {
	jwtAuth auth.JWTAuthenticator
}

// NewCodes creates a Codes instance backed by the given authenticator.
func NewCodes(jwtAuth auth.JWTAuthenticator) Codes {
	return Codes{jwtAuth: jwtAuth}
}

// Issue generates an 8-digit numeric code and wraps it in a signed envelope
// with a fixed 5-minute expiry. It returns the envelope to persist and the
// plain code to email. Persistence and delivery are the caller's concern.
func (c Codes) Issue(secret string) (envelope, plainCode string, err error) {
	plainCode, err = randomDigits(codeLength)
	if err != nil {
		return "", "", err
	}

	claims := codeClaims{
		Code:             plainCode,
		RegisteredClaims: c.jwtAuth.NewRegisteredClaims("", CodeTTL),
	}

	envelope, err = c.jwtAuth.GenerateToken(claims, secret)
	if err != nil {
		return "", "", err
	}

	return envelope, plainCode, nil
}

// Verify decides whether a submitted code is currently valid for the given
// envelope. Checks run in a fixed order: absence, then signature/expiry, then
// value. Expiry is checked before the value comparison so an expired but
// correctly guessed code still reports Expired.
func (c Codes) Verify(envelope, submitted, secret string) Result {
	if envelope == "" {
		return Absent
	}

	claims := &codeClaims{}
	if _, err := c.jwtAuth.ValidateTokenWithClaims(envelope, secret, claims); err != nil {
		return Expired
	}

	if claims.Code != submitted {
		return Mismatch
	}

	return Valid
}

// randomDigits draws n uniform random digits with repetition; leading zeros
// are permitted.
func randomDigits(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}
