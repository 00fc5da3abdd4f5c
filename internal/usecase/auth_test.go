package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kujira-app/kujira-api/internal/config"
	"github.com/kujira-app/kujira-api/internal/model"
	"github.com/kujira-app/kujira-api/internal/verification"
	"github.com/kujira-app/kujira-api/shared/auth"
)

type authFixture struct {
	users   *fakeUserRepo
	mailer  *captureMailer
	jwtAuth auth.JWTAuthenticator
	cfg     *config.Config
	auth    AuthUsecase
}

func newAuthFixture() *authFixture {
	logger := zerolog.Nop()
	jwtAuth := auth.NewJWTAuthenticator("kujira-app", "kujira-api")
	cfg := &config.Config{
		AuthSecretKey:             "auth-test-secret",
		VerificationCodeSecretKey: "code-test-secret",
	}
	users := newFakeUserRepo()
	mailer := &captureMailer{}

	return &authFixture{
		users:   users,
		mailer:  mailer,
		jwtAuth: jwtAuth,
		cfg:     cfg,
		auth:    NewAuthUsecase(users, verification.NewCodes(jwtAuth), jwtAuth, mailer, cfg, &logger),
	}
}

func (f *authFixture) register(t *testing.T) *model.User {
	t.Helper()

	user, err := f.auth.Register(context.Background(), RegisterParams{
		Email:    "whale@kujira.app",
		Username: "whale",
		Password: "deep blue sea",
	})
	require.NoError(t, err)

	return user
}

func (f *authFixture) registerVerified(t *testing.T) *model.User {
	t.Helper()

	f.register(t)
	user, _, err := f.auth.VerifyRegistration(context.Background(), "whale@kujira.app", f.mailer.lastCode())
	require.NoError(t, err)

	return user
}

func TestRegisterCreatesUnverifiedAccount(t *testing.T) {
	f := newAuthFixture()

	user := f.register(t)

	assert.False(t, user.EmailVerified)
	assert.NotEmpty(t, user.VerificationCode)
	assert.Empty(t, user.SessionToken)
	assert.Equal(t, model.CurrencyUSD, user.Currency)
	assert.Equal(t, model.ThemeSystem, user.Theme)
	assert.NotEqual(t, "deep blue sea", user.PasswordHash)

	require.Equal(t, 1, f.mailer.count())
	assert.Len(t, f.mailer.lastCode(), 8)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	_, err := f.auth.Register(context.Background(), RegisterParams{
		Email:    "whale@kujira.app",
		Username: "orca",
		Password: "another password",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	_, err := f.auth.Register(context.Background(), RegisterParams{
		Email:    "orca@kujira.app",
		Username: "whale",
		Password: "another password",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestVerifyRegistrationOpensSession(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	user, token, err := f.auth.VerifyRegistration(context.Background(), "whale@kujira.app", f.mailer.lastCode())
	require.NoError(t, err)

	assert.True(t, user.EmailVerified)
	assert.Empty(t, user.VerificationCode, "consumed envelope must be cleared")
	assert.Equal(t, token, user.SessionToken)

	claims, err := f.jwtAuth.ValidateSession(token, f.cfg.AuthSecretKey)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)

	// Registration grants the extended session lifetime.
	ttl := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, auth.ExtendedSessionTTL, ttl, float64(time.Minute))
}

func TestVerifyRegistrationRejectsWrongCode(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	code := f.mailer.lastCode()
	wrong := "00000000"
	if code == wrong {
		wrong = "11111111"
	}

	_, _, err := f.auth.VerifyRegistration(context.Background(), "whale@kujira.app", wrong)
	assert.ErrorIs(t, err, ErrCodeMismatch)

	// The pending code survives a failed attempt.
	_, _, err = f.auth.VerifyRegistration(context.Background(), "whale@kujira.app", code)
	assert.NoError(t, err)
}

func TestVerifyRegistrationRejectsVerifiedAccount(t *testing.T) {
	f := newAuthFixture()
	f.registerVerified(t)

	_, _, err := f.auth.VerifyRegistration(context.Background(), "whale@kujira.app", "12345678")
	assert.ErrorIs(t, err, ErrEmailAlreadyVerified)
}

func TestVerificationCodeIsSingleUse(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	code := f.mailer.lastCode()
	user, _, err := f.auth.VerifyRegistration(context.Background(), "whale@kujira.app", code)
	require.NoError(t, err)

	// Replaying the consumed code hits the absent-code path, not mismatch.
	_, _, err = f.auth.VerifyLogin(context.Background(), user.Email, code, false)
	assert.ErrorIs(t, err, ErrCodeAbsent)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newAuthFixture()
	f.registerVerified(t)

	_, err := f.auth.Login(context.Background(), "whale@kujira.app", "shallow sea")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	f := newAuthFixture()

	_, err := f.auth.Login(context.Background(), "nobody@kujira.app", "deep blue sea")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestLoginReplacesPendingCode(t *testing.T) {
	f := newAuthFixture()
	f.registerVerified(t)

	_, err := f.auth.Login(context.Background(), "whale@kujira.app", "deep blue sea")
	require.NoError(t, err)
	firstCode := f.mailer.lastCode()

	_, err = f.auth.Login(context.Background(), "whale@kujira.app", "deep blue sea")
	require.NoError(t, err)
	secondCode := f.mailer.lastCode()

	if firstCode != secondCode {
		_, _, err = f.auth.VerifyLogin(context.Background(), "whale@kujira.app", firstCode, false)
		assert.ErrorIs(t, err, ErrCodeMismatch, "an overwritten code must stop working")
	}

	_, _, err = f.auth.VerifyLogin(context.Background(), "whale@kujira.app", secondCode, false)
	assert.NoError(t, err)
}

func TestVerifyLoginRequiresVerifiedEmail(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	_, _, err := f.auth.VerifyLogin(context.Background(), "whale@kujira.app", f.mailer.lastCode(), false)
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestVerifyLoginSessionLifetimes(t *testing.T) {
	for _, tc := range []struct {
		name       string
		thirtyDays bool
		want       time.Duration
	}{
		{"standard", false, auth.SessionTTL},
		{"extended", true, auth.ExtendedSessionTTL},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newAuthFixture()
			f.registerVerified(t)

			_, err := f.auth.Login(context.Background(), "whale@kujira.app", "deep blue sea")
			require.NoError(t, err)

			_, token, err := f.auth.VerifyLogin(context.Background(), "whale@kujira.app", f.mailer.lastCode(), tc.thirtyDays)
			require.NoError(t, err)

			claims, err := f.jwtAuth.ValidateSession(token, f.cfg.AuthSecretKey)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, time.Until(claims.ExpiresAt.Time), float64(time.Minute))
		})
	}
}

func TestSendNewVerificationCode(t *testing.T) {
	f := newAuthFixture()
	f.register(t)

	_, err := f.auth.SendNewVerificationCode(context.Background(), "whale@kujira.app")
	require.NoError(t, err)
	require.Equal(t, 2, f.mailer.count())

	_, _, err = f.auth.VerifyRegistration(context.Background(), "whale@kujira.app", f.mailer.lastCode())
	assert.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture()
	f.registerVerified(t)

	require.NoError(t, f.auth.RequestPasswordReset(context.Background(), "whale@kujira.app"))
	code := f.mailer.lastCode()

	require.NoError(t, f.auth.VerifyPasswordResetRequest(context.Background(), "whale@kujira.app", code))

	// The code is consumed by the confirmation step.
	err := f.auth.VerifyPasswordResetRequest(context.Background(), "whale@kujira.app", code)
	assert.ErrorIs(t, err, ErrCodeAbsent)

	user, err := f.auth.ResetPassword(context.Background(), "whale@kujira.app", "shallow lagoon")
	require.NoError(t, err)
	assert.Empty(t, user.SessionToken, "a reset invalidates the live session")

	_, err = f.auth.Login(context.Background(), "whale@kujira.app", "deep blue sea")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(context.Background(), "whale@kujira.app", "shallow lagoon")
	assert.NoError(t, err)
}

func TestLogoutClearsSessionToken(t *testing.T) {
	f := newAuthFixture()
	user := f.registerVerified(t)
	require.NotEmpty(t, user.SessionToken)

	require.NoError(t, f.auth.Logout(context.Background(), user.ID.Hex()))

	stored, err := f.users.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, stored.SessionToken)
}
