package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kujira-app/kujira-api/internal/config"
	"github.com/kujira-app/kujira-api/internal/model"
	"github.com/kujira-app/kujira-api/internal/repository"
	"github.com/kujira-app/kujira-api/internal/verification"
	"github.com/kujira-app/kujira-api/shared/auth"
	"github.com/kujira-app/kujira-api/shared/security"
)

// Mailer is the outbound-email dependency of the auth flows. Delivery is
// best-effort: a send failure never rolls back the state change that preceded
// it.
type Mailer interface {
	SendParagraphs(to, subject string, paragraphs []string) error
}

// AuthUsecase defines the authentication and verification flows.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*model.User, error)
	VerifyRegistration(ctx context.Context, email, code string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	VerifyLogin(ctx context.Context, email, code string, thirtyDays bool) (*model.User, string, error)
	SendNewVerificationCode(ctx context.Context, email string) (*model.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyPasswordResetRequest(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, newPassword string) (*model.User, error)
	Logout(ctx context.Context, userID string) error
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Email    string
	Username string
	Password string
}

var (
	ErrEmailTaken           = errors.New("account with this email already exists")
	ErrUsernameTaken        = errors.New("account with this username already exists")
	ErrAccountNotFound      = errors.New("account does not exist")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailAlreadyVerified = errors.New("email is already verified")
	ErrEmailNotVerified     = errors.New("email is not verified")
	ErrCodeAbsent           = errors.New("account does not have a pending verification code")
	ErrCodeExpired          = errors.New("verification code has expired")
	ErrCodeMismatch         = errors.New("verification code does not match")
)

type authUsecase struct {
	userRepo repository.UserRepository
	codes    verification.Codes
	jwtAuth  auth.JWTAuthenticator
	mailer   Mailer
	cfg      *config.Config
	logger   *zerolog.Logger
}

// NewAuthUsecase creates a new AuthUsecase instance.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	codes verification.Codes,
	jwtAuth auth.JWTAuthenticator,
	mailer Mailer,
	cfg *config.Config,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		codes:    codes,
		jwtAuth:  jwtAuth,
		mailer:   mailer,
		cfg:      cfg,
		logger:   logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	if _, err := u.userRepo.GetUserByEmail(ctx, params.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	if _, err := u.userRepo.GetUserByUsername(ctx, params.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	envelope, plainCode, err := u.codes.Issue(u.cfg.VerificationCodeSecretKey)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:            params.Email,
		Username:         params.Username,
		PasswordHash:     passwordHash,
		VerificationCode: envelope,
		Currency:         model.CurrencyUSD,
		Theme:            model.ThemeSystem,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	u.emailCode(user.Email, "Kujira: Confirm Registration", plainCode, []string{
		"Thank you for registering! Glad to have you on board :)",
	})

	return user, nil
}

func (u *authUsecase) VerifyRegistration(ctx context.Context, email, code string) (*model.User, string, error) {
	user, err := u.findByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if user.EmailVerified {
		return nil, "", ErrEmailAlreadyVerified
	}

	if err := u.checkCode(user, code); err != nil {
		return nil, "", err
	}

	return u.completeVerification(ctx, user, true, func(params *repository.UpdateCredentialsParams) {
		verified := true
		params.EmailVerified = &verified
	})
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := u.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if ok, err := security.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	return u.issueAndEmailCode(ctx, user, "Kujira: Confirm Login", []string{
		"Welcome back! I missed you :'D",
	})
}

func (u *authUsecase) VerifyLogin(ctx context.Context, email, code string, thirtyDays bool) (*model.User, string, error) {
	user, err := u.findByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	// A login cannot complete against an address that was never confirmed.
	if !user.EmailVerified {
		return nil, "", ErrEmailNotVerified
	}

	if err := u.checkCode(user, code); err != nil {
		return nil, "", err
	}

	return u.completeVerification(ctx, user, thirtyDays, nil)
}

func (u *authUsecase) SendNewVerificationCode(ctx context.Context, email string) (*model.User, error) {
	user, err := u.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return u.issueAndEmailCode(ctx, user, "Kujira: New Verification Code", []string{
		"This email is in response to your request for a new verification code.",
	})
}

func (u *authUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	_, err = u.issueAndEmailCode(ctx, user, "Kujira: Password Reset", []string{
		"We received a request to reset the password for your account.",
	})
	return err
}

func (u *authUsecase) VerifyPasswordResetRequest(ctx context.Context, email, code string) error {
	user, err := u.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := u.checkCode(user, code); err != nil {
		return err
	}

	// Single-use semantics: consume the envelope in the same step that
	// authorizes the reset.
	empty := ""
	_, err = u.userRepo.UpdateCredentials(ctx, user.ID.Hex(), repository.UpdateCredentialsParams{
		VerificationCode: &empty,
	})
	return err
}

func (u *authUsecase) ResetPassword(ctx context.Context, email, newPassword string) (*model.User, error) {
	user, err := u.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	// A password reset invalidates any live session.
	empty := ""
	updated, err := u.userRepo.UpdateCredentials(ctx, user.ID.Hex(), repository.UpdateCredentialsParams{
		PasswordHash: &passwordHash,
		SessionToken: &empty,
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID string) error {
	if err := u.userRepo.ClearSessionToken(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAccountNotFound
		}
		return err
	}

	return nil
}

func (u *authUsecase) findByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return user, nil
}

// checkCode maps a verification result to its sentinel error, or nil when the
// submitted code is valid.
func (u *authUsecase) checkCode(user *model.User, code string) error {
	switch u.codes.Verify(user.VerificationCode, code, u.cfg.VerificationCodeSecretKey) {
	case verification.Absent:
		return ErrCodeAbsent
	case verification.Expired:
		return ErrCodeExpired
	case verification.Mismatch:
		return ErrCodeMismatch
	default:
		return nil
	}
}

// completeVerification clears the consumed envelope, mints a session token,
// and persists it, all as one credential update.
func (u *authUsecase) completeVerification(
	ctx context.Context,
	user *model.User,
	extended bool,
	extra func(*repository.UpdateCredentialsParams),
) (*model.User, string, error) {
	token, err := u.jwtAuth.IssueSession(user.ID.Hex(), u.cfg.AuthSecretKey, extended)
	if err != nil {
		return nil, "", err
	}

	empty := ""
	params := repository.UpdateCredentialsParams{
		VerificationCode: &empty,
		SessionToken:     &token,
	}
	if extra != nil {
		extra(&params)
	}

	updated, err := u.userRepo.UpdateCredentials(ctx, user.ID.Hex(), params)
	if err != nil {
		return nil, "", err
	}

	return updated, token, nil
}

// issueAndEmailCode overwrites any pending envelope with a fresh one and
// emails the plain code. The later write wins when two requests race; that is
// accepted.
func (u *authUsecase) issueAndEmailCode(
	ctx context.Context,
	user *model.User,
	subject string,
	intro []string,
) (*model.User, error) {
	envelope, plainCode, err := u.codes.Issue(u.cfg.VerificationCodeSecretKey)
	if err != nil {
		return nil, err
	}

	updated, err := u.userRepo.UpdateCredentials(ctx, user.ID.Hex(), repository.UpdateCredentialsParams{
		VerificationCode: &envelope,
	})
	if err != nil {
		return nil, err
	}

	u.emailCode(user.Email, subject, plainCode, intro)

	return updated, nil
}

func (u *authUsecase) emailCode(to, subject, plainCode string, intro []string) {
	paragraphs := append(intro,
		fmt.Sprintf("Please copy and paste the following verification code into the app to verify your account: %s", plainCode),
		"If this is a mistake, you can safely ignore this email.",
	)

	if err := u.mailer.SendParagraphs(to, subject, paragraphs); err != nil {
		u.logger.Error().Err(err).Str("subject", subject).Msg("failed to send verification email")
	}
}
