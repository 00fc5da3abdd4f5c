package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kujira-app/kujira-api/internal/model"
	"github.com/kujira-app/kujira-api/internal/repository"
	"github.com/kujira-app/kujira-api/shared/security"
)

// UserUsecase defines account management operations.
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, params repository.UpdateUserParams) (*model.User, error)
	UpdatePassword(ctx context.Context, id, oldPassword, newPassword string) error
	DeleteUser(ctx context.Context, id string) error
}

var (
	ErrIncorrectPassword = errors.New("incorrect current password")
	ErrPasswordReused    = errors.New("new password must differ from the current password")
)

type userUsecase struct {
	userRepo    repository.UserRepository
	logbookRepo repository.LogbookRepository
	logbooks    LogbookUsecase
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo repository.UserRepository,
	logbookRepo repository.LogbookRepository,
	logbooks LogbookUsecase,
) UserUsecase {
	return &userUsecase{
		userRepo:    userRepo,
		logbookRepo: logbookRepo,
		logbooks:    logbooks,
	}
}

func (u *userUsecase) ListUsers(ctx context.Context) ([]*model.User, error) {
	return u.userRepo.ListUsers(ctx)
}

func (u *userUsecase) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return user, nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, id string, params repository.UpdateUserParams) (*model.User, error) {
	user, err := u.userRepo.UpdateUser(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// UpdatePassword enforces the password change guard. The old password is
// confirmed before the reuse check runs; the reverse order would let a caller
// probe whether an arbitrary guess matches the stored hash.
func (u *userUsecase) UpdatePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	user, err := u.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if ok, err := security.VerifyPassword(oldPassword, user.PasswordHash); err != nil {
		return err
	} else if !ok {
		return ErrIncorrectPassword
	}

	if ok, err := security.VerifyPassword(newPassword, user.PasswordHash); err != nil {
		return err
	} else if ok {
		return ErrPasswordReused
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = u.userRepo.UpdateCredentials(ctx, id, repository.UpdateCredentialsParams{
		PasswordHash: &passwordHash,
	})
	return err
}

// DeleteUser removes the account and everything it owns: logbooks, their
// overviews, entries, and purchases.
func (u *userUsecase) DeleteUser(ctx context.Context, id string) error {
	logbooks, err := u.logbookRepo.ListLogbooksByOwner(ctx, id)
	if err != nil {
		return err
	}

	for _, logbook := range logbooks {
		if err := u.logbooks.DeleteLogbook(ctx, logbook.ID.Hex()); err != nil {
			return err
		}
	}

	if _, err := u.userRepo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAccountNotFound
		}
		return err
	}

	return nil
}
