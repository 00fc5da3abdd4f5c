package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kujira-app/kujira-api/internal/model"
	"github.com/kujira-app/kujira-api/internal/repository"
)

// LogbookUsecase defines logbook operations.
type LogbookUsecase interface {
	ListLogbooks(ctx context.Context) ([]*model.Logbook, error)
	ListUserLogbooks(ctx context.Context, ownerID string) ([]*model.Logbook, error)
	GetLogbook(ctx context.Context, id string) (*model.Logbook, error)
	CreateLogbook(ctx context.Context, name, ownerID string) (*model.Logbook, error)
	UpdateLogbook(ctx context.Context, id string, params repository.UpdateLogbookParams) (*model.Logbook, error)
	DeleteLogbook(ctx context.Context, id string) error
}

var ErrLogbookNotFound = errors.New("logbook does not exist")

type logbookUsecase struct {
	logbookRepo  repository.LogbookRepository
	overviewRepo repository.OverviewRepository
	entryRepo    repository.EntryRepository
	purchaseRepo repository.PurchaseRepository
}

// NewLogbookUsecase creates a new LogbookUsecase instance.
func NewLogbookUsecase(
	logbookRepo repository.LogbookRepository,
	overviewRepo repository.OverviewRepository,
	entryRepo repository.EntryRepository,
	purchaseRepo repository.PurchaseRepository,
) LogbookUsecase {
	return &logbookUsecase{
		logbookRepo:  logbookRepo,
		overviewRepo: overviewRepo,
		entryRepo:    entryRepo,
		purchaseRepo: purchaseRepo,
	}
}

func (u *logbookUsecase) ListLogbooks(ctx context.Context) ([]*model.Logbook, error) {
	return u.logbookRepo.ListLogbooks(ctx)
}

func (u *logbookUsecase) ListUserLogbooks(ctx context.Context, ownerID string) ([]*model.Logbook, error) {
	return u.logbookRepo.ListLogbooksByOwner(ctx, ownerID)
}

func (u *logbookUsecase) GetLogbook(ctx context.Context, id string) (*model.Logbook, error) {
	logbook, err := u.logbookRepo.GetLogbook(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLogbookNotFound
		}
		return nil, err
	}

	return logbook, nil
}

// CreateLogbook creates a logbook together with its one-to-one overview.
func (u *logbookUsecase) CreateLogbook(ctx context.Context, name, ownerID string) (*model.Logbook, error) {
	ownerObjectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrAccountNotFound
	}

	logbook, err := u.logbookRepo.CreateLogbook(ctx, &model.Logbook{
		Name:    name,
		OwnerID: ownerObjectID,
	})
	if err != nil {
		return nil, err
	}

	if _, err := u.overviewRepo.CreateOverview(ctx, &model.Overview{
		LogbookID: logbook.ID,
	}); err != nil {
		return nil, err
	}

	return logbook, nil
}

func (u *logbookUsecase) UpdateLogbook(
	ctx context.Context,
	id string,
	params repository.UpdateLogbookParams,
) (*model.Logbook, error) {
	logbook, err := u.logbookRepo.UpdateLogbook(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrLogbookNotFound
		}
		return nil, err
	}

	return logbook, nil
}

// DeleteLogbook removes the logbook, its overview, and every entry and
// purchase underneath either of them.
func (u *logbookUsecase) DeleteLogbook(ctx context.Context, id string) error {
	overview, err := u.overviewRepo.GetOverviewByLogbook(ctx, id)
	if err == nil {
		entries, err := u.entryRepo.DeleteEntriesByOverview(ctx, overview.ID.Hex())
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if _, err := u.purchaseRepo.DeletePurchasesByEntry(ctx, entry.ID.Hex()); err != nil {
				return err
			}
		}
		if _, err := u.overviewRepo.DeleteOverviewsByLogbook(ctx, id); err != nil {
			return err
		}
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	entries, err := u.entryRepo.DeleteEntriesByLogbook(ctx, id)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := u.purchaseRepo.DeletePurchasesByEntry(ctx, entry.ID.Hex()); err != nil {
			return err
		}
	}

	if _, err := u.logbookRepo.DeleteLogbook(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrLogbookNotFound
		}
		return err
	}

	return nil
}
