package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kujira-app/kujira-api/internal/model"
	"github.com/kujira-app/kujira-api/internal/repository"
)

// OverviewUsecase defines overview operations.
type OverviewUsecase interface {
	ListOverviews(ctx context.Context) ([]*model.Overview, error)
	GetOverview(ctx context.Context, id string) (*model.Overview, error)
	GetLogbookOverview(ctx context.Context, logbookID string) (*model.Overview, error)
	CreateOverview(ctx context.Context, params CreateOverviewParams) (*model.Overview, error)
	UpdateOverview(ctx context.Context, id string, params repository.UpdateOverviewParams) (*model.Overview, error)
	DeleteOverview(ctx context.Context, id string) error
}

// CreateOverviewParams defines the parameters for creating an overview.
type CreateOverviewParams struct {
	Income    float64
	Savings   float64
	LogbookID string
}

var ErrOverviewNotFound = errors.New("overview does not exist")

type overviewUsecase struct {
	overviewRepo repository.OverviewRepository
	entryRepo    repository.EntryRepository
	purchaseRepo repository.PurchaseRepository
}

// NewOverviewUsecase creates a new OverviewUsecase instance.
func NewOverviewUsecase(
	overviewRepo repository.OverviewRepository,
	entryRepo repository.EntryRepository,
	purchaseRepo repository.PurchaseRepository,
) OverviewUsecase {
	return &overviewUsecase{
		overviewRepo: overviewRepo,
		entryRepo:    entryRepo,
		purchaseRepo: purchaseRepo,
	}
}

func (u *overviewUsecase) ListOverviews(ctx context.Context) ([]*model.Overview, error) {
	return u.overviewRepo.ListOverviews(ctx)
}

func (u *overviewUsecase) GetOverview(ctx context.Context, id string) (*model.Overview, error) {
	overview, err := u.overviewRepo.GetOverview(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOverviewNotFound
		}
		return nil, err
	}

	return overview, nil
}

func (u *overviewUsecase) GetLogbookOverview(ctx context.Context, logbookID string) (*model.Overview, error) {
	overview, err := u.overviewRepo.GetOverviewByLogbook(ctx, logbookID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOverviewNotFound
		}
		return nil, err
	}

	return overview, nil
}

func (u *overviewUsecase) CreateOverview(ctx context.Context, params CreateOverviewParams) (*model.Overview, error) {
	logbookObjectID, err := bson.ObjectIDFromHex(params.LogbookID)
	if err != nil {
		return nil, ErrLogbookNotFound
	}

	return u.overviewRepo.CreateOverview(ctx, &model.Overview{
		Income:    params.Income,
		Savings:   params.Savings,
		LogbookID: logbookObjectID,
	})
}

func (u *overviewUsecase) UpdateOverview(
	ctx context.Context,
	id string,
	params repository.UpdateOverviewParams,
) (*model.Overview, error) {
	overview, err := u.overviewRepo.UpdateOverview(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOverviewNotFound
		}
		return nil, err
	}

	return overview, nil
}

// DeleteOverview removes the overview and its entries and their purchases.
func (u *overviewUsecase) DeleteOverview(ctx context.Context, id string) error {
	entries, err := u.entryRepo.DeleteEntriesByOverview(ctx, id)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := u.purchaseRepo.DeletePurchasesByEntry(ctx, entry.ID.Hex()); err != nil {
			return err
		}
	}

	if _, err := u.overviewRepo.DeleteOverview(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrOverviewNotFound
		}
		return err
	}

	return nil
}
