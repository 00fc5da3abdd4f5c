package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kujira-app/kujira-api/internal/model"
	"github.com/kujira-app/kujira-api/internal/repository"
)

// EntryUsecase defines entry operations.
type EntryUsecase interface {
	ListEntries(ctx context.Context) ([]*model.Entry, error)
	ListOverviewEntries(ctx context.Context, overviewID string) ([]*model.Entry, error)
	ListLogbookEntries(ctx context.Context, logbookID string) ([]*model.Entry, error)
	GetEntry(ctx context.Context, id string) (*model.Entry, error)
	CreateEntry(ctx context.Context, params CreateEntryParams) (*model.Entry, error)
	UpdateEntry(ctx context.Context, id string, params repository.UpdateEntryParams) (*model.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// CreateEntryParams defines the parameters for creating an entry. Exactly one
// of OverviewID or LogbookID should be set.
type CreateEntryParams struct {
	Name       string
	OverviewID *string
	LogbookID  *string
}

var (
	ErrEntryNotFound  = errors.New("entry does not exist")
	ErrEntryNameTaken = errors.New("an entry with this name already exists")
)

type entryUsecase struct {
	entryRepo    repository.EntryRepository
	purchaseRepo repository.PurchaseRepository
}

// NewEntryUsecase creates a new EntryUsecase instance.
func NewEntryUsecase(
	entryRepo repository.EntryRepository,
	purchaseRepo repository.PurchaseRepository,
) EntryUsecase {
	return &entryUsecase{
		entryRepo:    entryRepo,
		purchaseRepo: purchaseRepo,
	}
}

func (u *entryUsecase) ListEntries(ctx context.Context) ([]*model.Entry, error) {
	return u.entryRepo.ListEntries(ctx)
}

func (u *entryUsecase) ListOverviewEntries(ctx context.Context, overviewID string) ([]*model.Entry, error) {
	return u.entryRepo.ListEntriesByOverview(ctx, overviewID)
}

func (u *entryUsecase) ListLogbookEntries(ctx context.Context, logbookID string) ([]*model.Entry, error) {
	return u.entryRepo.ListEntriesByLogbook(ctx, logbookID)
}

func (u *entryUsecase) GetEntry(ctx context.Context, id string) (*model.Entry, error) {
	entry, err := u.entryRepo.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	return entry, nil
}

func (u *entryUsecase) CreateEntry(ctx context.Context, params CreateEntryParams) (*model.Entry, error) {
	if err := u.checkNameAvailable(ctx, params.Name, params.OverviewID, params.LogbookID); err != nil {
		return nil, err
	}

	entry := &model.Entry{Name: params.Name}

	if params.OverviewID != nil {
		overviewObjectID, err := bson.ObjectIDFromHex(*params.OverviewID)
		if err != nil {
			return nil, ErrOverviewNotFound
		}
		entry.OverviewID = &overviewObjectID
	}
	if params.LogbookID != nil {
		logbookObjectID, err := bson.ObjectIDFromHex(*params.LogbookID)
		if err != nil {
			return nil, ErrLogbookNotFound
		}
		entry.LogbookID = &logbookObjectID
	}

	return u.entryRepo.CreateEntry(ctx, entry)
}

func (u *entryUsecase) UpdateEntry(
	ctx context.Context,
	id string,
	params repository.UpdateEntryParams,
) (*model.Entry, error) {
	if params.Name != nil {
		if err := u.checkNameAvailable(ctx, *params.Name, params.OverviewID, params.LogbookID); err != nil {
			return nil, err
		}
	}

	entry, err := u.entryRepo.UpdateEntry(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	return entry, nil
}

// checkNameAvailable rejects a duplicate entry name within the same parent.
func (u *entryUsecase) checkNameAvailable(ctx context.Context, name string, overviewID, logbookID *string) error {
	if overviewID != nil {
		if _, err := u.entryRepo.GetEntryByNameInOverview(ctx, name, *overviewID); err == nil {
			return ErrEntryNameTaken
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
	}
	if logbookID != nil {
		if _, err := u.entryRepo.GetEntryByNameInLogbook(ctx, name, *logbookID); err == nil {
			return ErrEntryNameTaken
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
	}

	return nil
}

// DeleteEntry removes the entry and its purchases.
func (u *entryUsecase) DeleteEntry(ctx context.Context, id string) error {
	if _, err := u.purchaseRepo.DeletePurchasesByEntry(ctx, id); err != nil {
		return err
	}

	if _, err := u.entryRepo.DeleteEntry(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrEntryNotFound
		}
		return err
	}

	return nil
}
