package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kujira-app/kujira-api/internal/model"
	"github.com/kujira-app/kujira-api/internal/repository"
)

// PurchaseUsecase defines purchase operations.
type PurchaseUsecase interface {
	ListPurchases(ctx context.Context) ([]*model.Purchase, error)
	ListEntryPurchases(ctx context.Context, entryID string) ([]*model.Purchase, error)
	GetPurchase(ctx context.Context, id string) (*model.Purchase, error)
	CreatePurchase(ctx context.Context, params CreatePurchaseParams) (*model.Purchase, error)
	UpdatePurchase(ctx context.Context, id string, params repository.UpdatePurchaseParams) (*model.Purchase, error)
	DeletePurchase(ctx context.Context, id string) error
	BulkDeletePurchases(ctx context.Context, ids []string) (int64, error)
	DeleteAllEntryPurchases(ctx context.Context, entryID string) (int64, error)
}

// CreatePurchaseParams defines the parameters for creating a purchase.
type CreatePurchaseParams struct {
	Category    model.Category
	Description string
	Cost        float64
	EntryID     string
}

var ErrPurchaseNotFound = errors.New("purchase does not exist")

type purchaseUsecase struct {
	purchaseRepo repository.PurchaseRepository
}

// NewPurchaseUsecase creates a new PurchaseUsecase instance.
func NewPurchaseUsecase(purchaseRepo repository.PurchaseRepository) PurchaseUsecase {
	return &purchaseUsecase{purchaseRepo: purchaseRepo}
}

func (u *purchaseUsecase) ListPurchases(ctx context.Context) ([]*model.Purchase, error) {
	return u.purchaseRepo.ListPurchases(ctx)
}

func (u *purchaseUsecase) ListEntryPurchases(ctx context.Context, entryID string) ([]*model.Purchase, error) {
	return u.purchaseRepo.ListPurchasesByEntry(ctx, entryID)
}

func (u *purchaseUsecase) GetPurchase(ctx context.Context, id string) (*model.Purchase, error) {
	purchase, err := u.purchaseRepo.GetPurchase(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}

	return purchase, nil
}

// CreatePurchase appends the purchase to its entry: placement is one past the
// entry's current highest placement.
func (u *purchaseUsecase) CreatePurchase(ctx context.Context, params CreatePurchaseParams) (*model.Purchase, error) {
	entryObjectID, err := bson.ObjectIDFromHex(params.EntryID)
	if err != nil {
		return nil, ErrEntryNotFound
	}

	placement, err := u.purchaseRepo.NextPlacement(ctx, params.EntryID)
	if err != nil {
		return nil, err
	}

	return u.purchaseRepo.CreatePurchase(ctx, &model.Purchase{
		Category:    params.Category,
		Description: params.Description,
		Cost:        params.Cost,
		Placement:   placement,
		EntryID:     entryObjectID,
	})
}

func (u *purchaseUsecase) UpdatePurchase(
	ctx context.Context,
	id string,
	params repository.UpdatePurchaseParams,
) (*model.Purchase, error) {
	purchase, err := u.purchaseRepo.UpdatePurchase(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}

	return purchase, nil
}

func (u *purchaseUsecase) DeletePurchase(ctx context.Context, id string) error {
	if _, err := u.purchaseRepo.DeletePurchase(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPurchaseNotFound
		}
		return err
	}

	return nil
}

func (u *purchaseUsecase) BulkDeletePurchases(ctx context.Context, ids []string) (int64, error) {
	return u.purchaseRepo.DeletePurchases(ctx, ids)
}

func (u *purchaseUsecase) DeleteAllEntryPurchases(ctx context.Context, entryID string) (int64, error) {
	return u.purchaseRepo.DeletePurchasesByEntry(ctx, entryID)
}
