package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kujira-app/kujira-api/internal/model"
	"github.com/kujira-app/kujira-api/internal/repository"
)

// OnboardingUsecase completes a new user's first-run setup: fills in the
// logbook overview, seeds the recurring and incoming overview entries with
// purchases, and flips the user's onboarded flag.
type OnboardingUsecase interface {
	OnboardNewUser(ctx context.Context, params OnboardParams) (*OnboardResult, error)
}

// OnboardPurchase is a purchase seeded during onboarding.
type OnboardPurchase struct {
	Category    model.Category
	Description string
	Cost        float64
}

// OnboardEntry identifies an overview entry touched during onboarding and the
// total cost of the purchases placed under it.
type OnboardEntry struct {
	ID        string
	TotalCost float64
}

// OnboardParams defines the parameters for onboarding a new user.
type OnboardParams struct {
	UserID             string
	LogbookID          string
	Income             float64
	Savings            float64
	RecurringPurchases []OnboardPurchase
	IncomingPurchases  []OnboardPurchase
	RecurringEntry     OnboardEntry
	IncomingEntry      OnboardEntry
}

// OnboardResult aggregates everything the onboarding flow created or updated.
type OnboardResult struct {
	Overview           *model.Overview   `json:"overview"`
	RecurringPurchases []*model.Purchase `json:"recurringPurchases"`
	IncomingPurchases  []*model.Purchase `json:"incomingPurchases"`
	RecurringEntry     *model.Entry      `json:"recurringEntry"`
	IncomingEntry      *model.Entry      `json:"incomingEntry"`
	User               *model.User       `json:"user"`
}

type onboardingUsecase struct {
	userRepo     repository.UserRepository
	overviewRepo repository.OverviewRepository
	entryRepo    repository.EntryRepository
	purchaseRepo repository.PurchaseRepository
}

// NewOnboardingUsecase creates a new OnboardingUsecase instance.
func NewOnboardingUsecase(
	userRepo repository.UserRepository,
	overviewRepo repository.OverviewRepository,
	entryRepo repository.EntryRepository,
	purchaseRepo repository.PurchaseRepository,
) OnboardingUsecase {
	return &onboardingUsecase{
		userRepo:     userRepo,
		overviewRepo: overviewRepo,
		entryRepo:    entryRepo,
		purchaseRepo: purchaseRepo,
	}
}

func (u *onboardingUsecase) OnboardNewUser(ctx context.Context, params OnboardParams) (*OnboardResult, error) {
	overview, err := u.overviewRepo.UpdateOverviewByLogbook(ctx, params.LogbookID, repository.UpdateOverviewParams{
		Income:  &params.Income,
		Savings: &params.Savings,
	})
	if err != nil {
		return nil, err
	}

	recurringPurchases, err := u.seedEntry(ctx, params.RecurringEntry, params.RecurringPurchases)
	if err != nil {
		return nil, err
	}

	incomingPurchases, err := u.seedEntry(ctx, params.IncomingEntry, params.IncomingPurchases)
	if err != nil {
		return nil, err
	}

	recurringEntry, err := u.entryRepo.UpdateEntry(ctx, params.RecurringEntry.ID, repository.UpdateEntryParams{
		TotalSpent: &params.RecurringEntry.TotalCost,
	})
	if err != nil {
		return nil, err
	}

	incomingEntry, err := u.entryRepo.UpdateEntry(ctx, params.IncomingEntry.ID, repository.UpdateEntryParams{
		TotalSpent: &params.IncomingEntry.TotalCost,
	})
	if err != nil {
		return nil, err
	}

	onboarded := true
	user, err := u.userRepo.UpdateUser(ctx, params.UserID, repository.UpdateUserParams{
		Onboarded: &onboarded,
	})
	if err != nil {
		return nil, err
	}

	return &OnboardResult{
		Overview:           overview,
		RecurringPurchases: recurringPurchases,
		IncomingPurchases:  incomingPurchases,
		RecurringEntry:     recurringEntry,
		IncomingEntry:      incomingEntry,
		User:               user,
	}, nil
}

func (u *onboardingUsecase) seedEntry(
	ctx context.Context,
	entry OnboardEntry,
	seeds []OnboardPurchase,
) ([]*model.Purchase, error) {
	entryObjectID, err := bson.ObjectIDFromHex(entry.ID)
	if err != nil {
		return nil, ErrEntryNotFound
	}

	purchases := make([]*model.Purchase, 0, len(seeds))
	for i, seed := range seeds {
		purchases = append(purchases, &model.Purchase{
			Category:    seed.Category,
			Description: seed.Description,
			Cost:        seed.Cost,
			Placement:   i + 1,
			EntryID:     entryObjectID,
		})
	}

	if _, err := u.purchaseRepo.CreatePurchases(ctx, purchases); err != nil {
		return nil, err
	}

	return u.purchaseRepo.ListPurchasesByEntry(ctx, entry.ID)
}
