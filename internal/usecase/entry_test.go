package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kujira-app/kujira-api/internal/model"
	"github.com/kujira-app/kujira-api/internal/repository"
)

func newEntryFixture() (*fakeEntryRepo, *fakePurchaseRepo, EntryUsecase) {
	entryRepo := newFakeEntryRepo()
	purchaseRepo := newFakePurchaseRepo()
	return entryRepo, purchaseRepo, NewEntryUsecase(entryRepo, purchaseRepo)
}

func TestCreateEntryUnderOverview(t *testing.T) {
	_, _, entries := newEntryFixture()

	overviewID := bson.NewObjectID().Hex()
	entry, err := entries.CreateEntry(context.Background(), CreateEntryParams{
		Name:       "Recurring",
		OverviewID: &overviewID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Recurring", entry.Name)
	require.NotNil(t, entry.OverviewID)
	assert.Equal(t, overviewID, entry.OverviewID.Hex())
	assert.Nil(t, entry.LogbookID)
}

func TestCreateEntryRejectsDuplicateNameInOverview(t *testing.T) {
	_, _, entries := newEntryFixture()
	ctx := context.Background()

	overviewID := bson.NewObjectID().Hex()
	_, err := entries.CreateEntry(ctx, CreateEntryParams{Name: "Recurring", OverviewID: &overviewID})
	require.NoError(t, err)

	_, err = entries.CreateEntry(ctx, CreateEntryParams{Name: "Recurring", OverviewID: &overviewID})
	assert.ErrorIs(t, err, ErrEntryNameTaken)

	// The same name under a different overview is fine.
	otherOverviewID := bson.NewObjectID().Hex()
	_, err = entries.CreateEntry(ctx, CreateEntryParams{Name: "Recurring", OverviewID: &otherOverviewID})
	assert.NoError(t, err)
}

func TestCreateEntryRejectsDuplicateNameInLogbook(t *testing.T) {
	_, _, entries := newEntryFixture()
	ctx := context.Background()

	logbookID := bson.NewObjectID().Hex()
	_, err := entries.CreateEntry(ctx, CreateEntryParams{Name: "August 2026", LogbookID: &logbookID})
	require.NoError(t, err)

	_, err = entries.CreateEntry(ctx, CreateEntryParams{Name: "August 2026", LogbookID: &logbookID})
	assert.ErrorIs(t, err, ErrEntryNameTaken)
}

func TestCreateEntryRejectsMalformedParent(t *testing.T) {
	_, _, entries := newEntryFixture()

	bad := "not-an-id"
	_, err := entries.CreateEntry(context.Background(), CreateEntryParams{Name: "Recurring", OverviewID: &bad})
	assert.ErrorIs(t, err, ErrOverviewNotFound)

	_, err = entries.CreateEntry(context.Background(), CreateEntryParams{Name: "Recurring", LogbookID: &bad})
	assert.ErrorIs(t, err, ErrLogbookNotFound)
}

func TestUpdateEntryRenameChecksAvailability(t *testing.T) {
	_, _, entries := newEntryFixture()
	ctx := context.Background()

	overviewID := bson.NewObjectID().Hex()
	_, err := entries.CreateEntry(ctx, CreateEntryParams{Name: "Recurring", OverviewID: &overviewID})
	require.NoError(t, err)
	entry, err := entries.CreateEntry(ctx, CreateEntryParams{Name: "Incoming", OverviewID: &overviewID})
	require.NoError(t, err)

	taken := "Recurring"
	_, err = entries.UpdateEntry(ctx, entry.ID.Hex(), repository.UpdateEntryParams{
		Name:       &taken,
		OverviewID: &overviewID,
	})
	assert.ErrorIs(t, err, ErrEntryNameTaken)
}

func TestUpdateEntrySpentTotals(t *testing.T) {
	_, _, entries := newEntryFixture()
	ctx := context.Background()

	logbookID := bson.NewObjectID().Hex()
	entry, err := entries.CreateEntry(ctx, CreateEntryParams{Name: "August 2026", LogbookID: &logbookID})
	require.NoError(t, err)

	totalSpent := 120.50
	budget := 400.0
	updated, err := entries.UpdateEntry(ctx, entry.ID.Hex(), repository.UpdateEntryParams{
		TotalSpent: &totalSpent,
		Budget:     &budget,
	})
	require.NoError(t, err)

	assert.Equal(t, 120.50, updated.TotalSpent)
	require.NotNil(t, updated.Budget)
	assert.Equal(t, 400.0, *updated.Budget)
}

func TestDeleteEntryRemovesPurchases(t *testing.T) {
	_, purchaseRepo, entries := newEntryFixture()
	ctx := context.Background()

	logbookID := bson.NewObjectID().Hex()
	entry, err := entries.CreateEntry(ctx, CreateEntryParams{Name: "August 2026", LogbookID: &logbookID})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = purchaseRepo.CreatePurchase(ctx, &model.Purchase{
			Category: model.CategoryImpulse,
			Cost:     5,
			EntryID:  entry.ID,
		})
		require.NoError(t, err)
	}

	require.NoError(t, entries.DeleteEntry(ctx, entry.ID.Hex()))

	purchases, err := purchaseRepo.ListPurchases(ctx)
	require.NoError(t, err)
	assert.Empty(t, purchases)

	_, err = entries.GetEntry(ctx, entry.ID.Hex())
	assert.ErrorIs(t, err, ErrEntryNotFound)
}
