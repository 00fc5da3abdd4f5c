package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kujira-app/kujira-api/internal/model"
)

// PurchaseRepository defines the interface for purchase-related database
// operations.
type PurchaseRepository interface {
	CreatePurchase(ctx context.Context, purchase *model.Purchase) (*model.Purchase, error)
	CreatePurchases(ctx context.Context, purchases []*model.Purchase) ([]*model.Purchase, error)
	GetPurchase(ctx context.Context, id string) (*model.Purchase, error)
	ListPurchases(ctx context.Context) ([]*model.Purchase, error)
	ListPurchasesByEntry(ctx context.Context, entryID string) ([]*model.Purchase, error)
	UpdatePurchase(ctx context.Context, id string, params UpdatePurchaseParams) (*model.Purchase, error)
	DeletePurchase(ctx context.Context, id string) (*model.Purchase, error)
	DeletePurchases(ctx context.Context, ids []string) (int64, error)
	DeletePurchasesByEntry(ctx context.Context, entryID string) (int64, error)
	NextPlacement(ctx context.Context, entryID string) (int, error)
}

// UpdatePurchaseParams defines the optional parameters for updating a
// purchase.
type UpdatePurchaseParams struct {
	Category    *model.Category
	Description *string
	Cost        *float64
	Placement   *int
}

const purchaseCollection = "purchases"

type purchaseMongoRepository struct {
	db *mongo.Database
}

func NewPurchaseMongoRepository(db *mongo.Database) PurchaseRepository {
	return &purchaseMongoRepository{db: db}
}

func (r *purchaseMongoRepository) CreatePurchase(ctx context.Context, purchase *model.Purchase) (*model.Purchase, error) {
	now := time.Now()
	purchase.CreatedAt = now
	purchase.UpdatedAt = now

	result, err := r.db.Collection(purchaseCollection).InsertOne(ctx, purchase)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		purchase.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return purchase, nil
}

func (r *purchaseMongoRepository) CreatePurchases(ctx context.Context, purchases []*model.Purchase) ([]*model.Purchase, error) {
	if len(purchases) == 0 {
		return nil, nil
	}

	now := time.Now()
	docs := make([]any, 0, len(purchases))
	for _, purchase := range purchases {
		purchase.CreatedAt = now
		purchase.UpdatedAt = now
		docs = append(docs, purchase)
	}

	result, err := r.db.Collection(purchaseCollection).InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}

	for i, insertedID := range result.InsertedIDs {
		if objectID, ok := insertedID.(bson.ObjectID); ok {
			purchases[i].ID = objectID
		}
	}

	return purchases, nil
}

func (r *purchaseMongoRepository) GetPurchase(ctx context.Context, id string) (*model.Purchase, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(purchaseCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var purchase model.Purchase
	if err := result.Decode(&purchase); err != nil {
		return nil, err
	}

	return &purchase, nil
}

func (r *purchaseMongoRepository) ListPurchases(ctx context.Context) ([]*model.Purchase, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(ctx, bson.M{}, findOptions)
}

// ListPurchasesByEntry returns an entry's purchases in placement order.
func (r *purchaseMongoRepository) ListPurchasesByEntry(ctx context.Context, entryID string) ([]*model.Purchase, error) {
	objectID, err := bson.ObjectIDFromHex(entryID)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "placement", Value: 1}})
	return r.find(ctx, bson.M{"entry_id": objectID}, findOptions)
}

func (r *purchaseMongoRepository) find(ctx context.Context, filter bson.M, findOptions *options.FindOptionsBuilder) ([]*model.Purchase, error) {
	cursor, err := r.db.Collection(purchaseCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var purchases []*model.Purchase
	if err := cursor.All(ctx, &purchases); err != nil {
		return nil, err
	}

	return purchases, nil
}

func (r *purchaseMongoRepository) UpdatePurchase(
	ctx context.Context,
	id string,
	params UpdatePurchaseParams,
) (*model.Purchase, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Category != nil {
		updateMap["category"] = *params.Category
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.Cost != nil {
		updateMap["cost"] = *params.Cost
	}
	if params.Placement != nil {
		updateMap["placement"] = *params.Placement
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no purchase fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(purchaseCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var purchase model.Purchase
	if err := result.Decode(&purchase); err != nil {
		return nil, err
	}

	return &purchase, nil
}

func (r *purchaseMongoRepository) DeletePurchase(ctx context.Context, id string) (*model.Purchase, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(purchaseCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var purchase model.Purchase
	if err := result.Decode(&purchase); err != nil {
		return nil, err
	}

	return &purchase, nil
}

func (r *purchaseMongoRepository) DeletePurchases(ctx context.Context, ids []string) (int64, error) {
	objectIDs := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := bson.ObjectIDFromHex(id)
		if err != nil {
			return 0, err
		}
		objectIDs = append(objectIDs, objectID)
	}

	result, err := r.db.Collection(purchaseCollection).DeleteMany(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

func (r *purchaseMongoRepository) DeletePurchasesByEntry(ctx context.Context, entryID string) (int64, error) {
	objectID, err := bson.ObjectIDFromHex(entryID)
	if err != nil {
		return 0, err
	}

	result, err := r.db.Collection(purchaseCollection).DeleteMany(ctx, bson.M{"entry_id": objectID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

// NextPlacement returns the next insertion-order position within an entry.
func (r *purchaseMongoRepository) NextPlacement(ctx context.Context, entryID string) (int, error) {
	objectID, err := bson.ObjectIDFromHex(entryID)
	if err != nil {
		return 0, err
	}

	findOptions := options.FindOne().SetSort(bson.D{{Key: "placement", Value: -1}})

	result := r.db.Collection(purchaseCollection).FindOne(ctx, bson.M{"entry_id": objectID}, findOptions)
	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return 1, nil
		}
		return 0, result.Err()
	}

	var last model.Purchase
	if err := result.Decode(&last); err != nil {
		return 0, err
	}

	return last.Placement + 1, nil
}
