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

// OverviewRepository defines the interface for overview-related database
// operations.
type OverviewRepository interface {
	CreateOverview(ctx context.Context, overview *model.Overview) (*model.Overview, error)
	GetOverview(ctx context.Context, id string) (*model.Overview, error)
	GetOverviewByLogbook(ctx context.Context, logbookID string) (*model.Overview, error)
	ListOverviews(ctx context.Context) ([]*model.Overview, error)
	UpdateOverview(ctx context.Context, id string, params UpdateOverviewParams) (*model.Overview, error)
	UpdateOverviewByLogbook(ctx context.Context, logbookID string, params UpdateOverviewParams) (*model.Overview, error)
	DeleteOverview(ctx context.Context, id string) (*model.Overview, error)
	DeleteOverviewsByLogbook(ctx context.Context, logbookID string) (int64, error)
}

// UpdateOverviewParams defines the optional parameters for updating an
// overview.
type UpdateOverviewParams struct {
	Income  *float64
	Savings *float64
}

const overviewCollection = "overviews"

type overviewMongoRepository struct {
	db *mongo.Database
}

func NewOverviewMongoRepository(db *mongo.Database) OverviewRepository {
	return &overviewMongoRepository{db: db}
}

func (r *overviewMongoRepository) CreateOverview(ctx context.Context, overview *model.Overview) (*model.Overview, error) {
	now := time.Now()
	overview.CreatedAt = now
	overview.UpdatedAt = now

	result, err := r.db.Collection(overviewCollection).InsertOne(ctx, overview)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		overview.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return overview, nil
}

func (r *overviewMongoRepository) GetOverview(ctx context.Context, id string) (*model.Overview, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *overviewMongoRepository) GetOverviewByLogbook(ctx context.Context, logbookID string) (*model.Overview, error) {
	objectID, err := bson.ObjectIDFromHex(logbookID)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"logbook_id": objectID})
}

func (r *overviewMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.Overview, error) {
	result := r.db.Collection(overviewCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var overview model.Overview
	if err := result.Decode(&overview); err != nil {
		return nil, err
	}

	return &overview, nil
}

func (r *overviewMongoRepository) ListOverviews(ctx context.Context) ([]*model.Overview, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.db.Collection(overviewCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var overviews []*model.Overview
	if err := cursor.All(ctx, &overviews); err != nil {
		return nil, err
	}

	return overviews, nil
}

func (r *overviewMongoRepository) UpdateOverview(
	ctx context.Context,
	id string,
	params UpdateOverviewParams,
) (*model.Overview, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	return r.applyUpdate(ctx, bson.M{"_id": objectID}, params)
}

func (r *overviewMongoRepository) UpdateOverviewByLogbook(
	ctx context.Context,
	logbookID string,
	params UpdateOverviewParams,
) (*model.Overview, error) {
	objectID, err := bson.ObjectIDFromHex(logbookID)
	if err != nil {
		return nil, err
	}

	return r.applyUpdate(ctx, bson.M{"logbook_id": objectID}, params)
}

func (r *overviewMongoRepository) applyUpdate(
	ctx context.Context,
	filter bson.M,
	params UpdateOverviewParams,
) (*model.Overview, error) {
	updateMap := bson.M{}
	if params.Income != nil {
		updateMap["income"] = *params.Income
	}
	if params.Savings != nil {
		updateMap["savings"] = *params.Savings
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no overview fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(overviewCollection).FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var overview model.Overview
	if err := result.Decode(&overview); err != nil {
		return nil, err
	}

	return &overview, nil
}

func (r *overviewMongoRepository) DeleteOverview(ctx context.Context, id string) (*model.Overview, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(overviewCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var overview model.Overview
	if err := result.Decode(&overview); err != nil {
		return nil, err
	}

	return &overview, nil
}

func (r *overviewMongoRepository) DeleteOverviewsByLogbook(ctx context.Context, logbookID string) (int64, error) {
	objectID, err := bson.ObjectIDFromHex(logbookID)
	if err != nil {
		return 0, err
	}

	result, err := r.db.Collection(overviewCollection).DeleteMany(ctx, bson.M{"logbook_id": objectID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
