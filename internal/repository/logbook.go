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

// LogbookRepository defines the interface for logbook-related database
// operations.
type LogbookRepository interface {
	CreateLogbook(ctx context.Context, logbook *model.Logbook) (*model.Logbook, error)
	GetLogbook(ctx context.Context, id string) (*model.Logbook, error)
	ListLogbooks(ctx context.Context) ([]*model.Logbook, error)
	ListLogbooksByOwner(ctx context.Context, ownerID string) ([]*model.Logbook, error)
	UpdateLogbook(ctx context.Context, id string, params UpdateLogbookParams) (*model.Logbook, error)
	DeleteLogbook(ctx context.Context, id string) (*model.Logbook, error)
}

// UpdateLogbookParams defines the optional parameters for updating a logbook.
type UpdateLogbookParams struct {
	Name *string
}

const logbookCollection = "logbooks"

type logbookMongoRepository struct {
	db *mongo.Database
}

func NewLogbookMongoRepository(db *mongo.Database) LogbookRepository {
	return &logbookMongoRepository{db: db}
}

func (r *logbookMongoRepository) CreateLogbook(ctx context.Context, logbook *model.Logbook) (*model.Logbook, error) {
	now := time.Now()
	logbook.CreatedAt = now
	logbook.UpdatedAt = now

	result, err := r.db.Collection(logbookCollection).InsertOne(ctx, logbook)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		logbook.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return logbook, nil
}

func (r *logbookMongoRepository) GetLogbook(ctx context.Context, id string) (*model.Logbook, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(logbookCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var logbook model.Logbook
	if err := result.Decode(&logbook); err != nil {
		return nil, err
	}

	return &logbook, nil
}

func (r *logbookMongoRepository) ListLogbooks(ctx context.Context) ([]*model.Logbook, error) {
	return r.find(ctx, bson.M{})
}

func (r *logbookMongoRepository) ListLogbooksByOwner(ctx context.Context, ownerID string) ([]*model.Logbook, error) {
	objectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, err
	}

	return r.find(ctx, bson.M{"owner_id": objectID})
}

func (r *logbookMongoRepository) find(ctx context.Context, filter bson.M) ([]*model.Logbook, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.db.Collection(logbookCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logbooks []*model.Logbook
	if err := cursor.All(ctx, &logbooks); err != nil {
		return nil, err
	}

	return logbooks, nil
}

func (r *logbookMongoRepository) UpdateLogbook(
	ctx context.Context,
	id string,
	params UpdateLogbookParams,
) (*model.Logbook, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no logbook fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(logbookCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var logbook model.Logbook
	if err := result.Decode(&logbook); err != nil {
		return nil, err
	}

	return &logbook, nil
}

func (r *logbookMongoRepository) DeleteLogbook(ctx context.Context, id string) (*model.Logbook, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(logbookCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var logbook model.Logbook
	if err := result.Decode(&logbook); err != nil {
		return nil, err
	}

	return &logbook, nil
}
