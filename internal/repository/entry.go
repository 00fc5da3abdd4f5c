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

// EntryRepository defines the interface for entry-related database
// operations.
type EntryRepository interface {
	CreateEntry(ctx context.Context, entry *model.Entry) (*model.Entry, error)
	GetEntry(ctx context.Context, id string) (*model.Entry, error)
	GetEntryByNameInOverview(ctx context.Context, name, overviewID string) (*model.Entry, error)
	GetEntryByNameInLogbook(ctx context.Context, name, logbookID string) (*model.Entry, error)
	ListEntries(ctx context.Context) ([]*model.Entry, error)
	ListEntriesByOverview(ctx context.Context, overviewID string) ([]*model.Entry, error)
	ListEntriesByLogbook(ctx context.Context, logbookID string) ([]*model.Entry, error)
	UpdateEntry(ctx context.Context, id string, params UpdateEntryParams) (*model.Entry, error)
	DeleteEntry(ctx context.Context, id string) (*model.Entry, error)
	DeleteEntriesByOverview(ctx context.Context, overviewID string) ([]*model.Entry, error)
	DeleteEntriesByLogbook(ctx context.Context, logbookID string) ([]*model.Entry, error)
}

// UpdateEntryParams defines the optional parameters for updating an entry.
type UpdateEntryParams struct {
	Name                 *string
	TotalSpent           *float64
	NonMonthlyTotalSpent *float64
	Budget               *float64
	OverviewID           *string
	LogbookID            *string
}

const entryCollection = "entries"

type entryMongoRepository struct {
	db *mongo.Database
}

func NewEntryMongoRepository(db *mongo.Database) EntryRepository {
	return &entryMongoRepository{db: db}
}

func (r *entryMongoRepository) CreateEntry(ctx context.Context, entry *model.Entry) (*model.Entry, error) {
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	result, err := r.db.Collection(entryCollection).InsertOne(ctx, entry)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		entry.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return entry, nil
}

func (r *entryMongoRepository) GetEntry(ctx context.Context, id string) (*model.Entry, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *entryMongoRepository) GetEntryByNameInOverview(ctx context.Context, name, overviewID string) (*model.Entry, error) {
	objectID, err := bson.ObjectIDFromHex(overviewID)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"name": name, "overview_id": objectID})
}

func (r *entryMongoRepository) GetEntryByNameInLogbook(ctx context.Context, name, logbookID string) (*model.Entry, error) {
	objectID, err := bson.ObjectIDFromHex(logbookID)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"name": name, "logbook_id": objectID})
}

func (r *entryMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.Entry, error) {
	result := r.db.Collection(entryCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var entry model.Entry
	if err := result.Decode(&entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *entryMongoRepository) ListEntries(ctx context.Context) ([]*model.Entry, error) {
	return r.find(ctx, bson.M{})
}

func (r *entryMongoRepository) ListEntriesByOverview(ctx context.Context, overviewID string) ([]*model.Entry, error) {
	objectID, err := bson.ObjectIDFromHex(overviewID)
	if err != nil {
		return nil, err
	}

	return r.find(ctx, bson.M{"overview_id": objectID})
}

func (r *entryMongoRepository) ListEntriesByLogbook(ctx context.Context, logbookID string) ([]*model.Entry, error) {
	objectID, err := bson.ObjectIDFromHex(logbookID)
	if err != nil {
		return nil, err
	}

	return r.find(ctx, bson.M{"logbook_id": objectID})
}

func (r *entryMongoRepository) find(ctx context.Context, filter bson.M) ([]*model.Entry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.db.Collection(entryCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *entryMongoRepository) UpdateEntry(
	ctx context.Context,
	id string,
	params UpdateEntryParams,
) (*model.Entry, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.TotalSpent != nil {
		updateMap["total_spent"] = *params.TotalSpent
	}
	if params.NonMonthlyTotalSpent != nil {
		updateMap["non_monthly_total_spent"] = *params.NonMonthlyTotalSpent
	}
	if params.Budget != nil {
		updateMap["budget"] = *params.Budget
	}
	if params.OverviewID != nil {
		overviewObjectID, err := bson.ObjectIDFromHex(*params.OverviewID)
		if err != nil {
			return nil, err
		}
		updateMap["overview_id"] = overviewObjectID
	}
	if params.LogbookID != nil {
		logbookObjectID, err := bson.ObjectIDFromHex(*params.LogbookID)
		if err != nil {
			return nil, err
		}
		updateMap["logbook_id"] = logbookObjectID
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no entry fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(entryCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var entry model.Entry
	if err := result.Decode(&entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *entryMongoRepository) DeleteEntry(ctx context.Context, id string) (*model.Entry, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(entryCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var entry model.Entry
	if err := result.Decode(&entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *entryMongoRepository) DeleteEntriesByOverview(ctx context.Context, overviewID string) ([]*model.Entry, error) {
	entries, err := r.ListEntriesByOverview(ctx, overviewID)
	if err != nil {
		return nil, err
	}

	return entries, r.deleteAll(ctx, entries)
}

func (r *entryMongoRepository) DeleteEntriesByLogbook(ctx context.Context, logbookID string) ([]*model.Entry, error) {
	entries, err := r.ListEntriesByLogbook(ctx, logbookID)
	if err != nil {
		return nil, err
	}

	return entries, r.deleteAll(ctx, entries)
}

func (r *entryMongoRepository) deleteAll(ctx context.Context, entries []*model.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	ids := make([]bson.ObjectID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}

	_, err := r.db.Collection(entryCollection).DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}
