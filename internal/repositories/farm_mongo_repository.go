package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agritrack/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoFarmRepository is a MongoDB implementation of FarmRepository.
type MongoFarmRepository struct {
	mongoConn
}

// ListByOwner returns the owner's farms in insertion order.
func (r *MongoFarmRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Farm, error) {
	ctx, cancel := r.conn(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll(farmsCollection).Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list farms: %w", err)
	}
	farms := []models.Farm{}
	if err := cur.All(ctx, &farms); err != nil {
		return nil, fmt.Errorf("failed to decode farms: %w", err)
	}
	return farms, nil
}

// GetByIDAndOwner retrieves a farm only when it belongs to ownerID.
func (r *MongoFarmRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Farm, error) {
	ctx, cancel := r.conn(ctx)
	defer cancel()

	var farm models.Farm
	err := r.coll(farmsCollection).FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&farm)
	if err != nil {
		return nil, fmt.Errorf("failed to get farm %s: %w", id, mongoErr(err))
	}
	return &farm, nil
}

// Create inserts a farm.
func (r *MongoFarmRepository) Create(ctx context.Context, farm *models.Farm) error {
	ctx, cancel := r.conn(ctx)
	defer cancel()

	if farm.ID == "" {
		farm.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	farm.CreatedAt, farm.UpdatedAt = now, now
	if _, err := r.coll(farmsCollection).InsertOne(ctx, farm); err != nil {
		return fmt.Errorf("failed to create farm: %w", mongoErr(err))
	}
	return nil
}

// Update applies patch to the farm matching both id and owner.
func (r *MongoFarmRepository) Update(ctx context.Context, id, ownerID string, patch models.FarmPatch) error {
	ctx, cancel := r.conn(ctx)
	defer cancel()

	res, err := r.coll(farmsCollection).UpdateOne(ctx, bson.M{"_id": id, "owner_id": ownerID}, setFields(patch.Fields()))
	if err != nil {
		return fmt.Errorf("failed to update farm: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("farm with ID %s not found for update: %w", id, ErrRecordNotFound)
	}
	return nil
}

// Delete removes the farm, then its expenses, income and activities.
func (r *MongoFarmRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := r.conn(ctx)
	defer cancel()

	res, err := r.coll(farmsCollection).DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("failed to delete farm: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("farm with ID %s not found for deletion: %w", id, ErrRecordNotFound)
	}
	for _, name := range []string{expensesCollection, incomeCollection, activitiesCollection} {
		if _, err := r.coll(name).DeleteMany(ctx, bson.M{"farm_id": id}); err != nil {
			return fmt.Errorf("failed to delete %s of farm %s: %w", name, id, err)
		}
	}
	return nil
}

// GetOrCreateDefault relies on the sparse unique index on default_for: the
// claim and the upsert can race, but only one document per owner carries the
// marker and every caller re-reads it.
func (r *MongoFarmRepository) GetOrCreateDefault(ctx context.Context, ownerID string) (*models.Farm, error) {
	ctx, cancel := r.conn(ctx)
	defer cancel()

	farms := r.coll(farmsCollection)
	farm, err := r.findDefault(ctx, ownerID)
	if err == nil {
		return farm, nil
	}
	if !errors.Is(err, ErrRecordNotFound) {
		return nil, err
	}

	var oldest models.Farm
	err = farms.FindOne(ctx, bson.M{"owner_id": ownerID},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})).Decode(&oldest)
	switch {
	case err == nil:
		_, err = farms.UpdateOne(ctx,
			bson.M{"_id": oldest.ID, "default_for": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"default_for": ownerID}})
	case errors.Is(err, mongo.ErrNoDocuments):
		now := time.Now().UTC()
		doc := models.Farm{
			ID:        uuid.New().String(),
			OwnerID:   ownerID,
			Name:      models.DefaultFarmName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = farms.FindOneAndUpdate(ctx,
			bson.M{"default_for": ownerID},
			bson.M{"$setOnInsert": doc},
			options.FindOneAndUpdate().SetUpsert(true)).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			err = nil
		}
	}
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("failed to create default farm: %w", err)
	}

	return r.findDefault(ctx, ownerID)
}

func (r *MongoFarmRepository) findDefault(ctx context.Context, ownerID string) (*models.Farm, error) {
	var farm models.Farm
	if err := r.coll(farmsCollection).FindOne(ctx, bson.M{"default_for": ownerID}).Decode(&farm); err != nil {
		return nil, fmt.Errorf("failed to get default farm of %s: %w", ownerID, mongoErr(err))
	}
	return &farm, nil
}
