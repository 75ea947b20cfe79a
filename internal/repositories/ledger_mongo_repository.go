package repositories

import (
	"context"
	"fmt"
	"time"

	"agritrack/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var byDateDesc = bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}

// MongoExpenseRepository is a MongoDB implementation of ExpenseRepository.
type MongoExpenseRepository struct {
	mongoConn
}

func (r *MongoExpenseRepository) ListByFarm(ctx context.Context, farmID string) ([]models.Expense, error) {
	expenses := []models.Expense{}
	if err := r.findAll(ctx, expensesCollection, bson.M{"farm_id": farmID}, byDateDesc, &expenses); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (r *MongoExpenseRepository) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	var expense models.Expense
	if err := r.findByID(ctx, expensesCollection, id, &expense); err != nil {
		return nil, fmt.Errorf("failed to get expense by ID %s: %w", id, err)
	}
	return &expense, nil
}

func (r *MongoExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	expense.CreatedAt, expense.UpdatedAt = now, now
	if err := r.insert(ctx, expensesCollection, expense); err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *MongoExpenseRepository) Update(ctx context.Context, id string, patch models.ExpensePatch) error {
	if err := r.updateByID(ctx, expensesCollection, id, patch.Fields()); err != nil {
		return fmt.Errorf("failed to update expense %s: %w", id, err)
	}
	return nil
}

func (r *MongoExpenseRepository) Delete(ctx context.Context, id string) error {
	if err := r.deleteByID(ctx, expensesCollection, id); err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", id, err)
	}
	return nil
}

// MongoIncomeRepository is a MongoDB implementation of IncomeRepository.
type MongoIncomeRepository struct {
	mongoConn
}

func (r *MongoIncomeRepository) ListByFarm(ctx context.Context, farmID string) ([]models.Income, error) {
	income := []models.Income{}
	if err := r.findAll(ctx, incomeCollection, bson.M{"farm_id": farmID}, byDateDesc, &income); err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	return income, nil
}

func (r *MongoIncomeRepository) GetByID(ctx context.Context, id string) (*models.Income, error) {
	var income models.Income
	if err := r.findByID(ctx, incomeCollection, id, &income); err != nil {
		return nil, fmt.Errorf("failed to get income by ID %s: %w", id, err)
	}
	return &income, nil
}

func (r *MongoIncomeRepository) Create(ctx context.Context, income *models.Income) error {
	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	income.CreatedAt, income.UpdatedAt = now, now
	if err := r.insert(ctx, incomeCollection, income); err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

func (r *MongoIncomeRepository) Update(ctx context.Context, id string, patch models.IncomePatch) error {
	if err := r.updateByID(ctx, incomeCollection, id, patch.Fields()); err != nil {
		return fmt.Errorf("failed to update income %s: %w", id, err)
	}
	return nil
}

func (r *MongoIncomeRepository) Delete(ctx context.Context, id string) error {
	if err := r.deleteByID(ctx, incomeCollection, id); err != nil {
		return fmt.Errorf("failed to delete income %s: %w", id, err)
	}
	return nil
}

// MongoActivityRepository is a MongoDB implementation of ActivityRepository.
type MongoActivityRepository struct {
	mongoConn
}

func (r *MongoActivityRepository) ListByFarm(ctx context.Context, farmID string) ([]models.Activity, error) {
	activities := []models.Activity{}
	sort := bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	if err := r.findAll(ctx, activitiesCollection, bson.M{"farm_id": farmID}, sort, &activities); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

func (r *MongoActivityRepository) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	var activity models.Activity
	if err := r.findByID(ctx, activitiesCollection, id, &activity); err != nil {
		return nil, fmt.Errorf("failed to get activity by ID %s: %w", id, err)
	}
	return &activity, nil
}

func (r *MongoActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	activity.CreatedAt, activity.UpdatedAt = now, now
	if err := r.insert(ctx, activitiesCollection, activity); err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *MongoActivityRepository) Update(ctx context.Context, id string, patch models.ActivityPatch) error {
	if err := r.updateByID(ctx, activitiesCollection, id, patch.Fields()); err != nil {
		return fmt.Errorf("failed to update activity %s: %w", id, err)
	}
	return nil
}

func (r *MongoActivityRepository) Delete(ctx context.Context, id string) error {
	if err := r.deleteByID(ctx, activitiesCollection, id); err != nil {
		return fmt.Errorf("failed to delete activity %s: %w", id, err)
	}
	return nil
}

// Toggle runs an update pipeline so the flip happens server side in one call.
func (r *MongoActivityRepository) Toggle(ctx context.Context, id string) (bool, error) {
	ctx, cancel := r.conn(ctx)
	defer cancel()

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "completed", Value: bson.D{{Key: "$not", Value: bson.A{"$completed"}}}},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	}
	var activity models.Activity
	err := r.coll(activitiesCollection).FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"completed": 1})).Decode(&activity)
	if err != nil {
		return false, fmt.Errorf("failed to toggle activity %s: %w", id, mongoErr(err))
	}
	return activity.Completed, nil
}
