package repositories

import (
	"context"

	"agritrack/internal/models"
)

// ExpenseRepository defines the interface for expense data access.
type ExpenseRepository interface {
	ListByFarm(ctx context.Context, farmID string) ([]models.Expense, error)
	GetByID(ctx context.Context, id string) (*models.Expense, error)
	Create(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, id string, patch models.ExpensePatch) error
	Delete(ctx context.Context, id string) error
}

// IncomeRepository defines the interface for income data access.
type IncomeRepository interface {
	ListByFarm(ctx context.Context, farmID string) ([]models.Income, error)
	GetByID(ctx context.Context, id string) (*models.Income, error)
	Create(ctx context.Context, income *models.Income) error
	Update(ctx context.Context, id string, patch models.IncomePatch) error
	Delete(ctx context.Context, id string) error
}

// ActivityRepository defines the interface for activity data access.
type ActivityRepository interface {
	ListByFarm(ctx context.Context, farmID string) ([]models.Activity, error)
	GetByID(ctx context.Context, id string) (*models.Activity, error)
	Create(ctx context.Context, activity *models.Activity) error
	Update(ctx context.Context, id string, patch models.ActivityPatch) error
	Delete(ctx context.Context, id string) error
	// Toggle flips completed in a single storage operation and returns the new value.
	Toggle(ctx context.Context, id string) (bool, error)
}
