package repositories

import (
	"context"
	"fmt"
	"time"

	"agritrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMExpenseRepository is a GORM implementation of ExpenseRepository.
type GORMExpenseRepository struct {
	gormConn
}

// NewGORMExpenseRepository creates a new instance of GORMExpenseRepository.
func NewGORMExpenseRepository(db *gorm.DB, timeout time.Duration) *GORMExpenseRepository {
	return &GORMExpenseRepository{gormConn: gormConn{db: db, timeout: timeout}}
}

// ListByFarm returns a farm's expenses, newest date first.
func (r *GORMExpenseRepository) ListByFarm(ctx context.Context, farmID string) ([]models.Expense, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var expenses []models.Expense
	if err := db.Where("farm_id = ?", farmID).Order("date desc, created_at desc").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// GetByID retrieves a single expense by its ID.
func (r *GORMExpenseRepository) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var expense models.Expense
	if err := db.First(&expense, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get expense by ID %s: %w", id, gormErr(err))
	}
	return &expense, nil
}

// Create creates a new expense in the database.
func (r *GORMExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if err := db.Create(expense).Error; err != nil {
		return fmt.Errorf("failed to create expense: %w", gormErr(err))
	}
	return nil
}

// Update sets the patched columns and updated_at.
func (r *GORMExpenseRepository) Update(ctx context.Context, id string, patch models.ExpensePatch) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Model(&models.Expense{}).Where("id = ?", id).Updates(withUpdatedAt(patch.Fields()))
	if res.Error != nil {
		return fmt.Errorf("failed to update expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("expense with ID %s not found for update: %w", id, ErrRecordNotFound)
	}
	return nil
}

// Delete deletes an expense by its ID.
func (r *GORMExpenseRepository) Delete(ctx context.Context, id string) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Delete(&models.Expense{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("expense with ID %s not found for deletion: %w", id, ErrRecordNotFound)
	}
	return nil
}
