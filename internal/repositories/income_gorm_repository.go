package repositories

import (
	"context"
	"fmt"
	"time"

	"agritrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMIncomeRepository is a GORM implementation of IncomeRepository.
type GORMIncomeRepository struct {
	gormConn
}

// NewGORMIncomeRepository creates a new instance of GORMIncomeRepository.
func NewGORMIncomeRepository(db *gorm.DB, timeout time.Duration) *GORMIncomeRepository {
	return &GORMIncomeRepository{gormConn: gormConn{db: db, timeout: timeout}}
}

// ListByFarm returns a farm's income, newest date first.
func (r *GORMIncomeRepository) ListByFarm(ctx context.Context, farmID string) ([]models.Income, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var income []models.Income
	if err := db.Where("farm_id = ?", farmID).Order("date desc, created_at desc").Find(&income).Error; err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	return income, nil
}

// GetByID retrieves a single income record by its ID.
func (r *GORMIncomeRepository) GetByID(ctx context.Context, id string) (*models.Income, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var income models.Income
	if err := db.First(&income, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get income by ID %s: %w", id, gormErr(err))
	}
	return &income, nil
}

// Create creates a new income record in the database.
func (r *GORMIncomeRepository) Create(ctx context.Context, income *models.Income) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	if err := db.Create(income).Error; err != nil {
		return fmt.Errorf("failed to create income: %w", gormErr(err))
	}
	return nil
}

// Update sets the patched columns and updated_at.
func (r *GORMIncomeRepository) Update(ctx context.Context, id string, patch models.IncomePatch) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Model(&models.Income{}).Where("id = ?", id).Updates(withUpdatedAt(patch.Fields()))
	if res.Error != nil {
		return fmt.Errorf("failed to update income: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("income with ID %s not found for update: %w", id, ErrRecordNotFound)
	}
	return nil
}

// Delete deletes an income record by its ID.
func (r *GORMIncomeRepository) Delete(ctx context.Context, id string) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Delete(&models.Income{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete income: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("income with ID %s not found for deletion: %w", id, ErrRecordNotFound)
	}
	return nil
}
