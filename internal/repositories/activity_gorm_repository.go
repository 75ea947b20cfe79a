package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agritrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMActivityRepository is a GORM implementation of ActivityRepository.
type GORMActivityRepository struct {
	gormConn
}

// NewGORMActivityRepository creates a new instance of GORMActivityRepository.
func NewGORMActivityRepository(db *gorm.DB, timeout time.Duration) *GORMActivityRepository {
	return &GORMActivityRepository{gormConn: gormConn{db: db, timeout: timeout}}
}

// ListByFarm returns a farm's activities, most recently created first.
func (r *GORMActivityRepository) ListByFarm(ctx context.Context, farmID string) ([]models.Activity, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var activities []models.Activity
	if err := db.Where("farm_id = ?", farmID).Order("created_at desc, id desc").Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// GetByID retrieves a single activity by its ID.
func (r *GORMActivityRepository) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var activity models.Activity
	if err := db.First(&activity, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get activity by ID %s: %w", id, gormErr(err))
	}
	return &activity, nil
}

// Create creates a new activity in the database.
func (r *GORMActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if err := db.Create(activity).Error; err != nil {
		return fmt.Errorf("failed to create activity: %w", gormErr(err))
	}
	return nil
}

// Update sets the patched columns and updated_at. completed is never part of a patch.
func (r *GORMActivityRepository) Update(ctx context.Context, id string, patch models.ActivityPatch) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Model(&models.Activity{}).Where("id = ?", id).Updates(withUpdatedAt(patch.Fields()))
	if res.Error != nil {
		return fmt.Errorf("failed to update activity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("activity with ID %s not found for update: %w", id, ErrRecordNotFound)
	}
	return nil
}

// Delete deletes an activity by its ID.
func (r *GORMActivityRepository) Delete(ctx context.Context, id string) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Delete(&models.Activity{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete activity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("activity with ID %s not found for deletion: %w", id, ErrRecordNotFound)
	}
	return nil
}

// Toggle flips completed with NOT completed and reads the result back inside
// the same transaction, so concurrent toggles serialize on the row.
func (r *GORMActivityRepository) Toggle(ctx context.Context, id string) (bool, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var completed bool
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Activity{}).Where("id = ?", id).Updates(map[string]interface{}{
			"completed":  gorm.Expr("NOT completed"),
			"updated_at": time.Now().UTC(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecordNotFound
		}

		var activity models.Activity
		if err := tx.Select("completed").First(&activity, "id = ?", id).Error; err != nil {
			return err
		}
		completed = activity.Completed
		return nil
	})
	if errors.Is(err, ErrRecordNotFound) {
		return false, fmt.Errorf("activity with ID %s not found for toggle: %w", id, err)
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle activity: %w", err)
	}
	return completed, nil
}
