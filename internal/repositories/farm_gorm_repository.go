package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agritrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMFarmRepository is a GORM implementation of FarmRepository.
type GORMFarmRepository struct {
	gormConn
}

// NewGORMFarmRepository creates a new instance of GORMFarmRepository.
func NewGORMFarmRepository(db *gorm.DB, timeout time.Duration) *GORMFarmRepository {
	return &GORMFarmRepository{gormConn: gormConn{db: db, timeout: timeout}}
}

// ListByOwner returns the owner's farms in insertion order.
func (r *GORMFarmRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Farm, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var farms []models.Farm
	if err := db.Where("owner_id = ?", ownerID).Order("created_at asc, id asc").Find(&farms).Error; err != nil {
		return nil, fmt.Errorf("failed to list farms: %w", err)
	}
	return farms, nil
}

// GetByIDAndOwner retrieves a farm only when it belongs to ownerID.
func (r *GORMFarmRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Farm, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var farm models.Farm
	if err := db.First(&farm, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		return nil, fmt.Errorf("failed to get farm %s: %w", id, gormErr(err))
	}
	return &farm, nil
}

// Create creates a new farm in the database.
func (r *GORMFarmRepository) Create(ctx context.Context, farm *models.Farm) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if farm.ID == "" {
		farm.ID = uuid.New().String()
	}
	if err := db.Create(farm).Error; err != nil {
		return fmt.Errorf("failed to create farm: %w", gormErr(err))
	}
	return nil
}

// Update applies patch to the farm matching both id and owner.
func (r *GORMFarmRepository) Update(ctx context.Context, id, ownerID string, patch models.FarmPatch) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	res := db.Model(&models.Farm{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(withUpdatedAt(patch.Fields()))
	if res.Error != nil {
		return fmt.Errorf("failed to update farm: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("farm with ID %s not found for update: %w", id, ErrRecordNotFound)
	}
	return nil
}

// Delete removes the farm and its records in one transaction.
func (r *GORMFarmRepository) Delete(ctx context.Context, id, ownerID string) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Farm{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		for _, model := range []interface{}{&models.Expense{}, &models.Income{}, &models.Activity{}} {
			if err := tx.Where("farm_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, ErrRecordNotFound) {
		return fmt.Errorf("farm with ID %s not found for deletion: %w", id, err)
	}
	if err != nil {
		return fmt.Errorf("failed to delete farm: %w", err)
	}
	return nil
}

// GetOrCreateDefault relies on the unique default_for index: concurrent
// callers may all attempt the claim or the insert, but only one row can ever
// carry default_for = ownerID, and everyone re-reads that row.
func (r *GORMFarmRepository) GetOrCreateDefault(ctx context.Context, ownerID string) (*models.Farm, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	farm, err := r.findDefault(db, ownerID)
	if err == nil {
		return farm, nil
	}
	if !errors.Is(err, ErrRecordNotFound) {
		return nil, err
	}

	var oldest models.Farm
	err = db.Where("owner_id = ?", ownerID).Order("created_at asc, id asc").Limit(1).Find(&oldest).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up farms of %s: %w", ownerID, err)
	}

	if oldest.ID != "" {
		err = db.Model(&models.Farm{}).
			Where("id = ? AND default_for IS NULL", oldest.ID).
			Update("default_for", ownerID).Error
	} else {
		owner := ownerID
		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "default_for"}},
			DoNothing: true,
		}).Create(&models.Farm{
			ID:         uuid.New().String(),
			OwnerID:    ownerID,
			Name:       models.DefaultFarmName,
			DefaultFor: &owner,
		}).Error
	}
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("failed to create default farm: %w", err)
	}

	return r.findDefault(db, ownerID)
}

func (r *GORMFarmRepository) findDefault(db *gorm.DB, ownerID string) (*models.Farm, error) {
	var farm models.Farm
	if err := db.First(&farm, "default_for = ?", ownerID).Error; err != nil {
		return nil, fmt.Errorf("failed to get default farm of %s: %w", ownerID, gormErr(err))
	}
	return &farm, nil
}
