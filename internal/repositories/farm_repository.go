package repositories

import (
	"context"

	"agritrack/internal/models"
)

// FarmRepository defines the interface for farm data access. Every
// operation is filtered by owner.
type FarmRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Farm, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Farm, error)
	Create(ctx context.Context, farm *models.Farm) error
	Update(ctx context.Context, id, ownerID string, patch models.FarmPatch) error
	// Delete removes the farm together with its expenses, income and activities.
	Delete(ctx context.Context, id, ownerID string) error
	// GetOrCreateDefault returns the owner's default farm, adopting the oldest
	// farm or inserting one named models.DefaultFarmName when none is marked.
	GetOrCreateDefault(ctx context.Context, ownerID string) (*models.Farm, error)
}
