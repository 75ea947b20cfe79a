package services

import (
	"context"
	"fmt"

	"agritrack/internal/models"
	"agritrack/internal/repositories"
)

// FarmService manages the caller's farms.
type FarmService struct {
	base
	farms repositories.FarmRepository
}

// NewFarmService creates a new FarmService.
func NewFarmService(farms repositories.FarmRepository, opts ...Option) *FarmService {
	return &FarmService{base: newBase("farms", opts), farms: farms}
}

// List returns the owner's farms in insertion order.
func (s *FarmService) List(ctx context.Context, ownerID string) ([]models.Farm, error) {
	farms, err := s.farms.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch farms: %w", err)
	}
	return farms, nil
}

// Default returns the owner's default farm, creating "My Farm" on first use.
func (s *FarmService) Default(ctx context.Context, ownerID string) (*models.Farm, error) {
	farm, err := s.farms.GetOrCreateDefault(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch default farm: %w", err)
	}
	return farm, nil
}

// Create stores a farm owned by ownerID.
func (s *FarmService) Create(ctx context.Context, ownerID string, req models.CreateFarmRequest) (*models.Farm, error) {
	farm := &models.Farm{
		OwnerID:   ownerID,
		Name:      req.Name,
		Location:  req.Location,
		SizeAcres: req.SizeAcres.Ptr(),
	}
	if err := s.farms.Create(ctx, farm); err != nil {
		return nil, fmt.Errorf("failed to create farm: %w", err)
	}
	s.emit(ctx, "farm.created", farm.ToClient())
	return farm, nil
}

// Update changes the whitelisted fields of a farm the caller owns.
func (s *FarmService) Update(ctx context.Context, ownerID, id string, req models.UpdateFarmRequest) error {
	patch := models.FarmPatch{
		Name:      nonEmpty(req.Name),
		Location:  req.Location,
		SizeAcres: req.SizeAcres.Ptr(),
	}
	if err := s.farms.Update(ctx, id, ownerID, patch); err != nil {
		return notFound(err, "Farm")
	}
	s.emit(ctx, "farm.updated", map[string]string{"id": id, "owner_id": ownerID})
	return nil
}

// Delete removes a farm the caller owns together with its records.
func (s *FarmService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.farms.Delete(ctx, id, ownerID); err != nil {
		return notFound(err, "Farm")
	}
	s.emit(ctx, "farm.deleted", map[string]string{"id": id, "owner_id": ownerID})
	return nil
}
