package services

import (
	"context"
	"fmt"

	"agritrack/internal/models"
	"agritrack/internal/repositories"
)

// IncomeService records sales and other money received.
type IncomeService struct {
	base
	income repositories.IncomeRepository
	farms  repositories.FarmRepository
}

// NewIncomeService creates a new IncomeService.
func NewIncomeService(income repositories.IncomeRepository, farms repositories.FarmRepository, opts ...Option) *IncomeService {
	return &IncomeService{base: newBase("income", opts), income: income, farms: farms}
}

func (s *IncomeService) List(ctx context.Context, ownerID, farmID string) ([]models.Income, error) {
	if err := authorizeFarm(ctx, s.farms, farmID, ownerID); err != nil {
		return nil, err
	}
	income, err := s.income.ListByFarm(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch income: %w", err)
	}
	return income, nil
}

func (s *IncomeService) Create(ctx context.Context, ownerID string, req models.CreateIncomeRequest) (*models.Income, error) {
	if err := authorizeFarm(ctx, s.farms, req.FarmID, ownerID); err != nil {
		return nil, err
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, NewValidationError("date", dateMessage)
	}

	income := &models.Income{
		FarmID:      req.FarmID,
		Source:      req.Source,
		Description: req.Description,
		Amount:      req.Amount.Value,
		Date:        date,
	}
	if err := s.income.Create(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}
	s.emit(ctx, "income.created", income.ToClient())
	return income, nil
}

// Update applies the provided fields. description may be cleared; source may not.
func (s *IncomeService) Update(ctx context.Context, ownerID, id string, req models.UpdateIncomeRequest) error {
	income, err := s.income.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "Income")
	}
	if err := authorizeRecord(ctx, s.farms, income.FarmID, ownerID, "Income"); err != nil {
		return err
	}

	patch := models.IncomePatch{
		Source:      nonEmpty(req.Source),
		Description: req.Description,
		Amount:      req.Amount.Ptr(),
	}
	if d := nonEmpty(req.Date); d != nil {
		date, err := models.ParseDate(*d)
		if err != nil {
			return NewValidationError("date", dateMessage)
		}
		patch.Date = &date
	}

	if err := s.income.Update(ctx, id, patch); err != nil {
		return notFound(err, "Income")
	}
	s.emit(ctx, "income.updated", map[string]string{"id": id, "farm_id": income.FarmID})
	return nil
}

func (s *IncomeService) Delete(ctx context.Context, ownerID, id string) error {
	income, err := s.income.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "Income")
	}
	if err := authorizeRecord(ctx, s.farms, income.FarmID, ownerID, "Income"); err != nil {
		return err
	}
	if err := s.income.Delete(ctx, id); err != nil {
		return notFound(err, "Income")
	}
	s.emit(ctx, "income.deleted", map[string]string{"id": id, "farm_id": income.FarmID})
	return nil
}
