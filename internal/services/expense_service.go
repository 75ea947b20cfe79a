package services

import (
	"context"
	"fmt"

	"agritrack/internal/models"
	"agritrack/internal/repositories"
)

// ExpenseService records money spent on the caller's farms.
type ExpenseService struct {
	base
	expenses repositories.ExpenseRepository
	farms    repositories.FarmRepository
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenses repositories.ExpenseRepository, farms repositories.FarmRepository, opts ...Option) *ExpenseService {
	return &ExpenseService{base: newBase("expenses", opts), expenses: expenses, farms: farms}
}

// List returns the expenses of one of the caller's farms, newest date first.
func (s *ExpenseService) List(ctx context.Context, ownerID, farmID string) ([]models.Expense, error) {
	if err := authorizeFarm(ctx, s.farms, farmID, ownerID); err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByFarm(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}
	return expenses, nil
}

// Create stores an expense under one of the caller's farms.
func (s *ExpenseService) Create(ctx context.Context, ownerID string, req models.CreateExpenseRequest) (*models.Expense, error) {
	if err := authorizeFarm(ctx, s.farms, req.FarmID, ownerID); err != nil {
		return nil, err
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, NewValidationError("date", dateMessage)
	}

	expense := &models.Expense{
		FarmID:      req.FarmID,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount.Value,
		Date:        date,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	s.emit(ctx, "expense.created", expense.ToClient())
	return expense, nil
}

// Update applies the provided fields. An omitted amount leaves the stored one unchanged.
func (s *ExpenseService) Update(ctx context.Context, ownerID, id string, req models.UpdateExpenseRequest) error {
	expense, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "Expense")
	}
	if err := authorizeRecord(ctx, s.farms, expense.FarmID, ownerID, "Expense"); err != nil {
		return err
	}

	patch := models.ExpensePatch{
		Category:    nonEmpty(req.Category),
		Description: nonEmpty(req.Description),
		Amount:      req.Amount.Ptr(),
	}
	if d := nonEmpty(req.Date); d != nil {
		date, err := models.ParseDate(*d)
		if err != nil {
			return NewValidationError("date", dateMessage)
		}
		patch.Date = &date
	}

	if err := s.expenses.Update(ctx, id, patch); err != nil {
		return notFound(err, "Expense")
	}
	s.emit(ctx, "expense.updated", map[string]string{"id": id, "farm_id": expense.FarmID})
	return nil
}

// Delete removes an expense under one of the caller's farms.
func (s *ExpenseService) Delete(ctx context.Context, ownerID, id string) error {
	expense, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "Expense")
	}
	if err := authorizeRecord(ctx, s.farms, expense.FarmID, ownerID, "Expense"); err != nil {
		return err
	}
	if err := s.expenses.Delete(ctx, id); err != nil {
		return notFound(err, "Expense")
	}
	s.emit(ctx, "expense.deleted", map[string]string{"id": id, "farm_id": expense.FarmID})
	return nil
}
