package services

import (
	"context"
	"fmt"

	"agritrack/internal/models"
	"agritrack/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// DashboardService derives summary numbers for a farm.
type DashboardService struct {
	base
	farms      repositories.FarmRepository
	expenses   repositories.ExpenseRepository
	income     repositories.IncomeRepository
	activities repositories.ActivityRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(store *repositories.Store, opts ...Option) *DashboardService {
	return &DashboardService{
		base:       newBase("dashboard", opts),
		farms:      store.Farms,
		expenses:   store.Expenses,
		income:     store.Income,
		activities: store.Activities,
	}
}

// Metrics reads the three collections of a farm concurrently and reduces them.
func (s *DashboardService) Metrics(ctx context.Context, ownerID, farmID string) (*models.DashboardMetrics, error) {
	if err := authorizeFarm(ctx, s.farms, farmID, ownerID); err != nil {
		return nil, err
	}

	var (
		expenses   []models.Expense
		income     []models.Income
		activities []models.Activity
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		expenses, err = s.expenses.ListByFarm(gctx, farmID)
		return err
	})
	g.Go(func() (err error) {
		income, err = s.income.ListByFarm(gctx, farmID)
		return err
	})
	g.Go(func() (err error) {
		activities, err = s.activities.ListByFarm(gctx, farmID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard metrics: %w", err)
	}

	m := models.ComputeMetrics(expenses, income, activities)
	return &m, nil
}
