package services_test

import (
	"context"

	"agritrack/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockProfileRepository is a mock implementation of repositories.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockFarmRepository is a mock implementation of repositories.FarmRepository
type MockFarmRepository struct {
	mock.Mock
}

func (m *MockFarmRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Farm, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]models.Farm), args.Error(1)
}

func (m *MockFarmRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Farm, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Farm), args.Error(1)
}

func (m *MockFarmRepository) Create(ctx context.Context, farm *models.Farm) error {
	args := m.Called(ctx, farm)
	return args.Error(0)
}

func (m *MockFarmRepository) Update(ctx context.Context, id, ownerID string, patch models.FarmPatch) error {
	args := m.Called(ctx, id, ownerID, patch)
	return args.Error(0)
}

func (m *MockFarmRepository) Delete(ctx context.Context, id, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockFarmRepository) GetOrCreateDefault(ctx context.Context, ownerID string) (*models.Farm, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Farm), args.Error(1)
}

// MockExpenseRepository is a mock implementation of repositories.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) ListByFarm(ctx context.Context, farmID string) ([]models.Expense, error) {
	args := m.Called(ctx, farmID)
	return args.Get(0).([]models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Update(ctx context.Context, id string, patch models.ExpensePatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIncomeRepository is a mock implementation of repositories.IncomeRepository
type MockIncomeRepository struct {
	mock.Mock
}

func (m *MockIncomeRepository) ListByFarm(ctx context.Context, farmID string) ([]models.Income, error) {
	args := m.Called(ctx, farmID)
	return args.Get(0).([]models.Income), args.Error(1)
}

func (m *MockIncomeRepository) GetByID(ctx context.Context, id string) (*models.Income, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Income), args.Error(1)
}

func (m *MockIncomeRepository) Create(ctx context.Context, income *models.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockIncomeRepository) Update(ctx context.Context, id string, patch models.IncomePatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockIncomeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockActivityRepository is a mock implementation of repositories.ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) ListByFarm(ctx context.Context, farmID string) ([]models.Activity, error) {
	args := m.Called(ctx, farmID)
	return args.Get(0).([]models.Activity), args.Error(1)
}

func (m *MockActivityRepository) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Activity), args.Error(1)
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) Update(ctx context.Context, id string, patch models.ActivityPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockActivityRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockActivityRepository) Toggle(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher records published events.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(ctx context.Context, eventType string, payload interface{}) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}
