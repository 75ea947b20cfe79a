package services_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"agritrack/internal/models"
	"agritrack/internal/repositories"
	"agritrack/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type mockStore struct {
	farms      *MockFarmRepository
	expenses   *MockExpenseRepository
	income     *MockIncomeRepository
	activities *MockActivityRepository
}

func newMockStore() (*mockStore, *repositories.Store) {
	m := &mockStore{
		farms:      new(MockFarmRepository),
		expenses:   new(MockExpenseRepository),
		income:     new(MockIncomeRepository),
		activities: new(MockActivityRepository),
	}
	return m, &repositories.Store{
		Farms:      m.farms,
		Expenses:   m.expenses,
		Income:     m.income,
		Activities: m.activities,
	}
}

func TestDashboardService_Metrics(t *testing.T) {
	m, store := newMockStore()
	service := services.NewDashboardService(store)
	ownedFarm(m.farms, "farm-a", "owner-a")

	m.expenses.On("ListByFarm", mock.Anything, "farm-a").Return([]models.Expense{{Amount: 1000}}, nil).Once()
	m.income.On("ListByFarm", mock.Anything, "farm-a").Return([]models.Income{{Amount: 4000}}, nil).Once()
	m.activities.On("ListByFarm", mock.Anything, "farm-a").Return([]models.Activity{{Completed: true}, {}}, nil).Once()

	metrics, err := service.Metrics(context.Background(), "owner-a", "farm-a")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, metrics.TotalExpenses)
	assert.Equal(t, 4000.0, metrics.TotalIncome)
	assert.Equal(t, 3000.0, metrics.NetProfit)
	assert.Equal(t, 1, metrics.ExpenseCount)
	assert.Equal(t, 1, metrics.IncomeCount)
	assert.Equal(t, 1, metrics.ActiveActivities)
	assert.Equal(t, 1, metrics.CompletedActivities)
	assert.Equal(t, 2, metrics.TotalActivities)
}

func TestDashboardService_MetricsScope(t *testing.T) {
	m, store := newMockStore()
	service := services.NewDashboardService(store)

	_, err := service.Metrics(context.Background(), "owner-a", "")
	assert.ErrorIs(t, err, services.ErrMissingScopeKey)

	foreignFarm(m.farms, "farm-a", "owner-b")
	_, err = service.Metrics(context.Background(), "owner-b", "farm-a")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDashboardService_ReadFailure(t *testing.T) {
	m, store := newMockStore()
	service := services.NewDashboardService(store)
	ownedFarm(m.farms, "farm-a", "owner-a")

	m.expenses.On("ListByFarm", mock.Anything, "farm-a").Return([]models.Expense{}, nil)
	m.income.On("ListByFarm", mock.Anything, "farm-a").Return([]models.Income(nil), errors.New("timeout"))
	m.activities.On("ListByFarm", mock.Anything, "farm-a").Return([]models.Activity{}, nil)

	_, err := service.Metrics(context.Background(), "owner-a", "farm-a")
	assert.Error(t, err)
}

func TestReportService_ExportCSV(t *testing.T) {
	m, store := newMockStore()
	service := services.NewReportService(store)
	ownedFarm(m.farms, "farm-a", "owner-a")

	m.expenses.On("ListByFarm", mock.Anything, "farm-a").Return([]models.Expense{
		{Category: "Seeds", Description: "Maize, white", Amount: 2500, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}, nil).Once()

	report, err := service.Export(context.Background(), "owner-a", "farm-a", "expenses", "csv")
	require.NoError(t, err)
	assert.Contains(t, report.ContentType, "text/csv")
	assert.Contains(t, report.Filename, "agritrack-expenses-")

	records, err := csv.NewReader(bytes.NewReader(report.Body)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Category", "Description", "Amount"},
		{"2024-03-01", "Seeds", "Maize, white", "2500"},
	}, records)
}

func TestReportService_ExportXLSX(t *testing.T) {
	m, store := newMockStore()
	service := services.NewReportService(store)
	ownedFarm(m.farms, "farm-a", "owner-a")

	m.activities.On("ListByFarm", mock.Anything, "farm-a").Return([]models.Activity{
		{Description: "Plough", TimeFrame: "today", Priority: "high", Completed: true},
	}, nil).Once()

	report, err := service.Export(context.Background(), "owner-a", "farm-a", "activities", "xlsx")
	require.NoError(t, err)

	_, err = zip.NewReader(bytes.NewReader(report.Body), int64(len(report.Body)))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(report.Body))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Activities")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Plough", rows[1][0])
	assert.Equal(t, "Completed", rows[1][4])
}

func TestReportService_ExportRejectsUnknownParams(t *testing.T) {
	_, store := newMockStore()
	service := services.NewReportService(store)

	_, err := service.Export(context.Background(), "owner-a", "farm-a", "orders", "pdf")
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Details, 2)
}
