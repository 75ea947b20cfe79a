package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"agritrack/internal/models"
	"agritrack/internal/repositories"

	"github.com/xuri/excelize/v2"
)

// Report kinds and formats accepted by Export.
const (
	ReportExpenses   = "expenses"
	ReportIncome     = "income"
	ReportActivities = "activities"

	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Report is a rendered export ready to be sent as an attachment.
type Report struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportService renders a farm's ledger or activity plan as a spreadsheet.
type ReportService struct {
	base
	farms      repositories.FarmRepository
	expenses   repositories.ExpenseRepository
	income     repositories.IncomeRepository
	activities repositories.ActivityRepository
	now        func() time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(store *repositories.Store, opts ...Option) *ReportService {
	return &ReportService{
		base:       newBase("reports", opts),
		farms:      store.Farms,
		expenses:   store.Expenses,
		income:     store.Income,
		activities: store.Activities,
		now:        time.Now,
	}
}

// Export renders kind for one of the caller's farms in the requested format.
func (s *ReportService) Export(ctx context.Context, ownerID, farmID, kind, format string) (*Report, error) {
	var details []FieldError
	switch kind {
	case ReportExpenses, ReportIncome, ReportActivities:
	default:
		details = append(details, FieldError{Field: "type", Message: "must be one of: expenses, income, activities"})
	}
	switch format {
	case FormatCSV, FormatXLSX:
	default:
		details = append(details, FieldError{Field: "format", Message: "must be one of: csv, xlsx"})
	}
	if len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}
	if err := authorizeFarm(ctx, s.farms, farmID, ownerID); err != nil {
		return nil, err
	}

	rows, err := s.rows(ctx, kind, farmID)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("agritrack-%s-%s.%s", kind, models.FormatDate(s.now()), format)
	if format == FormatCSV {
		body, err := renderCSV(rows)
		if err != nil {
			return nil, err
		}
		return &Report{Filename: filename, ContentType: "text/csv; charset=utf-8", Body: body}, nil
	}

	body, err := renderXLSX(kind, rows)
	if err != nil {
		return nil, err
	}
	return &Report{
		Filename:    filename,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Body:        body,
	}, nil
}

// rows returns a header row followed by one row per shaped record.
func (s *ReportService) rows(ctx context.Context, kind, farmID string) ([][]interface{}, error) {
	switch kind {
	case ReportExpenses:
		expenses, err := s.expenses.ListByFarm(ctx, farmID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch expenses: %w", err)
		}
		rows := [][]interface{}{{"Date", "Category", "Description", "Amount"}}
		for _, e := range models.ExpensesToClient(expenses) {
			rows = append(rows, []interface{}{e.Date, e.Category, e.Description, e.Amount})
		}
		return rows, nil
	case ReportIncome:
		income, err := s.income.ListByFarm(ctx, farmID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch income: %w", err)
		}
		rows := [][]interface{}{{"Date", "Source", "Description", "Amount"}}
		for _, i := range models.IncomeToClient(income) {
			rows = append(rows, []interface{}{i.Date, i.Source, i.Description, i.Amount})
		}
		return rows, nil
	default:
		activities, err := s.activities.ListByFarm(ctx, farmID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch activities: %w", err)
		}
		rows := [][]interface{}{{"Description", "Time frame", "Date", "Priority", "Status", "Notes"}}
		for _, a := range models.ActivitiesToClient(activities) {
			date := ""
			if a.CustomDate != nil {
				date = *a.CustomDate
			}
			status := "Active"
			if a.Completed {
				status = "Completed"
			}
			rows = append(rows, []interface{}{a.Description, a.TimeFrame, date, a.Priority, status, a.Notes})
		}
		return rows, nil
	}
}

func renderCSV(rows [][]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(kind string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := map[string]string{
		ReportExpenses:   "Expenses",
		ReportIncome:     "Income",
		ReportActivities: "Activities",
	}[kind]
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
