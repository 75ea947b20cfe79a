package models

import "time"

// Expense is money spent on a farm.
type Expense struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	FarmID      string    `gorm:"index;index:idx_expenses_farm_date,priority:1;type:varchar(36);not null" bson:"farm_id"`
	Category    string    `gorm:"index;type:varchar(50);not null" bson:"category"`
	Description string    `gorm:"type:varchar(500);not null" bson:"description"`
	Amount      float64   `gorm:"not null" bson:"amount"`
	Date        time.Time `gorm:"index;index:idx_expenses_farm_date,priority:2,sort:desc;not null" bson:"date"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// ExpenseClient is the wire form of an Expense.
type ExpenseClient struct {
	ID          string  `json:"id"`
	FarmID      string  `json:"farm_id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ToClient shapes e for responses.
func (e Expense) ToClient() ExpenseClient {
	return ExpenseClient{
		ID:          e.ID,
		FarmID:      e.FarmID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        FormatDate(e.Date),
		CreatedAt:   FormatTimestamp(e.CreatedAt),
		UpdatedAt:   FormatTimestamp(e.UpdatedAt),
	}
}

// ExpensesToClient shapes a list, never returning nil.
func ExpensesToClient(expenses []Expense) []ExpenseClient {
	out := make([]ExpenseClient, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, e.ToClient())
	}
	return out
}

// CreateExpenseRequest is the body of POST /expenses.
type CreateExpenseRequest struct {
	FarmID      string `json:"farm_id" form:"farm_id" validate:"required"`
	Category    string `json:"category" form:"category" validate:"required,not_blank,max=50"`
	Description string `json:"description" form:"description" validate:"required,not_blank,max=500"`
	Amount      Number `json:"amount" form:"amount" validate:"required,numeric_value,positive"`
	Date        string `json:"date" form:"date" validate:"required,calendar_date"`
}

// UpdateExpenseRequest is the body of PUT /expenses/:id.
type UpdateExpenseRequest struct {
	Category    *string `json:"category" form:"category" validate:"omitempty,max=50"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=500"`
	Amount      Number  `json:"amount" form:"amount" validate:"omitempty,numeric_value,positive"`
	Date        *string `json:"date" form:"date" validate:"omitempty,calendar_date"`
}

// ExpensePatch is the whitelisted set of mutable expense columns.
type ExpensePatch struct {
	Category    *string
	Description *string
	Amount      *float64
	Date        *time.Time
}

// Fields returns the column/value pairs to set.
func (p ExpensePatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Amount != nil {
		fields["amount"] = *p.Amount
	}
	if p.Date != nil {
		fields["date"] = *p.Date
	}
	return fields
}
