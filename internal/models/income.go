package models

import "time"

// Income is a sale or other money received by a farm.
type Income struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	FarmID      string    `gorm:"index;index:idx_income_farm_date,priority:1;type:varchar(36);not null" bson:"farm_id"`
	Source      string    `gorm:"index;type:varchar(50);not null" bson:"source"`
	Description string    `gorm:"type:varchar(500)" bson:"description"`
	Amount      float64   `gorm:"not null" bson:"amount"`
	Date        time.Time `gorm:"index;index:idx_income_farm_date,priority:2,sort:desc;not null" bson:"date"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// TableName keeps the table name aligned with the document collection name.
func (Income) TableName() string {
	return "income"
}

// IncomeClient is the wire form of an Income.
type IncomeClient struct {
	ID          string  `json:"id"`
	FarmID      string  `json:"farm_id"`
	Source      string  `json:"source"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ToClient shapes i for responses.
func (i Income) ToClient() IncomeClient {
	return IncomeClient{
		ID:          i.ID,
		FarmID:      i.FarmID,
		Source:      i.Source,
		Description: i.Description,
		Amount:      i.Amount,
		Date:        FormatDate(i.Date),
		CreatedAt:   FormatTimestamp(i.CreatedAt),
		UpdatedAt:   FormatTimestamp(i.UpdatedAt),
	}
}

// IncomeToClient shapes a list, never returning nil.
func IncomeToClient(income []Income) []IncomeClient {
	out := make([]IncomeClient, 0, len(income))
	for _, i := range income {
		out = append(out, i.ToClient())
	}
	return out
}

// CreateIncomeRequest is the body of POST /income.
type CreateIncomeRequest struct {
	FarmID      string `json:"farm_id" form:"farm_id" validate:"required"`
	Source      string `json:"source" form:"source" validate:"required,not_blank,max=50"`
	Description string `json:"description" form:"description" validate:"omitempty,max=500"`
	Amount      Number `json:"amount" form:"amount" validate:"required,numeric_value,positive"`
	Date        string `json:"date" form:"date" validate:"required,calendar_date"`
}

// UpdateIncomeRequest is the body of PUT /income/:id.
type UpdateIncomeRequest struct {
	Source      *string `json:"source" form:"source" validate:"omitempty,max=50"`
	Description *string `json:"description" form:"description" validate:"omitempty,max=500"`
	Amount      Number  `json:"amount" form:"amount" validate:"omitempty,numeric_value,positive"`
	Date        *string `json:"date" form:"date" validate:"omitempty,calendar_date"`
}

// IncomePatch is the whitelisted set of mutable income columns.
type IncomePatch struct {
	Source      *string
	Description *string
	Amount      *float64
	Date        *time.Time
}

// Fields returns the column/value pairs to set.
func (p IncomePatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Source != nil {
		fields["source"] = *p.Source
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
