package models

import "time"

// Activity time frames.
const (
	TimeFrameToday     = "today"
	TimeFrameThisWeek  = "this-week"
	TimeFrameThisMonth = "this-month"
	TimeFrameCustom    = "custom"
)

// Activity is a planned piece of farm work.
type Activity struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	FarmID      string     `gorm:"index;index:idx_activities_farm_completed,priority:1;type:varchar(36);not null" bson:"farm_id"`
	Description string     `gorm:"type:varchar(500);not null" bson:"description"`
	TimeFrame   string     `gorm:"index;type:varchar(20);not null" bson:"time_frame"`
	CustomDate  *time.Time `gorm:"index" bson:"custom_date"`
	Priority    string     `gorm:"index;type:varchar(10);not null" bson:"priority"`
	Notes       string     `gorm:"type:varchar(1000)" bson:"notes"`
	Completed   bool       `gorm:"index;index:idx_activities_farm_completed,priority:2;not null;default:false" bson:"completed"`
	CreatedAt   time.Time  `gorm:"index" bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
}

// ActivityClient is the wire form of an Activity.
type ActivityClient struct {
	ID          string  `json:"id"`
	FarmID      string  `json:"farm_id"`
	Description string  `json:"description"`
	TimeFrame   string  `json:"time_frame"`
	CustomDate  *string `json:"custom_date"`
	Priority    string  `json:"priority"`
	Notes       string  `json:"notes"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ToClient shapes a for responses. custom_date is null unless set.
func (a Activity) ToClient() ActivityClient {
	var customDate *string
	if a.CustomDate != nil {
		s := FormatDate(*a.CustomDate)
		customDate = &s
	}
	return ActivityClient{
		ID:          a.ID,
		FarmID:      a.FarmID,
		Description: a.Description,
		TimeFrame:   a.TimeFrame,
		CustomDate:  customDate,
		Priority:    a.Priority,
		Notes:       a.Notes,
		Completed:   a.Completed,
		CreatedAt:   FormatTimestamp(a.CreatedAt),
		UpdatedAt:   FormatTimestamp(a.UpdatedAt),
	}
}

// ActivitiesToClient shapes a list, never returning nil.
func ActivitiesToClient(activities []Activity) []ActivityClient {
	out := make([]ActivityClient, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.ToClient())
	}
	return out
}

// CreateActivityRequest is the body of POST /activities.
type CreateActivityRequest struct {
	FarmID      string `json:"farm_id" form:"farm_id" validate:"required"`
	Description string `json:"description" form:"description" validate:"required,not_blank,max=500"`
	TimeFrame   string `json:"time_frame" form:"time_frame" validate:"required,oneof=today this-week this-month custom"`
	CustomDate  string `json:"custom_date" form:"custom_date" validate:"required_if=TimeFrame custom,calendar_date"`
	Priority    string `json:"priority" form:"priority" validate:"required,oneof=low medium high"`
	Notes       string `json:"notes" form:"notes" validate:"max=1000"`
}

// UpdateActivityRequest is the body of PUT /activities/:id. completed is not
// accepted here; it only changes through the toggle operation.
type UpdateActivityRequest struct {
	Description *string `json:"description" form:"description" validate:"omitempty,max=500"`
	TimeFrame   *string `json:"time_frame" form:"time_frame" validate:"omitempty,oneof=today this-week this-month custom"`
	CustomDate  *string `json:"custom_date" form:"custom_date" validate:"omitempty,calendar_date"`
	Priority    *string `json:"priority" form:"priority" validate:"omitempty,oneof=low medium high"`
	Notes       *string `json:"notes" form:"notes" validate:"omitempty,max=1000"`
}

// ActivityPatch is the whitelisted set of mutable activity columns.
type ActivityPatch struct {
	Description     *string
	TimeFrame       *string
	CustomDate      *time.Time
	ClearCustomDate bool
	Priority        *string
	Notes           *string
}

// Fields returns the column/value pairs to set.
func (p ActivityPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.TimeFrame != nil {
		fields["time_frame"] = *p.TimeFrame
	}
	switch {
	case p.ClearCustomDate:
		fields["custom_date"] = nil
	case p.CustomDate != nil:
		fields["custom_date"] = *p.CustomDate
	}
	if p.Priority != nil {
		fields["priority"] = *p.Priority
	}
	if p.Notes != nil {
		fields["notes"] = *p.Notes
	}
	return fields
}
