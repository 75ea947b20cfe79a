package models

import "time"

// DefaultFarmName is the name given to a lazily created default farm.
const DefaultFarmName = "My Farm"

// Farm is owned by exactly one user.
//
// DefaultFor carries the owner id on that owner's default farm and is NULL on
// every other farm. Its unique index is what makes get-or-create of the
// default farm a single winner under concurrent first requests.
type Farm struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	OwnerID    string    `gorm:"index;type:varchar(36);not null" bson:"owner_id"`
	Name       string    `gorm:"type:varchar(100);not null" bson:"name"`
	Location   string    `gorm:"type:varchar(200)" bson:"location"`
	SizeAcres  *float64  `bson:"size_acres,omitempty"`
	DefaultFor *string   `gorm:"uniqueIndex;type:varchar(36)" bson:"default_for,omitempty"`
	CreatedAt  time.Time `gorm:"index" bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

// FarmClient is the wire form of a Farm.
type FarmClient struct {
	ID        string   `json:"id"`
	OwnerID   string   `json:"owner_id"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	SizeAcres *float64 `json:"size_acres,omitempty"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// ToClient shapes f for responses.
func (f Farm) ToClient() FarmClient {
	return FarmClient{
		ID:        f.ID,
		OwnerID:   f.OwnerID,
		Name:      f.Name,
		Location:  f.Location,
		SizeAcres: f.SizeAcres,
		CreatedAt: FormatTimestamp(f.CreatedAt),
		UpdatedAt: FormatTimestamp(f.UpdatedAt),
	}
}

// FarmsToClient shapes a list, never returning nil.
func FarmsToClient(farms []Farm) []FarmClient {
	out := make([]FarmClient, 0, len(farms))
	for _, f := range farms {
		out = append(out, f.ToClient())
	}
	return out
}

// CreateFarmRequest is the body of POST /farms.
type CreateFarmRequest struct {
	Name      string `json:"name" form:"name" validate:"required,not_blank,max=100"`
	Location  string `json:"location" form:"location" validate:"omitempty,max=200"`
	SizeAcres Number `json:"size_acres" form:"size_acres" validate:"omitempty,numeric_value,positive"`
}

// UpdateFarmRequest is the body of PUT /farms/:id. Fields left nil are untouched.
type UpdateFarmRequest struct {
	Name      *string `json:"name" form:"name" validate:"omitempty,max=100"`
	Location  *string `json:"location" form:"location" validate:"omitempty,max=200"`
	SizeAcres Number  `json:"size_acres" form:"size_acres" validate:"omitempty,numeric_value,positive"`
}

// FarmPatch is the whitelisted set of mutable farm columns.
type FarmPatch struct {
	Name      *string
	Location  *string
	SizeAcres *float64
}

// Fields returns the column/value pairs to set. Column names match the bson names.
func (p FarmPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Location != nil {
		fields["location"] = *p.Location
	}
	if p.SizeAcres != nil {
		fields["size_acres"] = *p.SizeAcres
	}
	return fields
}
