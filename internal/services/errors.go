package services

import (
	"errors"
	"strings"

	"agritrack/internal/repositories"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrMissingScopeKey    = errors.New("farm_id is required")
)

// FieldError describes one violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed validation. It matches ErrValidation.
type ValidationError struct {
	Details []FieldError
}

// NewValidationError is a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Details: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+" "+d.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError names the missing entity. A record the caller does not own is
// reported the same way as one that does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// notFound converts a repository miss into a NotFoundError for entity.
func notFound(err error, entity string) error {
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return &NotFoundError{Entity: entity}
	}
	return err
}

const (
	dateMessage       = "must be a date (YYYY-MM-DD)"
	customDateMessage = "is required when time_frame is custom"
)
