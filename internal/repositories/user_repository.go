package repositories

import (
	"context"

	"agritrack/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// ProfileRepository stores the display profile created at registration.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
}
