package repositories

import (
	"context"
	"fmt"
	"time"

	"agritrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	gormConn
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB, timeout time.Duration) *GORMUserRepository {
	return &GORMUserRepository{gormConn: gormConn{db: db, timeout: timeout}}
}

// Create creates a new user in the database. A taken username or email
// yields ErrDuplicate.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", gormErr(err))
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var user models.User
	if err := db.First(&user, "username = ?", username).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by username %s: %w", username, gormErr(err))
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, gormErr(err))
	}
	return &user, nil
}

// GORMProfileRepository is a GORM implementation of ProfileRepository.
type GORMProfileRepository struct {
	gormConn
}

// NewGORMProfileRepository creates a new instance of GORMProfileRepository.
func NewGORMProfileRepository(db *gorm.DB, timeout time.Duration) *GORMProfileRepository {
	return &GORMProfileRepository{gormConn: gormConn{db: db, timeout: timeout}}
}

// Create stores a profile.
func (r *GORMProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if err := db.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", gormErr(err))
	}
	return nil
}
