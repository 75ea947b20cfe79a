package repositories

import (
	"context"
	"fmt"
	"time"

	"agritrack/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MongoUserRepository is a MongoDB implementation of UserRepository.
type MongoUserRepository struct {
	mongoConn
}

// Create inserts a user. The unique username and email indexes yield ErrDuplicate.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := r.conn(ctx)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	if _, err := r.coll(usersCollection).InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", mongoErr(err))
	}
	return nil
}

// GetByUsername retrieves a user by username.
func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// GetByID retrieves a user by ID.
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := r.conn(ctx)
	defer cancel()

	var user models.User
	if err := r.coll(usersCollection).FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", mongoErr(err))
	}
	return &user, nil
}

// MongoProfileRepository is a MongoDB implementation of ProfileRepository.
type MongoProfileRepository struct {
	mongoConn
}

// Create inserts a profile.
func (r *MongoProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	ctx, cancel := r.conn(ctx)
	defer cancel()

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	profile.CreatedAt = time.Now().UTC()
	if _, err := r.coll(profilesCollection).InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to create profile: %w", mongoErr(err))
	}
	return nil
}
