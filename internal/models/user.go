package models

import "time"

// User represents an account holder. The password hash never leaves the server.
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Username     string    `gorm:"uniqueIndex;type:varchar(50);not null" bson:"username"`
	Email        string    `gorm:"uniqueIndex;type:varchar(255);not null" bson:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// UserClient is the wire form of a User.
type UserClient struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// ToClient shapes u for responses.
func (u User) ToClient() UserClient {
	return UserClient{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: FormatTimestamp(u.CreatedAt),
	}
}

// Profile holds optional display data created alongside a User.
type Profile struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	UserID    string    `gorm:"uniqueIndex;type:varchar(36);not null" bson:"user_id"`
	Username  string    `gorm:"index;type:varchar(50);not null" bson:"username"`
	FullName  string    `gorm:"type:varchar(100)" bson:"full_name,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=100"`
	FullName string `json:"full_name" form:"full_name" validate:"omitempty,max=100"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}
