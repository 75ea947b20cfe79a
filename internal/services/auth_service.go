package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"agritrack/internal/models"
	"agritrack/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenLifetime is how long an issued session token stays valid.
const DefaultTokenLifetime = 7 * 24 * time.Hour

const emailDomain = "agritrack.local"

// Claims is the payload of a session token.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.StandardClaims
}

// Session is what register and login hand back to the client.
type Session struct {
	User      models.User
	Token     string
	ExpiresAt time.Time
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	base
	users         repositories.UserRepository
	profiles      repositories.ProfileRepository
	jwtSecret     []byte
	tokenLifetime time.Duration
	now           func() time.Time
}

// NewAuthService creates a new AuthService. A non-positive lifetime selects DefaultTokenLifetime.
func NewAuthService(users repositories.UserRepository, profiles repositories.ProfileRepository, jwtSecret string, tokenLifetime time.Duration, opts ...Option) *AuthService {
	if tokenLifetime <= 0 {
		tokenLifetime = DefaultTokenLifetime
	}
	return &AuthService{
		base:          newBase("auth", opts),
		users:         users,
		profiles:      profiles,
		jwtSecret:     []byte(jwtSecret),
		tokenLifetime: tokenLifetime,
		now:           time.Now,
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// equalizeHash returns a hash to compare against when the user is unknown, so
// both login failures cost one bcrypt comparison.
func equalizeHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("agritrack-timing-equalizer"), bcrypt.DefaultCost)
	})
	return dummyHash
}

// Register creates the account and its profile and opens a session.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*Session, error) {
	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Username + "@" + emailDomain,
		PasswordHash: string(hashedPassword),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	profile := &models.Profile{UserID: user.ID, Username: user.Username, FullName: req.FullName}
	if err := s.profiles.Create(ctx, profile); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("failed to create profile")
	}

	s.emit(ctx, "user.registered", user.ToClient())
	return s.issue(user)
}

// Login verifies the credentials. Unknown usernames and wrong passwords both
// return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*Session, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(equalizeHash(), []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// CurrentUser loads the account behind a verified token.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*Session, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenLifetime)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   user.ID,
		Username: user.Username,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt.Unix(),
			IssuedAt:  now.Unix(),
		},
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Session{User: *user, Token: tokenString, ExpiresAt: expiresAt.UTC()}, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" || claims.ExpiresAt == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
