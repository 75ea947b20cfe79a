package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"agritrack/internal/models"
	"agritrack/internal/repositories"
	"agritrack/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func notFoundErr(what string) error {
	return fmt.Errorf("failed to get %s: %w", what, repositories.ErrRecordNotFound)
}

func TestAuthService_Register(t *testing.T) {
	users := new(MockUserRepository)
	profiles := new(MockProfileRepository)
	events := new(MockEventPublisher)
	authService := services.NewAuthService(users, profiles, testJWTSecret, 0, services.WithEvents(events))
	ctx := context.Background()

	users.On("GetByUsername", mock.Anything, "farmerA").Return(nil, notFoundErr("user")).Once()
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = "user-1"
	}).Return(nil).Once()
	profiles.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.UserID == "user-1" && p.FullName == "Farmer A"
	})).Return(nil).Once()
	events.On("PublishEvent", mock.Anything, "user.registered", mock.Anything).Return(nil).Once()

	session, err := authService.Register(ctx, models.RegisterRequest{Username: "farmerA", Password: "secret1", FullName: "Farmer A"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "farmerA@agritrack.local", session.User.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(session.User.PasswordHash), []byte("secret1")))
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), session.ExpiresAt, time.Minute)
	users.AssertExpectations(t)
	profiles.AssertExpectations(t)
	events.AssertExpectations(t)

	// Test username already taken
	users.On("GetByUsername", mock.Anything, "farmerA").Return(&models.User{ID: "user-1"}, nil).Once()
	_, err = authService.Register(ctx, models.RegisterRequest{Username: "farmerA", Password: "secret1"})
	assert.ErrorIs(t, err, services.ErrDuplicateUsername)
	users.AssertExpectations(t)
}

func TestAuthService_RegisterRaceHitsUniqueIndex(t *testing.T) {
	users := new(MockUserRepository)
	authService := services.NewAuthService(users, new(MockProfileRepository), testJWTSecret, 0)

	users.On("GetByUsername", mock.Anything, "farmerA").Return(nil, notFoundErr("user")).Once()
	users.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("failed to create user: %w", repositories.ErrDuplicate)).Once()

	_, err := authService.Register(context.Background(), models.RegisterRequest{Username: "farmerA", Password: "secret1"})
	assert.ErrorIs(t, err, services.ErrDuplicateUsername)
}

func TestAuthService_RegisterProfileFailureIsNotFatal(t *testing.T) {
	users := new(MockUserRepository)
	profiles := new(MockProfileRepository)
	authService := services.NewAuthService(users, profiles, testJWTSecret, 0)

	users.On("GetByUsername", mock.Anything, "farmerA").Return(nil, notFoundErr("user")).Once()
	users.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	profiles.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	session, err := authService.Register(context.Background(), models.RegisterRequest{Username: "farmerA", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
}

func TestAuthService_Login(t *testing.T) {
	users := new(MockUserRepository)
	authService := services.NewAuthService(users, new(MockProfileRepository), testJWTSecret, 0)
	ctx := context.Background()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Username: "farmerA", PasswordHash: string(hashedPassword)}

	// Test successful login
	users.On("GetByUsername", mock.Anything, "farmerA").Return(user, nil).Once()
	session, err := authService.Login(ctx, models.LoginRequest{Username: "farmerA", Password: "secret1"})
	require.NoError(t, err)

	claims := &services.Claims{}
	parsed, err := jwt.ParseWithClaims(session.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "HS256", parsed.Method.Alg())
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "farmerA", claims.Username)
	users.AssertExpectations(t)

	// Wrong password and unknown user must be indistinguishable
	users.On("GetByUsername", mock.Anything, "farmerA").Return(user, nil).Once()
	_, wrongPassword := authService.Login(ctx, models.LoginRequest{Username: "farmerA", Password: "wrongpassword"})
	users.On("GetByUsername", mock.Anything, "nobody").Return(nil, notFoundErr("user")).Once()
	_, unknownUser := authService.Login(ctx, models.LoginRequest{Username: "nobody", Password: "secret1"})

	assert.ErrorIs(t, wrongPassword, services.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	users.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), new(MockProfileRepository), testJWTSecret, 0)

	sign := func(claims services.Claims, secret string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	valid := services.Claims{
		UserID:         "user-123",
		Username:       "farmerA",
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
	}

	claims, err := authService.ValidateToken(sign(valid, testJWTSecret))
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "farmerA", claims.Username)

	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	_, err = authService.ValidateToken(sign(valid, "other_secret"))
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	expired := valid
	expired.ExpiresAt = time.Now().Add(-time.Hour).Unix()
	_, err = authService.ValidateToken(sign(expired, testJWTSecret))
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	noUser := valid
	noUser.UserID = ""
	_, err = authService.ValidateToken(sign(noUser, testJWTSecret))
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	noExpiry := valid
	noExpiry.ExpiresAt = 0
	_, err = authService.ValidateToken(sign(noExpiry, testJWTSecret))
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, valid).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = authService.ValidateToken(none)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestAuthService_CurrentUser(t *testing.T) {
	users := new(MockUserRepository)
	authService := services.NewAuthService(users, new(MockProfileRepository), testJWTSecret, 0)

	users.On("GetByID", mock.Anything, "user-123").Return(&models.User{ID: "user-123", Username: "farmerA"}, nil).Once()
	user, err := authService.CurrentUser(context.Background(), "user-123")
	require.NoError(t, err)
	assert.Equal(t, "farmerA", user.Username)

	users.On("GetByID", mock.Anything, "gone").Return(nil, notFoundErr("user")).Once()
	_, err = authService.CurrentUser(context.Background(), "gone")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
