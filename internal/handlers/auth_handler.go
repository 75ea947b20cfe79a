package handlers

import (
	"agritrack/internal/middleware"
	"agritrack/internal/models"
	"agritrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
		log:         log,
	}
}

// RegisterRoutes registers the authentication routes. register and login are
// public; me verifies the bearer token itself.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/me", middleware.AuthRequired(h.authService, h.log), h.HandleMe)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := validateRequest(h.validate, req); err != nil {
		return writeError(c, h.log, err, "Failed to register user")
	}

	session, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.log, err, "Failed to register user")
	}
	return c.Status(fiber.StatusCreated).JSON(sessionBody(session))
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := validateRequest(h.validate, req); err != nil {
		return writeError(c, h.log, err, "Failed to log in")
	}

	session, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.log, err, "Failed to log in")
	}
	return c.JSON(sessionBody(session))
}

// HandleMe returns the authenticated user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.authService.CurrentUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return writeError(c, h.log, err, "Failed to fetch user")
	}
	return c.JSON(fiber.Map{"user": user.ToClient()})
}

func sessionBody(s *services.Session) fiber.Map {
	return fiber.Map{
		"user":      s.User.ToClient(),
		"token":     s.Token,
		"expiresAt": models.FormatTimestamp(s.ExpiresAt),
	}
}
