package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"agritrack/internal/logging"
	"agritrack/internal/middleware"
	"agritrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator map[string]*services.Claims

func (s stubValidator) ValidateToken(token string) (*services.Claims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, errors.New("bad token")
}

func newApp() *fiber.App {
	app := fiber.New()
	validator := stubValidator{"good": {UserID: "user-1", Username: "farmerA"}}
	app.Get("/private", middleware.AuthRequired(validator, logging.Discard()), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": middleware.UserID(c), "username": c.Locals(middleware.LocalUsername)})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	app := newApp()

	cases := []struct {
		name   string
		header string
		status int
		body   map[string]interface{}
	}{
		{"missing header", "", fiber.StatusUnauthorized, map[string]interface{}{"error": "Access token required"}},
		{"wrong scheme", "Basic good", fiber.StatusUnauthorized, map[string]interface{}{"error": "Invalid or expired token"}},
		{"empty bearer", "Bearer ", fiber.StatusUnauthorized, map[string]interface{}{"error": "Invalid or expired token"}},
		{"bad token", "Bearer nope", fiber.StatusUnauthorized, map[string]interface{}{"error": "Invalid or expired token"}},
		{"valid", "Bearer good", fiber.StatusOK, map[string]interface{}{"user_id": "user-1", "username": "farmerA"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			raw, _ := io.ReadAll(resp.Body)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tc.body, body)
		})
	}
}
