package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsByRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/metrics", Handler())

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/items/:id", "204"))

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/"+id, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/items/:id", "204"))
	assert.Equal(t, before+2, after)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "agritrack_http_requests_total")
}
