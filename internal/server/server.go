// Package server assembles the fiber application.
package server

import (
	"errors"
	"strings"
	"time"

	"agritrack/internal/config"
	"agritrack/internal/handlers"
	"agritrack/internal/metrics"
	"agritrack/internal/middleware"
	"agritrack/internal/repositories"
	"agritrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
)

// Services is the set of application services the routes are served by.
type Services struct {
	Auth       *services.AuthService
	Farms      *services.FarmService
	Expenses   *services.ExpenseService
	Income     *services.IncomeService
	Activities *services.ActivityService
	Dashboard  *services.DashboardService
	Reports    *services.ReportService
}

// NewServices wires every service on top of store.
func NewServices(store *repositories.Store, jwtSecret string, tokenLifetime time.Duration, opts ...services.Option) Services {
	return Services{
		Auth:       services.NewAuthService(store.Users, store.Profiles, jwtSecret, tokenLifetime, opts...),
		Farms:      services.NewFarmService(store.Farms, opts...),
		Expenses:   services.NewExpenseService(store.Expenses, store.Farms, opts...),
		Income:     services.NewIncomeService(store.Income, store.Farms, opts...),
		Activities: services.NewActivityService(store.Activities, store.Farms, opts...),
		Dashboard:  services.NewDashboardService(store, opts...),
		Reports:    services.NewReportService(store, opts...),
	}
}

// New builds the app with the middleware chain and every route mounted.
func New(cfg *config.Config, svc Services, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "agritrack",
		BodyLimit:    1 << 20,
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(cors.New(corsConfig(cfg.FrontendURL)))
	app.Use(logger.New(logger.Config{
		Output: log.Writer(),
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later",
			})
		},
	}))

	handlers.NewAuthHandler(svc.Auth, log).RegisterRoutes(api)

	protected := api.Group("", middleware.AuthRequired(svc.Auth, log))
	handlers.NewFarmHandler(svc.Farms, log).RegisterRoutes(protected)
	handlers.NewExpenseHandler(svc.Expenses, log).RegisterRoutes(protected)
	handlers.NewIncomeHandler(svc.Income, log).RegisterRoutes(protected)
	handlers.NewActivityHandler(svc.Activities, log).RegisterRoutes(protected)
	handlers.NewDashboardHandler(svc.Dashboard, svc.Reports, log).RegisterRoutes(protected)

	return app
}

func corsConfig(frontendURL string) cors.Config {
	cfg := cors.Config{
		AllowOrigins: frontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}
	// fiber refuses credentials together with a wildcard origin.
	if strings.TrimSpace(frontendURL) != "*" {
		cfg.AllowCredentials = true
	}
	return cfg
}

// errorHandler answers errors that escape the handlers, such as unknown
// routes and recovered panics, with the same JSON shape the handlers use.
func errorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			msg := fe.Message
			if fe.Code == fiber.StatusNotFound {
				msg = "Route not found"
			}
			return c.Status(fe.Code).JSON(fiber.Map{"error": msg})
		}

		log.WithError(err).WithFields(logrus.Fields{
			"request_id": c.Locals("requestid"),
			"method":     c.Method(),
			"path":       c.Path(),
		}).Error("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
