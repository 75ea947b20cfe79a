package handlers

import (
	"fmt"

	"agritrack/internal/middleware"
	"agritrack/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// DashboardHandler serves farm summaries and exports.
type DashboardHandler struct {
	dashboard *services.DashboardService
	reports   *services.ReportService
	log       logrus.FieldLogger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard *services.DashboardService, reports *services.ReportService, log logrus.FieldLogger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, reports: reports, log: log}
}

// RegisterRoutes registers the dashboard and report routes.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard/metrics", h.HandleMetrics)
	router.Get("/reports/export", h.HandleExport)
}

// HandleMetrics returns the totals and counts of one farm.
func (h *DashboardHandler) HandleMetrics(c *fiber.Ctx) error {
	metrics, err := h.dashboard.Metrics(c.UserContext(), middleware.UserID(c), c.Query("farm_id"))
	if err != nil {
		return writeError(c, h.log, err, "Failed to fetch dashboard metrics")
	}
	return c.JSON(fiber.Map{"metrics": metrics})
}

// HandleExport sends ?type= records of ?farm_id= as a csv or xlsx attachment.
func (h *DashboardHandler) HandleExport(c *fiber.Ctx) error {
	report, err := h.reports.Export(c.UserContext(), middleware.UserID(c),
		c.Query("farm_id"), c.Query("type"), c.Query("format", services.FormatCSV))
	if err != nil {
		return writeError(c, h.log, err, "Failed to export report")
	}
	c.Set(fiber.HeaderContentType, report.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename))
	return c.Send(report.Body)
}
