package handlers

import (
	"agritrack/internal/middleware"
	"agritrack/internal/models"
	"agritrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ActivityHandler handles HTTP requests for planned activities.
type ActivityHandler struct {
	service  *services.ActivityService
	validate *validator.Validate
	log      logrus.FieldLogger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(service *services.ActivityService, log logrus.FieldLogger) *ActivityHandler {
	return &ActivityHandler{service: service, validate: newValidator(), log: log}
}

// RegisterRoutes registers the activity routes.
func (h *ActivityHandler) RegisterRoutes(router fiber.Router) {
	activityRoutes := router.Group("/activities")
	activityRoutes.Get("/", h.HandleList)
	activityRoutes.Post("/", h.HandleCreate)
	activityRoutes.Put("/:id", h.HandleUpdate)
	activityRoutes.Delete("/:id", h.HandleDelete)
	activityRoutes.Patch("/:id/toggle", h.HandleToggle)
}

// HandleList lists the activities of the farm named by the farm_id query parameter.
func (h *ActivityHandler) HandleList(c *fiber.Ctx) error {
	activities, err := h.service.List(c.UserContext(), middleware.UserID(c), c.Query("farm_id"))
	if err != nil {
		return writeError(c, h.log, err, "Failed to fetch activities")
	}
	return c.JSON(fiber.Map{"activities": models.ActivitiesToClient(activities)})
}

// HandleCreate plans a new activity on one of the caller's farms.
func (h *ActivityHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := validateRequest(h.validate, req); err != nil {
		return writeError(c, h.log, err, "Failed to create activity")
	}

	activity, err := h.service.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return writeError(c, h.log, err, "Failed to create activity")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"activity": activity.ToClient()})
}

// HandleUpdate ignores completed in the body; use the toggle route instead.
func (h *ActivityHandler) HandleUpdate(c *fiber.Ctx) error {
	var req models.UpdateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := validateRequest(h.validate, req); err != nil {
		return writeError(c, h.log, err, "Failed to update activity")
	}

	if err := h.service.Update(c.UserContext(), middleware.UserID(c), c.Params("id"), req); err != nil {
		return writeError(c, h.log, err, "Failed to update activity")
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleDelete removes an activity.
func (h *ActivityHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err, "Failed to delete activity")
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleToggle flips the completed flag and returns its new value.
func (h *ActivityHandler) HandleToggle(c *fiber.Ctx) error {
	completed, err := h.service.Toggle(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err, "Failed to toggle activity")
	}
	return c.JSON(fiber.Map{"success": true, "completed": completed})
}
