package handlers

import (
	"agritrack/internal/middleware"
	"agritrack/internal/models"
	"agritrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// FarmHandler handles HTTP requests for farms.
type FarmHandler struct {
	service  *services.FarmService
	validate *validator.Validate
	log      logrus.FieldLogger
}

// NewFarmHandler creates a new FarmHandler.
func NewFarmHandler(service *services.FarmService, log logrus.FieldLogger) *FarmHandler {
	return &FarmHandler{service: service, validate: newValidator(), log: log}
}

// RegisterRoutes registers the farm routes.
func (h *FarmHandler) RegisterRoutes(router fiber.Router) {
	farmRoutes := router.Group("/farms")
	farmRoutes.Get("/", h.HandleList)
	farmRoutes.Get("/default", h.HandleDefault)
	farmRoutes.Post("/", h.HandleCreate)
	farmRoutes.Put("/:id", h.HandleUpdate)
	farmRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList lists the caller's farms.
func (h *FarmHandler) HandleList(c *fiber.Ctx) error {
	farms, err := h.service.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return writeError(c, h.log, err, "Failed to fetch farms")
	}
	return c.JSON(fiber.Map{"farms": models.FarmsToClient(farms)})
}

// HandleDefault returns the caller's default farm, creating it on first use.
func (h *FarmHandler) HandleDefault(c *fiber.Ctx) error {
	farm, err := h.service.Default(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return writeError(c, h.log, err, "Failed to fetch default farm")
	}
	return c.JSON(fiber.Map{"farm": farm.ToClient()})
}

// HandleCreate creates a farm owned by the caller.
func (h *FarmHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateFarmRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := validateRequest(h.validate, req); err != nil {
		return writeError(c, h.log, err, "Failed to create farm")
	}

	farm, err := h.service.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return writeError(c, h.log, err, "Failed to create farm")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"farm": farm.ToClient()})
}

// HandleUpdate changes the fields present in the body of a farm the caller owns.
func (h *FarmHandler) HandleUpdate(c *fiber.Ctx) error {
	var req models.UpdateFarmRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := validateRequest(h.validate, req); err != nil {
		return writeError(c, h.log, err, "Failed to update farm")
	}

	if err := h.service.Update(c.UserContext(), middleware.UserID(c), c.Params("id"), req); err != nil {
		return writeError(c, h.log, err, "Failed to update farm")
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleDelete removes a farm and everything recorded under it.
func (h *FarmHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err, "Failed to delete farm")
	}
	return c.JSON(fiber.Map{"success": true})
}
