package handlers

import (
	"agritrack/internal/middleware"
	"agritrack/internal/models"
	"agritrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// IncomeHandler handles HTTP requests for income records.
type IncomeHandler struct {
	service  *services.IncomeService
	validate *validator.Validate
	log      logrus.FieldLogger
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(service *services.IncomeService, log logrus.FieldLogger) *IncomeHandler {
	return &IncomeHandler{service: service, validate: newValidator(), log: log}
}

// RegisterRoutes registers the income routes. Both list and create answer
// under the "income" key.
func (h *IncomeHandler) RegisterRoutes(router fiber.Router) {
	incomeRoutes := router.Group("/income")
	incomeRoutes.Get("/", h.HandleList)
	incomeRoutes.Post("/", h.HandleCreate)
	incomeRoutes.Put("/:id", h.HandleUpdate)
	incomeRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList lists the income of the farm named by the farm_id query parameter.
func (h *IncomeHandler) HandleList(c *fiber.Ctx) error {
	income, err := h.service.List(c.UserContext(), middleware.UserID(c), c.Query("farm_id"))
	if err != nil {
		return writeError(c, h.log, err, "Failed to fetch income")
	}
	return c.JSON(fiber.Map{"income": models.IncomeToClient(income)})
}

// HandleCreate records new income.
func (h *IncomeHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateIncomeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := validateRequest(h.validate, req); err != nil {
		return writeError(c, h.log, err, "Failed to create income")
	}

	income, err := h.service.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return writeError(c, h.log, err, "Failed to create income")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"income": income.ToClient()})
}

// HandleUpdate changes the fields present in the body. An omitted amount is kept.
func (h *IncomeHandler) HandleUpdate(c *fiber.Ctx) error {
	var req models.UpdateIncomeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := validateRequest(h.validate, req); err != nil {
		return writeError(c, h.log, err, "Failed to update income")
	}

	if err := h.service.Update(c.UserContext(), middleware.UserID(c), c.Params("id"), req); err != nil {
		return writeError(c, h.log, err, "Failed to update income")
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleDelete removes an income record.
func (h *IncomeHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err, "Failed to delete income")
	}
	return c.JSON(fiber.Map{"success": true})
}
