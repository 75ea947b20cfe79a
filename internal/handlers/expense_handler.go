package handlers

import (
	"agritrack/internal/middleware"
	"agritrack/internal/models"
	"agritrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ExpenseHandler handles HTTP requests for expenses.
type ExpenseHandler struct {
	service  *services.ExpenseService
	validate *validator.Validate
	log      logrus.FieldLogger
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(service *services.ExpenseService, log logrus.FieldLogger) *ExpenseHandler {
	return &ExpenseHandler{service: service, validate: newValidator(), log: log}
}

// RegisterRoutes registers the expense routes.
func (h *ExpenseHandler) RegisterRoutes(router fiber.Router) {
	expenseRoutes := router.Group("/expenses")
	expenseRoutes.Get("/", h.HandleList)
	expenseRoutes.Post("/", h.HandleCreate)
	expenseRoutes.Put("/:id", h.HandleUpdate)
	expenseRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList lists the expenses of the farm named by the farm_id query parameter.
func (h *ExpenseHandler) HandleList(c *fiber.Ctx) error {
	expenses, err := h.service.List(c.UserContext(), middleware.UserID(c), c.Query("farm_id"))
	if err != nil {
		return writeError(c, h.log, err, "Failed to fetch expenses")
	}
	return c.JSON(fiber.Map{"expenses": models.ExpensesToClient(expenses)})
}

// HandleCreate records a new expense.
func (h *ExpenseHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := validateRequest(h.validate, req); err != nil {
		return writeError(c, h.log, err, "Failed to create expense")
	}

	expense, err := h.service.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return writeError(c, h.log, err, "Failed to create expense")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"expense": expense.ToClient()})
}

// HandleUpdate changes the fields present in the body. An omitted amount is kept.
func (h *ExpenseHandler) HandleUpdate(c *fiber.Ctx) error {
	var req models.UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := validateRequest(h.validate, req); err != nil {
		return writeError(c, h.log, err, "Failed to update expense")
	}

	if err := h.service.Update(c.UserContext(), middleware.UserID(c), c.Params("id"), req); err != nil {
		return writeError(c, h.log, err, "Failed to update expense")
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleDelete removes an expense.
func (h *ExpenseHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err, "Failed to delete expense")
	}
	return c.JSON(fiber.Map{"success": true})
}
