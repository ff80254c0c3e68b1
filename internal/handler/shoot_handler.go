package handler

import (
	"go-studio-ops/internal/apperr"
	"go-studio-ops/internal/model"
	"go-studio-ops/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ShootHandler struct {
	shootService service.ShootService
}

func NewShootHandler(shootService service.ShootService) *ShootHandler {
	return &ShootHandler{shootService: shootService}
}

func actor(c *fiber.Ctx) (string, string) {
	userID, _ := c.Locals("user_id").(string)
	userEmail, _ := c.Locals("user_email").(string)
	if userID == "" {
		userID = "system"
	}
	return userID, userEmail
}

// CreateShoot books a shoot from a package template
// POST /api/v1/shoots
func (h *ShootHandler) CreateShoot(c *fiber.Ctx) error {
	var req service.CreateShootRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, userEmail := actor(c)
	shoot, err := h.shootService.CreateShoot(&req, userID, userEmail)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Shoot created successfully",
		"data":    shoot.ToResponse(),
	})
}

// GetShoots lists bookings (soft-deleted excluded)
// GET /api/v1/shoots
func (h *ShootHandler) GetShoots(c *fiber.Ctx) error {
	shoots, err := h.shootService.GetAllShoots()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch shoots"})
	}
	return c.JSON(shoots)
}

// GetShoot returns one booking with items, payments, and balance
// GET /api/v1/shoots/:id
func (h *ShootHandler) GetShoot(c *fiber.Ctx) error {
	shootID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shoot ID"})
	}

	shoot, err := h.shootService.GetShootByID(shootID)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(shoot)
}

// NextCode previews the next shoot code for a category
// GET /api/v1/shoots/next-code/:category
func (h *ShootHandler) NextCode(c *fiber.Ctx) error {
	code, err := h.shootService.NextShootCode(model.ShootCategory(c.Params("category")))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to allocate code"})
	}
	return c.JSON(fiber.Map{"next_code": code})
}

// UpdateStatus sets a shoot's lifecycle status
// PUT /api/v1/shoots/:id/status
func (h *ShootHandler) UpdateStatus(c *fiber.Ctx) error {
	shootID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shoot ID"})
	}

	var req struct {
		Status model.ShootStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, userEmail := actor(c)
	shoot, err := h.shootService.UpdateShootStatus(shootID, req.Status, userID, userEmail)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Shoot status updated",
		"data":    shoot.ToResponse(),
	})
}

// DeleteShoot soft-deletes a booking
// DELETE /api/v1/shoots/:id
func (h *ShootHandler) DeleteShoot(c *fiber.Ctx) error {
	shootID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shoot ID"})
	}

	userID, _ := actor(c)
	if err := h.shootService.DeleteShoot(shootID, userID); err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Shoot deleted successfully"})
}

// UpdateItem patches a line item
// PUT /api/v1/shoot-items/:id
func (h *ShootHandler) UpdateItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var patch service.ShootItemPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, _ := actor(c)
	item, err := h.shootService.UpdateShootItem(itemID, &patch, userID)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Shoot item updated",
		"data":    item,
	})
}

// AssignUser puts a crew member on a line item
// POST /api/v1/shoot-items/:id/assignments
func (h *ShootHandler) AssignUser(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var req struct {
		UserID uuid.UUID `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == uuid.Nil {
		return c.Status(400).JSON(fiber.Map{"error": "user_id is required"})
	}

	assignment, err := h.shootService.AssignUser(itemID, req.UserID)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(assignment)
}

// UnassignUser removes a crew member from a line item (idempotent)
// DELETE /api/v1/shoot-items/:id/assignments/:userId
func (h *ShootHandler) UnassignUser(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err := h.shootService.UnassignUser(itemID, userID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to remove assignment"})
	}

	return c.JSON(fiber.Map{"message": "Assignment removed"})
}

// AddPayment appends a ledger entry to a shoot
// POST /api/v1/shoots/:id/payments
func (h *ShootHandler) AddPayment(c *fiber.Ctx) error {
	shootID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shoot ID"})
	}

	var req service.AddPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	req.ShootID = shootID

	userID, userEmail := actor(c)
	payment, err := h.shootService.AddPayment(&req, userID, userEmail)
	if err != nil {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(payment)
}
