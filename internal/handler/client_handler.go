package handler

import (
	"go-studio-ops/internal/model"
	"go-studio-ops/internal/repository"
	"go-studio-ops/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ClientHandler struct {
	clientRepo repository.ClientRepository
}

func NewClientHandler(clientRepo repository.ClientRepository) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo}
}

// GetClients returns all clients
// GET /api/v1/clients
func (h *ClientHandler) GetClients(c *fiber.Ctx) error {
	clients, err := h.clientRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch clients"})
	}
	return c.JSON(clients)
}

// GetClient returns a single client by ID
// GET /api/v1/clients/:id
func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	clientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}

	client, err := h.clientRepo.FindByID(clientID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Client not found"})
	}
	return c.JSON(client)
}

// CreateClient creates a client record
// POST /api/v1/clients
func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var client model.Client
	if err := c.BodyParser(&client); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(&client); len(errs) > 0 {
		firstErr := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": "Validation failed: Field '" + firstErr.FailedField + "' failed on tag '" + firstErr.Tag + "'",
		})
	}

	creatorID := c.Locals("user_id")
	if creatorID == nil {
		creatorID = "system"
	}
	client.CreatedBy = creatorID.(string)
	client.UpdatedBy = creatorID.(string)

	if err := h.clientRepo.Create(&client); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create client"})
	}

	return c.Status(201).JSON(client)
}
