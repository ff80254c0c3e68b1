package handler

import (
	"go-studio-ops/internal/model"
	"go-studio-ops/internal/repository"
	"go-studio-ops/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PackageHandler struct {
	packageRepo repository.PackageRepository
}

func NewPackageHandler(packageRepo repository.PackageRepository) *PackageHandler {
	return &PackageHandler{packageRepo: packageRepo}
}

// GetPackages returns all package templates
// GET /api/v1/packages
func (h *PackageHandler) GetPackages(c *fiber.Ctx) error {
	pkgs, err := h.packageRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch packages"})
	}
	return c.JSON(pkgs)
}

// GetPackage returns a single template with its items
// GET /api/v1/packages/:id
func (h *PackageHandler) GetPackage(c *fiber.Ctx) error {
	pkgID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid package ID"})
	}

	pkg, err := h.packageRepo.FindByID(pkgID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Package not found"})
	}
	return c.JSON(pkg)
}

// CreatePackage creates a template with its default items
// POST /api/v1/packages
func (h *PackageHandler) CreatePackage(c *fiber.Ctx) error {
	var pkg model.Package
	if err := c.BodyParser(&pkg); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if !model.ValidCategory(pkg.Category) {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown category '" + string(pkg.Category) + "'"})
	}

	if errs := validator.ValidateStruct(&pkg); len(errs) > 0 {
		firstErr := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": "Validation failed: Field '" + firstErr.FailedField + "' failed on tag '" + firstErr.Tag + "'",
		})
	}

	creatorID := c.Locals("user_id")
	if creatorID == nil {
		creatorID = "system"
	}
	pkg.CreatedBy = creatorID.(string)
	pkg.UpdatedBy = creatorID.(string)

	if err := h.packageRepo.Create(&pkg); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create package"})
	}

	return c.Status(201).JSON(pkg)
}

// DeletePackage retires a template; existing shoots keep their snapshots
// DELETE /api/v1/packages/:id
func (h *PackageHandler) DeletePackage(c *fiber.Ctx) error {
	pkgID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid package ID"})
	}

	deleterID := c.Locals("user_id")
	if deleterID == nil {
		deleterID = "system"
	}

	if err := h.packageRepo.SoftDelete(pkgID, deleterID.(string)); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete package"})
	}

	return c.JSON(fiber.Map{"message": "Package deleted successfully"})
}
