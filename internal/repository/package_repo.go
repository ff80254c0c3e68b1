package repository

import (
	"go-studio-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PackageRepository interface {
	Create(pkg *model.Package) error
	FindAll() ([]model.Package, error)
	FindByID(id uuid.UUID) (*model.Package, error)
	SoftDelete(id uuid.UUID, deletedBy string) error
}

type packageRepo struct {
	db *gorm.DB
}

func NewPackageRepo(db *gorm.DB) PackageRepository {
	return &packageRepo{db}
}

func (r *packageRepo) Create(pkg *model.Package) error {
	return r.db.Create(pkg).Error
}

func (r *packageRepo) FindAll() ([]model.Package, error) {
	var pkgs []model.Package
	err := r.db.Preload("Items").Find(&pkgs).Error
	return pkgs, err
}

// FindByID excludes soft-deleted templates; a retired package cannot
// back new bookings.
func (r *packageRepo) FindByID(id uuid.UUID) (*model.Package, error) {
	var pkg model.Package
	err := r.db.Preload("Items").First(&pkg, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepo) SoftDelete(id uuid.UUID, deletedBy string) error {
	return r.db.Model(&model.Package{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("NOW()"),
		"deleted_by": deletedBy,
	}).Error
}
