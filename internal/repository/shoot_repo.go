package repository

import (
	"go-studio-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShootRepository interface {
	// CreateWithItems inserts the shoot and its items in one transaction.
	// A shoot_code uniqueness violation surfaces as gorm.ErrDuplicatedKey.
	CreateWithItems(shoot *model.Shoot) error
	FindAll() ([]model.Shoot, error)
	FindByID(id uuid.UUID) (*model.Shoot, error)
	Update(shoot *model.Shoot) error
	UpdateStatus(id uuid.UUID, status model.ShootStatus, updatedBy string) error
	SoftDelete(id uuid.UUID, deletedBy string) error

	// LatestCodeForPrefix scans all shoots, soft-deleted included, for
	// the greatest code starting with "{prefix}-".
	LatestCodeForPrefix(prefix string) (string, error)

	FindItemByID(id uuid.UUID) (*model.ShootItem, error)
	UpdateItem(item *model.ShootItem) error

	CreateAssignment(assignment *model.ShootItemAssignment) error
	DeleteAssignment(shootItemID, userID uuid.UUID) error

	CreatePayment(payment *model.Payment) error
}

type shootRepo struct {
	db *gorm.DB
}

func NewShootRepo(db *gorm.DB) ShootRepository {
	return &shootRepo{db}
}

func (r *shootRepo) CreateWithItems(shoot *model.Shoot) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(shoot).Error
	})
}

func (r *shootRepo) FindAll() ([]model.Shoot, error) {
	var shoots []model.Shoot
	err := r.db.Preload("Client").Preload("Items").Preload("Payments").
		Order("created_at DESC").
		Find(&shoots).Error
	return shoots, err
}

func (r *shootRepo) FindByID(id uuid.UUID) (*model.Shoot, error) {
	var shoot model.Shoot
	err := r.db.Preload("Client").
		Preload("Items").
		Preload("Items.Assignments").
		Preload("Items.Assignments.User").
		Preload("Payments").
		First(&shoot, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &shoot, nil
}

func (r *shootRepo) Update(shoot *model.Shoot) error {
	return r.db.Save(shoot).Error
}

func (r *shootRepo) UpdateStatus(id uuid.UUID, status model.ShootStatus, updatedBy string) error {
	return r.db.Model(&model.Shoot{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_by": updatedBy,
	}).Error
}

// SoftDelete flags the shoot; items and payments stay for audit and the
// code stays reserved.
func (r *shootRepo) SoftDelete(id uuid.UUID, deletedBy string) error {
	return r.db.Model(&model.Shoot{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("NOW()"),
		"deleted_by": deletedBy,
	}).Error
}

func (r *shootRepo) LatestCodeForPrefix(prefix string) (string, error) {
	var codes []string
	// Longer suffix means a bigger number ("W-100" beats "W-99"), so
	// order by length before falling back to string order.
	err := r.db.Model(&model.Shoot{}).Unscoped().
		Where("shoot_code LIKE ?", prefix+"-%").
		Order("length(shoot_code) DESC, shoot_code DESC").
		Limit(1).
		Pluck("shoot_code", &codes).Error
	if err != nil {
		return "", err
	}
	if len(codes) == 0 {
		return "", nil
	}
	return codes[0], nil
}

func (r *shootRepo) FindItemByID(id uuid.UUID) (*model.ShootItem, error) {
	var item model.ShootItem
	err := r.db.Preload("Assignments").First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shootRepo) UpdateItem(item *model.ShootItem) error {
	return r.db.Save(item).Error
}

func (r *shootRepo) CreateAssignment(assignment *model.ShootItemAssignment) error {
	return r.db.Create(assignment).Error
}

// DeleteAssignment is idempotent; removing an absent pairing is not an
// error.
func (r *shootRepo) DeleteAssignment(shootItemID, userID uuid.UUID) error {
	return r.db.Where("shoot_item_id = ? AND user_id = ?", shootItemID, userID).
		Delete(&model.ShootItemAssignment{}).Error
}

func (r *shootRepo) CreatePayment(payment *model.Payment) error {
	return r.db.Create(payment).Error
}
