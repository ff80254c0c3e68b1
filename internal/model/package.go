package model

import "github.com/google/uuid"

// ShootCategory classifies a package/shoot and drives code prefixes
type ShootCategory string

const (
	CategoryWedding    ShootCategory = "WEDDING"
	CategoryCommercial ShootCategory = "COMMERCIAL"
	CategoryBabyShower ShootCategory = "BABY_SHOWER"
	CategoryOther      ShootCategory = "OTHER"
)

// ValidCategory reports whether the value is a known category
func ValidCategory(c ShootCategory) bool {
	switch c {
	case CategoryWedding, CategoryCommercial, CategoryBabyShower, CategoryOther:
		return true
	}
	return false
}

// ItemType distinguishes deliverables from occasions
type ItemType string

const (
	ItemProduct ItemType = "PRODUCT" // album, frame, print
	ItemEvent   ItemType = "EVENT"   // ceremony, session
)

// ValidItemType reports whether the value is a known item type
func ValidItemType(t ItemType) bool {
	return t == ItemProduct || t == ItemEvent
}

// Package is a reusable pricing/service template
type Package struct {
	BaseModel
	Category  ShootCategory `gorm:"type:varchar(20);not null" json:"category" validate:"required"`
	Name      string        `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	BasePrice int64         `gorm:"default:0" json:"base_price"`
	Items     []PackageItem `gorm:"foreignKey:PackageID" json:"items,omitempty"`
}

// PackageItem holds the defaults copied into shoot items at booking time
type PackageItem struct {
	BaseModel
	PackageID     uuid.UUID `gorm:"type:uuid;not null;index" json:"package_id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Type          ItemType  `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=PRODUCT EVENT"`
	DefDimensions *string   `gorm:"type:varchar(50)" json:"def_dimensions,omitempty"`
	DefPages      *int      `json:"def_pages,omitempty"`
	DefQuantity   *int      `json:"def_quantity,omitempty"`
	Description   string    `gorm:"type:text" json:"description,omitempty"`
}
