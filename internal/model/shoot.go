package model

import (
	"time"

	"github.com/google/uuid"
)

// ShootStatus is the lifecycle state of a booking
type ShootStatus string

const (
	ShootPending    ShootStatus = "PENDING"
	ShootInProgress ShootStatus = "IN_PROGRESS"
	ShootCompleted  ShootStatus = "COMPLETED"
	ShootCancelled  ShootStatus = "CANCELLED"
)

// ValidShootStatus reports whether the value is a known shoot status
func ValidShootStatus(s ShootStatus) bool {
	switch s {
	case ShootPending, ShootInProgress, ShootCompleted, ShootCancelled:
		return true
	}
	return false
}

// ShootItemStatus is the production state of a single line item
type ShootItemStatus string

const (
	ItemPending   ShootItemStatus = "PENDING"
	ItemDesigning ShootItemStatus = "DESIGNING"
	ItemPrinting  ShootItemStatus = "PRINTING"
	ItemReady     ShootItemStatus = "READY"
	ItemDelivered ShootItemStatus = "DELIVERED"
)

// ValidShootItemStatus reports whether the value is a known item status
func ValidShootItemStatus(s ShootItemStatus) bool {
	switch s {
	case ItemPending, ItemDesigning, ItemPrinting, ItemReady, ItemDelivered:
		return true
	}
	return false
}

// PaymentMethod enumerates accepted payment channels
type PaymentMethod string

const (
	PayCash     PaymentMethod = "CASH"
	PayTransfer PaymentMethod = "TRANSFER"
	PayCard     PaymentMethod = "CARD"
)

// ValidPaymentMethod reports whether the value is a known method
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PayCash || m == PayTransfer || m == PayCard
}

// Shoot is a booked engagement materialized from a Package template.
// Category and PackageName are snapshots; later template edits never
// alter historical bookings.
type Shoot struct {
	BaseModel
	ShootCode   string        `gorm:"type:varchar(20);uniqueIndex;not null" json:"shoot_code"`
	ClientID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"client_id" validate:"uuid_required"`
	Client      *Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Category    ShootCategory `gorm:"type:varchar(20);not null" json:"category"`
	PackageName string        `gorm:"type:varchar(255);not null" json:"package_name"`
	FinalPrice  int64         `gorm:"not null" json:"final_price"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	EventDate   *time.Time    `gorm:"type:date" json:"event_date,omitempty"`
	Status      ShootStatus   `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Items       []ShootItem   `gorm:"foreignKey:ShootID" json:"items,omitempty"`
	Payments    []Payment     `gorm:"foreignKey:ShootID" json:"payments,omitempty"`
}

// TotalPaid sums the append-only payment ledger
func (s *Shoot) TotalPaid() int64 {
	var total int64
	for _, p := range s.Payments {
		total += p.Amount
	}
	return total
}

// Balance is FinalPrice minus payments. Negative means overpayment and
// is surfaced, never clamped.
func (s *Shoot) Balance() int64 {
	return s.FinalPrice - s.TotalPaid()
}

// ShootItem is one deliverable or event belonging to exactly one Shoot
type ShootItem struct {
	BaseModel
	ShootID     uuid.UUID             `gorm:"type:uuid;not null;index" json:"shoot_id"`
	Name        string                `gorm:"type:varchar(255);not null" json:"name"`
	Type        ItemType              `gorm:"type:varchar(10);not null" json:"type"`
	Dimensions  *string               `gorm:"type:varchar(50)" json:"dimensions,omitempty"`
	Pages       *int                  `json:"pages,omitempty"`
	Quantity    int                   `gorm:"default:1" json:"quantity"`
	IsIncluded  bool                  `gorm:"default:true" json:"is_included"`
	Status      ShootItemStatus       `gorm:"type:varchar(20);not null;default:'DESIGNING'" json:"status"`
	Description string                `gorm:"type:text" json:"description,omitempty"`
	EventDate   *time.Time            `gorm:"type:date" json:"event_date,omitempty"`
	Location    string                `gorm:"type:varchar(255)" json:"location,omitempty"`
	Assignments []ShootItemAssignment `gorm:"foreignKey:ShootItemID" json:"assignments,omitempty"`
}

// ShootItemAssignment links crew members to line items. The pair is
// unique; assigning the same user twice is a conflict.
type ShootItemAssignment struct {
	ShootItemID uuid.UUID `gorm:"type:uuid;primaryKey" json:"shoot_item_id"`
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Payment is an append-only ledger entry; never updated or deleted
// through normal operation.
type Payment struct {
	BaseModel
	ShootID uuid.UUID     `gorm:"type:uuid;not null;index" json:"shoot_id"`
	Amount  int64         `gorm:"not null" json:"amount" validate:"required,gt=0"`
	Method  PaymentMethod `gorm:"type:varchar(20);not null" json:"method" validate:"required,oneof=CASH TRANSFER CARD"`
	Note    string        `gorm:"type:text" json:"note,omitempty"`
	Date    time.Time     `gorm:"not null" json:"date"`
}

// ShootResponse augments a Shoot with derived ledger figures
type ShootResponse struct {
	Shoot
	TotalPaid int64 `json:"total_paid"`
	Balance   int64 `json:"balance"`
}

// ToResponse converts a Shoot to its API shape with derived figures
func (s *Shoot) ToResponse() ShootResponse {
	return ShootResponse{
		Shoot:     *s,
		TotalPaid: s.TotalPaid(),
		Balance:   s.Balance(),
	}
}
