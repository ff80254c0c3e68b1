package service

import (
	"encoding/json"
	"fmt"
	"time"

	"go-studio-ops/internal/apperr"
	"go-studio-ops/internal/model"
	"go-studio-ops/internal/obs"
	"go-studio-ops/internal/repository"
	"go-studio-ops/internal/ws"
	"go-studio-ops/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShootService interface {
	NextShootCode(category model.ShootCategory) (string, error)
	CreateShoot(req *CreateShootRequest, userID, userName string) (*model.Shoot, error)
	GetAllShoots() ([]model.ShootResponse, error)
	GetShootByID(id uuid.UUID) (*model.ShootResponse, error)
	UpdateShootStatus(id uuid.UUID, status model.ShootStatus, userID, userName string) (*model.Shoot, error)
	DeleteShoot(id uuid.UUID, userID string) error

	UpdateShootItem(itemID uuid.UUID, patch *ShootItemPatch, userID string) (*model.ShootItem, error)
	AssignUser(itemID, userID uuid.UUID) (*model.ShootItemAssignment, error)
	UnassignUser(itemID, userID uuid.UUID) error

	AddPayment(req *AddPaymentRequest, userID, userName string) (*model.Payment, error)
}

type CreateShootRequest struct {
	ClientID    uuid.UUID          `json:"client_id" validate:"uuid_required"`
	PackageID   uuid.UUID          `json:"package_id" validate:"uuid_required"`
	FinalPrice  int64              `json:"final_price" validate:"gte=0"`
	Description string             `json:"description"`
	EventDate   *time.Time         `json:"event_date"`
	Items       []ShootItemRequest `json:"items"` // optional override of package defaults
}

type ShootItemRequest struct {
	Name        string         `json:"name" validate:"required"`
	Type        model.ItemType `json:"type" validate:"required"`
	Dimensions  *string        `json:"dimensions"`
	Pages       *int           `json:"pages"`
	Quantity    int            `json:"quantity"`
	IsIncluded  *bool          `json:"is_included"`
	Description string         `json:"description"`
	EventDate   *time.Time     `json:"event_date"`
	Location    string         `json:"location"`
}

type ShootItemPatch struct {
	Name        *string                `json:"name"`
	Dimensions  *string                `json:"dimensions"`
	Pages       *int                   `json:"pages"`
	Quantity    *int                   `json:"quantity"`
	IsIncluded  *bool                  `json:"is_included"`
	Status      *model.ShootItemStatus `json:"status"`
	Description *string                `json:"description"`
	EventDate   *time.Time             `json:"event_date"`
	Location    *string                `json:"location"`
}

type AddPaymentRequest struct {
	ShootID uuid.UUID           `json:"shoot_id" validate:"uuid_required"`
	Amount  int64               `json:"amount" validate:"required,gt=0"`
	Method  model.PaymentMethod `json:"method" validate:"required"`
	Note    string              `json:"note"`
	Date    *time.Time          `json:"date"` // defaults to now
}

type shootService struct {
	shootRepo   repository.ShootRepository
	packageRepo repository.PackageRepository
	clientRepo  repository.ClientRepository
	userRepo    repository.UserRepository
	wsHub       *ws.Hub
}

func NewShootService(
	shootRepo repository.ShootRepository,
	packageRepo repository.PackageRepository,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	hub *ws.Hub,
) ShootService {
	return &shootService{
		shootRepo:   shootRepo,
		packageRepo: packageRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		wsHub:       hub,
	}
}

// NextShootCode returns the successor of the greatest existing code for
// the category's prefix, soft-deleted shoots included. Codes are never
// reused.
func (s *shootService) NextShootCode(category model.ShootCategory) (string, error) {
	prefix := shootCodePrefix(category)
	latest, err := s.shootRepo.LatestCodeForPrefix(prefix)
	if err != nil {
		return "", err
	}
	return formatShootCode(prefix, nextShootNumber(latest, prefix)), nil
}

// CreateShoot materializes a booking from a package template. The shoot
// row and its items commit in one transaction; a shoot-code collision
// under concurrent creation triggers exactly one re-allocation before
// surfacing Conflict.
func (s *shootService) CreateShoot(req *CreateShootRequest, userID, userName string) (*model.Shoot, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.BadRequestf("field %q failed on tag %q", firstErr.FailedField, firstErr.Tag)
	}

	if _, err := s.clientRepo.FindByID(req.ClientID); err != nil {
		return nil, apperr.NotFoundf("client %s", req.ClientID)
	}

	pkg, err := s.packageRepo.FindByID(req.PackageID)
	if err != nil {
		return nil, apperr.NotFoundf("package %s", req.PackageID)
	}

	items, err := buildShootItems(req.Items, pkg.Items)
	if err != nil {
		return nil, err
	}

	var shoot *model.Shoot
	for attempt := 0; ; attempt++ {
		code, err := s.NextShootCode(pkg.Category)
		if err != nil {
			return nil, err
		}

		shoot = &model.Shoot{
			ShootCode:   code,
			ClientID:    req.ClientID,
			Category:    pkg.Category,
			PackageName: pkg.Name,
			FinalPrice:  req.FinalPrice,
			Description: req.Description,
			EventDate:   req.EventDate,
			Status:      model.ShootPending,
			Items:       items,
		}
		shoot.CreatedBy = userID
		shoot.UpdatedBy = userID

		err = s.shootRepo.CreateWithItems(shoot)
		if err == nil {
			break
		}
		if err == gorm.ErrDuplicatedKey && attempt == 0 {
			// Another booking in the same category won the code; allocate
			// once more against the committed state.
			obs.ShootCodeRetriesTotal.Inc()
			continue
		}
		if err == gorm.ErrDuplicatedKey {
			return nil, apperr.Conflictf("shoot code %q already taken", shoot.ShootCode)
		}
		return nil, err
	}

	obs.ShootsCreatedTotal.WithLabelValues(string(pkg.Category)).Inc()
	s.broadcast(map[string]interface{}{
		"type":       "shoot_created",
		"shoot_id":   shoot.ID,
		"shoot_code": shoot.ShootCode,
		"category":   shoot.Category,
		"message":    fmt.Sprintf("%s booked shoot %s (%s)", userName, shoot.ShootCode, pkg.Name),
	})

	return shoot, nil
}

// buildShootItems prepares line items for a new shoot. Caller-supplied
// items are used verbatim; otherwise one item is materialized per
// package item, copying the template defaults.
func buildShootItems(override []ShootItemRequest, templates []model.PackageItem) ([]model.ShootItem, error) {
	if len(override) > 0 {
		items := make([]model.ShootItem, len(override))
		for i, req := range override {
			if !model.ValidItemType(req.Type) {
				return nil, apperr.BadRequestf("unknown item type %q", req.Type)
			}
			quantity := req.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			isIncluded := true
			if req.IsIncluded != nil {
				isIncluded = *req.IsIncluded
			}
			items[i] = model.ShootItem{
				Name:        req.Name,
				Type:        req.Type,
				Dimensions:  req.Dimensions,
				Pages:       req.Pages,
				Quantity:    quantity,
				IsIncluded:  isIncluded,
				Status:      model.ItemDesigning,
				Description: req.Description,
				EventDate:   req.EventDate,
				Location:    req.Location,
			}
		}
		return items, nil
	}

	items := make([]model.ShootItem, len(templates))
	for i, tpl := range templates {
		quantity := 1
		if tpl.DefQuantity != nil && *tpl.DefQuantity > 0 {
			quantity = *tpl.DefQuantity
		}
		items[i] = model.ShootItem{
			Name:        tpl.Name,
			Type:        tpl.Type,
			Dimensions:  tpl.DefDimensions,
			Pages:       tpl.DefPages,
			Quantity:    quantity,
			IsIncluded:  true,
			Status:      model.ItemDesigning,
			Description: tpl.Description,
		}
	}
	return items, nil
}

func (s *shootService) GetAllShoots() ([]model.ShootResponse, error) {
	shoots, err := s.shootRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.ShootResponse, len(shoots))
	for i := range shoots {
		responses[i] = shoots[i].ToResponse()
	}
	return responses, nil
}

func (s *shootService) GetShootByID(id uuid.UUID) (*model.ShootResponse, error) {
	shoot, err := s.shootRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFoundf("shoot %s", id)
	}
	response := shoot.ToResponse()
	return &response, nil
}

// UpdateShootStatus sets the lifecycle status. Only enum membership is
// enforced; the studio may move a shoot to any state manually.
func (s *shootService) UpdateShootStatus(id uuid.UUID, status model.ShootStatus, userID, userName string) (*model.Shoot, error) {
	if !model.ValidShootStatus(status) {
		return nil, apperr.BadRequestf("unknown shoot status %q", status)
	}

	shoot, err := s.shootRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFoundf("shoot %s", id)
	}

	if err := s.shootRepo.UpdateStatus(id, status, userID); err != nil {
		return nil, err
	}
	shoot.Status = status

	s.broadcast(map[string]interface{}{
		"type":       "shoot_status_changed",
		"shoot_id":   shoot.ID,
		"shoot_code": shoot.ShootCode,
		"status":     status,
		"message":    fmt.Sprintf("%s moved shoot %s to %s", userName, shoot.ShootCode, status),
	})

	return shoot, nil
}

// DeleteShoot soft-deletes the booking. Items and payments stay for
// audit, and the shoot code remains reserved forever.
func (s *shootService) DeleteShoot(id uuid.UUID, userID string) error {
	if _, err := s.shootRepo.FindByID(id); err != nil {
		return apperr.NotFoundf("shoot %s", id)
	}
	return s.shootRepo.SoftDelete(id, userID)
}

func (s *shootService) UpdateShootItem(itemID uuid.UUID, patch *ShootItemPatch, userID string) (*model.ShootItem, error) {
	item, err := s.shootRepo.FindItemByID(itemID)
	if err != nil {
		return nil, apperr.NotFoundf("shoot item %s", itemID)
	}

	if patch.Status != nil {
		if !model.ValidShootItemStatus(*patch.Status) {
			return nil, apperr.BadRequestf("unknown item status %q", *patch.Status)
		}
		item.Status = *patch.Status
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Dimensions != nil {
		item.Dimensions = patch.Dimensions
	}
	if patch.Pages != nil {
		item.Pages = patch.Pages
	}
	if patch.Quantity != nil {
		if *patch.Quantity <= 0 {
			return nil, apperr.BadRequestf("quantity must be positive")
		}
		item.Quantity = *patch.Quantity
	}
	if patch.IsIncluded != nil {
		item.IsIncluded = *patch.IsIncluded
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.EventDate != nil {
		item.EventDate = patch.EventDate
	}
	if patch.Location != nil {
		item.Location = *patch.Location
	}
	item.UpdatedBy = userID

	if err := s.shootRepo.UpdateItem(item); err != nil {
		return nil, err
	}

	s.broadcast(map[string]interface{}{
		"type":     "shoot_item_updated",
		"item_id":  item.ID,
		"shoot_id": item.ShootID,
		"status":   item.Status,
	})

	return item, nil
}

// AssignUser links a crew member to a line item. The same user twice on
// the same item is a conflict.
func (s *shootService) AssignUser(itemID, userID uuid.UUID) (*model.ShootItemAssignment, error) {
	if _, err := s.shootRepo.FindItemByID(itemID); err != nil {
		return nil, apperr.NotFoundf("shoot item %s", itemID)
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, apperr.NotFoundf("user %s", userID)
	}

	assignment := &model.ShootItemAssignment{
		ShootItemID: itemID,
		UserID:      userID,
	}
	if err := s.shootRepo.CreateAssignment(assignment); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, apperr.Conflictf("user %s already assigned to item %s", userID, itemID)
		}
		return nil, err
	}
	return assignment, nil
}

// UnassignUser removes the pairing. Removing an absent pairing succeeds.
func (s *shootService) UnassignUser(itemID, userID uuid.UUID) error {
	return s.shootRepo.DeleteAssignment(itemID, userID)
}

// AddPayment appends a ledger entry. Overpayment is allowed; the
// resulting negative balance is surfaced, never clamped.
func (s *shootService) AddPayment(req *AddPaymentRequest, userID, userName string) (*model.Payment, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.BadRequestf("field %q failed on tag %q", firstErr.FailedField, firstErr.Tag)
	}
	if !model.ValidPaymentMethod(req.Method) {
		return nil, apperr.BadRequestf("unknown payment method %q", req.Method)
	}

	shoot, err := s.shootRepo.FindByID(req.ShootID)
	if err != nil {
		return nil, apperr.NotFoundf("shoot %s", req.ShootID)
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	payment := &model.Payment{
		ShootID: req.ShootID,
		Amount:  req.Amount,
		Method:  req.Method,
		Note:    req.Note,
		Date:    date,
	}
	payment.CreatedBy = userID
	payment.UpdatedBy = userID

	if err := s.shootRepo.CreatePayment(payment); err != nil {
		return nil, err
	}

	obs.PaymentsRecordedTotal.WithLabelValues(string(req.Method)).Inc()
	s.broadcast(map[string]interface{}{
		"type":       "payment_recorded",
		"shoot_id":   shoot.ID,
		"shoot_code": shoot.ShootCode,
		"amount":     req.Amount,
		"method":     req.Method,
		"balance":    shoot.Balance() - req.Amount,
		"message":    fmt.Sprintf("%s recorded %d via %s on %s", userName, req.Amount, req.Method, shoot.ShootCode),
	})

	return payment, nil
}

// broadcast fans an event out to dashboard clients without blocking the
// request path.
func (s *shootService) broadcast(payload map[string]interface{}) {
	if s.wsHub == nil {
		return
	}
	go func() {
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
