package service

import (
	"go-studio-ops/internal/apperr"
	"go-studio-ops/internal/model"
	"go-studio-ops/internal/repository"
	"go-studio-ops/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error)
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
	SetActive(userID uuid.UUID, active bool, updaterID string) (*model.User, error)
	DeleteUser(userID uuid.UUID) error
}

type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	RoleName    string `json:"role_name"` // defaults to OWNER
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// CreateUser provisions an account with a temporary credential; the
// holder must change the password on first login.
func (s *userService) CreateUser(req *CreateUserRequest, creatorID string) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, apperr.BadRequestf("field %q failed on tag %q", firstErr.FailedField, firstErr.Tag)
	}

	roleName := req.RoleName
	if roleName == "" {
		roleName = model.RoleOwner
	}
	role, err := s.roleRepo.FindByName(roleName)
	if err != nil {
		return nil, apperr.BadRequestf("role %q not found", roleName)
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, apperr.Conflictf("email %q already registered", req.Email)
	}

	user := &model.User{
		Email:              req.Email,
		FullName:           req.FullName,
		PhoneNumber:        req.PhoneNumber,
		RoleID:             &role.ID,
		Role:               role,
		IsActive:           true,
		MustChangePassword: true,
	}
	user.CreatedBy = creatorID
	user.UpdatedBy = creatorID

	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, apperr.Conflictf("email %q already registered", req.Email)
		}
		return nil, err
	}

	return user, nil
}

// GetAllUsers lists accounts, excluding super-admin rows
func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, 0, len(users))
	for _, user := range users {
		if user.IsSuperAdminUser() {
			continue
		}
		responses = append(responses, user.ToResponse())
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, apperr.NotFoundf("user %s", id)
	}
	response := user.ToResponse()
	return &response, nil
}

// SetActive toggles account status. Super-admin accounts cannot be
// deactivated.
func (s *userService) SetActive(userID uuid.UUID, active bool, updaterID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperr.NotFoundf("user %s", userID)
	}

	if !active && user.IsSuperAdminUser() {
		return nil, apperr.Invariantf("super admin account cannot be deactivated")
	}

	user.IsActive = active
	user.UpdatedBy = updaterID
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser hard-deletes an account. Super-admin accounts are immune.
// The caller-side requirement that the deleting role literally be
// SUPER_ADMIN is enforced at the route boundary.
func (s *userService) DeleteUser(userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return apperr.NotFoundf("user %s", userID)
	}

	if user.IsSuperAdminUser() {
		return apperr.Invariantf("super admin account cannot be deleted")
	}

	return s.userRepo.Delete(userID)
}
