package service

import (
	"go-studio-ops/internal/apperr"
	"go-studio-ops/internal/model"
	"go-studio-ops/internal/obs"
	"go-studio-ops/internal/repository"
	"go-studio-ops/pkg/token"
	"go-studio-ops/pkg/validator"

	"gorm.io/gorm"
)

type AuthService interface {
	Login(email, password string) (*SessionResponse, error)
	Register(req *RegisterRequest) (*SessionResponse, error)
	ChangePassword(email, oldPassword, newPassword string) (*SessionResponse, error)
}

// SessionResponse carries a fresh token together with the identity it
// was issued for.
type SessionResponse struct {
	Token       string             `json:"token"`
	User        model.UserResponse `json:"user"`
	Role        *model.Role        `json:"role"`
	Permissions []string           `json:"permissions"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number"`
	RoleName    string `json:"role_name"` // defaults to OWNER
}

type authService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) AuthService {
	return &authService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// Login authenticates by email and password. Unknown email, wrong
// password, and inactive account all return the same generic message so
// accounts cannot be enumerated.
func (s *authService) Login(email, password string) (*SessionResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		obs.LoginsTotal.WithLabelValues("denied").Inc()
		return nil, apperr.Unauthorizedf("invalid email or password")
	}

	if !user.IsActive || !user.CheckPassword(password) {
		obs.LoginsTotal.WithLabelValues("denied").Inc()
		return nil, apperr.Unauthorizedf("invalid email or password")
	}

	session, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}
	obs.LoginsTotal.WithLabelValues("ok").Inc()
	return session, nil
}

// Register creates an account and logs it in. The role is resolved by
// name, defaulting to OWNER.
func (s *authService) Register(req *RegisterRequest) (*SessionResponse, error) {
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
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		RoleID:      &role.ID,
		Role:        role,
		IsActive:    true,
	}
	user.CreatedBy = req.Email
	user.UpdatedBy = req.Email

	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, apperr.Conflictf("email %q already registered", req.Email)
		}
		return nil, err
	}

	return s.issueSession(user)
}

// ChangePassword verifies the current credential, stores the new one,
// clears the must-change flag, and reissues the token.
func (s *authService) ChangePassword(email, oldPassword, newPassword string) (*SessionResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, apperr.Unauthorizedf("invalid email or password")
	}

	if !user.CheckPassword(oldPassword) {
		return nil, apperr.Unauthorizedf("invalid email or password")
	}

	if err := user.SetPassword(newPassword); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdatePassword(user.ID, user.Password, false); err != nil {
		return nil, err
	}
	user.MustChangePassword = false

	return s.issueSession(user)
}

// issueSession embeds the role's permission snapshot into a fresh
// 60-minute token. The snapshot is fixed at issuance; role edits apply
// on the next reissue.
func (s *authService) issueSession(user *model.User) (*SessionResponse, error) {
	permissions := user.PermissionSlugs()
	signed, err := token.Generate(user.ID, user.Email, user.RoleName(), permissions, user.MustChangePassword)
	if err != nil {
		return nil, err
	}

	return &SessionResponse{
		Token:       signed,
		User:        user.ToResponse(),
		Role:        user.Role,
		Permissions: permissions,
	}, nil
}
