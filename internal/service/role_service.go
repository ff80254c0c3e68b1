package service

import (
	"go-studio-ops/internal/apperr"
	"go-studio-ops/internal/model"
	"go-studio-ops/internal/repository"

	"gorm.io/gorm"
)

type RoleService interface {
	CreateRole(req *CreateRoleRequest, creatorID string) (*model.Role, error)
	GetAllRoles() ([]RoleResponse, error)
	ReplacePermissions(roleID uint, slugs []string) (*model.Role, error)
	DeleteRole(roleID uint) error
}

type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"` // initial slugs, optional
}

// RoleResponse includes how many users currently hold the role
type RoleResponse struct {
	model.Role
	UserCount int64 `json:"user_count"`
}

type roleService struct {
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
}

func NewRoleService(roleRepo repository.RoleRepository, permissionRepo repository.PermissionRepository) RoleService {
	return &roleService{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
	}
}

func (s *roleService) CreateRole(req *CreateRoleRequest, creatorID string) (*model.Role, error) {
	if req.Name == "" {
		return nil, apperr.BadRequestf("role name is required")
	}

	permissions, err := s.resolveSlugs(req.Permissions)
	if err != nil {
		return nil, err
	}

	role := &model.Role{
		Name:        req.Name,
		Description: req.Description,
		Permissions: permissions,
	}

	if err := s.roleRepo.Create(role); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, apperr.Conflictf("role %q already exists", req.Name)
		}
		return nil, err
	}
	return role, nil
}

func (s *roleService) GetAllRoles() ([]RoleResponse, error) {
	roles, err := s.roleRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]RoleResponse, len(roles))
	for i, role := range roles {
		count, err := s.roleRepo.CountUsers(role.ID)
		if err != nil {
			return nil, err
		}
		responses[i] = RoleResponse{Role: role, UserCount: count}
	}
	return responses, nil
}

// ReplacePermissions swaps the role's full permission set. This is a
// replace, not a merge: slugs missing from the new list are dropped.
func (s *roleService) ReplacePermissions(roleID uint, slugs []string) (*model.Role, error) {
	role, err := s.roleRepo.FindByID(roleID)
	if err != nil {
		return nil, apperr.NotFoundf("role %d", roleID)
	}

	permissions, err := s.resolveSlugs(slugs)
	if err != nil {
		return nil, err
	}

	if err := s.roleRepo.ReplacePermissions(role, permissions); err != nil {
		return nil, err
	}
	return s.roleRepo.FindByID(roleID)
}

// DeleteRole removes a role. SUPER_ADMIN can never be deleted; a role
// still referenced by users is rejected rather than cascaded.
func (s *roleService) DeleteRole(roleID uint) error {
	role, err := s.roleRepo.FindByID(roleID)
	if err != nil {
		return apperr.NotFoundf("role %d", roleID)
	}

	if model.IsSuperAdmin(role.Name) {
		return apperr.Invariantf("role %q cannot be deleted", role.Name)
	}

	count, err := s.roleRepo.CountUsers(roleID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflictf("role %q is assigned to %d user(s)", role.Name, count)
	}

	return s.roleRepo.Delete(roleID)
}

// resolveSlugs maps slugs to permission rows, rejecting unknown ones by
// name.
func (s *roleService) resolveSlugs(slugs []string) ([]model.Permission, error) {
	if len(slugs) == 0 {
		return []model.Permission{}, nil
	}

	permissions, err := s.permissionRepo.FindBySlugs(slugs)
	if err != nil {
		return nil, err
	}

	found := make(map[string]bool, len(permissions))
	for _, p := range permissions {
		found[p.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			return nil, apperr.BadRequestf("unknown permission %q", slug)
		}
	}
	return permissions, nil
}
