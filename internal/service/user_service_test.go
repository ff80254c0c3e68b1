package service

import (
	"errors"
	"testing"

	"go-studio-ops/internal/apperr"
	"go-studio-ops/internal/model"

	"github.com/google/uuid"
)

func newUserFixture() (UserService, *fakeUserRepo, *fakeRoleRepo) {
	userRepo := newFakeUserRepo()
	roleRepo := newFakeRoleRepo()
	roleRepo.add(model.RoleSuperAdmin)
	roleRepo.add(model.RoleOwner, "USER_READ", "SHOOT_CREATE")
	return NewUserService(userRepo, roleRepo), userRepo, roleRepo
}

func seedUser(t *testing.T, userRepo *fakeUserRepo, roleRepo *fakeRoleRepo, email, roleName string) *model.User {
	t.Helper()
	role, err := roleRepo.FindByName(roleName)
	if err != nil {
		t.Fatalf("role %s missing: %v", roleName, err)
	}
	user := &model.User{Email: email, FullName: email, RoleID: &role.ID, Role: role, IsActive: true}
	if err := user.SetPassword("secret123"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestCreateUserDefaultsToOwnerRole(t *testing.T) {
	svc, _, _ := newUserFixture()

	user, err := svc.CreateUser(&CreateUserRequest{
		Email:    "new@studio.test",
		Password: "secret123",
		FullName: "New User",
	}, "admin")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.RoleName() != model.RoleOwner {
		t.Errorf("role: got %q, want OWNER", user.RoleName())
	}
	if !user.MustChangePassword {
		t.Error("admin-created account should require a password change")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, userRepo, roleRepo := newUserFixture()
	seedUser(t, userRepo, roleRepo, "taken@studio.test", model.RoleOwner)

	_, err := svc.CreateUser(&CreateUserRequest{
		Email:    "taken@studio.test",
		Password: "secret123",
		FullName: "Copy",
	}, "admin")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("duplicate email should be Conflict, got %v", err)
	}
}

func TestCreateUserUnknownRole(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.CreateUser(&CreateUserRequest{
		Email:    "new@studio.test",
		Password: "secret123",
		FullName: "New User",
		RoleName: "WIZARD",
	}, "admin")
	if !errors.Is(err, apperr.ErrBadRequest) {
		t.Fatalf("unknown role should be BadRequest, got %v", err)
	}
}

func TestGetAllUsersExcludesSuperAdmin(t *testing.T) {
	svc, userRepo, roleRepo := newUserFixture()
	seedUser(t, userRepo, roleRepo, "root@studio.test", model.RoleSuperAdmin)
	seedUser(t, userRepo, roleRepo, "owner@studio.test", model.RoleOwner)

	users, err := svc.GetAllUsers()
	if err != nil {
		t.Fatalf("GetAllUsers: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 listed user, got %d", len(users))
	}
	if users[0].Email != "owner@studio.test" {
		t.Errorf("super admin row leaked into listing: %v", users)
	}
}

func TestDeactivateSuperAdminRejected(t *testing.T) {
	svc, userRepo, roleRepo := newUserFixture()
	root := seedUser(t, userRepo, roleRepo, "root@studio.test", model.RoleSuperAdmin)

	_, err := svc.SetActive(root.ID, false, "admin")
	if !errors.Is(err, apperr.ErrInvariant) {
		t.Fatalf("deactivating super admin should be Invariant, got %v", err)
	}

	// Activation is harmless and allowed.
	if _, err := svc.SetActive(root.ID, true, "admin"); err != nil {
		t.Errorf("activating super admin should succeed, got %v", err)
	}
}

func TestDeactivateRegularUser(t *testing.T) {
	svc, userRepo, roleRepo := newUserFixture()
	owner := seedUser(t, userRepo, roleRepo, "owner@studio.test", model.RoleOwner)

	user, err := svc.SetActive(owner.ID, false, "admin")
	if err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if user.IsActive {
		t.Error("user should be inactive")
	}
}

func TestDeleteSuperAdminUserRejected(t *testing.T) {
	svc, userRepo, roleRepo := newUserFixture()
	root := seedUser(t, userRepo, roleRepo, "root@studio.test", model.RoleSuperAdmin)

	if err := svc.DeleteUser(root.ID); !errors.Is(err, apperr.ErrInvariant) {
		t.Fatalf("deleting super admin should be Invariant, got %v", err)
	}
	if _, err := userRepo.FindByID(root.ID); err != nil {
		t.Error("super admin row should still exist")
	}
}

func TestDeleteRegularUser(t *testing.T) {
	svc, userRepo, roleRepo := newUserFixture()
	owner := seedUser(t, userRepo, roleRepo, "owner@studio.test", model.RoleOwner)

	if err := svc.DeleteUser(owner.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := userRepo.FindByID(owner.ID); err == nil {
		t.Error("user row should be gone")
	}
}

func TestDeleteMissingUser(t *testing.T) {
	svc, _, _ := newUserFixture()
	if err := svc.DeleteUser(uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing user should be NotFound, got %v", err)
	}
}
