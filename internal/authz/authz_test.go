package authz

import (
	"errors"
	"testing"

	"go-studio-ops/internal/apperr"
	"go-studio-ops/internal/model"
	"go-studio-ops/pkg/token"
)

func ownerClaims(permissions ...string) *token.Claims {
	return &token.Claims{Role: model.RoleOwner, Permissions: permissions}
}

func TestAuthorizeNilClaims(t *testing.T) {
	if err := Authorize(nil, "USER_READ"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("nil claims should be Unauthorized, got %v", err)
	}
}

func TestAuthorizeSuperAdminBypassesPermissions(t *testing.T) {
	// Even with an empty permission set, super admin is always allowed.
	claims := &token.Claims{Role: model.RoleSuperAdmin}
	if err := Authorize(claims, "CLIENT_CREATE", "USER_DELETE", "ANYTHING"); err != nil {
		t.Fatalf("super admin should always be allowed, got %v", err)
	}
}

func TestAuthorizeLegacySuperAdminVariant(t *testing.T) {
	for _, role := range []string{"Super Admin", "super admin", "SUPER_ADMIN", " super_admin "} {
		claims := &token.Claims{Role: role}
		if err := Authorize(claims, "CLIENT_CREATE"); err != nil {
			t.Errorf("role %q should be recognized as super admin, got %v", role, err)
		}
	}
}

func TestAuthorizeEmptyRequiredSet(t *testing.T) {
	if err := Authorize(ownerClaims()); err != nil {
		t.Fatalf("empty required set should allow any authenticated caller, got %v", err)
	}
}

func TestAuthorizeAndSemantics(t *testing.T) {
	claims := ownerClaims("USER_READ", "SHOOT_CREATE")

	if err := Authorize(claims, "USER_READ"); err != nil {
		t.Errorf("held permission denied: %v", err)
	}
	if err := Authorize(claims, "USER_READ", "SHOOT_CREATE"); err != nil {
		t.Errorf("full subset denied: %v", err)
	}

	// Holding one of two required permissions is not enough.
	if err := Authorize(claims, "USER_READ", "CLIENT_CREATE"); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("partial subset should be Forbidden, got %v", err)
	}
	if err := Authorize(claims, "CLIENT_CREATE"); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("missing permission should be Forbidden, got %v", err)
	}
}

func TestRequireSuperAdmin(t *testing.T) {
	if err := RequireSuperAdmin(nil); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("nil claims should be Unauthorized, got %v", err)
	}

	// Holding USER_DELETE is not enough for the second tier.
	if err := RequireSuperAdmin(ownerClaims("USER_DELETE")); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("non-super-admin should be Forbidden, got %v", err)
	}

	if err := RequireSuperAdmin(&token.Claims{Role: "Super Admin"}); err != nil {
		t.Errorf("legacy super admin variant rejected: %v", err)
	}
}
