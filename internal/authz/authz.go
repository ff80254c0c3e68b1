// Package authz is the authorization decision point. Every mutating
// operation passes through Authorize before reaching a service.
// Decisions are pure functions over the token's embedded permission
// snapshot; no database access.
package authz

import (
	"go-studio-ops/internal/apperr"
	"go-studio-ops/internal/model"
	"go-studio-ops/pkg/token"
)

// Authorize returns nil when the claims grant every required slug.
// SUPER_ADMIN bypasses the permission set entirely. An empty required
// set allows any authenticated caller.
func Authorize(claims *token.Claims, required ...string) error {
	if claims == nil {
		return apperr.Unauthorizedf("missing or invalid token")
	}
	if model.IsSuperAdmin(claims.Role) {
		return nil
	}
	if len(required) == 0 {
		return nil
	}
	held := make(map[string]bool, len(claims.Permissions))
	for _, p := range claims.Permissions {
		held[p] = true
	}
	for _, slug := range required {
		if !held[slug] {
			return apperr.Forbiddenf("requires %q permission", slug)
		}
	}
	return nil
}

// RequireSuperAdmin is the second authorization tier for destructive
// operations: the caller's role must literally be SUPER_ADMIN, holding
// the relevant permission is not enough.
func RequireSuperAdmin(claims *token.Claims) error {
	if claims == nil {
		return apperr.Unauthorizedf("missing or invalid token")
	}
	if !model.IsSuperAdmin(claims.Role) {
		return apperr.Forbiddenf("super admin role required")
	}
	return nil
}
