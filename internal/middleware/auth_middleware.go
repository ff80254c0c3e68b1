package middleware

import (
	"errors"
	"strings"

	"go-studio-ops/internal/apperr"
	"go-studio-ops/internal/authz"
	"go-studio-ops/internal/obs"
	"go-studio-ops/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// RequireAuth validates the bearer token and stashes its claims in the
// request context. The token is self-contained: no database lookup
// happens here, so a role edit only takes effect when the holder's
// token is reissued.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := token.Validate(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals(claimsKey, claims)
		c.Locals("user_id", claims.UserID.String())
		c.Locals("user_email", claims.Email)

		return c.Next()
	}
}

// Claims returns the token claims set by RequireAuth, or nil
func Claims(c *fiber.Ctx) *token.Claims {
	claims, _ := c.Locals(claimsKey).(*token.Claims)
	return claims
}

// RequirePermissions allows the request only when the caller holds
// EVERY listed permission. SUPER_ADMIN bypasses the check entirely.
func RequirePermissions(slugs ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authz.Authorize(Claims(c), slugs...); err != nil {
			obs.AuthzDenialsTotal.Inc()
			return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": userMessage(err)})
		}
		return c.Next()
	}
}

// RequireSuperAdmin is the second authorization tier for destructive
// operations: holding the permission is not enough, the caller's role
// must literally be SUPER_ADMIN.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authz.RequireSuperAdmin(Claims(c)); err != nil {
			obs.AuthzDenialsTotal.Inc()
			return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": userMessage(err)})
		}
		return c.Next()
	}
}

func userMessage(err error) string {
	if errors.Is(err, apperr.ErrUnauthorized) {
		return "Unauthorized"
	}
	return err.Error()
}
