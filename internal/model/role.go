package model

import "strings"

// Role represents a named bundle of permissions assigned to users
type Role struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"` // SUPER_ADMIN, OWNER
	Description string       `gorm:"type:text" json:"description"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions,omitempty"`
}

// Role names as constants
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleOwner      = "OWNER"
)

// IsSuperAdmin reports whether a role name denotes the privileged
// super-admin role. Older installs stored the display name
// "Super Admin", so comparison normalizes case and spaces.
func IsSuperAdmin(roleName string) bool {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(roleName), " ", "_"))
	return normalized == RoleSuperAdmin
}

// PermissionSlugs returns the slugs of all permissions held by this role
func (r *Role) PermissionSlugs() []string {
	slugs := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		slugs[i] = p.Slug
	}
	return slugs
}

// DefaultRoles defines the roles seeded at startup
var DefaultRoles = []Role{
	{
		Name:        RoleSuperAdmin,
		Description: "Full system access, exempt from permission checks",
	},
	{
		Name:        RoleOwner,
		Description: "Studio owner with day-to-day operational access",
	},
}

// OwnerDefaultPermissions are the slugs granted to the OWNER role at
// seed time. Client creation is deliberately excluded; it is granted
// per-studio by an administrator.
var OwnerDefaultPermissions = []string{
	"USER_READ",
	"CLIENT_READ",
	"PACKAGE_READ",
	"SHOOT_READ",
	"SHOOT_CREATE",
	"SHOOT_UPDATE",
	"PAYMENT_READ",
	"PAYMENT_CREATE",
}
