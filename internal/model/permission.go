package model

// Permission represents a single capability that can be granted through a role
type Permission struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Slug string `gorm:"type:varchar(50);uniqueIndex;not null" json:"slug"` // e.g., "CLIENT_CREATE"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Client"
}

// Default permission catalog for the system
var DefaultPermissions = []Permission{
	// Client management
	{Slug: "CLIENT_READ", Name: "View Client"},
	{Slug: "CLIENT_CREATE", Name: "Create Client"},
	{Slug: "CLIENT_UPDATE", Name: "Update Client"},
	{Slug: "CLIENT_DELETE", Name: "Delete Client"},
	// User management
	{Slug: "USER_READ", Name: "View User"},
	{Slug: "USER_CREATE", Name: "Create User"},
	{Slug: "USER_UPDATE", Name: "Update User"},
	{Slug: "USER_DELETE", Name: "Delete User"},
	// Role management
	{Slug: "ROLE_READ", Name: "View Role"},
	{Slug: "ROLE_CREATE", Name: "Create Role"},
	{Slug: "ROLE_UPDATE", Name: "Update Role"},
	{Slug: "ROLE_DELETE", Name: "Delete Role"},
	// Package templates
	{Slug: "PACKAGE_READ", Name: "View Package"},
	{Slug: "PACKAGE_CREATE", Name: "Create Package"},
	{Slug: "PACKAGE_UPDATE", Name: "Update Package"},
	{Slug: "PACKAGE_DELETE", Name: "Delete Package"},
	// Shoots
	{Slug: "SHOOT_READ", Name: "View Shoot"},
	{Slug: "SHOOT_CREATE", Name: "Create Shoot"},
	{Slug: "SHOOT_UPDATE", Name: "Update Shoot"},
	{Slug: "SHOOT_DELETE", Name: "Delete Shoot"},
	// Payments
	{Slug: "PAYMENT_READ", Name: "View Payment"},
	{Slug: "PAYMENT_CREATE", Name: "Record Payment"},
}
