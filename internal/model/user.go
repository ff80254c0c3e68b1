package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an authenticated user in the system
type User struct {
	BaseModel
	Email              string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password           string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName           string `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	PhoneNumber        string `gorm:"type:varchar(20)" json:"phone_number"`
	RoleID             *uint  `gorm:"index" json:"role_id"`
	Role               *Role  `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsActive           bool   `gorm:"default:true" json:"is_active"`
	MustChangePassword bool   `gorm:"default:false" json:"must_change_password"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// RoleName returns the user's role name, or empty if none assigned
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// PermissionSlugs returns the permission slugs granted through the user's role
func (u *User) PermissionSlugs() []string {
	if u.Role == nil {
		return []string{}
	}
	return u.Role.PermissionSlugs()
}

// IsSuperAdminUser reports whether the user holds the super-admin role
func (u *User) IsSuperAdminUser() bool {
	return u.Role != nil && IsSuperAdmin(u.Role.Name)
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	PhoneNumber        string    `json:"phone_number"`
	RoleID             *uint     `json:"role_id,omitempty"`
	Role               *Role     `json:"role,omitempty"`
	IsActive           bool      `json:"is_active"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		FullName:           u.FullName,
		PhoneNumber:        u.PhoneNumber,
		RoleID:             u.RoleID,
		Role:               u.Role,
		IsActive:           u.IsActive,
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt,
	}
}
