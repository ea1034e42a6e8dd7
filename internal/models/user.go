package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is stored as its lowercase string form.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleReseller UserRole = "reseller"
	RoleUser     UserRole = "user"
)

// ParseUserRole maps a stored role string to a UserRole. Unknown values fall
// back to RoleUser instead of failing.
func ParseUserRole(s string) UserRole {
	switch s {
	case "admin":
		return RoleAdmin
	case "reseller":
		return RoleReseller
	case "user":
		return RoleUser
	default:
		return RoleUser
	}
}

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	Company      *string   `db:"company" json:"company,omitempty"`
	Timezone     *string   `db:"timezone" json:"timezone,omitempty"`
	AvatarURL    *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	MFAEnabled   bool      `db:"mfa_enabled" json:"mfa_enabled"`
	MFASecret    *string   `db:"mfa_secret" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func (u *User) GetRole() UserRole {
	return ParseUserRole(u.Role)
}

// UserResponse is the API shape of a user, without credential material.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Company    *string   `json:"company"`
	Timezone   *string   `json:"timezone"`
	AvatarURL  *string   `json:"avatar_url"`
	MFAEnabled bool      `json:"mfa_enabled"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Role:       u.Role,
		Company:    u.Company,
		Timezone:   u.Timezone,
		AvatarURL:  u.AvatarURL,
		MFAEnabled: u.MFAEnabled,
		CreatedAt:  u.CreatedAt,
	}
}

type CreateUser struct {
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Role     *string `json:"role"`
	Company  *string `json:"company"`
}

type UpdateUser struct {
	Email     *string `json:"email"`
	Company   *string `json:"company"`
	Timezone  *string `json:"timezone"`
	AvatarURL *string `json:"avatar_url"`
}
