package dto

import "time"

// UserProfile is the profile payload for the authenticated user.
type UserProfile struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Phone       *string    `json:"phone,omitempty"`
	RoleType    string     `json:"roleType" example:"MONITOR"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// UpdateProfileRequest updates the caller's own basic profile fields.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=100"`
	LastName  string `json:"lastName" binding:"required,min=2,max=100"`
	Phone     string `json:"phone,omitempty"`
}

// ChangeRoleRequest is the manager-only payload to change a user's role.
type ChangeRoleRequest struct {
	RoleType string `json:"roleType" binding:"required,oneof=MEMBER MONITOR PROFESSOR MANAGER"`
}
