package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email       string     `json:"email" db:"email" example:"socio@integria.org"`                           // User's email address
	Password    string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	FirstName   string     `json:"firstName" db:"first_name" example:"Ane"`                                 // User's first name
	LastName    string     `json:"lastName" db:"last_name" example:"Etxeberria"`                            // User's last name
	Phone       *string    `json:"phone,omitempty" db:"phone" example:"+34600111222"`                       // Contact phone (nullable)
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2025-01-01T10:00:00Z"`                // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2025-01-02T15:30:00Z"`                // Timestamp when the user was last updated
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"MEMBER"`                                // User's role (MEMBER, MONITOR, PROFESSOR or MANAGER)
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`                                  // Whether the user account is active
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2025-04-20T18:00:00Z"` // Timestamp of the last login (nullable)
}

// FullName returns the display name used in enrollment and attendance listings.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
