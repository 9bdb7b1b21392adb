package model

import "time"

// Role is the authorization role attached to a user and carried in the session.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleHR        Role = "HR"
	RoleApplicant Role = "APPLICANT"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleApplicant:
		return true
	}
	return false
}

// User represents an authenticated user in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"size:20;not null;default:'APPLICANT';index"`
	Image        *string   `json:"image" gorm:"size:512"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
