// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the persisted authorization role of a user account.
type Role string

const (
	// RoleUser is the standard role assigned at signup.
	RoleUser Role = "user"
	// RoleAdmin is the elevated role; only granted through seeding or
	// explicit administration, never inferred from the username.
	RoleAdmin Role = "admin"
)

// User represents a registered account on the board.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      Role           `gorm:"not null;default:user" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Questions []Question     `gorm:"foreignKey:AuthorID" json:"questions,omitempty"`
}

// IsAdmin reports whether the user carries the elevated role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
