package models

import (
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleClient
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"type:varchar(120);not null" json:"name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'client'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Assignments []ProjectAssignment `gorm:"foreignKey:UserID" json:"-"`
	Activities  []Activity          `gorm:"foreignKey:UserID" json:"-"`
}

// IsEmployee reports whether the user holds the employee role.
func (u User) IsEmployee() bool {
	return u.Role == RoleEmployee
}
