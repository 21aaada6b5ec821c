package models

import "time"

type ProjectAssignment struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	ProjectID  uint64    `gorm:"not null;uniqueIndex:idx_project_assignments_pair;index" json:"project_id"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_project_assignments_pair;index" json:"user_id"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
