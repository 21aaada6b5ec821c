package models

import "time"

// Activity is an append-only record that a user touched a project.
type Activity struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	UserID     uint64    `gorm:"not null;index" json:"user_id"`
	ProjectID  uint64    `gorm:"not null;index" json:"project_id"`
	HappenedAt time.Time `gorm:"not null;index" json:"happened_at"`

	// Relations
	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
}
