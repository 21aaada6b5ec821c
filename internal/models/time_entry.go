package models

import "time"

type TimeEntry struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	ProjectID   *uint64   `gorm:"index" json:"project_id"`
	Hours       float64   `gorm:"not null" json:"hours"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	Timestamp   time.Time `gorm:"autoCreateTime" json:"timestamp"`

	// Relations
	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
