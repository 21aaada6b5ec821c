package models

import "time"

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "Upcoming"
	EventStatusCompleted EventStatus = "Completed"
	EventStatusCancelled EventStatus = "Cancelled"
)

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusUpcoming, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

type Event struct {
	ID        uint64      `gorm:"primarykey" json:"id"`
	Title     string      `gorm:"type:varchar(100);not null" json:"title"`
	EventType string      `gorm:"type:varchar(50)" json:"event_type"`
	Start     time.Time   `gorm:"not null;index" json:"start"`
	End       *time.Time  `json:"end"`
	Status    EventStatus `gorm:"type:varchar(20);not null;default:'Upcoming'" json:"status"`
	Notes     string      `gorm:"type:text" json:"notes"`
	ProjectID *uint64     `gorm:"index" json:"project_id"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	// Relations
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
