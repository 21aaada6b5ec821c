package models

import "time"

// Notification is an inbox message. A nil RecipientID is a broadcast to every employee.
type Notification struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	SenderID    uint64    `gorm:"not null;index" json:"sender_id"`
	RecipientID *uint64   `gorm:"index" json:"recipient_id"`
	ProjectID   *uint64   `gorm:"index" json:"project_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`

	// Relations
	Sender    *User    `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *User    `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
	Project   *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// IsBroadcast reports whether the notification is addressed to all employees.
func (n Notification) IsBroadcast() bool {
	return n.RecipientID == nil
}

// VisibleTo reports whether the notification belongs to the inbox of userID.
func (n Notification) VisibleTo(userID uint64) bool {
	return n.RecipientID == nil || *n.RecipientID == userID
}
