package dto

import (
	"time"

	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/services"
)

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID          uint64       `json:"id"`
	Message     string       `json:"message"`
	IsRead      bool         `json:"is_read"`
	IsBroadcast bool         `json:"is_broadcast"`
	CreatedAt   time.Time    `json:"created_at"`
	SenderID    uint64       `json:"sender_id"`
	Sender      *UserRefDTO  `json:"sender,omitempty"`
	RecipientID *uint64      `json:"recipient_id"`
	ProjectID   *uint64      `json:"project_id"`
	Project     *NamedRefDTO `json:"project,omitempty"`
}

// InboxResponse represents an employee's notifications
type InboxResponse struct {
	Notifications []NotificationDTO `json:"notifications"`
	UnreadCount   int64             `json:"unread_count"`
	Employees     []UserRefDTO      `json:"employees"`
}

// ToNotificationDTO converts a Notification model to NotificationDTO
func ToNotificationDTO(n models.Notification) NotificationDTO {
	out := NotificationDTO{
		ID:          n.ID,
		Message:     n.Message,
		IsRead:      n.IsRead,
		IsBroadcast: n.IsBroadcast(),
		CreatedAt:   n.CreatedAt,
		SenderID:    n.SenderID,
		RecipientID: n.RecipientID,
		ProjectID:   n.ProjectID,
	}
	if n.Sender != nil {
		sender := ToUserRefDTO(*n.Sender)
		out.Sender = &sender
	}
	if n.Project != nil {
		out.Project = &NamedRefDTO{ID: n.Project.ID, Name: n.Project.Name}
	}
	return out
}

// ToInboxResponse converts an inbox
func ToInboxResponse(inbox *services.Inbox) InboxResponse {
	items := make([]NotificationDTO, len(inbox.Notifications))
	for i, n := range inbox.Notifications {
		items[i] = ToNotificationDTO(n)
	}
	return InboxResponse{
		Notifications: items,
		UnreadCount:   inbox.UnreadCount,
		Employees:     toUserRefs(inbox.Employees),
	}
}
