package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/dto"
	apierrors "github.com/yukikurage/studio-pm-api/internal/errors"
	"github.com/yukikurage/studio-pm-api/internal/services"
)

// NotificationHandler serves the employee inbox and broadcasts.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

type messageRequest struct {
	RecipientID uint64  `form:"recipient_id" json:"recipient_id"`
	ProjectID   *uint64 `form:"project_id" json:"project_id"`
	Message     string  `form:"message" json:"message"`
}

// ListNotifications returns the caller's inbox with its unread count
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	inbox, err := h.notificationService.Inbox(c.Request.Context(), user)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInboxResponse(inbox))
}

// SendNotification sends a direct message to another employee
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req messageRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	notification, err := h.notificationService.Send(c.Request.Context(), user, services.SendInput{
		RecipientID: req.RecipientID,
		ProjectID:   nonZero(req.ProjectID),
		Message:     req.Message,
	})
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Notification sent!",
		"notification": dto.ToNotificationDTO(*notification),
	})
}

// CreateBroadcast posts a message to all employees
func (h *NotificationHandler) CreateBroadcast(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req messageRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	notification, err := h.notificationService.Broadcast(c.Request.Context(), user, services.BroadcastInput{
		ProjectID: nonZero(req.ProjectID),
		Message:   req.Message,
	})
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Notification sent to all employees!",
		"notification": dto.ToNotificationDTO(*notification),
	})
}

// GetNotification returns one inbox item and marks it read
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	notification, err := h.notificationService.Get(c.Request.Context(), user, id)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationDTO(*notification))
}

// MarkRead marks one inbox item read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), user, id); err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead marks the whole inbox read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	count, err := h.notificationService.MarkAllRead(c.Request.Context(), user)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "All notifications marked as read",
		"updated": count,
	})
}

// DeleteNotification removes an inbox item
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), user, id); err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

func respondNotificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMessageRequired):
		apierrors.BadRequest(c, "Message is required!")
	case errors.Is(err, services.ErrInvalidRecipient):
		apierrors.BadRequest(c, "Recipient must be an employee")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.BadRequest(c, "Selected project does not exist")
	case errors.Is(err, services.ErrNotificationNotFound):
		apierrors.NotFound(c, "Notification not found")
	default:
		respondServiceError(c, err, constants.RedirectNotifications)
	}
}
