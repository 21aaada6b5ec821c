package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/studio-pm-api/internal/authz"
	"github.com/yukikurage/studio-pm-api/internal/metrics"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrMessageRequired      = errors.New("message is required")
	ErrInvalidRecipient     = errors.New("recipient must be an existing employee")
)

// NotificationService routes broadcasts and direct messages between users
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	projectRepo      repository.ProjectRepository
	access           *Access
	now              func() time.Time
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	access *Access,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		projectRepo:      projectRepo,
		access:           access,
		now:              time.Now,
	}
}

// Inbox is an employee's notifications together with the send-to choices
type Inbox struct {
	Notifications []models.Notification
	UnreadCount   int64
	Employees     []models.User
}

// SendInput is a direct message from one employee to another
type SendInput struct {
	RecipientID uint64
	ProjectID   *uint64
	Message     string
}

// BroadcastInput is a message to every employee
type BroadcastInput struct {
	ProjectID *uint64
	Message   string
}

// Inbox lists broadcasts and messages addressed to user, newest first
func (s *NotificationService) Inbox(ctx context.Context, user *models.User) (*Inbox, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindNotification, authz.ActionView); err != nil {
		return nil, err
	}

	notifications, err := s.notificationRepo.ListInbox(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := s.notificationRepo.CountUnread(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	employees, err := s.userRepo.ListByRole(ctx, models.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return &Inbox{Notifications: notifications, UnreadCount: unread, Employees: employees}, nil
}

// UnreadCount counts unread items in user's inbox; it is zero for clients.
func (s *NotificationService) UnreadCount(ctx context.Context, user *models.User) (int64, error) {
	if !user.IsEmployee() {
		return 0, nil
	}
	count, err := s.notificationRepo.CountUnread(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// Send delivers a direct message to another employee
func (s *NotificationService) Send(ctx context.Context, user *models.User, input SendInput) (*models.Notification, error) {
	actor, err := s.access.requireEmployee(ctx, user, authz.KindNotification, authz.ActionCreate)
	if err != nil {
		return nil, err
	}

	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrMessageRequired
	}

	recipient, err := s.userRepo.FindByID(ctx, input.RecipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRecipient
		}
		return nil, fmt.Errorf("failed to find recipient: %w", err)
	}
	if !recipient.IsEmployee() {
		return nil, ErrInvalidRecipient
	}

	if err := s.checkProject(ctx, actor, input.ProjectID, authz.ActionCreate); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		SenderID:    user.ID,
		RecipientID: &recipient.ID,
		ProjectID:   input.ProjectID,
		Message:     message,
		CreatedAt:   s.now(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to send notification: %w", err)
	}

	metrics.NotificationsSent.WithLabelValues("direct").Inc()
	return notification, nil
}

// Broadcast posts a message to every employee. Any authenticated user may
// broadcast; a referenced project must be visible to the author.
func (s *NotificationService) Broadcast(ctx context.Context, user *models.User, input BroadcastInput) (*models.Notification, error) {
	actor, err := s.access.ActorFor(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireMutate(actor, authz.Resource{Kind: authz.KindNotification}, authz.ActionBroadcast); err != nil {
		return nil, err
	}

	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrMessageRequired
	}

	if err := s.checkProject(ctx, actor, input.ProjectID, authz.ActionBroadcast); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		SenderID:  user.ID,
		ProjectID: input.ProjectID,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	metrics.NotificationsSent.WithLabelValues("broadcast").Inc()
	return notification, nil
}

// Get returns one notification from user's inbox and marks it read
func (s *NotificationService) Get(ctx context.Context, user *models.User, id uint64) (*models.Notification, error) {
	notification, err := s.inboxItem(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if !notification.IsRead {
		if err := s.notificationRepo.MarkRead(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to mark notification read: %w", err)
		}
		notification.IsRead = true
	}
	return notification, nil
}

// MarkRead marks one notification in user's inbox read. Repeating it is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, user *models.User, id uint64) error {
	notification, err := s.inboxItem(ctx, user, id)
	if err != nil {
		return err
	}
	if notification.IsRead {
		return nil
	}
	if err := s.notificationRepo.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread item in user's inbox read and reports how many changed
func (s *NotificationService) MarkAllRead(ctx context.Context, user *models.User) (int64, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindNotification, authz.ActionUpdate); err != nil {
		return 0, err
	}

	count, err := s.notificationRepo.MarkAllRead(ctx, user.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return count, nil
}

// Delete removes a notification from user's inbox
func (s *NotificationService) Delete(ctx context.Context, user *models.User, id uint64) error {
	if _, err := s.inboxItem(ctx, user, id); err != nil {
		return err
	}
	if err := s.notificationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// inboxItem loads a notification and checks it belongs to user's inbox.
func (s *NotificationService) inboxItem(ctx context.Context, user *models.User, id uint64) (*models.Notification, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindNotification, authz.ActionView); err != nil {
		return nil, err
	}

	notification, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	if !notification.VisibleTo(user.ID) {
		return nil, ErrForbidden
	}
	return notification, nil
}

// checkProject validates an optional project reference on a notification.
func (s *NotificationService) checkProject(ctx context.Context, actor authz.Actor, projectID *uint64, action authz.Action) error {
	if projectID == nil {
		return nil
	}
	if err := s.access.RequireMutate(actor, authz.ProjectResource(authz.KindNotification, *projectID), action); err != nil {
		return err
	}
	if _, err := s.projectRepo.FindByID(ctx, *projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	return nil
}
