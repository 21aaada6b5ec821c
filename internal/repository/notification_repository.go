package repository

import (
	"context"

	"github.com/yukikurage/studio-pm-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// inbox keeps broadcasts and messages addressed to userID.
func inbox(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipient_id IS NULL OR recipient_id = ?", userID)
	}
}

// Create creates a new notification
func (r *GormNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(notification).Error
}

// FindByID finds a notification by ID with its sender and project
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uint64) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Project").
		First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// Delete deletes a notification
func (r *GormNotificationRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Notification{}, id).Error
}

// ListInbox lists broadcasts and messages addressed to userID, newest first
func (r *GormNotificationRepository) ListInbox(ctx context.Context, userID uint64) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.WithContext(ctx).
		Scopes(inbox(userID)).
		Order("created_at DESC, id DESC").
		Preload("Sender").
		Preload("Project").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountUnread counts unread items in the inbox of userID
func (r *GormNotificationRepository) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Scopes(inbox(userID)).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one notification read
func (r *GormNotificationRepository) MarkRead(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", id).
		UpdateColumn("is_read", true).Error
}

// MarkAllRead marks every unread item in the inbox of userID read
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Scopes(inbox(userID)).
		Where("is_read = ?", false).
		UpdateColumn("is_read", true)
	return result.RowsAffected, result.Error
}
