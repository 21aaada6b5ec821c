package repository

import (
	"context"

	"github.com/yukikurage/studio-pm-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTimeEntryRepository is a GORM implementation of TimeEntryRepository
type GormTimeEntryRepository struct {
	db *gorm.DB
}

// NewTimeEntryRepository creates a new TimeEntryRepository
func NewTimeEntryRepository(db *gorm.DB) TimeEntryRepository {
	return &GormTimeEntryRepository{db: db}
}

func (r *GormTimeEntryRepository) Create(ctx context.Context, entry *models.TimeEntry) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error
}

// ListByUser lists the entries of a user, newest first
func (r *GormTimeEntryRepository) ListByUser(ctx context.Context, userID uint64) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Preload("Project").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByProject lists the entries logged against a project, newest first
func (r *GormTimeEntryRepository) ListByProject(ctx context.Context, projectID uint64) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("timestamp DESC, id DESC").
		Preload("User").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
