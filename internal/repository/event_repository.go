package repository

import (
	"context"

	"github.com/yukikurage/studio-pm-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error
}

func (r *GormEventRepository) FindByID(ctx context.Context, id uint64) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Preload("Project").First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *GormEventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(event).Error
}

func (r *GormEventRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Event{}, id).Error
}

// List lists events inside filter.Scope. Clients never see events without a project.
func (r *GormEventRepository) List(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	if !filter.Scope.All && len(filter.Scope.ProjectIDs) == 0 {
		return []models.Event{}, nil
	}

	query := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Scopes(inScope("events.project_id", filter.Scope))

	if filter.ProjectID != nil {
		query = query.Where("events.project_id = ?", *filter.ProjectID)
	}
	if filter.StartsBy != nil {
		query = query.Where("events.start <= ?", *filter.StartsBy)
	}
	if filter.StartsAfter != nil {
		query = query.Where("events.start > ?", *filter.StartsAfter)
	}

	if filter.Ascending {
		query = query.Order("events.start ASC, events.id ASC")
	} else {
		query = query.Order("events.start DESC, events.id DESC")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var events []models.Event
	if err := query.Preload("Project").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
