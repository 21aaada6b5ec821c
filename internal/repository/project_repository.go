package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/studio-pm-api/internal/authz"
	"github.com/yukikurage/studio-pm-api/internal/database"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// editableProjectColumns are written by updates. Milestone columns are only
// written by SetMilestone.
var editableProjectColumns = []string{"name", "client_id", "building_id", "description", "status", "due_date", "updated_at"}

var projectSearchColumns = []string{"projects.name", "projects.description", "clients.name"}

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// inScope restricts column to the projects of scope.
func inScope(column string, scope authz.Scope) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if scope.All {
			return db
		}
		return database.InIDs(column, scope.ProjectIDs)(db)
	}
}

func recordActivity(tx *gorm.DB, userID, projectID uint64) error {
	activity := models.Activity{UserID: userID, ProjectID: projectID, HappenedAt: time.Now()}
	if err := tx.Create(&activity).Error; err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// CreateWithActivity creates a project and records that userID touched it, atomically
func (r *GormProjectRepository) CreateWithActivity(ctx context.Context, project *models.Project, userID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		return recordActivity(tx, userID, project.ID)
	})
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db.WithContext(ctx)

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// UpdateWithActivity saves a project and records that userID touched it, atomically
func (r *GormProjectRepository) UpdateWithActivity(ctx context.Context, project *models.Project, userID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(project).
			Select(editableProjectColumns).
			Updates(project).Error; err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		return recordActivity(tx, userID, project.ID)
	})
}

// Delete removes a project together with the rows that cannot outlive it.
// Notifications and time entries are kept with their project cleared.
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Notification{}).
			Where("project_id = ?", id).
			Update("project_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.TimeEntry{}).
			Where("project_id = ?", id).
			Update("project_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// List searches, sorts and pages the projects inside filter.Scope
func (r *GormProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]models.Project, int64, error) {
	if !filter.Scope.All && len(filter.Scope.ProjectIDs) == 0 {
		return []models.Project{}, 0, nil
	}

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.Project{}).
			Joins("LEFT JOIN clients ON clients.id = projects.client_id").
			Scopes(
				inScope("projects.id", filter.Scope),
				database.Search(filter.Query, projectSearchColumns...),
			)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	if err := base().
		Select("projects.*").
		Order(orderFor(projectSorts, "projects", filter.Sort)).
		Scopes(database.Paginate(utils.NewPaginationParams(filter.Page, filter.PageSize))).
		Preload("Client").
		Preload("Building").
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// ListInScope lists projects inside scope ordered by name
func (r *GormProjectRepository) ListInScope(ctx context.Context, scope authz.Scope, limit int) ([]models.Project, error) {
	var projects []models.Project
	query := r.db.WithContext(ctx).
		Scopes(inScope("id", scope)).
		Order("name ASC, id ASC").
		Preload("Client")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByClient lists the projects of a client
func (r *GormProjectRepository) ListByClient(ctx context.Context, clientID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("name ASC, id ASC").
		Preload("Building").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// RecentlyTouchedBy lists distinct projects with activity by userID, newest first
func (r *GormProjectRepository) RecentlyTouchedBy(ctx context.Context, userID uint64, limit int) ([]models.Project, error) {
	var ids []uint64
	if err := r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("user_id = ?", userID).
		Group("project_id").
		Order("MAX(happened_at) DESC, MAX(id) DESC").
		Limit(limit).
		Pluck("project_id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Project{}, nil
	}

	var found []models.Project
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Preload("Client").
		Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint64]models.Project, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	projects := make([]models.Project, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

// CountEvents counts events that reference a project
func (r *GormProjectRepository) CountEvents(ctx context.Context, projectID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

// SetMilestone writes only the column mapped to milestone, then records activity.
func (r *GormProjectRepository) SetMilestone(ctx context.Context, id uint64, milestone models.Milestone, userID uint64) error {
	column := milestone.Column()
	if column == "" {
		return fmt.Errorf("unknown milestone %q", milestone)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).
			Where("id = ?", id).
			UpdateColumn(column, true).Error; err != nil {
			return fmt.Errorf("set milestone: %w", err)
		}
		return recordActivity(tx, userID, id)
	})
}
