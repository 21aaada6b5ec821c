package repository

import (
	"context"

	"github.com/yukikurage/studio-pm-api/internal/models"
	"gorm.io/gorm"
)

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Create creates a new assignment
func (r *GormAssignmentRepository) Create(ctx context.Context, assignment *models.ProjectAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

// Find finds the assignment of userID to projectID
func (r *GormAssignmentRepository) Find(ctx context.Context, projectID, userID uint64) (*models.ProjectAssignment, error) {
	var assignment models.ProjectAssignment
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Delete deletes an assignment
func (r *GormAssignmentRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.ProjectAssignment{}, id).Error
}

// ProjectIDsForUser lists the projects a user is assigned to
func (r *GormAssignmentRepository) ProjectIDsForUser(ctx context.Context, userID uint64) ([]uint64, error) {
	ids := []uint64{}
	err := r.db.WithContext(ctx).
		Model(&models.ProjectAssignment{}).
		Where("user_id = ?", userID).
		Order("project_id ASC").
		Pluck("project_id", &ids).Error
	return ids, err
}

// UsersForProject lists the users assigned to a project
func (r *GormAssignmentRepository) UsersForProject(ctx context.Context, projectID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN project_assignments ON project_assignments.user_id = users.id").
		Where("project_assignments.project_id = ?", projectID).
		Order("users.name ASC, users.id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountForUser counts the assignments of a user
func (r *GormAssignmentRepository) CountForUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProjectAssignment{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
