package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/studio-pm-api/internal/authz"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")
	ErrUserHasAssignments = errors.New("user is assigned to projects")
	ErrUserHasActivity    = errors.New("user has activity records")
	ErrAssigneeRequired   = errors.New("please select a user")
	ErrAlreadyAssigned    = errors.New("user is already assigned to this project")
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// AdminService manages accounts and project assignments
type AdminService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	assignRepo  repository.AssignmentRepository
	access      *Access
}

// NewAdminService creates a new AdminService
func NewAdminService(
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	assignRepo repository.AssignmentRepository,
	access *Access,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		assignRepo:  assignRepo,
		access:      access,
	}
}

// Users lists every account
func (s *AdminService) Users(ctx context.Context, user *models.User) ([]models.User, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindUser, authz.ActionView); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Clients lists client accounts that can be assigned to projects
func (s *AdminService) Clients(ctx context.Context, user *models.User) ([]models.User, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindUser, authz.ActionView); err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListByRole(ctx, models.RoleClient)
	if err != nil {
		return nil, fmt.Errorf("failed to list client users: %w", err)
	}
	return users, nil
}

// ChangeRole switches an account between the client and employee roles
func (s *AdminService) ChangeRole(ctx context.Context, user *models.User, targetID uint64, role models.Role) (*models.User, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindUser, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	target, err := s.findUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRole(ctx, target.ID, role); err != nil {
		return nil, fmt.Errorf("failed to change role: %w", err)
	}
	target.Role = role
	return target, nil
}

// DeleteUser removes an account with no assignments and no activity.
// Callers cannot delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, user *models.User, targetID uint64) (*models.User, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindUser, authz.ActionDelete); err != nil {
		return nil, err
	}

	target, err := s.findUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.ID == user.ID {
		return nil, ErrCannotDeleteSelf
	}

	assignments, err := s.assignRepo.CountForUser(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count assignments: %w", err)
	}
	if assignments > 0 {
		return nil, fmt.Errorf("%w: %s is assigned to %d project(s)", ErrUserHasAssignments, target.Name, assignments)
	}

	activities, err := s.userRepo.CountActivities(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}
	if activities > 0 {
		return nil, fmt.Errorf("%w: %s has %d activity record(s)", ErrUserHasActivity, target.Name, activities)
	}

	if err := s.userRepo.Delete(ctx, target.ID); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return target, nil
}

// Assign gives a user access to a project
func (s *AdminService) Assign(ctx context.Context, user *models.User, projectID, targetID uint64) (*models.ProjectAssignment, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindAssignment, authz.ActionManage); err != nil {
		return nil, err
	}
	if targetID == 0 {
		return nil, ErrAssigneeRequired
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	target, err := s.findUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if _, err := s.assignRepo.Find(ctx, project.ID, target.ID); err == nil {
		return nil, ErrAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}

	assignment := &models.ProjectAssignment{ProjectID: project.ID, UserID: target.ID}
	if err := s.assignRepo.Create(ctx, assignment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyAssigned
		}
		return nil, fmt.Errorf("failed to assign user: %w", err)
	}
	assignment.Project = project
	assignment.User = target
	return assignment, nil
}

// Unassign removes a user's access to a project
func (s *AdminService) Unassign(ctx context.Context, user *models.User, projectID, targetID uint64) error {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindAssignment, authz.ActionManage); err != nil {
		return err
	}

	assignment, err := s.assignRepo.Find(ctx, projectID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to find assignment: %w", err)
	}

	if err := s.assignRepo.Delete(ctx, assignment.ID); err != nil {
		return fmt.Errorf("failed to unassign user: %w", err)
	}
	return nil
}

func (s *AdminService) findUser(ctx context.Context, id uint64) (*models.User, error) {
	target, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return target, nil
}
