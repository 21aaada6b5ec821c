package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yukikurage/studio-pm-api/internal/authz"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/metrics"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/repository"
	"github.com/yukikurage/studio-pm-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectNameRequired  = errors.New("project name is required")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrProjectHasEvents     = errors.New("project has events")
	ErrInvalidMilestone     = errors.New("invalid milestone")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo  repository.ProjectRepository
	clientRepo   repository.ClientRepository
	buildingRepo repository.BuildingRepository
	eventRepo    repository.EventRepository
	assignRepo   repository.AssignmentRepository
	timeRepo     repository.TimeEntryRepository
	access       *Access
	now          func() time.Time
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo repository.ProjectRepository,
	clientRepo repository.ClientRepository,
	buildingRepo repository.BuildingRepository,
	eventRepo repository.EventRepository,
	assignRepo repository.AssignmentRepository,
	timeRepo repository.TimeEntryRepository,
	access *Access,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		clientRepo:   clientRepo,
		buildingRepo: buildingRepo,
		eventRepo:    eventRepo,
		assignRepo:   assignRepo,
		timeRepo:     timeRepo,
		access:       access,
		now:          time.Now,
	}
}

// ProjectInput represents the editable fields of a project
type ProjectInput struct {
	Name        string
	ClientID    *uint64
	BuildingID  *uint64
	Description string
	Status      models.ProjectStatus
	DueDate     *time.Time
}

// ProjectList is one page of projects
type ProjectList struct {
	Projects []models.Project
	Page     utils.Page
}

// ProjectStats summarizes a project for its detail view
type ProjectStats struct {
	TotalEvents    int
	UpcomingEvents int
	DaysUntilDue   *int
	Status         models.ProjectStatus
}

// ProjectDetail is a project with everything its detail view shows
type ProjectDetail struct {
	Project       *models.Project
	Events        []models.Event
	AssignedUsers []models.User
	TimeEntries   []models.TimeEntry
	TotalHours    float64
	Stats         ProjectStats
	Milestones    MilestoneState
}

// MilestoneState is the milestone flags of one project after an update
type MilestoneState struct {
	ProjectID uint64
	M1        bool
	M2        bool
	M3        bool
	Completed models.Milestone
}

// ProjectOptions are the choices offered when editing a project
type ProjectOptions struct {
	Clients   []models.Client
	Buildings []models.Building
}

func milestoneState(p *models.Project) MilestoneState {
	return MilestoneState{
		ProjectID: p.ID,
		M1:        p.ProposalSent,
		M2:        p.SurveyCompleted,
		M3:        p.AsBuiltFinished,
	}
}

// List returns one page of the projects visible to user
func (s *ProjectService) List(ctx context.Context, user *models.User, params utils.ListParams) (*ProjectList, error) {
	scope, err := s.access.Scope(ctx, user)
	if err != nil {
		return nil, err
	}

	projects, total, err := s.projectRepo.List(ctx, repository.ProjectFilter{
		ListFilter: repository.ListFilter{
			Query:    params.Query,
			Sort:     params.Sort,
			Page:     params.Page,
			PageSize: constants.ProjectsPageSize,
		},
		Scope: scope,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return &ProjectList{
		Projects: projects,
		Page:     utils.NewPage(params.Page, constants.ProjectsPageSize, total),
	}, nil
}

// Get returns a project with its events, assignments, hours and stats.
// Clients asking for a project outside their assignments get ErrForbidden
// whether or not the project exists.
func (s *ProjectService) Get(ctx context.Context, user *models.User, id uint64) (*ProjectDetail, error) {
	actor, err := s.access.ActorFor(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireView(actor, authz.ProjectResource(authz.KindProject, id)); err != nil {
		return nil, err
	}

	project, err := s.findProject(ctx, id, "Client", "Building")
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.List(ctx, repository.EventFilter{Scope: authz.Scope{All: true}, ProjectID: &id})
	if err != nil {
		return nil, fmt.Errorf("failed to list project events: %w", err)
	}

	assigned, err := s.assignRepo.UsersForProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned users: %w", err)
	}

	entries, err := s.timeRepo.ListByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}

	now := s.now()
	upcoming := 0
	for _, e := range events {
		if e.Start.After(now) {
			upcoming++
		}
	}

	var total float64
	for _, e := range entries {
		total += e.Hours
	}

	return &ProjectDetail{
		Project:       project,
		Events:        events,
		AssignedUsers: assigned,
		TimeEntries:   entries,
		TotalHours:    total,
		Stats: ProjectStats{
			TotalEvents:    len(events),
			UpcomingEvents: upcoming,
			DaysUntilDue:   project.DaysUntilDue(now),
			Status:         project.Status,
		},
		Milestones: milestoneState(project),
	}, nil
}

// Options lists the clients and buildings a project can reference
func (s *ProjectService) Options(ctx context.Context, user *models.User) (*ProjectOptions, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindProject, authz.ActionUpdate); err != nil {
		return nil, err
	}

	clients, err := s.clientRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	buildings, err := s.buildingRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}

	return &ProjectOptions{Clients: clients, Buildings: buildings}, nil
}

// Create creates a project and records the creator's activity
func (s *ProjectService) Create(ctx context.Context, user *models.User, input ProjectInput) (*models.Project, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindProject, authz.ActionCreate); err != nil {
		return nil, err
	}

	project := &models.Project{Status: models.ProjectStatusPlanned}
	if err := s.apply(ctx, project, input); err != nil {
		return nil, err
	}

	if err := s.projectRepo.CreateWithActivity(ctx, project, user.ID); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// Update replaces the editable fields of a project and records activity.
// An empty status keeps the current one.
func (s *ProjectService) Update(ctx context.Context, user *models.User, id uint64, input ProjectInput) (*models.Project, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindProject, authz.ActionUpdate); err != nil {
		return nil, err
	}

	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, project, input); err != nil {
		return nil, err
	}

	if err := s.projectRepo.UpdateWithActivity(ctx, project, user.ID); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// Delete removes a project that has no events.
// The event check and the delete are separate statements.
func (s *ProjectService) Delete(ctx context.Context, user *models.User, id uint64) error {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindProject, authz.ActionDelete); err != nil {
		return err
	}

	if _, err := s.findProject(ctx, id); err != nil {
		return err
	}

	count, err := s.projectRepo.CountEvents(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count project events: %w", err)
	}
	if count > 0 {
		return ErrProjectHasEvents
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// SetMilestone marks one milestone of a project complete. Completing an
// already complete milestone succeeds without change; there is no way back.
func (s *ProjectService) SetMilestone(ctx context.Context, user *models.User, id uint64, key string) (*MilestoneState, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindProject, authz.ActionUpdate); err != nil {
		return nil, err
	}

	milestone, ok := models.ParseMilestone(key)
	if !ok {
		return nil, ErrInvalidMilestone
	}

	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}
	wasDone := project.MilestoneDone(milestone)

	if err := s.projectRepo.SetMilestone(ctx, id, milestone, user.ID); err != nil {
		return nil, fmt.Errorf("failed to set milestone: %w", err)
	}

	updated, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if !wasDone {
		metrics.MilestonesCompleted.WithLabelValues(string(milestone)).Inc()
		log.Printf("Milestone %s (%s) completed on project %d by user %d", milestone, milestone.Label(), id, user.ID)
	}

	state := milestoneState(updated)
	state.Completed = milestone
	return &state, nil
}

func (s *ProjectService) findProject(ctx context.Context, id uint64, preload ...string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// apply validates input and copies it onto project.
func (s *ProjectService) apply(ctx context.Context, project *models.Project, input ProjectInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrProjectNameRequired
	}

	status := input.Status
	if status == "" {
		status = project.Status
	}
	if !status.Valid() {
		return ErrInvalidProjectStatus
	}

	if input.ClientID != nil {
		if _, err := s.clientRepo.FindByID(ctx, *input.ClientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClientNotFound
			}
			return fmt.Errorf("failed to find client: %w", err)
		}
	}
	if input.BuildingID != nil {
		if _, err := s.buildingRepo.FindByID(ctx, *input.BuildingID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBuildingNotFound
			}
			return fmt.Errorf("failed to find building: %w", err)
		}
	}

	project.Name = name
	project.ClientID = input.ClientID
	project.BuildingID = input.BuildingID
	project.Description = strings.TrimSpace(input.Description)
	project.Status = status
	project.DueDate = nil
	if input.DueDate != nil {
		project.DueDate = models.NewDate(*input.DueDate)
	}
	// Relations may be stale after the ids change
	project.Client = nil
	project.Building = nil
	return nil
}
