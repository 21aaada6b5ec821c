package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/yukikurage/studio-pm-api/internal/authz"
	"github.com/yukikurage/studio-pm-api/internal/metrics"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTimeEntryProjectRequired = errors.New("project and hours are required")
	ErrInvalidHours             = errors.New("hours must be greater than zero")
)

// TimecardService records hours worked against projects
type TimecardService struct {
	timeRepo    repository.TimeEntryRepository
	projectRepo repository.ProjectRepository
	access      *Access
}

// NewTimecardService creates a new TimecardService
func NewTimecardService(timeRepo repository.TimeEntryRepository, projectRepo repository.ProjectRepository, access *Access) *TimecardService {
	return &TimecardService{
		timeRepo:    timeRepo,
		projectRepo: projectRepo,
		access:      access,
	}
}

// Timecard is the caller's own entries and the projects they may log against
type Timecard struct {
	Projects   []models.Project
	Entries    []models.TimeEntry
	TotalHours float64
}

// LogInput is one time entry
type LogInput struct {
	ProjectID   *uint64
	Hours       float64
	Description string
}

// View returns user's entries, newest first, and the projects visible to user
func (s *TimecardService) View(ctx context.Context, user *models.User) (*Timecard, error) {
	scope, err := s.access.Scope(ctx, user)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListInScope(ctx, scope, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	entries, err := s.timeRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}

	var total float64
	for _, e := range entries {
		total += e.Hours
	}

	return &Timecard{Projects: projects, Entries: entries, TotalHours: total}, nil
}

// Log records hours for user against a visible project
func (s *TimecardService) Log(ctx context.Context, user *models.User, input LogInput) (*models.TimeEntry, error) {
	if input.ProjectID == nil {
		return nil, ErrTimeEntryProjectRequired
	}
	if math.IsNaN(input.Hours) || math.IsInf(input.Hours, 0) || input.Hours <= 0 {
		return nil, ErrInvalidHours
	}

	actor, err := s.access.ActorFor(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireMutate(actor, authz.ProjectResource(authz.KindTimeEntry, *input.ProjectID), authz.ActionCreate); err != nil {
		return nil, err
	}

	if _, err := s.projectRepo.FindByID(ctx, *input.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	entry := &models.TimeEntry{
		UserID:      user.ID,
		ProjectID:   input.ProjectID,
		Hours:       input.Hours,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.timeRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to log time: %w", err)
	}

	metrics.HoursLogged.Add(input.Hours)
	log.Printf("Logged %.2fh on project %d for user %d", input.Hours, *input.ProjectID, user.ID)
	return entry, nil
}
