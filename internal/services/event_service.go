package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/studio-pm-api/internal/authz"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrEventTitleRequired  = errors.New("title and start are required")
	ErrEventEndBeforeStart = errors.New("event end is before its start")
	ErrInvalidEventStatus  = errors.New("invalid event status")
)

// EventService handles event business logic
type EventService struct {
	eventRepo   repository.EventRepository
	projectRepo repository.ProjectRepository
	access      *Access
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository, projectRepo repository.ProjectRepository, access *Access) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		projectRepo: projectRepo,
		access:      access,
	}
}

// EventInput represents the editable fields of an event
type EventInput struct {
	Title     string
	EventType string
	ProjectID *uint64
	Start     *time.Time
	End       *time.Time
	Status    models.EventStatus
	Notes     string
}

// EventList holds the events and projects visible to a user
type EventList struct {
	Events   []models.Event
	Projects []models.Project
}

// List returns the events visible to user, newest first, with the visible projects
func (s *EventService) List(ctx context.Context, user *models.User) (*EventList, error) {
	scope, err := s.access.Scope(ctx, user)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.List(ctx, repository.EventFilter{Scope: scope})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	projects, err := s.projectRepo.ListInScope(ctx, scope, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return &EventList{Events: events, Projects: projects}, nil
}

// Create creates an event
func (s *EventService) Create(ctx context.Context, user *models.User, input EventInput) (*models.Event, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindEvent, authz.ActionCreate); err != nil {
		return nil, err
	}

	event := &models.Event{Status: models.EventStatusUpcoming}
	if err := s.apply(ctx, event, input); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// Update replaces the editable fields of an event. An empty status keeps the current one.
func (s *EventService) Update(ctx context.Context, user *models.User, id uint64, input EventInput) (*models.Event, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindEvent, authz.ActionUpdate); err != nil {
		return nil, err
	}

	event, err := s.findEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, event, input); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

// Delete removes an event
func (s *EventService) Delete(ctx context.Context, user *models.User, id uint64) error {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindEvent, authz.ActionDelete); err != nil {
		return err
	}

	if _, err := s.findEvent(ctx, id); err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (s *EventService) findEvent(ctx context.Context, id uint64) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return event, nil
}

func (s *EventService) apply(ctx context.Context, event *models.Event, input EventInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.Start == nil {
		return ErrEventTitleRequired
	}
	if input.End != nil && input.End.Before(*input.Start) {
		return ErrEventEndBeforeStart
	}

	status := input.Status
	if status == "" {
		status = event.Status
	}
	if !status.Valid() {
		return ErrInvalidEventStatus
	}

	if input.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(ctx, *input.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("failed to find project: %w", err)
		}
	}

	event.Title = title
	event.EventType = strings.TrimSpace(input.EventType)
	event.ProjectID = input.ProjectID
	event.Start = *input.Start
	event.End = input.End
	event.Status = status
	event.Notes = strings.TrimSpace(input.Notes)
	event.Project = nil
	return nil
}
