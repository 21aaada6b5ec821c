package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/repository"
)

// DashboardService assembles the landing view for a user
type DashboardService struct {
	projectRepo   repository.ProjectRepository
	eventRepo     repository.EventRepository
	notifications *NotificationService
	access        *Access
	now           func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	projectRepo repository.ProjectRepository,
	eventRepo repository.EventRepository,
	notifications *NotificationService,
	access *Access,
) *DashboardService {
	return &DashboardService{
		projectRepo:   projectRepo,
		eventRepo:     eventRepo,
		notifications: notifications,
		access:        access,
		now:           time.Now,
	}
}

// Dashboard is the landing view
type Dashboard struct {
	RecentProjects      []models.Project
	RecentEvents        []models.Event
	FutureEvents        []models.Event
	UnreadNotifications int64
}

// MenuEntry is one item of the main menu
type MenuEntry struct {
	Label string
	Path  string
}

// Dashboard returns recent projects and the events around now.
// Employees see the projects they touched last; clients see their assignments.
func (s *DashboardService) Dashboard(ctx context.Context, user *models.User) (*Dashboard, error) {
	scope, err := s.access.Scope(ctx, user)
	if err != nil {
		return nil, err
	}

	var projects []models.Project
	if user.IsEmployee() {
		projects, err = s.projectRepo.RecentlyTouchedBy(ctx, user.ID, constants.DashboardRecentProjects)
	} else {
		projects, err = s.projectRepo.ListInScope(ctx, scope, constants.DashboardRecentProjects)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list recent projects: %w", err)
	}

	now := s.now()
	recent, err := s.eventRepo.List(ctx, repository.EventFilter{
		Scope:    scope,
		StartsBy: &now,
		Limit:    constants.DashboardEventLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent events: %w", err)
	}

	future, err := s.eventRepo.List(ctx, repository.EventFilter{
		Scope:       scope,
		StartsAfter: &now,
		Ascending:   true,
		Limit:       constants.DashboardEventLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list future events: %w", err)
	}

	unread, err := s.notifications.UnreadCount(ctx, user)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		RecentProjects:      projects,
		RecentEvents:        recent,
		FutureEvents:        future,
		UnreadNotifications: unread,
	}, nil
}

var (
	commonMenu = []MenuEntry{
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "Projects", Path: "/projects"},
		{Label: "Events", Path: "/events"},
		{Label: "Timecard", Path: "/timecard"},
	}
	employeeMenu = []MenuEntry{
		{Label: "Clients", Path: "/clients"},
		{Label: "Buildings", Path: "/buildings"},
		{Label: "Notifications", Path: "/notifications"},
		{Label: "Users", Path: "/admin/users"},
	}
)

// Menu returns the main menu entries available to user's role
func (s *DashboardService) Menu(user *models.User) []MenuEntry {
	menu := make([]MenuEntry, 0, len(commonMenu)+len(employeeMenu))
	menu = append(menu, commonMenu...)
	if user.IsEmployee() {
		menu = append(menu, employeeMenu...)
	}
	return menu
}
