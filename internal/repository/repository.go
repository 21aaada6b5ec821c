package repository

import (
	"context"
	"time"

	"github.com/yukikurage/studio-pm-api/internal/authz"
	"github.com/yukikurage/studio-pm-api/internal/models"
)

// ListFilter holds the search, sort and window shared by every listing.
type ListFilter struct {
	Query    string
	Sort     string
	Page     int
	PageSize int
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	ListFilter
	Scope authz.Scope
}

// EventFilter holds filtering options for listing events
type EventFilter struct {
	Scope     authz.Scope
	ProjectID *uint64

	// StartsBy keeps events starting at or before the time
	StartsBy *time.Time
	// StartsAfter keeps events starting strictly after the time
	StartsAfter *time.Time

	// Ascending orders by start ascending instead of descending
	Ascending bool
	Limit     int
}

// ClientWithCount is a client row together with the number of its projects.
type ClientWithCount struct {
	models.Client
	ProjectCount int64 `json:"project_count"`
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email, ignoring case
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByLogin finds a user whose email or name matches identifier, ignoring case
	FindByLogin(ctx context.Context, identifier string) (*models.User, error)

	// List lists all users ordered by name
	List(ctx context.Context) ([]models.User, error)

	// ListByRole lists users holding role ordered by name
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)

	// UpdateRole changes the role of a user
	UpdateRole(ctx context.Context, id uint64, role models.Role) error

	// Delete deletes a user
	Delete(ctx context.Context, id uint64) error

	// CountActivities counts activity rows recorded for a user
	CountActivities(ctx context.Context, userID uint64) (int64, error)
}

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	FindByID(ctx context.Context, id uint64) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id uint64) error

	// List searches, sorts and pages clients, attaching project counts
	List(ctx context.Context, filter ListFilter) ([]ClientWithCount, int64, error)

	// ListAll lists every client ordered by name
	ListAll(ctx context.Context) ([]models.Client, error)

	// CountProjects counts projects that reference a client
	CountProjects(ctx context.Context, clientID uint64) (int64, error)
}

// BuildingRepository defines the interface for building data access
type BuildingRepository interface {
	Create(ctx context.Context, building *models.Building) error
	FindByID(ctx context.Context, id uint64) (*models.Building, error)
	Update(ctx context.Context, building *models.Building) error
	Delete(ctx context.Context, id uint64) error

	// List searches, sorts and pages buildings
	List(ctx context.Context, filter ListFilter) ([]models.Building, int64, error)

	// ListAll lists every building ordered by name
	ListAll(ctx context.Context) ([]models.Building, error)

	// CountProjects counts projects located in a building
	CountProjects(ctx context.Context, buildingID uint64) (int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithActivity creates a project and records that userID touched it, atomically
	CreateWithActivity(ctx context.Context, project *models.Project, userID uint64) error

	// FindByID finds a project by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error)

	// UpdateWithActivity saves a project and records that userID touched it, atomically
	UpdateWithActivity(ctx context.Context, project *models.Project, userID uint64) error

	// Delete removes a project, its activities and assignments, and detaches
	// notifications and time entries, in one transaction
	Delete(ctx context.Context, id uint64) error

	// List searches, sorts and pages the projects inside filter.Scope
	List(ctx context.Context, filter ProjectFilter) ([]models.Project, int64, error)

	// ListInScope lists projects inside scope ordered by name; limit <= 0 means no limit
	ListInScope(ctx context.Context, scope authz.Scope, limit int) ([]models.Project, error)

	// ListByClient lists the projects of a client
	ListByClient(ctx context.Context, clientID uint64) ([]models.Project, error)

	// RecentlyTouchedBy lists distinct projects with activity by userID, newest first
	RecentlyTouchedBy(ctx context.Context, userID uint64, limit int) ([]models.Project, error)

	// CountEvents counts events that reference a project
	CountEvents(ctx context.Context, projectID uint64) (int64, error)

	// SetMilestone marks one milestone complete and records activity, atomically.
	// Only the column mapped to milestone is written.
	SetMilestone(ctx context.Context, id uint64, milestone models.Milestone, userID uint64) error
}

// AssignmentRepository defines the interface for project assignment data access
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.ProjectAssignment) error
	Find(ctx context.Context, projectID, userID uint64) (*models.ProjectAssignment, error)
	Delete(ctx context.Context, id uint64) error

	// ProjectIDsForUser lists the projects a user is assigned to
	ProjectIDsForUser(ctx context.Context, userID uint64) ([]uint64, error)

	// UsersForProject lists the users assigned to a project
	UsersForProject(ctx context.Context, projectID uint64) ([]models.User, error)

	// CountForUser counts the assignments of a user
	CountForUser(ctx context.Context, userID uint64) (int64, error)
}

// EventRepository defines the interface for event data access
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint64) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint64) error

	// List lists events inside filter.Scope, newest start first unless filter.Ascending
	List(ctx context.Context, filter EventFilter) ([]models.Event, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByID(ctx context.Context, id uint64) (*models.Notification, error)
	Delete(ctx context.Context, id uint64) error

	// ListInbox lists broadcasts and messages addressed to userID, newest first
	ListInbox(ctx context.Context, userID uint64) ([]models.Notification, error)

	// CountUnread counts unread items in the inbox of userID
	CountUnread(ctx context.Context, userID uint64) (int64, error)

	// MarkRead marks one notification read
	MarkRead(ctx context.Context, id uint64) error

	// MarkAllRead marks every unread item in the inbox of userID read
	MarkAllRead(ctx context.Context, userID uint64) (int64, error)
}

// TimeEntryRepository defines the interface for time entry data access
type TimeEntryRepository interface {
	Create(ctx context.Context, entry *models.TimeEntry) error

	// ListByUser lists the entries of a user, newest first
	ListByUser(ctx context.Context, userID uint64) ([]models.TimeEntry, error)

	// ListByProject lists the entries logged against a project, newest first
	ListByProject(ctx context.Context, projectID uint64) ([]models.TimeEntry, error)
}
