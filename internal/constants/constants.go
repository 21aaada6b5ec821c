package constants

// Context and session keys
const (
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "user"
	ContextKeyRequest = "request_id"
	SessionCookieName = "pms_session"
)

// Authentication
const (
	MinPasswordLength = 6
)

// Pagination
const (
	MinPage           = 1
	ProjectsPageSize  = 15
	ClientsPageSize   = 25
	BuildingsPageSize = 25
)

// Dashboard
const (
	DashboardRecentProjects = 6
	DashboardEventLimit     = 5
)

// Safe views returned with authorization errors
const (
	RedirectDashboard     = "/dashboard"
	RedirectNotifications = "/notifications"
	RedirectLogin         = "/"
)

// DocumentProjectNumber is the placeholder number printed on generated documents.
const DocumentProjectNumber = "2025-37"
