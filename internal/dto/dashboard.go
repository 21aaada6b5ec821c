package dto

import (
	"time"

	"github.com/yukikurage/studio-pm-api/internal/services"
)

// MenuEntryDTO is one main menu item
type MenuEntryDTO struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// DashboardResponse represents the landing view
type DashboardResponse struct {
	User                UserDTO        `json:"user"`
	RecentProjects      []ProjectDTO   `json:"recent_projects"`
	RecentEvents        []EventDTO     `json:"recent_events"`
	FutureEvents        []EventDTO     `json:"future_events"`
	UnreadNotifications *int64         `json:"unread_notifications,omitempty"`
	Menu                []MenuEntryDTO `json:"menu"`
}

// MainResponse represents the main menu
type MainResponse struct {
	User UserDTO        `json:"user"`
	Menu []MenuEntryDTO `json:"menu"`
}

// DocumentResponse represents a generated invoice or proposal
type DocumentResponse struct {
	Kind          services.DocumentKind `json:"kind"`
	Project       NamedRefDTO           `json:"project"`
	Client        *NamedRefDTO          `json:"client,omitempty"`
	Text          string                `json:"text"`
	Date          string                `json:"date"`
	ProjectNumber string                `json:"project_number"`
}

// ToMenuDTOs converts menu entries
func ToMenuDTOs(entries []services.MenuEntry) []MenuEntryDTO {
	out := make([]MenuEntryDTO, len(entries))
	for i, e := range entries {
		out[i] = MenuEntryDTO{Label: e.Label, Path: e.Path}
	}
	return out
}

// ToDashboardResponse converts the landing view. The unread count is only
// reported to employees.
func ToDashboardResponse(d *services.Dashboard, user UserDTO, menu []services.MenuEntry, employee bool, today time.Time) DashboardResponse {
	resp := DashboardResponse{
		User:           user,
		RecentProjects: ToProjectDTOs(d.RecentProjects, today),
		RecentEvents:   ToEventDTOs(d.RecentEvents),
		FutureEvents:   ToEventDTOs(d.FutureEvents),
		Menu:           ToMenuDTOs(menu),
	}
	if employee {
		unread := d.UnreadNotifications
		resp.UnreadNotifications = &unread
	}
	return resp
}

// ToDocumentResponse converts a generated document
func ToDocumentResponse(doc *services.Document) DocumentResponse {
	resp := DocumentResponse{
		Kind:          doc.Kind,
		Project:       NamedRefDTO{ID: doc.Project.ID, Name: doc.Project.Name},
		Text:          doc.Text,
		Date:          doc.Date,
		ProjectNumber: doc.ProjectNumber,
	}
	if doc.Project.Client != nil {
		resp.Client = &NamedRefDTO{ID: doc.Project.Client.ID, Name: doc.Project.Client.Name}
	}
	return resp
}
