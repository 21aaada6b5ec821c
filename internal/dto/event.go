package dto

import (
	"time"

	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/services"
)

// EventDTO represents an event in API responses
type EventDTO struct {
	ID        uint64             `json:"id"`
	Title     string             `json:"title"`
	EventType string             `json:"event_type"`
	Start     time.Time          `json:"start"`
	End       *time.Time         `json:"end"`
	Status    models.EventStatus `json:"status"`
	Notes     string             `json:"notes"`
	ProjectID *uint64            `json:"project_id"`
	Project   *NamedRefDTO       `json:"project,omitempty"`
}

// EventListResponse represents the visible events and the projects they may link to
type EventListResponse struct {
	Events   []EventDTO    `json:"events"`
	Projects []NamedRefDTO `json:"projects"`
}

// ToEventDTO converts an Event model to EventDTO
func ToEventDTO(e models.Event) EventDTO {
	out := EventDTO{
		ID:        e.ID,
		Title:     e.Title,
		EventType: e.EventType,
		Start:     e.Start,
		End:       e.End,
		Status:    e.Status,
		Notes:     e.Notes,
		ProjectID: e.ProjectID,
	}
	if e.Project != nil {
		out.Project = &NamedRefDTO{ID: e.Project.ID, Name: e.Project.Name}
	}
	return out
}

// ToEventDTOs converts a slice of events
func ToEventDTOs(events []models.Event) []EventDTO {
	out := make([]EventDTO, len(events))
	for i, e := range events {
		out[i] = ToEventDTO(e)
	}
	return out
}

func toProjectRefs(projects []models.Project) []NamedRefDTO {
	out := make([]NamedRefDTO, len(projects))
	for i, p := range projects {
		out[i] = NamedRefDTO{ID: p.ID, Name: p.Name}
	}
	return out
}

// ToEventListResponse converts the event listing
func ToEventListResponse(list *services.EventList) EventListResponse {
	return EventListResponse{
		Events:   ToEventDTOs(list.Events),
		Projects: toProjectRefs(list.Projects),
	}
}
