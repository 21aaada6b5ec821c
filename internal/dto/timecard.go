package dto

import (
	"time"

	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/services"
)

// TimeEntryDTO represents a time entry in API responses
type TimeEntryDTO struct {
	ID          uint64       `json:"id"`
	UserID      uint64       `json:"user_id"`
	User        *UserRefDTO  `json:"user,omitempty"`
	ProjectID   *uint64      `json:"project_id"`
	Project     *NamedRefDTO `json:"project,omitempty"`
	Hours       float64      `json:"hours"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
}

// TimecardResponse represents a user's timecard
type TimecardResponse struct {
	Projects   []NamedRefDTO  `json:"projects"`
	Entries    []TimeEntryDTO `json:"entries"`
	TotalHours float64        `json:"total_hours"`
}

// ToTimeEntryDTO converts a TimeEntry model to TimeEntryDTO
func ToTimeEntryDTO(e models.TimeEntry) TimeEntryDTO {
	out := TimeEntryDTO{
		ID:          e.ID,
		UserID:      e.UserID,
		ProjectID:   e.ProjectID,
		Hours:       e.Hours,
		Description: e.Description,
		Timestamp:   e.Timestamp,
	}
	if e.User != nil {
		user := ToUserRefDTO(*e.User)
		out.User = &user
	}
	if e.Project != nil {
		out.Project = &NamedRefDTO{ID: e.Project.ID, Name: e.Project.Name}
	}
	return out
}

// ToTimeEntryDTOs converts a slice of time entries
func ToTimeEntryDTOs(entries []models.TimeEntry) []TimeEntryDTO {
	out := make([]TimeEntryDTO, len(entries))
	for i, e := range entries {
		out[i] = ToTimeEntryDTO(e)
	}
	return out
}

// ToTimecardResponse converts a timecard
func ToTimecardResponse(t *services.Timecard) TimecardResponse {
	return TimecardResponse{
		Projects:   toProjectRefs(t.Projects),
		Entries:    ToTimeEntryDTOs(t.Entries),
		TotalHours: t.TotalHours,
	}
}
