package dto

import (
	"time"

	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/services"
	"github.com/yukikurage/studio-pm-api/internal/utils"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// NamedRefDTO is an id and a display name
type NamedRefDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// MilestonesDTO represents the three milestone flags of a project
type MilestonesDTO struct {
	M1 bool `json:"m1"`
	M2 bool `json:"m2"`
	M3 bool `json:"m3"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	DueDate     *string              `json:"due_date"`
	IsOverdue   bool                 `json:"is_overdue"`
	ClientID    *uint64              `json:"client_id"`
	BuildingID  *uint64              `json:"building_id"`
	Client      *NamedRefDTO         `json:"client,omitempty"`
	Building    *NamedRefDTO         `json:"building,omitempty"`
	Milestones  MilestonesDTO        `json:"milestones"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ProjectListResponse represents one page of projects
type ProjectListResponse struct {
	Projects   []ProjectDTO `json:"projects"`
	Query      string       `json:"q"`
	Sort       string       `json:"sort"`
	Pagination utils.Page   `json:"pagination"`
}

// ProjectStatsDTO summarizes a project
type ProjectStatsDTO struct {
	TotalEvents    int                  `json:"total_events"`
	UpcomingEvents int                  `json:"upcoming_events"`
	DaysUntilDue   *int                 `json:"days_until_due"`
	Status         models.ProjectStatus `json:"status"`
}

// ProjectDetailResponse represents a project with its related records
type ProjectDetailResponse struct {
	Project       ProjectDTO      `json:"project"`
	Events        []EventDTO      `json:"events"`
	AssignedUsers []UserRefDTO    `json:"assigned_users"`
	TimeEntries   []TimeEntryDTO  `json:"time_entries"`
	TotalHours    float64         `json:"total_hours"`
	Stats         ProjectStatsDTO `json:"stats"`
}

// MilestoneResponse is the state of a project after a milestone update
type MilestoneResponse struct {
	ProjectID uint64           `json:"project_id"`
	M1        bool             `json:"m1"`
	M2        bool             `json:"m2"`
	M3        bool             `json:"m3"`
	Completed models.Milestone `json:"completed"`
	Label     string           `json:"label"`
}

// ProjectOptionsResponse lists the choices for project forms
type ProjectOptionsResponse struct {
	Clients   []NamedRefDTO `json:"clients"`
	Buildings []NamedRefDTO `json:"buildings"`
}

// ToProjectDTO converts a Project model, deriving is_overdue against today
func ToProjectDTO(p models.Project, today time.Time) ProjectDTO {
	out := ProjectDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		IsOverdue:   p.IsOverdue(today),
		ClientID:    p.ClientID,
		BuildingID:  p.BuildingID,
		Milestones: MilestonesDTO{
			M1: p.ProposalSent,
			M2: p.SurveyCompleted,
			M3: p.AsBuiltFinished,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.DueDate != nil {
		due := models.DateOf(p.DueDate).Format(DateLayout)
		out.DueDate = &due
	}
	if p.Client != nil {
		out.Client = &NamedRefDTO{ID: p.Client.ID, Name: p.Client.Name}
	}
	if p.Building != nil {
		out.Building = &NamedRefDTO{ID: p.Building.ID, Name: p.Building.Name}
	}
	return out
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project, today time.Time) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = ToProjectDTO(p, today)
	}
	return out
}

// ToProjectListResponse converts a project page
func ToProjectListResponse(list *services.ProjectList, params utils.ListParams, today time.Time) ProjectListResponse {
	return ProjectListResponse{
		Projects:   ToProjectDTOs(list.Projects, today),
		Query:      params.Query,
		Sort:       params.Sort,
		Pagination: list.Page,
	}
}

// ToProjectDetailResponse converts a project detail view
func ToProjectDetailResponse(d *services.ProjectDetail, today time.Time) ProjectDetailResponse {
	return ProjectDetailResponse{
		Project:       ToProjectDTO(*d.Project, today),
		Events:        ToEventDTOs(d.Events),
		AssignedUsers: toUserRefs(d.AssignedUsers),
		TimeEntries:   ToTimeEntryDTOs(d.TimeEntries),
		TotalHours:    d.TotalHours,
		Stats: ProjectStatsDTO{
			TotalEvents:    d.Stats.TotalEvents,
			UpcomingEvents: d.Stats.UpcomingEvents,
			DaysUntilDue:   d.Stats.DaysUntilDue,
			Status:         d.Stats.Status,
		},
	}
}

// ToMilestoneResponse converts a milestone update result
func ToMilestoneResponse(s *services.MilestoneState) MilestoneResponse {
	return MilestoneResponse{
		ProjectID: s.ProjectID,
		M1:        s.M1,
		M2:        s.M2,
		M3:        s.M3,
		Completed: s.Completed,
		Label:     s.Completed.Label(),
	}
}

// ToProjectOptionsResponse converts the project form choices
func ToProjectOptionsResponse(o *services.ProjectOptions) ProjectOptionsResponse {
	resp := ProjectOptionsResponse{
		Clients:   make([]NamedRefDTO, len(o.Clients)),
		Buildings: make([]NamedRefDTO, len(o.Buildings)),
	}
	for i, c := range o.Clients {
		resp.Clients[i] = NamedRefDTO{ID: c.ID, Name: c.Name}
	}
	for i, b := range o.Buildings {
		resp.Buildings[i] = NamedRefDTO{ID: b.ID, Name: b.Name}
	}
	return resp
}
