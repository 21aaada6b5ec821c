package dto

import (
	"time"

	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/repository"
	"github.com/yukikurage/studio-pm-api/internal/services"
	"github.com/yukikurage/studio-pm-api/internal/utils"
)

// ClientDTO represents a client in API responses
type ClientDTO struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	Phone        string `json:"phone"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	ProjectCount *int64 `json:"project_count,omitempty"`
}

// ClientListResponse represents one page of clients
type ClientListResponse struct {
	Clients    []ClientDTO `json:"clients"`
	Query      string      `json:"q"`
	Sort       string      `json:"sort"`
	Pagination utils.Page  `json:"pagination"`
}

// ClientStatsDTO summarizes a client's portfolio
type ClientStatsDTO struct {
	TotalProjects     int `json:"total_projects"`
	ActiveProjects    int `json:"active_projects"`
	CompletedProjects int `json:"completed_projects"`
	UpcomingEvents    int `json:"upcoming_events"`
}

// ClientDetailResponse represents a client with its projects and events
type ClientDetailResponse struct {
	Client   ClientDTO      `json:"client"`
	Projects []ProjectDTO   `json:"projects"`
	Events   []EventDTO     `json:"events"`
	Stats    ClientStatsDTO `json:"stats"`
}

// BuildingDTO represents a building in API responses
type BuildingDTO struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
	Notes  string `json:"notes"`
}

// BuildingListResponse represents one page of buildings
type BuildingListResponse struct {
	Buildings  []BuildingDTO `json:"buildings"`
	Query      string        `json:"q"`
	Sort       string        `json:"sort"`
	Pagination utils.Page    `json:"pagination"`
}

// ToClientDTO converts a Client model to ClientDTO
func ToClientDTO(c models.Client) ClientDTO {
	return ClientDTO{
		ID:      c.ID,
		Name:    c.Name,
		Contact: c.Contact,
		Phone:   c.Phone,
		Street:  c.Street,
		City:    c.City,
		State:   c.State,
		Zip:     c.Zip,
	}
}

func toClientWithCountDTO(c repository.ClientWithCount) ClientDTO {
	out := ToClientDTO(c.Client)
	count := c.ProjectCount
	out.ProjectCount = &count
	return out
}

// ToClientListResponse converts a client page
func ToClientListResponse(list *services.ClientList, params utils.ListParams) ClientListResponse {
	clients := make([]ClientDTO, len(list.Clients))
	for i, c := range list.Clients {
		clients[i] = toClientWithCountDTO(c)
	}
	return ClientListResponse{
		Clients:    clients,
		Query:      params.Query,
		Sort:       params.Sort,
		Pagination: list.Page,
	}
}

// ToClientDetailResponse converts a client detail view
func ToClientDetailResponse(d *services.ClientDetail, today time.Time) ClientDetailResponse {
	return ClientDetailResponse{
		Client:   ToClientDTO(*d.Client),
		Projects: ToProjectDTOs(d.Projects, today),
		Events:   ToEventDTOs(d.Events),
		Stats: ClientStatsDTO{
			TotalProjects:     d.Stats.TotalProjects,
			ActiveProjects:    d.Stats.ActiveProjects,
			CompletedProjects: d.Stats.CompletedProjects,
			UpcomingEvents:    d.Stats.UpcomingEvents,
		},
	}
}

// ToBuildingDTO converts a Building model to BuildingDTO
func ToBuildingDTO(b models.Building) BuildingDTO {
	return BuildingDTO{
		ID:     b.ID,
		Name:   b.Name,
		Street: b.Street,
		City:   b.City,
		State:  b.State,
		Zip:    b.Zip,
		Notes:  b.Notes,
	}
}

// ToBuildingListResponse converts a building page
func ToBuildingListResponse(list *services.BuildingList, params utils.ListParams) BuildingListResponse {
	buildings := make([]BuildingDTO, len(list.Buildings))
	for i, b := range list.Buildings {
		buildings[i] = ToBuildingDTO(b)
	}
	return BuildingListResponse{
		Buildings:  buildings,
		Query:      params.Query,
		Sort:       params.Sort,
		Pagination: list.Page,
	}
}
