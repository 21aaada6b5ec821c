package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/studio-pm-api/internal/authz"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/repository"
	"github.com/yukikurage/studio-pm-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrClientNameRequired = errors.New("client name is required")
	ErrClientHasProjects  = errors.New("client has projects")
)

// ClientService handles client business logic
type ClientService struct {
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	eventRepo   repository.EventRepository
	access      *Access
	now         func() time.Time
}

// NewClientService creates a new ClientService
func NewClientService(
	clientRepo repository.ClientRepository,
	projectRepo repository.ProjectRepository,
	eventRepo repository.EventRepository,
	access *Access,
) *ClientService {
	return &ClientService{
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		eventRepo:   eventRepo,
		access:      access,
		now:         time.Now,
	}
}

// ClientInput represents the editable fields of a client
type ClientInput struct {
	Name    string
	Contact string
	Phone   string
	Street  string
	City    string
	State   string
	Zip     string
}

// ClientList is one page of clients
type ClientList struct {
	Clients []repository.ClientWithCount
	Page    utils.Page
}

// ClientStats summarizes a client's portfolio
type ClientStats struct {
	TotalProjects     int
	ActiveProjects    int
	CompletedProjects int
	UpcomingEvents    int
}

// ClientDetail is a client with its projects and their events
type ClientDetail struct {
	Client   *models.Client
	Projects []models.Project
	Events   []models.Event
	Stats    ClientStats
}

// List returns one page of clients with their project counts
func (s *ClientService) List(ctx context.Context, user *models.User, params utils.ListParams) (*ClientList, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindClient, authz.ActionView); err != nil {
		return nil, err
	}

	clients, total, err := s.clientRepo.List(ctx, repository.ListFilter{
		Query:    params.Query,
		Sort:     params.Sort,
		Page:     params.Page,
		PageSize: constants.ClientsPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return &ClientList{
		Clients: clients,
		Page:    utils.NewPage(params.Page, constants.ClientsPageSize, total),
	}, nil
}

// Get returns a client with its projects, their events and stats
func (s *ClientService) Get(ctx context.Context, user *models.User, id uint64) (*ClientDetail, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindClient, authz.ActionView); err != nil {
		return nil, err
	}

	client, err := s.findClient(ctx, id)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListByClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list client projects: %w", err)
	}

	ids := make([]uint64, len(projects))
	stats := ClientStats{TotalProjects: len(projects)}
	for i, p := range projects {
		ids[i] = p.ID
		switch p.Status {
		case models.ProjectStatusInProgress:
			stats.ActiveProjects++
		case models.ProjectStatusDone:
			stats.CompletedProjects++
		}
	}

	events, err := s.eventRepo.List(ctx, repository.EventFilter{Scope: authz.Scope{ProjectIDs: ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to list client events: %w", err)
	}

	now := s.now()
	for _, e := range events {
		if e.Start.After(now) {
			stats.UpcomingEvents++
		}
	}

	return &ClientDetail{
		Client:   client,
		Projects: projects,
		Events:   events,
		Stats:    stats,
	}, nil
}

// Create creates a client
func (s *ClientService) Create(ctx context.Context, user *models.User, input ClientInput) (*models.Client, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindClient, authz.ActionCreate); err != nil {
		return nil, err
	}

	client := &models.Client{}
	if err := applyClient(client, input); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// Update replaces the editable fields of a client
func (s *ClientService) Update(ctx context.Context, user *models.User, id uint64, input ClientInput) (*models.Client, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindClient, authz.ActionUpdate); err != nil {
		return nil, err
	}

	client, err := s.findClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyClient(client, input); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// Delete removes a client no project references
func (s *ClientService) Delete(ctx context.Context, user *models.User, id uint64) error {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindClient, authz.ActionDelete); err != nil {
		return err
	}

	if _, err := s.findClient(ctx, id); err != nil {
		return err
	}

	count, err := s.clientRepo.CountProjects(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count client projects: %w", err)
	}
	if count > 0 {
		return ErrClientHasProjects
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

func (s *ClientService) findClient(ctx context.Context, id uint64) (*models.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return client, nil
}

func applyClient(client *models.Client, input ClientInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrClientNameRequired
	}

	client.Name = name
	client.Contact = strings.TrimSpace(input.Contact)
	client.Phone = strings.TrimSpace(input.Phone)
	client.Street = strings.TrimSpace(input.Street)
	client.City = strings.TrimSpace(input.City)
	client.State = strings.TrimSpace(input.State)
	client.Zip = strings.TrimSpace(input.Zip)
	return nil
}
