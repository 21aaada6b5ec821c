package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/studio-pm-api/internal/authz"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/repository"
	"github.com/yukikurage/studio-pm-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrBuildingNotFound     = errors.New("building not found")
	ErrBuildingNameRequired = errors.New("building name is required")
	ErrBuildingHasProjects  = errors.New("building has projects")
)

// BuildingService handles building business logic
type BuildingService struct {
	buildingRepo repository.BuildingRepository
	access       *Access
}

// NewBuildingService creates a new BuildingService
func NewBuildingService(buildingRepo repository.BuildingRepository, access *Access) *BuildingService {
	return &BuildingService{
		buildingRepo: buildingRepo,
		access:       access,
	}
}

// BuildingInput represents the editable fields of a building
type BuildingInput struct {
	Name   string
	Street string
	City   string
	State  string
	Zip    string
	Notes  string
}

// BuildingList is one page of buildings
type BuildingList struct {
	Buildings []models.Building
	Page      utils.Page
}

// List returns one page of buildings
func (s *BuildingService) List(ctx context.Context, user *models.User, params utils.ListParams) (*BuildingList, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindBuilding, authz.ActionView); err != nil {
		return nil, err
	}

	buildings, total, err := s.buildingRepo.List(ctx, repository.ListFilter{
		Query:    params.Query,
		Sort:     params.Sort,
		Page:     params.Page,
		PageSize: constants.BuildingsPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}

	return &BuildingList{
		Buildings: buildings,
		Page:      utils.NewPage(params.Page, constants.BuildingsPageSize, total),
	}, nil
}

// Get returns a building
func (s *BuildingService) Get(ctx context.Context, user *models.User, id uint64) (*models.Building, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindBuilding, authz.ActionView); err != nil {
		return nil, err
	}
	return s.findBuilding(ctx, id)
}

// Create creates a building
func (s *BuildingService) Create(ctx context.Context, user *models.User, input BuildingInput) (*models.Building, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindBuilding, authz.ActionCreate); err != nil {
		return nil, err
	}

	building := &models.Building{}
	if err := applyBuilding(building, input); err != nil {
		return nil, err
	}

	if err := s.buildingRepo.Create(ctx, building); err != nil {
		return nil, fmt.Errorf("failed to create building: %w", err)
	}
	return building, nil
}

// Update replaces the editable fields of a building
func (s *BuildingService) Update(ctx context.Context, user *models.User, id uint64, input BuildingInput) (*models.Building, error) {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindBuilding, authz.ActionUpdate); err != nil {
		return nil, err
	}

	building, err := s.findBuilding(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyBuilding(building, input); err != nil {
		return nil, err
	}

	if err := s.buildingRepo.Update(ctx, building); err != nil {
		return nil, fmt.Errorf("failed to update building: %w", err)
	}
	return building, nil
}

// Delete removes a building no project is located in
func (s *BuildingService) Delete(ctx context.Context, user *models.User, id uint64) error {
	if _, err := s.access.requireEmployee(ctx, user, authz.KindBuilding, authz.ActionDelete); err != nil {
		return err
	}

	if _, err := s.findBuilding(ctx, id); err != nil {
		return err
	}

	count, err := s.buildingRepo.CountProjects(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count building projects: %w", err)
	}
	if count > 0 {
		return ErrBuildingHasProjects
	}

	if err := s.buildingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete building: %w", err)
	}
	return nil
}

func (s *BuildingService) findBuilding(ctx context.Context, id uint64) (*models.Building, error) {
	building, err := s.buildingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, fmt.Errorf("failed to find building: %w", err)
	}
	return building, nil
}

func applyBuilding(building *models.Building, input BuildingInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrBuildingNameRequired
	}

	building.Name = name
	building.Street = strings.TrimSpace(input.Street)
	building.City = strings.TrimSpace(input.City)
	building.State = strings.TrimSpace(input.State)
	building.Zip = strings.TrimSpace(input.Zip)
	building.Notes = strings.TrimSpace(input.Notes)
	return nil
}
