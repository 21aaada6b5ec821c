package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/dto"
	apierrors "github.com/yukikurage/studio-pm-api/internal/errors"
	"github.com/yukikurage/studio-pm-api/internal/services"
	"github.com/yukikurage/studio-pm-api/internal/utils"
)

// BuildingHandler serves the building directory.
type BuildingHandler struct {
	buildingService *services.BuildingService
}

// NewBuildingHandler creates a new BuildingHandler.
func NewBuildingHandler(buildingService *services.BuildingService) *BuildingHandler {
	return &BuildingHandler{buildingService: buildingService}
}

type buildingRequest struct {
	Name   string `form:"name" json:"name"`
	Street string `form:"street" json:"street"`
	City   string `form:"city" json:"city"`
	State  string `form:"state" json:"state"`
	Zip    string `form:"zip" json:"zip"`
	Notes  string `form:"notes" json:"notes"`
}

func (r buildingRequest) input() services.BuildingInput {
	return services.BuildingInput{
		Name:   r.Name,
		Street: r.Street,
		City:   r.City,
		State:  r.State,
		Zip:    r.Zip,
		Notes:  r.Notes,
	}
}

// ListBuildings returns one page of buildings
func (h *BuildingHandler) ListBuildings(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	params := utils.GetListParams(c)
	list, err := h.buildingService.List(c.Request.Context(), user, params)
	if err != nil {
		respondBuildingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBuildingListResponse(list, params))
}

// GetBuilding returns one building
func (h *BuildingHandler) GetBuilding(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	building, err := h.buildingService.Get(c.Request.Context(), user, id)
	if err != nil {
		respondBuildingError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBuildingDTO(*building))
}

// CreateBuilding creates a building
func (h *BuildingHandler) CreateBuilding(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req buildingRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	building, err := h.buildingService.Create(c.Request.Context(), user, req.input())
	if err != nil {
		respondBuildingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Building added successfully!",
		"building": dto.ToBuildingDTO(*building),
	})
}

// UpdateBuilding replaces a building's fields
func (h *BuildingHandler) UpdateBuilding(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req buildingRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	building, err := h.buildingService.Update(c.Request.Context(), user, id, req.input())
	if err != nil {
		respondBuildingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Building updated successfully!",
		"building": dto.ToBuildingDTO(*building),
	})
}

// DeleteBuilding removes a building no project is located in
func (h *BuildingHandler) DeleteBuilding(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.buildingService.Delete(c.Request.Context(), user, id); err != nil {
		respondBuildingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Building deleted successfully!"})
}

func respondBuildingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBuildingNameRequired):
		apierrors.BadRequest(c, "Building name is required!")
	case errors.Is(err, services.ErrBuildingNotFound):
		apierrors.NotFound(c, "Building not found")
	case errors.Is(err, services.ErrBuildingHasProjects):
		apierrors.Conflict(c, "Cannot delete building with associated projects!")
	default:
		respondServiceError(c, err, constants.RedirectDashboard)
	}
}
