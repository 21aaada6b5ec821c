package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/dto"
	apierrors "github.com/yukikurage/studio-pm-api/internal/errors"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/services"
	"github.com/yukikurage/studio-pm-api/internal/utils"
)

// ProjectHandler serves projects and their milestones.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type projectRequest struct {
	Name        string  `form:"name" json:"name"`
	ClientID    *uint64 `form:"client_id" json:"client_id"`
	BuildingID  *uint64 `form:"building_id" json:"building_id"`
	Description string  `form:"description" json:"description"`
	Status      string  `form:"status" json:"status"`
	DueDate     string  `form:"due_date" json:"due_date"`
}

// bindProject reads the project form or answers 400.
func bindProject(c *gin.Context) (services.ProjectInput, bool) {
	var req projectRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return services.ProjectInput{}, false
	}

	due, ok := utils.ParseDate(req.DueDate)
	if !ok {
		apierrors.BadRequest(c, "Invalid due date")
		return services.ProjectInput{}, false
	}

	return services.ProjectInput{
		Name:        req.Name,
		ClientID:    nonZero(req.ClientID),
		BuildingID:  nonZero(req.BuildingID),
		Description: req.Description,
		Status:      models.ProjectStatus(req.Status),
		DueDate:     due,
	}, true
}

// ListProjects returns one page of the projects visible to the caller
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	params := utils.GetListParams(c)
	list, err := h.projectService.List(c.Request.Context(), user, params)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(list, params, time.Now()))
}

// GetProject returns a project with events, assignments, hours and stats
func (h *ProjectHandler) GetProject(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.projectService.Get(c.Request.Context(), user, id)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailResponse(detail, time.Now()))
}

// GetOptions lists the clients and buildings a project can reference
func (h *ProjectHandler) GetOptions(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	options, err := h.projectService.Options(c.Request.Context(), user)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectOptionsResponse(options))
}

// CreateProject creates a project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	input, ok := bindProject(c)
	if !ok {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), user, input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully!",
		"project": dto.ToProjectDTO(*project, time.Now()),
	})
}

// UpdateProject replaces a project's editable fields
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	input, ok := bindProject(c)
	if !ok {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), user, id, input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project updated successfully!",
		"project": dto.ToProjectDTO(*project, time.Now()),
	})
}

// DeleteProject removes a project without events
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), user, id); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully!"})
}

// SetMilestone marks milestone :key of a project complete
func (h *ProjectHandler) SetMilestone(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	state, err := h.projectService.SetMilestone(c.Request.Context(), user, id, c.Param("key"))
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMilestoneResponse(state))
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNameRequired):
		apierrors.BadRequest(c, "Project name is required!")
	case errors.Is(err, services.ErrInvalidProjectStatus),
		errors.Is(err, services.ErrInvalidMilestone):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrClientNotFound):
		apierrors.BadRequest(c, "Selected client does not exist")
	case errors.Is(err, services.ErrBuildingNotFound):
		apierrors.BadRequest(c, "Selected building does not exist")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrProjectHasEvents):
		apierrors.Conflict(c, "Cannot delete project with associated events!")
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "You do not have access to this project", constants.RedirectDashboard)
	default:
		respondServiceError(c, err, constants.RedirectDashboard)
	}
}
