package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/dto"
	apierrors "github.com/yukikurage/studio-pm-api/internal/errors"
	"github.com/yukikurage/studio-pm-api/internal/services"
)

// TimecardHandler serves hour logging.
type TimecardHandler struct {
	timecardService *services.TimecardService
}

// NewTimecardHandler creates a new TimecardHandler.
func NewTimecardHandler(timecardService *services.TimecardService) *TimecardHandler {
	return &TimecardHandler{timecardService: timecardService}
}

// GetTimecard returns the caller's entries and the projects they can log against
func (h *TimecardHandler) GetTimecard(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	card, err := h.timecardService.View(c.Request.Context(), user)
	if err != nil {
		respondTimecardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTimecardResponse(card))
}

// LogHours records hours against a project for the caller
func (h *TimecardHandler) LogHours(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	type LogRequest struct {
		ProjectID   *uint64 `form:"project_id" json:"project_id"`
		Hours       float64 `form:"hours" json:"hours"`
		Description string  `form:"description" json:"description"`
	}

	var req LogRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.timecardService.Log(c.Request.Context(), user, services.LogInput{
		ProjectID:   nonZero(req.ProjectID),
		Hours:       req.Hours,
		Description: req.Description,
	})
	if err != nil {
		respondTimecardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Time entry logged!",
		"entry":   dto.ToTimeEntryDTO(*entry),
	})
}

func respondTimecardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTimeEntryProjectRequired):
		apierrors.BadRequest(c, "Project and hours are required.")
	case errors.Is(err, services.ErrInvalidHours):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.BadRequest(c, "Selected project does not exist")
	default:
		respondServiceError(c, err, constants.RedirectDashboard)
	}
}
