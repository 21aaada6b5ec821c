package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/dto"
	apierrors "github.com/yukikurage/studio-pm-api/internal/errors"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/services"
	"github.com/yukikurage/studio-pm-api/internal/utils"
)

// EventHandler serves the calendar.
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

type eventRequest struct {
	Title     string  `form:"title" json:"title"`
	EventType string  `form:"event_type" json:"event_type"`
	ProjectID *uint64 `form:"project_id" json:"project_id"`
	Start     string  `form:"start" json:"start"`
	End       string  `form:"end" json:"end"`
	Status    string  `form:"status" json:"status"`
	Notes     string  `form:"notes" json:"notes"`
}

func bindEvent(c *gin.Context) (services.EventInput, bool) {
	var req eventRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return services.EventInput{}, false
	}

	start, ok := utils.ParseDateTime(req.Start)
	if !ok {
		apierrors.BadRequest(c, "Invalid start time")
		return services.EventInput{}, false
	}
	end, ok := utils.ParseDateTime(req.End)
	if !ok {
		apierrors.BadRequest(c, "Invalid end time")
		return services.EventInput{}, false
	}

	return services.EventInput{
		Title:     req.Title,
		EventType: req.EventType,
		ProjectID: nonZero(req.ProjectID),
		Start:     start,
		End:       end,
		Status:    models.EventStatus(req.Status),
		Notes:     req.Notes,
	}, true
}

// ListEvents returns the visible events, newest first
func (h *EventHandler) ListEvents(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	list, err := h.eventService.List(c.Request.Context(), user)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventListResponse(list))
}

// CreateEvent creates an event
func (h *EventHandler) CreateEvent(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	input, ok := bindEvent(c)
	if !ok {
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), user, input)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully!",
		"event":   dto.ToEventDTO(*event),
	})
}

// UpdateEvent replaces an event's fields
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	input, ok := bindEvent(c)
	if !ok {
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), user, id, input)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully!",
		"event":   dto.ToEventDTO(*event),
	})
}

// DeleteEvent removes an event
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), user, id); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully!"})
}

func respondEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEventTitleRequired):
		apierrors.BadRequest(c, "Title and start time are required!")
	case errors.Is(err, services.ErrEventEndBeforeStart),
		errors.Is(err, services.ErrInvalidEventStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.BadRequest(c, "Selected project does not exist")
	case errors.Is(err, services.ErrEventNotFound):
		apierrors.NotFound(c, "Event not found")
	default:
		respondServiceError(c, err, constants.RedirectDashboard)
	}
}
