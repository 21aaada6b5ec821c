package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/dto"
	apierrors "github.com/yukikurage/studio-pm-api/internal/errors"
	"github.com/yukikurage/studio-pm-api/internal/services"
	"github.com/yukikurage/studio-pm-api/internal/utils"
)

// ClientHandler serves the client directory.
type ClientHandler struct {
	clientService *services.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type clientRequest struct {
	Name    string `form:"name" json:"name"`
	Contact string `form:"contact" json:"contact"`
	Phone   string `form:"phone" json:"phone"`
	Street  string `form:"street" json:"street"`
	City    string `form:"city" json:"city"`
	State   string `form:"state" json:"state"`
	Zip     string `form:"zip" json:"zip"`
}

func (r clientRequest) input() services.ClientInput {
	return services.ClientInput{
		Name:    r.Name,
		Contact: r.Contact,
		Phone:   r.Phone,
		Street:  r.Street,
		City:    r.City,
		State:   r.State,
		Zip:     r.Zip,
	}
}

// ListClients returns one page of clients with project counts
func (h *ClientHandler) ListClients(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	params := utils.GetListParams(c)
	list, err := h.clientService.List(c.Request.Context(), user, params)
	if err != nil {
		respondClientError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClientListResponse(list, params))
}

// GetClient returns a client with its projects, events and stats
func (h *ClientHandler) GetClient(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.clientService.Get(c.Request.Context(), user, id)
	if err != nil {
		respondClientError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClientDetailResponse(detail, time.Now()))
}

// CreateClient creates a client
func (h *ClientHandler) CreateClient(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req clientRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), user, req.input())
	if err != nil {
		respondClientError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Client added successfully!",
		"client":  dto.ToClientDTO(*client),
	})
}

// UpdateClient replaces a client's fields
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req clientRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), user, id, req.input())
	if err != nil {
		respondClientError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Client updated successfully!",
		"client":  dto.ToClientDTO(*client),
	})
}

// DeleteClient removes a client without projects
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), user, id); err != nil {
		respondClientError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully!"})
}

func respondClientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrClientNameRequired):
		apierrors.BadRequest(c, "Client name is required!")
	case errors.Is(err, services.ErrClientNotFound):
		apierrors.NotFound(c, "Client not found")
	case errors.Is(err, services.ErrClientHasProjects):
		apierrors.Conflict(c, "Cannot delete client with associated projects!")
	default:
		respondServiceError(c, err, constants.RedirectDashboard)
	}
}
