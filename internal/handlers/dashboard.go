package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-pm-api/internal/dto"
	"github.com/yukikurage/studio-pm-api/internal/services"
)

// DashboardHandler serves the landing view and main menu.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Dashboard returns recent projects and the events around now
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	board, err := h.dashboardService.Dashboard(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(
		board,
		dto.ToUserDTO(*user),
		h.dashboardService.Menu(user),
		user.IsEmployee(),
		time.Now(),
	))
}

// Main returns the menu entries for the caller's role
func (h *DashboardHandler) Main(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.MainResponse{
		User: dto.ToUserDTO(*user),
		Menu: dto.ToMenuDTOs(h.dashboardService.Menu(user)),
	})
}
