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
)

// AdminHandler serves account and assignment management.
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers returns every account
func (h *AdminHandler) ListUsers(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	users, err := h.adminService.Users(c.Request.Context(), user)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{Users: dto.ToUserDTOs(users)})
}

// ListClientUsers returns the client accounts that can be assigned to projects
func (h *AdminHandler) ListClientUsers(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	users, err := h.adminService.Clients(c.Request.Context(), user)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{Users: dto.ToUserDTOs(users)})
}

// ChangeRole switches the role of an account
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type ChangeRoleRequest struct {
		Role string `form:"role" json:"role"`
	}
	var req ChangeRoleRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	target, err := h.adminService.ChangeRole(c.Request.Context(), user, id, models.Role(req.Role))
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Role updated for " + target.Name,
		"user":    dto.ToUserDTO(*target),
	})
}

// DeleteUser removes an account with no assignments or activity
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	target, err := h.adminService.DeleteUser(c.Request.Context(), user, id)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User " + target.Name + " deleted"})
}

// AssignUser gives a user access to a project
func (h *AdminHandler) AssignUser(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AssignRequest struct {
		UserID uint64 `form:"user_id" json:"user_id"`
	}
	var req AssignRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.adminService.Assign(c.Request.Context(), user, projectID, req.UserID)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "User assigned to project",
		"assignment": assignment,
	})
}

// UnassignUser removes a user's access to a project
func (h *AdminHandler) UnassignUser(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.adminService.Unassign(c.Request.Context(), user, projectID, userID); err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unassigned from project"})
}

func respondAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrAssigneeRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCannotDeleteSelf):
		apierrors.BadRequest(c, "You cannot delete your own account")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrAssignmentNotFound):
		apierrors.NotFound(c, "Assignment not found")
	case errors.Is(err, services.ErrAlreadyAssigned):
		apierrors.AlreadyExists(c, "User already assigned to this project")
	case errors.Is(err, services.ErrUserHasAssignments),
		errors.Is(err, services.ErrUserHasActivity):
		apierrors.Conflict(c, err.Error())
	default:
		respondServiceError(c, err, constants.RedirectDashboard)
	}
}
