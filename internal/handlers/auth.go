package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/dto"
	apierrors "github.com/yukikurage/studio-pm-api/internal/errors"
	"github.com/yukikurage/studio-pm-api/internal/middleware"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginStatus reports whether the session already belongs to a user.
func (h *AuthHandler) LoginStatus(c *gin.Context) {
	session := sessions.Default(c)
	if id, ok := session.Get(constants.ContextKeyUserID).(uint64); ok {
		if user, err := h.authService.GetUser(c.Request.Context(), id); err == nil {
			c.JSON(http.StatusOK, gin.H{
				"authenticated": true,
				"user":          dto.ToUserDTO(*user),
				"redirect":      constants.RedirectDashboard,
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

// Login authenticates a user by email or name and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Identifier string `form:"identifier" json:"identifier"`
		Email      string `form:"email" json:"email"`
		Password   string `form:"password" json:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Email
	}

	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Identifier: identifier,
		Password:   req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		Message:  "Logged in successfully",
		User:     dto.ToUserDTO(*user),
		Redirect: constants.RedirectDashboard,
	})
}

// RegisterForm describes the registration form for the requested account type.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	role := models.Role(c.DefaultQuery("type", string(models.RoleClient)))
	if !role.Valid() {
		apierrors.BadRequest(c, services.ErrInvalidRole.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"type":             role,
		"fields":           []string{"email", "name", "password"},
		"min_password_len": constants.MinPasswordLength,
	})
}

// Register creates an account. The role comes from ?type= unless the body names one.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email    string `form:"email" json:"email"`
		Name     string `form:"name" json:"name"`
		Password string `form:"password" json:"password"`
		Role     string `form:"role" json:"role"`
	}

	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	role := req.Role
	if role == "" {
		role = c.DefaultQuery("type", string(models.RoleClient))
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     models.Role(role),
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	log.Printf("Registered %s account %d", user.Role, user.ID)
	c.JSON(http.StatusCreated, dto.SessionResponse{
		Message:  "Registration successful. Please log in.",
		User:     dto.ToUserDTO(*user),
		Redirect: constants.RedirectLogin,
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Logged out successfully",
		"redirect": constants.RedirectLogin,
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.AlreadyExists(c, "Email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		log.Printf("[auth] %v", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
