package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/dto"
	apierrors "github.com/yukikurage/studio-pm-api/internal/errors"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/repository"
	"github.com/yukikurage/studio-pm-api/internal/services"
	"github.com/yukikurage/studio-pm-api/internal/testutil"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t)
	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)

	return authTestEnv{
		db:          db,
		handler:     NewAuthHandler(authService),
		authService: authService,
	}
}

func (env authTestEnv) router() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.GET("/", env.handler.LoginStatus)
	r.POST("/", env.handler.Login)
	r.POST("/register", env.handler.Register)
	r.GET("/logout", env.handler.Logout)
	return r
}

func postJSON(r http.Handler, path string, payload interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	w := postJSON(r, "/register?type=employee", map[string]string{
		"email":    "New.User@Studio.TEST",
		"name":     "New User",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "new.user@studio.test", response.User.Email)
	require.Equal(t, models.RoleEmployee, response.User.Role)
	require.Equal(t, constants.RedirectLogin, response.Redirect)

	w = postJSON(r, "/register", map[string]string{
		"email":    "NEW.USER@studio.test",
		"name":     "Copy",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	require.Equal(t, apierrors.ErrCodeAlreadyExists, apiErr.Code)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	w := postJSON(r, "/register", map[string]string{"email": "a@b.c", "name": "A", "password": "123"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "at least 6 characters")

	w = postJSON(r, "/register?type=boss", map[string]string{"email": "a@b.c", "name": "A", "password": "123456"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// A form role overrides the query
	form := url.Values{"email": {"form@b.c"}, "name": {"Form"}, "password": {"123456"}, "role": {"client"}}
	req := httptest.NewRequest(http.MethodPost, "/register?type=employee", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var response dto.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, models.RoleClient, response.User.Role)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(context.Background(), services.RegisterInput{
		Email:    "existing@studio.test",
		Name:     "Existing Person",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := env.router()

	// by display name, ignoring case
	w := postJSON(r, "/", map[string]string{
		"identifier": "existing person",
		"password":   "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "existing@studio.test", response.User.Email)
	require.Equal(t, constants.RedirectDashboard, response.Redirect)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")

	// the session is visible on the login page
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	status := httptest.NewRecorder()
	r.ServeHTTP(status, req)
	require.Equal(t, http.StatusOK, status.Code)
	require.Contains(t, status.Body.String(), `"authenticated":true`)

	// by email
	w = postJSON(r, "/", map[string]string{"email": "EXISTING@studio.test", "password": "supersecret"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/", map[string]string{"identifier": "existing@studio.test", "password": "wrong-password"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	require.Equal(t, apierrors.ErrCodeInvalidCredentials, apiErr.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Logged out successfully")
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(context.Background(), services.RegisterInput{
		Email:    "current@studio.test",
		Name:     "Current User",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/me", nil)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Email, response.Email)
	require.Equal(t, models.RoleClient, response.Role)
}
