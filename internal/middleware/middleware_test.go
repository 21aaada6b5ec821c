package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	apierrors "github.com/yukikurage/studio-pm-api/internal/errors"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/repository"
	"github.com/yukikurage/studio-pm-api/internal/testutil"
)

func newRouter(t *testing.T, users repository.UserRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.GET("/login/:id", func(c *gin.Context) {
		var id uint64
		for _, ch := range c.Param("id") {
			id = id*10 + uint64(ch-'0')
		}
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, id)
		require.NoError(t, session.Save())
		c.Status(http.StatusNoContent)
	})

	protected := r.Group("/", RequireAuth(users))
	protected.GET("/me", func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	protected.GET("/admin", RequireEmployee(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func login(t *testing.T, r *gin.Engine, id string) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login/"+id, nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	return w.Result().Cookies()
}

func get(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	db := testutil.OpenDB(t)
	users := repository.NewUserRepository(db)
	r := newRouter(t, users)

	client := models.User{Email: "c@studio.test", Name: "C", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, users.Create(context.Background(), &client))

	w := get(r, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookies := login(t, r, "1")
	w = get(r, "/me", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "c@studio.test")

	// Session for a user that no longer exists
	cookies = login(t, r, "99")
	w = get(r, "/me", cookies)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireEmployee(t *testing.T) {
	db := testutil.OpenDB(t)
	users := repository.NewUserRepository(db)
	r := newRouter(t, users)

	client := models.User{Email: "c@studio.test", Name: "C", PasswordHash: "x", Role: models.RoleClient}
	employee := models.User{Email: "e@studio.test", Name: "E", PasswordHash: "x", Role: models.RoleEmployee}
	require.NoError(t, users.Create(context.Background(), &client))
	require.NoError(t, users.Create(context.Background(), &employee))

	w := get(r, "/admin", login(t, r, "1"))
	require.Equal(t, http.StatusForbidden, w.Code)

	var body apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apierrors.ErrCodeForbidden, body.Code)
	assert.Equal(t, map[string]interface{}{"redirect": constants.RedirectDashboard}, body.Details)

	w = get(r, "/admin", login(t, r, "2"))
	assert.Equal(t, http.StatusOK, w.Code)

	// Role change takes effect on the next request
	require.NoError(t, users.UpdateRole(context.Background(), employee.ID, models.RoleClient))
	w = get(r, "/admin", login(t, r, "2"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/login", RateLimit(1, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		codes[i] = get(r, "/login", nil).Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyRequest))
	})

	w := get(r, "/", nil)
	generated := w.Header().Get(requestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}
