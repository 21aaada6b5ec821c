package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/studio-pm-api/internal/config"
	apierrors "github.com/yukikurage/studio-pm-api/internal/errors"
	"github.com/yukikurage/studio-pm-api/internal/testutil"
)

type client struct {
	t       *testing.T
	r       *gin.Engine
	cookies []*http.Cookie
}

func newClient(t *testing.T, r *gin.Engine) *client {
	return &client{t: t, r: r}
}

func (c *client) do(method, path string, payload interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(c.t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return w
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	db := testutil.OpenDB(t)
	r, err := New(cfg, db, cookie.NewStore([]byte("secret")))
	require.NoError(t, err)
	return r
}

func signUp(t *testing.T, c *client, kind, email string) {
	t.Helper()
	w := c.do(http.MethodPost, "/register?type="+kind, map[string]string{
		"email": email, "name": email, "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/", map[string]string{"identifier": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRouter_EmployeeFlow(t *testing.T) {
	r := newTestEngine(t)
	c := newClient(t, r)
	signUp(t, c, "employee", "emma@studio.test")

	w := c.do(http.MethodPost, "/clients/create", map[string]string{"name": "Bruce Wayne"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = c.do(http.MethodPost, "/projects/create", map[string]interface{}{"name": "Wayne Residential Complex", "client_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = c.do(http.MethodPost, "/projects/1/milestones/M3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"m3":true`)

	w = c.do(http.MethodGet, "/projects/options", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bruce Wayne")

	w = c.do(http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var board struct {
		RecentProjects      []map[string]interface{} `json:"recent_projects"`
		UnreadNotifications *int64                   `json:"unread_notifications"`
		Menu                []map[string]string      `json:"menu"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	assert.Len(t, board.RecentProjects, 1)
	require.NotNil(t, board.UnreadNotifications)
	assert.Len(t, board.Menu, 8)

	w = c.do(http.MethodGet, "/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = c.do(http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_ClientIsKeptOut(t *testing.T) {
	r := newTestEngine(t)
	c := newClient(t, r)
	signUp(t, c, "client", "carl@studio.test")

	for _, path := range []string{"/clients", "/buildings", "/notifications", "/admin/users"} {
		w := c.do(http.MethodGet, path, nil)
		require.Equal(t, http.StatusForbidden, w.Code, path)

		var body struct {
			Code    string             `json:"code"`
			Details apierrors.Redirect `json:"details"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, apierrors.ErrCodeForbidden, body.Code)
		assert.Equal(t, "/dashboard", body.Details.Redirect)
	}

	w := c.do(http.MethodGet, "/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"projects":[]`)

	w = c.do(http.MethodPost, "/notifications/create", map[string]string{"message": "Question about my project"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = c.do(http.MethodGet, "/main", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "/admin/users")
}

func TestRouter_Ambient(t *testing.T) {
	r := newTestEngine(t)
	c := newClient(t, r)

	w := c.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = c.do(http.MethodGet, "/no/such/page", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, apierrors.ErrCodeNotFound, apiErr.Code)

	w = c.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "studiopm_http_requests_total")

	w = c.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestNewSessionStore(t *testing.T) {
	cfg := config.Default()
	cfg.SessionStore = "cookie"
	store, err := NewSessionStore(cfg)
	require.NoError(t, err)
	assert.NotNil(t, store)

	cfg.SessionStore = "memcached"
	_, err = NewSessionStore(cfg)
	assert.Error(t, err)
}
