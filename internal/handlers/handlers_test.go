package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/studio-pm-api/internal/authz"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	"github.com/yukikurage/studio-pm-api/internal/dto"
	apierrors "github.com/yukikurage/studio-pm-api/internal/errors"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/repository"
	"github.com/yukikurage/studio-pm-api/internal/services"
	"github.com/yukikurage/studio-pm-api/internal/testutil"
	"gorm.io/gorm"
)

// HandlerTestSuite exercises handlers against services on an in-memory database
type HandlerTestSuite struct {
	suite.Suite
	ctx context.Context
	db  *gorm.DB

	auth          *services.AuthService
	projects      *services.ProjectService
	clients       *services.ClientService
	events        *services.EventService
	notifications *services.NotificationService
	timecard      *services.TimecardService
	admin         *services.AdminService
	documents     *services.DocumentService

	employee *models.User
	client   *models.User
}

// SetupTest runs before each test
func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctx = context.Background()
	suite.db = testutil.OpenDB(suite.T())

	policy, err := authz.NewPolicy()
	suite.Require().NoError(err)

	userRepo := repository.NewUserRepository(suite.db)
	clientRepo := repository.NewClientRepository(suite.db)
	buildingRepo := repository.NewBuildingRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	assignRepo := repository.NewAssignmentRepository(suite.db)
	eventRepo := repository.NewEventRepository(suite.db)
	notificationRepo := repository.NewNotificationRepository(suite.db)
	timeRepo := repository.NewTimeEntryRepository(suite.db)
	access := services.NewAccess(policy, assignRepo)

	suite.auth = services.NewAuthService(userRepo)
	suite.projects = services.NewProjectService(projectRepo, clientRepo, buildingRepo, eventRepo, assignRepo, timeRepo, access)
	suite.clients = services.NewClientService(clientRepo, projectRepo, eventRepo, access)
	suite.events = services.NewEventService(eventRepo, projectRepo, access)
	suite.notifications = services.NewNotificationService(notificationRepo, userRepo, projectRepo, access)
	suite.timecard = services.NewTimecardService(timeRepo, projectRepo, access)
	suite.admin = services.NewAdminService(userRepo, projectRepo, assignRepo, access)
	suite.documents = services.NewDocumentService(projectRepo, access)

	suite.employee = suite.createTestUser("emp@studio.test", "Emma", models.RoleEmployee)
	suite.client = suite.createTestUser("cli@studio.test", "Carl", models.RoleClient)
}

// Helper function to create a test user
func (suite *HandlerTestSuite) createTestUser(email, name string, role models.Role) *models.User {
	user, err := suite.auth.Register(suite.ctx, services.RegisterInput{
		Email: email, Name: name, Password: "secret1", Role: role,
	})
	suite.Require().NoError(err)
	return user
}

// Helper function to create a test project
func (suite *HandlerTestSuite) createTestProject(name string) *models.Project {
	project, err := suite.projects.Create(suite.ctx, suite.employee, services.ProjectInput{Name: name})
	suite.Require().NoError(err)
	return project
}

func (suite *HandlerTestSuite) assign(project *models.Project, user *models.User) {
	_, err := suite.admin.Assign(suite.ctx, suite.employee, project.ID, user.ID)
	suite.Require().NoError(err)
}

// router registers routes behind a stand-in for RequireAuth that loads user
func (suite *HandlerTestSuite) router(user *models.User) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	})

	projects := NewProjectHandler(suite.projects)
	r.GET("/projects", projects.ListProjects)
	r.GET("/projects/:id", projects.GetProject)
	r.POST("/projects/create", projects.CreateProject)
	r.POST("/projects/:id/update", projects.UpdateProject)
	r.POST("/projects/:id/delete", projects.DeleteProject)
	r.POST("/projects/:id/milestones/:key", projects.SetMilestone)

	clients := NewClientHandler(suite.clients)
	r.POST("/clients/create", clients.CreateClient)
	r.POST("/clients/:id/delete", clients.DeleteClient)
	r.GET("/clients", clients.ListClients)

	events := NewEventHandler(suite.events)
	r.POST("/events/create", events.CreateEvent)

	documents := NewDocumentHandler(suite.documents)
	r.GET("/project/:id/generate_invoice", documents.GenerateInvoice)

	notifications := NewNotificationHandler(suite.notifications)
	r.GET("/notifications", notifications.ListNotifications)
	r.POST("/notifications/create", notifications.CreateBroadcast)
	r.POST("/notifications/send", notifications.SendNotification)
	r.POST("/notifications/mark-all-read", notifications.MarkAllRead)
	r.POST("/notifications/:id/mark-read", notifications.MarkRead)

	timecard := NewTimecardHandler(suite.timecard)
	r.POST("/timecard", timecard.LogHours)

	admin := NewAdminHandler(suite.admin)
	r.POST("/admin/projects/:id/assign", admin.AssignUser)
	r.POST("/admin/users/:id/delete", admin.DeleteUser)
	return r
}

func (suite *HandlerTestSuite) do(user *models.User, method, path string, payload interface{}) *httptest.ResponseRecorder {
	if payload != nil {
		return postJSON(suite.router(user), path, payload)
	}
	w := httptest.NewRecorder()
	suite.router(user).ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func (suite *HandlerTestSuite) decodeError(w *httptest.ResponseRecorder) apierrors.APIError {
	var apiErr apierrors.APIError
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

func (suite *HandlerTestSuite) requireRedirect(w *httptest.ResponseRecorder, redirect string) {
	suite.Require().Equal(http.StatusForbidden, w.Code)
	var body struct {
		Code    string             `json:"code"`
		Details apierrors.Redirect `json:"details"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(apierrors.ErrCodeForbidden, body.Code)
	suite.Equal(redirect, body.Details.Redirect)
}

func (suite *HandlerTestSuite) TestListProjects_ClientSeesAssigned() {
	mine := suite.createTestProject("Wayne Residential Complex")
	suite.createTestProject("Stark Tower")
	suite.assign(mine, suite.client)

	w := suite.do(suite.client, http.MethodGet, "/projects", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ProjectListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Projects, 1)
	suite.Equal(mine.ID, resp.Projects[0].ID)
	suite.Equal(int64(1), resp.Pagination.TotalCount)
	suite.Equal("name", resp.Sort)

	w = suite.do(suite.employee, http.MethodGet, "/projects?q=TOWER", nil)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Projects, 1)
	suite.Equal("Stark Tower", resp.Projects[0].Name)
}

func (suite *HandlerTestSuite) TestListProjects_PageBeyondEnd() {
	for i := 0; i < 20; i++ {
		suite.createTestProject(fmt.Sprintf("Project %02d", i))
	}

	w := suite.do(suite.employee, http.MethodGet, "/projects?page=1", nil)
	var resp dto.ProjectListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Projects, 15)
	suite.True(resp.Pagination.HasNext)

	w = suite.do(suite.employee, http.MethodGet, "/projects?page=7", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Empty(resp.Projects)
	suite.False(resp.Pagination.HasNext)
}

func (suite *HandlerTestSuite) TestListProjects_OverdueFlag() {
	w := suite.do(suite.employee, http.MethodPost, "/projects/create", map[string]interface{}{
		"name":     "Late",
		"due_date": "2001-01-01",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.do(suite.employee, http.MethodGet, "/projects", nil)
	var resp dto.ProjectListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Projects, 1)
	suite.True(resp.Projects[0].IsOverdue)
	suite.Require().NotNil(resp.Projects[0].DueDate)
	suite.Equal("2001-01-01", *resp.Projects[0].DueDate)
}

func (suite *HandlerTestSuite) TestGetProject_ClientForbiddenWithoutDisclosure() {
	other := suite.createTestProject("Other")

	for _, id := range []uint64{other.ID, 4242} {
		w := suite.do(suite.client, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil)
		suite.requireRedirect(w, constants.RedirectDashboard)
	}

	w := suite.do(suite.employee, http.MethodGet, "/projects/4242", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(suite.employee, http.MethodGet, "/projects/abc", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateProject_Validation() {
	w := suite.do(suite.employee, http.MethodPost, "/projects/create", map[string]interface{}{"name": "  "})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Project name is required!", suite.decodeError(w).Message)

	w = suite.do(suite.employee, http.MethodPost, "/projects/create", map[string]interface{}{"name": "X", "due_date": "soon"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(suite.employee, http.MethodPost, "/projects/create", map[string]interface{}{"name": "X", "client_id": 999})
	suite.Equal(http.StatusBadRequest, w.Code)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Project{}).Count(&count).Error)
	suite.Zero(count)

	// html form post with an empty client select
	form := url.Values{"name": {"From Form"}, "client_id": {""}, "due_date": {"12/23/2025"}, "status": {"In Progress"}}
	req := httptest.NewRequest(http.MethodPost, "/projects/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	suite.router(suite.employee).ServeHTTP(rec, req)
	suite.Require().Equal(http.StatusCreated, rec.Code)

	var body struct {
		Project dto.ProjectDTO `json:"project"`
	}
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	suite.Nil(body.Project.ClientID)
	suite.Equal(models.ProjectStatusInProgress, body.Project.Status)
	suite.Require().NotNil(body.Project.DueDate)
	suite.Equal("2025-12-23", *body.Project.DueDate)
}

func (suite *HandlerTestSuite) TestSetMilestone() {
	project := suite.createTestProject("Milestones")

	w := suite.do(suite.employee, http.MethodPost, fmt.Sprintf("/projects/%d/milestones/m2", project.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.MilestoneResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(project.ID, resp.ProjectID)
	suite.False(resp.M1)
	suite.True(resp.M2)
	suite.False(resp.M3)
	suite.Equal(models.MilestoneSurvey, resp.Completed)

	w = suite.do(suite.employee, http.MethodPost, fmt.Sprintf("/projects/%d/milestones/M9", project.ID), nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.assign(project, suite.client)
	w = suite.do(suite.client, http.MethodPost, fmt.Sprintf("/projects/%d/milestones/M1", project.ID), nil)
	suite.requireRedirect(w, constants.RedirectDashboard)
}

func (suite *HandlerTestSuite) TestDeleteGuards() {
	w := suite.do(suite.employee, http.MethodPost, "/clients/create", map[string]string{"name": "Bruce Wayne"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var created struct {
		Client dto.ClientDTO `json:"client"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	project, err := suite.projects.Create(suite.ctx, suite.employee, services.ProjectInput{Name: "Manor", ClientID: &created.Client.ID})
	suite.Require().NoError(err)

	w = suite.do(suite.employee, http.MethodPost, fmt.Sprintf("/clients/%d/delete", created.Client.ID), nil)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(apierrors.ErrCodeConflict, suite.decodeError(w).Code)

	start := time.Now()
	_, err = suite.events.Create(suite.ctx, suite.employee, services.EventInput{Title: "Kickoff", ProjectID: &project.ID, Start: &start})
	suite.Require().NoError(err)

	w = suite.do(suite.employee, http.MethodPost, fmt.Sprintf("/projects/%d/delete", project.ID), nil)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do(suite.employee, http.MethodGet, "/clients", nil)
	var list dto.ClientListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Require().Len(list.Clients, 1)
	suite.Require().NotNil(list.Clients[0].ProjectCount)
	suite.Equal(int64(1), *list.Clients[0].ProjectCount)
}

func (suite *HandlerTestSuite) TestCreateEvent_Validation() {
	w := suite.do(suite.employee, http.MethodPost, "/events/create", map[string]string{"title": "No start"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(suite.employee, http.MethodPost, "/events/create", map[string]string{
		"title": "Backwards", "start": "2025-11-20T10:00", "end": "2025-11-20T09:00",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(suite.employee, http.MethodPost, "/events/create", map[string]interface{}{
		"title": "Ghost project", "start": "2025-11-20T10:00", "project_id": 999,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(suite.employee, http.MethodPost, "/events/create", map[string]string{
		"title": "Site visit", "start": "2025-11-20 09:00", "end": "2025-11-20 11:00",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestNotifications() {
	other := suite.createTestUser("olga@studio.test", "Olga", models.RoleEmployee)

	w := suite.do(suite.client, http.MethodPost, "/notifications/create", map[string]string{"message": "Hello studio"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.do(suite.employee, http.MethodPost, "/notifications/send", map[string]interface{}{
		"recipient_id": other.ID, "message": "Just for Olga",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var sent struct {
		Notification dto.NotificationDTO `json:"notification"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &sent))

	w = suite.do(suite.employee, http.MethodPost, "/notifications/send", map[string]interface{}{
		"recipient_id": suite.client.ID, "message": "To a client",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(suite.employee, http.MethodGet, "/notifications", nil)
	var inbox dto.InboxResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &inbox))
	suite.Len(inbox.Notifications, 1)
	suite.Equal(int64(1), inbox.UnreadCount)

	for i := 0; i < 2; i++ {
		w = suite.do(suite.employee, http.MethodPost, "/notifications/mark-all-read", nil)
		suite.Require().Equal(http.StatusOK, w.Code)
	}

	w = suite.do(suite.employee, http.MethodGet, "/notifications", nil)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &inbox))
	suite.Zero(inbox.UnreadCount)

	w = suite.do(suite.employee, http.MethodPost, fmt.Sprintf("/notifications/%d/mark-read", sent.Notification.ID), nil)
	suite.requireRedirect(w, constants.RedirectNotifications)

	w = suite.do(other, http.MethodPost, fmt.Sprintf("/notifications/%d/mark-read", sent.Notification.ID), nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestTimecard() {
	project := suite.createTestProject("Hours")

	w := suite.do(suite.employee, http.MethodPost, "/timecard", map[string]interface{}{"project_id": project.ID, "hours": 0})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(suite.client, http.MethodPost, "/timecard", map[string]interface{}{"project_id": project.ID, "hours": 2})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(suite.employee, http.MethodPost, "/timecard", map[string]interface{}{"project_id": project.ID, "hours": 1.25})
	suite.Require().Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestInvoice() {
	project := suite.createTestProject("HQ")

	w := suite.do(suite.employee, http.MethodGet, fmt.Sprintf("/project/%d/generate_invoice", project.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var doc dto.DocumentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &doc))
	suite.Equal(services.DocumentInvoice, doc.Kind)
	suite.Contains(doc.Text, "Client: N/A")
	suite.Equal(constants.DocumentProjectNumber, doc.ProjectNumber)
	suite.Equal(time.Now().Format("01/02/2006"), doc.Date)

	w = suite.do(suite.client, http.MethodGet, fmt.Sprintf("/project/%d/generate_invoice", project.ID), nil)
	suite.requireRedirect(w, constants.RedirectDashboard)
}

func (suite *HandlerTestSuite) TestAdmin() {
	project := suite.createTestProject("Assign")
	path := fmt.Sprintf("/admin/projects/%d/assign", project.ID)

	w := suite.do(suite.employee, http.MethodPost, path, map[string]interface{}{"user_id": suite.client.ID})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.do(suite.employee, http.MethodPost, path, map[string]interface{}{"user_id": suite.client.ID})
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do(suite.employee, http.MethodPost, path, map[string]interface{}{})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(suite.employee, http.MethodPost, fmt.Sprintf("/admin/users/%d/delete", suite.employee.ID), nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(suite.employee, http.MethodPost, fmt.Sprintf("/admin/users/%d/delete", suite.client.ID), nil)
	suite.Equal(http.StatusConflict, w.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
