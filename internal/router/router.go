package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-pm-api/internal/authz"
	"github.com/yukikurage/studio-pm-api/internal/config"
	"github.com/yukikurage/studio-pm-api/internal/constants"
	apierrors "github.com/yukikurage/studio-pm-api/internal/errors"
	"github.com/yukikurage/studio-pm-api/internal/handlers"
	"github.com/yukikurage/studio-pm-api/internal/metrics"
	"github.com/yukikurage/studio-pm-api/internal/middleware"
	"github.com/yukikurage/studio-pm-api/internal/repository"
	"github.com/yukikurage/studio-pm-api/internal/services"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers into a gin engine.
func New(cfg *config.Config, db *gorm.DB, store sessions.Store) (*gin.Engine, error) {
	policy, err := authz.NewPolicy()
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	buildingRepo := repository.NewBuildingRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	assignRepo := repository.NewAssignmentRepository(db)
	eventRepo := repository.NewEventRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	timeRepo := repository.NewTimeEntryRepository(db)

	// Services
	access := services.NewAccess(policy, assignRepo)
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, clientRepo, buildingRepo, eventRepo, assignRepo, timeRepo, access)
	clientService := services.NewClientService(clientRepo, projectRepo, eventRepo, access)
	buildingService := services.NewBuildingService(buildingRepo, access)
	eventService := services.NewEventService(eventRepo, projectRepo, access)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, projectRepo, access)
	timecardService := services.NewTimecardService(timeRepo, projectRepo, access)
	adminService := services.NewAdminService(userRepo, projectRepo, assignRepo, access)
	documentService := services.NewDocumentService(projectRepo, access)
	dashboardService := services.NewDashboardService(projectRepo, eventRepo, notificationService, access)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	clientHandler := handlers.NewClientHandler(clientService)
	buildingHandler := handlers.NewBuildingHandler(buildingService)
	projectHandler := handlers.NewProjectHandler(projectService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	eventHandler := handlers.NewEventHandler(eventService)
	adminHandler := handlers.NewAdminHandler(adminService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	timecardHandler := handlers.NewTimecardHandler(timecardService)
	healthHandler := handlers.NewHealthHandler(db)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	r.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "Page not found")
	})

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", metrics.Handler())

	// Public routes
	authLimit := middleware.AuthRateLimit()
	r.GET("/", authHandler.LoginStatus)
	r.POST("/", authLimit, authHandler.Login)
	r.GET("/register", authHandler.RegisterForm)
	r.POST("/register", authLimit, authHandler.Register)
	r.GET("/logout", authHandler.Logout)

	// Any signed-in user
	authed := r.Group("")
	authed.Use(middleware.RequireAuth(userRepo))
	{
		authed.GET("/me", authHandler.GetCurrentUser)
		authed.GET("/dashboard", dashboardHandler.Dashboard)
		authed.GET("/main", dashboardHandler.Main)

		authed.GET("/projects", projectHandler.ListProjects)
		authed.GET("/projects/:id", projectHandler.GetProject)
		authed.GET("/project/:id/generate_invoice", documentHandler.GenerateInvoice)
		authed.GET("/project/:id/generate_proposal", documentHandler.GenerateProposal)

		authed.GET("/events", eventHandler.ListEvents)

		authed.POST("/notifications/create", notificationHandler.CreateBroadcast)

		authed.GET("/timecard", timecardHandler.GetTimecard)
		authed.POST("/timecard", timecardHandler.LogHours)
	}

	// Employees only
	staff := authed.Group("")
	staff.Use(middleware.RequireEmployee())
	{
		staff.GET("/clients", clientHandler.ListClients)
		staff.POST("/clients/create", clientHandler.CreateClient)
		staff.GET("/clients/:id", clientHandler.GetClient)
		staff.POST("/clients/:id/update", clientHandler.UpdateClient)
		staff.POST("/clients/:id/delete", clientHandler.DeleteClient)

		staff.GET("/buildings", buildingHandler.ListBuildings)
		staff.POST("/buildings/create", buildingHandler.CreateBuilding)
		staff.GET("/buildings/:id", buildingHandler.GetBuilding)
		staff.POST("/buildings/:id/update", buildingHandler.UpdateBuilding)
		staff.POST("/buildings/:id/delete", buildingHandler.DeleteBuilding)

		staff.GET("/projects/options", projectHandler.GetOptions)
		staff.POST("/projects/create", projectHandler.CreateProject)
		staff.POST("/projects/:id/update", projectHandler.UpdateProject)
		staff.POST("/projects/:id/delete", projectHandler.DeleteProject)
		staff.POST("/projects/:id/milestones/:key", projectHandler.SetMilestone)

		staff.POST("/events/create", eventHandler.CreateEvent)
		staff.POST("/events/edit/:id", eventHandler.UpdateEvent)
		staff.POST("/events/delete/:id", eventHandler.DeleteEvent)

		staff.GET("/notifications", notificationHandler.ListNotifications)
		staff.POST("/notifications/send", notificationHandler.SendNotification)
		staff.POST("/notifications/mark-all-read", notificationHandler.MarkAllRead)
		staff.GET("/notifications/:id", notificationHandler.GetNotification)
		staff.POST("/notifications/:id/mark-read", notificationHandler.MarkRead)
		staff.POST("/notifications/:id/delete", notificationHandler.DeleteNotification)

		admin := staff.Group("/admin")
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/clients", adminHandler.ListClientUsers)
			admin.POST("/users/:id/change_role", adminHandler.ChangeRole)
			admin.POST("/users/:id/delete", adminHandler.DeleteUser)
			admin.POST("/projects/:id/assign", adminHandler.AssignUser)
			admin.POST("/projects/:id/unassign/:user_id", adminHandler.UnassignUser)
		}
	}

	return r, nil
}
