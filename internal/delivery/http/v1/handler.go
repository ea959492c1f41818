package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskboard/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleSetTaskStatus(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleDeleteTasks(c *gin.Context)

	HandleGetDashboard(c *gin.Context)
}

type handlerImpl struct {
	logger    zerolog.Logger
	auth      services.AuthService
	sessions  services.SessionService
	tasks     services.TaskService
	dashboard services.DashboardService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	sessionService services.SessionService,
	taskService services.TaskService,
	dashboardService services.DashboardService,
) Handler {
	return &handlerImpl{
		logger:    logger,
		auth:      authService,
		sessions:  sessionService,
		tasks:     taskService,
		dashboard: dashboardService,
	}
}

// RegisterRoutes mounts the v1 API on router.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router = router.Group("/api/v1")

	authRouter := router.Group("/auth")
	authRouter.POST("/login", h.HandleLogin)
	authRouter.POST("/refresh", h.HandleRefresh)
	authRouter.POST("/register", h.HandleRegister)
	authRouter.POST("/logout", h.HandleAuthMiddleware, h.HandleLogout)

	tasksRouter := router.Group("/tasks", h.HandleAuthMiddleware)
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.DELETE("", h.HandleDeleteTasks)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.PATCH("/:id/status", h.HandleSetTaskStatus)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)

	router.GET("/dashboard", h.HandleAuthMiddleware, h.HandleGetDashboard)
}
