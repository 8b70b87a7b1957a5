package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"taskhub/internal/handler"
	"taskhub/internal/repository"
	"taskhub/pkg/mq"
	"taskhub/pkg/rbac"
)

type RouterDeps struct {
	DB        *pgxpool.Pool
	Publisher *mq.Publisher
	UserRepo  *repository.UserRepository
	JWTSecret string

	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Projects      *handler.ProjectHandler
	Tasks         *handler.TaskHandler
	Posts         *handler.PostHandler
	Notifications *handler.NotificationHandler
	Dashboard     *handler.DashboardHandler
	Outbox        *handler.OutboxHandler

	Logger *zap.Logger
}

// NewRouter 构建 HTTP 路由
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(TraceMiddleware())
	r.Use(RequestLogMiddleware(deps.Logger))
	r.Use(MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/readyz", func(c *gin.Context) {
		if err := deps.DB.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		if deps.Publisher != nil && !deps.Publisher.IsConnected() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "mq unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/login", deps.Auth.Login)

	authed := api.Group("")
	authed.Use(RequireAuth(deps.UserRepo, deps.JWTSecret))

	authed.GET("/dashboard", deps.Dashboard.Overview)

	projects := authed.Group("/projects")
	{
		projects.GET("", deps.Projects.ListProjects)
		projects.POST("", RequirePermission(rbac.PermissionCreateProject), deps.Projects.CreateProject)
		projects.GET("/:id", deps.Projects.GetProject)
		projects.PUT("/:id", deps.Projects.UpdateProject)
		projects.DELETE("/:id", deps.Projects.DeleteProject)

		projects.POST("/:id/members", deps.Projects.AddMember)
		projects.PUT("/:id/members/:user_id", deps.Projects.UpdateMemberRole)
		projects.DELETE("/:id/members/:user_id", deps.Projects.RemoveMember)
	}

	tasks := authed.Group("/tasks")
	{
		tasks.GET("", deps.Tasks.ListTasks)
		tasks.POST("", RequirePermission(rbac.PermissionCreateTask), deps.Tasks.CreateTask)
		tasks.GET("/:id", deps.Tasks.GetTask)
		tasks.PUT("/:id", deps.Tasks.UpdateTask)
		tasks.DELETE("/:id", deps.Tasks.DeleteTask)
	}

	posts := authed.Group("/posts")
	{
		posts.GET("", deps.Posts.ListPosts)
		posts.POST("", RequirePermission(rbac.PermissionCreatePost), deps.Posts.CreatePost)
		posts.GET("/:id", deps.Posts.GetPost)
		posts.PUT("/:id", deps.Posts.UpdatePost)
		posts.DELETE("/:id", deps.Posts.DeletePost)
		posts.POST("/:id/moderate", RequirePermission(rbac.PermissionModeratePosts), deps.Posts.ModeratePost)
	}

	notifications := authed.Group("/notifications")
	{
		notifications.GET("", deps.Notifications.ListNotifications)
		notifications.PUT("/:id/read", deps.Notifications.MarkRead)
		notifications.PUT("/read-all", deps.Notifications.MarkAllRead)
	}

	admin := authed.Group("/admin")
	admin.Use(RequirePermission(rbac.PermissionManageUsers))
	{
		admin.GET("/users", deps.Users.ListUsers)
		admin.PUT("/users/:id/status", deps.Users.UpdateUserStatus)

		admin.GET("/outbox/failed", deps.Outbox.ListFailed)
		admin.POST("/outbox/:id/replay", deps.Outbox.Replay)
	}

	return r
}
