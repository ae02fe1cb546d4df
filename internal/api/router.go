package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard/internal/auth"
	"go.uber.org/zap"
)

// Handlers bundles the HTTP handlers mounted by NewRouter
type Handlers struct {
	Auth     *AuthHandler
	Projects *ProjectHandler
	Tasks    *TaskHandler
	Reviews  *ReviewHandler
}

// NewRouter wires all routes. Registration and login are open (a
// Bearer token on registration is parsed when present, so an admin can
// create accounts with roles); everything else requires a valid token,
// and project mutations additionally require the administrator role.
func NewRouter(h Handlers, tokens *auth.TokenManager, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "taskboard",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api/v1")

	api.POST("/auth/register", auth.OptionalMiddleware(tokens), h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("")
	authed.Use(auth.Middleware(tokens))
	{
		authed.GET("/projects", h.Projects.List)
		authed.GET("/projects/:id", h.Projects.Get)
		authed.GET("/projects/:id/summary", h.Projects.Summary)
		authed.GET("/projects/:id/summary/export", h.Projects.ExportSummary)

		authed.POST("/tasks", h.Tasks.Create)
		authed.GET("/tasks", h.Tasks.List)
		authed.GET("/tasks/:id", h.Tasks.Get)
		authed.PUT("/tasks/:id", h.Tasks.Update)
		authed.DELETE("/tasks/:id", h.Tasks.Delete)

		authed.POST("/tasks/:id/reviews", h.Reviews.Submit)
		authed.GET("/tasks/:id/reviews", h.Reviews.ListByTask)
		authed.PUT("/reviews/:id", h.Reviews.Amend)
		authed.DELETE("/reviews/:id", h.Reviews.Delete)
		authed.POST("/reviews/:id/reply", h.Reviews.Reply)
		authed.DELETE("/reviews/:id/reply", h.Reviews.DeleteReply)
	}

	admin := api.Group("")
	admin.Use(auth.Middleware(tokens), auth.RequireAdmin())
	{
		admin.POST("/projects", h.Projects.Create)
		admin.PUT("/projects/:id", h.Projects.Update)
		admin.DELETE("/projects/:id", h.Projects.Deactivate)

		admin.POST("/tasks/:id/approve", h.Tasks.Approve)
		admin.POST("/tasks/:id/reject", h.Tasks.Reject)
		admin.PUT("/tasks/:id/status", h.Tasks.SetStatus)
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
