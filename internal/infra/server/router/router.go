// Package router sets up the HTTP routing for the application.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/budgy/backend/internal/domain/entity"
	"github.com/budgy/backend/internal/integration/entrypoint/controller"
	"github.com/budgy/backend/internal/integration/entrypoint/middleware"
)

// multipartMemory bounds the in-memory part of attachment uploads.
const multipartMemory = 8 << 20

// Controllers groups the HTTP handlers mounted by the router.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	User        *controller.UserController
	Category    *controller.CategoryController
	Transaction *controller.TransactionController
	Summary     *controller.SummaryController
	Admin       *controller.AdminController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	controllers      Controllers
	loginRateLimiter *middleware.RateLimiter
	authMiddleware   *middleware.AuthMiddleware
	roleMiddleware   *middleware.RoleMiddleware
	allowedOrigins   []string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	roleMiddleware *middleware.RoleMiddleware,
	allowedOrigins []string,
) *Router {
	return &Router{
		controllers:      controllers,
		loginRateLimiter: loginRateLimiter,
		authMiddleware:   authMiddleware,
		roleMiddleware:   roleMiddleware,
		allowedOrigins:   allowedOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	controller.RegisterValidation()

	// Default middleware: logger and recovery
	r.engine = gin.Default()
	r.engine.MaxMultipartMemory = multipartMemory
	r.engine.Use(r.corsMiddleware())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(r.allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = r.allowedOrigins
	}
	return cors.New(cfg)
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	c := r.controllers
	authenticate := r.authMiddleware.Authenticate()

	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", c.Health.Check)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", c.Auth.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), c.Auth.Login)
			auth.POST("/refresh", c.Auth.RefreshToken)
			auth.POST("/logout", c.Auth.Logout)
		}

		users := v1.Group("/users/me", authenticate)
		{
			users.GET("", c.User.Me)
			users.DELETE("", c.User.DeleteAccount)
			users.GET("/activity", c.User.Activity)
		}

		v1.GET("/transaction-types", authenticate, c.Category.ListTypes)

		categories := v1.Group("/categories", authenticate)
		{
			categories.GET("", c.Category.List)
			categories.POST("", c.Category.Create)
			categories.GET("/:id", c.Category.Get)
			categories.PATCH("/:id", c.Category.Update)
			categories.DELETE("/:id", c.Category.Delete)
		}

		transactions := v1.Group("/transactions", authenticate)
		{
			transactions.GET("", c.Transaction.List)
			transactions.POST("", c.Transaction.Create)
			transactions.GET("/export", c.Transaction.Export)
			transactions.GET("/:id", c.Transaction.Get)
			transactions.PATCH("/:id", c.Transaction.Update)
			transactions.DELETE("/:id", c.Transaction.Delete)
			transactions.PUT("/:id/attachment", c.Transaction.UploadAttachment)
			transactions.GET("/:id/attachment", c.Transaction.DownloadAttachment)
			transactions.DELETE("/:id/attachment", c.Transaction.RemoveAttachment)
		}

		summaries := v1.Group("/summary", authenticate)
		{
			summaries.GET("/monthly", c.Summary.Monthly)
		}

		admin := v1.Group("/admin", authenticate, r.roleMiddleware.Require(entity.RoleAdmin))
		{
			admin.GET("/action-logs", c.Admin.ActionLogs)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
