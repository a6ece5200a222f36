package main

import (
	"github.com/gin-gonic/gin"

	"github.com/campusshowcase/backend/internal/handlers"
	"github.com/campusshowcase/backend/internal/middleware"
	"github.com/campusshowcase/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	r.Use(middleware.RequestID(), logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(svc.cfg.CORS.AllowedOrigins))

	// Brute-force guard on the public auth endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
		}

		// Public catalog
		api.GET("/projects", svc.projectHandler.List)

		// Authenticated routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(svc.db))
		{
			protected.GET("/auth/profile", svc.authHandler.Profile)

			protected.POST("/projects", svc.projectHandler.Create)
			protected.PUT("/projects/:id", svc.projectHandler.Update)
			protected.POST("/projects/:id/like", svc.projectHandler.ToggleLike)
			protected.POST("/projects/:id/comment", svc.projectHandler.AddComment)
		}

		// Admin routes: authentication, role gate, audit trail
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(svc.db), middleware.AdminRequired(), middleware.AuditLog(svc.logService))
		{
			admin.GET("/stats", svc.adminHandler.Stats)
			admin.GET("/logs", svc.adminHandler.Logs)
			admin.DELETE("/projects/:id", svc.adminHandler.DeleteProject)
			admin.PUT("/projects/:id/feature", svc.adminHandler.FeatureProject)
			admin.DELETE("/users/:id", svc.adminHandler.DeleteUser)
			admin.PUT("/users/:id/role", svc.adminHandler.UpdateRole)
		}
	}
}
