package main

import (
	"os"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/campusshowcase/backend/internal/config"
	"github.com/campusshowcase/backend/internal/handlers"
	"github.com/campusshowcase/backend/internal/models"
	"github.com/campusshowcase/backend/internal/services"
	"github.com/campusshowcase/backend/internal/utils"
	"github.com/campusshowcase/backend/pkg/logger"
)

// appServices holds all initialized dependencies needed by the application.
type appServices struct {
	cfg            *config.Config
	db             *gorm.DB
	authHandler    *handlers.AuthHandler
	projectHandler *handlers.ProjectHandler
	adminHandler   *handlers.AdminHandler
	logService     *services.ActivityLogService
	retentionCron  *cron.Cron
}

// bootstrap initializes database, services, handlers and schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	db, err := models.InitDB(&cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed a default admin if none exists
	authService := services.NewAuthService(db, &cfg.JWT)
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@showcase.local"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "change-me-admin"
	}
	if err := authService.EnsureAdmin(adminEmail, adminPassword); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed admin account")
	}

	logService := services.NewActivityLogService(db)
	retentionCron := logService.StartRetentionScheduler(cfg.Log.RetentionDays)

	return &appServices{
		cfg:            cfg,
		db:             db,
		authHandler:    handlers.NewAuthHandler(db, cfg),
		projectHandler: handlers.NewProjectHandler(db),
		adminHandler:   handlers.NewAdminHandler(db),
		logService:     logService,
		retentionCron:  retentionCron,
	}
}

// shutdown stops background schedulers.
func (s *appServices) shutdown() {
	if s.retentionCron != nil {
		s.retentionCron.Stop()
	}
	logger.Info().Msg("Schedulers stopped")
}
