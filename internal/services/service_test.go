package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/campusshowcase/backend/internal/config"
	"github.com/campusshowcase/backend/internal/models"
	"github.com/campusshowcase/backend/internal/utils"
)

func init() {
	utils.SetJWTSecret("test-secret-for-service-testing")
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: "test-secret-for-service-testing", ExpireHour: 24}
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    email,
		Password: "$2a$10$notarealhashbutirrelevanthere",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return &user
}

func seedProject(t *testing.T, db *gorm.DB, authorID uint, title string) *models.Project {
	t.Helper()
	project := models.Project{
		Title:        title,
		Description:  "A seeded test project",
		Technologies: models.StringList{"Go"},
		Category:     "Web Development",
		AuthorID:     authorID,
		Status:       models.StatusPublished,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to seed project %s: %v", title, err)
	}
	return &project
}
