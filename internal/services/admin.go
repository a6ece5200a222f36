package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/campusshowcase/backend/internal/models"
)

var (
	ErrInvalidRole  = errors.New("invalid role")
	ErrSelfDeletion = errors.New("cannot delete your own account")
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

type PlatformStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalProjects int64 `json:"total_projects"`
	TotalAdmins   int64 `json:"total_admins"`
	TotalLikes    int64 `json:"total_likes"`
	TotalComments int64 `json:"total_comments"`
}

type AdminStatsResponse struct {
	Stats    PlatformStats             `json:"stats"`
	Projects []models.AdminProjectView `json:"projects"`
	Users    []models.User             `json:"users"`
}

// GetStats aggregates platform counts and returns all projects (admin author
// view) and users. Like and comment totals come from summing over every
// project; a full scan is acceptable at a single institution's scale.
func (s *AdminService) GetStats() (*AdminStatsResponse, error) {
	var stats PlatformStats
	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.Project{}).Count(&stats.TotalProjects)
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&stats.TotalAdmins)

	var projects []models.Project
	err := s.db.
		Preload("Author").
		Preload("Likes").
		Preload("Comments").
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	views := make([]models.AdminProjectView, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		stats.TotalLikes += int64(len(p.Likes))
		stats.TotalComments += int64(len(p.Comments))
		views = append(views, models.AdminProjectView{
			ID:            p.ID,
			Title:         p.Title,
			Category:      p.Category,
			Author:        models.AdminAuthor(&p.Author),
			Status:        p.Status,
			Featured:      p.Featured,
			LikesCount:    len(p.Likes),
			CommentsCount: len(p.Comments),
			CreatedAt:     p.CreatedAt,
		})
	}

	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	return &AdminStatsResponse{Stats: stats, Projects: views, Users: users}, nil
}

// DeleteUser removes a user and everything they authored. An admin cannot
// delete their own account. The cascade runs in one transaction so a failure
// cannot leave the user without their projects.
func (s *AdminService) DeleteUser(targetID, actingID uint) error {
	var user models.User
	if err := s.db.First(&user, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.ID == actingID {
		return ErrSelfDeletion
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var projectIDs []uint
		if err := tx.Model(&models.Project{}).
			Where("author_id = ?", targetID).
			Pluck("id", &projectIDs).Error; err != nil {
			return err
		}

		if len(projectIDs) > 0 {
			if err := tx.Where("project_id IN ?", projectIDs).Delete(&models.ProjectLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id IN ?", projectIDs).Delete(&models.ProjectComment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("author_id = ?", targetID).Delete(&models.Project{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, targetID).Error
	})
}

// SetRole changes a user's role within the closed role set and returns the
// minimal updated identity.
func (s *AdminService) SetRole(userID uint, role string) (*models.AuthorAdmin, string, error) {
	if !models.ValidRole(role) {
		return nil, "", ErrInvalidRole
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	if err := s.db.Model(&user).Update("role", role).Error; err != nil {
		return nil, "", err
	}

	identity := models.AdminAuthor(&user)
	return &identity, role, nil
}
