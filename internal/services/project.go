package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/campusshowcase/backend/internal/models"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrNotProjectOwner  = errors.New("not authorized to modify this project")
	ErrInvalidCategory  = errors.New("invalid project category")
	ErrInvalidStatus    = errors.New("status must be draft or published")
	ErrInvalidGitHubURL = errors.New("github url must start with " + models.GitHubURLPrefix)
	ErrCommentRequired  = errors.New("comment text is required")
	ErrCommentTooLong   = errors.New("comment must be at most 500 characters")
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Title        string   `json:"title" binding:"required,max=100"`
	Description  string   `json:"description" binding:"required,max=1000"`
	Technologies []string `json:"technologies" binding:"required,min=1"`
	Category     string   `json:"category" binding:"required"`
	GithubURL    string   `json:"github_url"`
	LiveURL      string   `json:"live_url"`
	Images       []string `json:"images"`
}

// UpdateProjectRequest carries partial updates: only non-nil fields are
// applied, absent fields stay untouched.
type UpdateProjectRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Technologies *[]string `json:"technologies"`
	Category     *string   `json:"category"`
	GithubURL    *string   `json:"github_url"`
	LiveURL      *string   `json:"live_url"`
	Images       *[]string `json:"images"`
	Status       *string   `json:"status"`
}

type ProjectListResponse struct {
	Projects []models.ProjectView `json:"projects"`
	Count    int                  `json:"count"`
}

type LikeResult struct {
	LikesCount int64 `json:"likes_count"`
	IsLiked    bool  `json:"is_liked"`
}

type CommentResult struct {
	Comment       models.CommentView `json:"comment"`
	TotalComments int64              `json:"total_comments"`
}

// List returns published projects newest-first with authors resolved to the
// public projection.
func (s *ProjectService) List() (*ProjectListResponse, error) {
	var projects []models.Project
	err := s.db.
		Where("status = ?", models.StatusPublished).
		Preload("Author").
		Preload("Likes").
		Preload("Comments").
		Preload("Comments.User").
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	views := make([]models.ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, buildProjectView(&projects[i]))
	}

	return &ProjectListResponse{Projects: views, Count: len(views)}, nil
}

// Create persists a new project owned by authorID. Status defaults to
// published.
func (s *ProjectService) Create(authorID uint, req *CreateProjectRequest) (*models.ProjectView, error) {
	if !models.ValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}
	if err := validateGitHubURL(req.GithubURL); err != nil {
		return nil, err
	}

	project := models.Project{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Technologies: models.StringList(req.Technologies),
		Category:     req.Category,
		GithubURL:    req.GithubURL,
		LiveURL:      req.LiveURL,
		Images:       models.StringList(req.Images),
		AuthorID:     authorID,
		Status:       models.StatusPublished,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	return s.loadView(project.ID)
}

// Update applies a partial update. Only the author may modify a project.
func (s *ProjectService) Update(projectID, actorID uint, req *UpdateProjectRequest) (*models.ProjectView, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	if project.AuthorID != actorID {
		return nil, ErrNotProjectOwner
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || utf8.RuneCountInString(title) > models.MaxTitleLen {
			return nil, errors.New("title must be 1-100 characters")
		}
		project.Title = title
	}
	if req.Description != nil {
		if *req.Description == "" || utf8.RuneCountInString(*req.Description) > models.MaxDescriptionLen {
			return nil, errors.New("description must be 1-1000 characters")
		}
		project.Description = *req.Description
	}
	if req.Technologies != nil {
		project.Technologies = models.StringList(*req.Technologies)
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			return nil, ErrInvalidCategory
		}
		project.Category = *req.Category
	}
	if req.GithubURL != nil {
		if err := validateGitHubURL(*req.GithubURL); err != nil {
			return nil, err
		}
		project.GithubURL = *req.GithubURL
	}
	if req.LiveURL != nil {
		project.LiveURL = *req.LiveURL
	}
	if req.Images != nil {
		project.Images = models.StringList(*req.Images)
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		project.Status = *req.Status
	}

	if err := s.db.Save(&project).Error; err != nil {
		return nil, err
	}

	return s.loadView(project.ID)
}

// ToggleLike likes the project if the actor has no like entry, otherwise
// removes it. The delete-then-insert runs in a transaction against the
// composite unique index; a duplicate-key conflict from a concurrent insert is
// retried once, at which point the retry observes the row and removes it.
func (s *ProjectService) ToggleLike(projectID, actorID uint) (*LikeResult, error) {
	if err := s.projectExists(projectID); err != nil {
		return nil, err
	}

	var liked bool
	for attempt := 0; ; attempt++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			res := tx.Where("project_id = ? AND user_id = ?", projectID, actorID).
				Delete(&models.ProjectLike{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				liked = false
				return nil
			}

			liked = true
			return tx.Create(&models.ProjectLike{ProjectID: projectID, UserID: actorID}).Error
		})
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt == 0 {
			continue
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.ProjectLike{}).
		Where("project_id = ?", projectID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	return &LikeResult{LikesCount: count, IsLiked: liked}, nil
}

// AddComment appends a comment with a server-assigned timestamp and returns
// the stored entry with its author resolved.
func (s *ProjectService) AddComment(projectID, actorID uint, text string) (*CommentResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentRequired
	}
	if utf8.RuneCountInString(text) > models.MaxCommentLen {
		return nil, ErrCommentTooLong
	}

	if err := s.projectExists(projectID); err != nil {
		return nil, err
	}

	comment := models.ProjectComment{
		ProjectID: projectID,
		UserID:    actorID,
		Text:      text,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	var author models.User
	if err := s.db.First(&author, actorID).Error; err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.Model(&models.ProjectComment{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	return &CommentResult{
		Comment: models.CommentView{
			ID:        comment.ID,
			Author:    models.PublicAuthor(&author),
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		},
		TotalComments: total,
	}, nil
}

// ToggleFeatured flips the featured flag and returns the new value. Admin-only
// at the route level.
func (s *ProjectService) ToggleFeatured(projectID uint) (bool, error) {
	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProjectNotFound
		}
		return false, err
	}

	project.Featured = !project.Featured
	if err := s.db.Save(&project).Error; err != nil {
		return false, err
	}
	return project.Featured, nil
}

// Delete removes a project with its embedded likes and comments. Admin-only
// at the route level.
func (s *ProjectService) Delete(projectID uint) error {
	if err := s.projectExists(projectID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, projectID).Error
	})
}

func (s *ProjectService) projectExists(projectID uint) error {
	var count int64
	if err := s.db.Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (s *ProjectService) loadView(projectID uint) (*models.ProjectView, error) {
	var project models.Project
	err := s.db.
		Preload("Author").
		Preload("Likes").
		Preload("Comments").
		Preload("Comments.User").
		First(&project, projectID).Error
	if err != nil {
		return nil, err
	}
	view := buildProjectView(&project)
	return &view, nil
}

func validateGitHubURL(url string) error {
	if url != "" && !strings.HasPrefix(url, models.GitHubURLPrefix) {
		return ErrInvalidGitHubURL
	}
	return nil
}

func buildProjectView(p *models.Project) models.ProjectView {
	likes := make([]models.LikeView, 0, len(p.Likes))
	for _, l := range p.Likes {
		likes = append(likes, models.LikeView{UserID: l.UserID, CreatedAt: l.CreatedAt})
	}

	comments := make([]models.CommentView, 0, len(p.Comments))
	for i := range p.Comments {
		c := &p.Comments[i]
		comments = append(comments, models.CommentView{
			ID:        c.ID,
			Author:    models.PublicAuthor(&c.User),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}

	return models.ProjectView{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Technologies:  p.Technologies,
		Category:      p.Category,
		GithubURL:     p.GithubURL,
		LiveURL:       p.LiveURL,
		Images:        p.Images,
		Author:        models.PublicAuthor(&p.Author),
		Status:        p.Status,
		Featured:      p.Featured,
		Likes:         likes,
		Comments:      comments,
		LikesCount:    len(likes),
		CommentsCount: len(comments),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
