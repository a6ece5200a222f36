package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campusshowcase/backend/internal/middleware"
	"github.com/campusshowcase/backend/internal/services"
	"github.com/campusshowcase/backend/pkg/response"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{projectService: services.NewProjectService(db)}
}

// List returns all published projects, newest first
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	result, err := h.projectService.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create publishes a new project owned by the authenticated user
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "title, description, technologies and category are required")
		return
	}

	project, err := h.projectService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCategory) || errors.Is(err, services.ErrInvalidGitHubURL) {
			response.BadRequest(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"project": project})
}

// Update applies a partial update; only the author may modify their project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	project, err := h.projectService.Update(id, middleware.GetUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, services.ErrNotProjectOwner):
			response.Forbidden(c, err.Error())
		case errors.Is(err, services.ErrInvalidCategory),
			errors.Is(err, services.ErrInvalidGitHubURL),
			errors.Is(err, services.ErrInvalidStatus):
			response.BadRequest(c, err.Error())
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, gin.H{"project": project})
}

// ToggleLike likes or unlikes the project for the authenticated user
// POST /api/projects/:id/like
func (h *ProjectHandler) ToggleLike(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.projectService.ToggleLike(id, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

type addCommentRequest struct {
	Text string `json:"text"`
}

// AddComment appends a comment to the project
// POST /api/projects/:id/comment
func (h *ProjectHandler) AddComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.projectService.AddComment(id, middleware.GetUserID(c), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCommentRequired), errors.Is(err, services.ErrCommentTooLong):
			response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrProjectNotFound):
			response.NotFound(c, err.Error())
		default:
			response.Error(c, err)
		}
		return
	}

	response.Created(c, result)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
