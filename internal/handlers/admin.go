package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campusshowcase/backend/internal/middleware"
	"github.com/campusshowcase/backend/internal/services"
	"github.com/campusshowcase/backend/pkg/response"
)

type AdminHandler struct {
	adminService   *services.AdminService
	projectService *services.ProjectService
	logService     *services.ActivityLogService
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{
		adminService:   services.NewAdminService(db),
		projectService: services.NewProjectService(db),
		logService:     services.NewActivityLogService(db),
	}
}

// Stats aggregates platform counts plus full project and user listings
// GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	result, err := h.adminService.GetStats()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteProject removes any project
// DELETE /api/admin/projects/:id
func (h *AdminHandler) DeleteProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(id); err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "project deleted"})
}

// DeleteUser removes a user and cascades to their projects
// DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.adminService.DeleteUser(id, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, services.ErrSelfDeletion):
			response.BadRequest(c, err.Error())
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, gin.H{"message": "user and their projects deleted"})
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateRole changes a user's role
// PUT /api/admin/users/:id/role
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "role is required")
		return
	}

	identity, role, err := h.adminService.SetRole(id, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRole):
			response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			response.NotFound(c, err.Error())
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, gin.H{"user": gin.H{
		"id":    identity.ID,
		"name":  identity.Name,
		"email": identity.Email,
		"role":  role,
	}})
}

// FeatureProject flips the featured flag
// PUT /api/admin/projects/:id/feature
func (h *AdminHandler) FeatureProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	featured, err := h.projectService.ToggleFeatured(id)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"featured": featured})
}

// Logs lists audited operations
// GET /api/admin/logs
func (h *AdminHandler) Logs(c *gin.Context) {
	var req services.ActivityLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	result, err := h.logService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
