package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campusshowcase/backend/internal/config"
	"github.com/campusshowcase/backend/internal/middleware"
	"github.com/campusshowcase/backend/internal/services"
	"github.com/campusshowcase/backend/pkg/logger"
	"github.com/campusshowcase/backend/pkg/response"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: services.NewAuthService(db, &cfg.JWT)}
}

// Register handles account creation
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name, email and password are required, password at least 6 characters")
		return
	}

	result, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			response.BadRequest(c, err.Error())
			return
		}
		logger.Error().Err(err).Msg("registration failed")
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		logger.Error().Err(err).Msg("login failed")
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Profile returns the authenticated user's own record
// GET /api/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.authService.GetProfile(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"user": user})
}
