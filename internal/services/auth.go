package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/campusshowcase/backend/internal/config"
	"github.com/campusshowcase/backend/internal/models"
	"github.com/campusshowcase/backend/internal/utils"
	"github.com/campusshowcase/backend/pkg/logger"
)

var (
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db     *gorm.DB
	jwtCfg *config.JWTConfig
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, jwtCfg: jwtCfg}
}

type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	University string `json:"university"`
	Branch     string `json:"branch"`
	Year       int    `json:"year" binding:"omitempty,min=1,max=4"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	Token    string       `json:"token"`
	ExpireAt time.Time    `json:"expire_at"`
	User     *models.User `json:"user"`
}

// Register creates a new user account and issues a token. The duplicate-email
// pre-check is advisory only: the unique index is authoritative, and a race
// between check and insert still maps to ErrEmailTaken.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	s.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		Password:   hash,
		University: req.University,
		Branch:     req.Branch,
		Year:       req.Year,
		Role:       models.RoleUser,
		IsActive:   true,
	}
	if user.University == "" {
		user.University = "VIT Vellore"
	}
	if user.Branch == "" {
		user.Branch = "Computer Science"
	}
	if user.Year == 0 {
		user.Year = 2
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issueToken(&user)
}

// Login authenticates by normalized email and password. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(req *LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(&user)
}

// GetProfile returns a user by ID.
func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) issueToken(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(user.ID, user.Name, user.Role, s.jwtCfg.ExpireHour)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:    token,
		ExpireAt: time.Now().Add(time.Duration(s.jwtCfg.ExpireHour) * time.Hour),
		User:     user,
	}, nil
}

// EnsureAdmin creates a default admin account when none exists yet.
func (s *AuthService) EnsureAdmin(email, password string) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    strings.ToLower(email),
		Password: hash,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Info().Str("email", admin.Email).Msg("created default admin account")
	return nil
}
