package services

import (
	"encoding/json"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/campusshowcase/backend/internal/models"
	"github.com/campusshowcase/backend/pkg/logger"
)

type ActivityLogService struct {
	db *gorm.DB
}

func NewActivityLogService(db *gorm.DB) *ActivityLogService {
	return &ActivityLogService{db: db}
}

// Record writes one activity entry. Failures are logged, not propagated: the
// audit trail must never fail the request it describes.
func (s *ActivityLogService) Record(level, module, action, message string, userID *uint, ip, userAgent string, extra interface{}) {
	var extraStr string
	if extra != nil {
		if b, err := json.Marshal(extra); err == nil {
			extraStr = string(b)
		}
	}

	entry := models.ActivityLog{
		Level:     level,
		Module:    module,
		Action:    action,
		Message:   message,
		UserID:    userID,
		IP:        ip,
		UserAgent: userAgent,
		Extra:     extraStr,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		logger.Warn().Err(err).Msg("failed to record activity log")
	}
}

type ActivityLogListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Level    string `form:"level"`
	Module   string `form:"module"`
}

type ActivityLogListResponse struct {
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Items    []models.ActivityLog `json:"items"`
}

// List returns activity entries newest-first with optional level/module filters.
func (s *ActivityLogService) List(req *ActivityLogListRequest) (*ActivityLogListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.ActivityLog{})
	if req.Level != "" {
		query = query.Where("level = ?", req.Level)
	}
	if req.Module != "" {
		query = query.Where("module = ?", req.Module)
	}

	var total int64
	query.Count(&total)

	var items []models.ActivityLog
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.PageSize).Find(&items).Error; err != nil {
		return nil, err
	}

	return &ActivityLogListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

// Cleanup deletes entries older than retentionDays and returns how many were
// removed.
func (s *ActivityLogService) Cleanup(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.ActivityLog{})
	return result.RowsAffected, result.Error
}

// StartRetentionScheduler runs Cleanup every night at 03:00. The returned cron
// is stopped at shutdown.
func (s *ActivityLogService) StartRetentionScheduler(retentionDays int) *cron.Cron {
	log := logger.Module("retention")

	c := cron.New()
	_, err := c.AddFunc("0 3 * * *", func() {
		deleted, err := s.Cleanup(retentionDays)
		if err != nil {
			log.Error().Err(err).Msg("activity log cleanup failed")
			return
		}
		if deleted > 0 {
			log.Info().Int64("deleted", deleted).Msg("activity log cleanup done")
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to schedule activity log cleanup")
		return c
	}
	c.Start()
	return c
}
