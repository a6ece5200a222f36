package models

import "time"

// ProjectLike records one user's like on one project. The composite unique
// index is the authoritative one-like-per-user invariant; the toggle logic
// relies on it under concurrent requests.
type ProjectLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_likes_project_user;not null" json:"project_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_project_likes_project_user;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProjectLike) TableName() string { return "project_likes" }
