package models

import "time"

// User roles. Checked through ValidRole rather than ad hoc string comparisons.
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// ValidRole reports whether role is one of the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// User represents a registered student or administrator.
// The password hash never serializes outward.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"uniqueIndex;size:255;not null" json:"email"` // stored lowercase
	Password   string    `gorm:"size:255;not null" json:"-"`
	University string    `gorm:"size:200;default:VIT Vellore" json:"university"`
	Branch     string    `gorm:"size:200;default:Computer Science" json:"branch"`
	Year       int       `gorm:"default:2" json:"year"` // 1..4
	Role       string    `gorm:"size:20;default:user" json:"role"`
	Avatar     string    `gorm:"size:500" json:"avatar"`
	Bio        string    `gorm:"size:1000" json:"bio"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
