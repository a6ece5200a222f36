package models

import "time"

// Project statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ValidStatus reports whether status is draft or published.
func ValidStatus(status string) bool {
	return status == StatusDraft || status == StatusPublished
}

// Categories is the closed set of project categories.
var Categories = []string{
	"Web Development",
	"Mobile App",
	"AI/ML",
	"Data Science",
	"Game Development",
	"IoT",
	"Blockchain",
	"Other",
}

// ValidCategory reports whether category is one of Categories.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// GitHubURLPrefix is the only accepted prefix for project repository links.
const GitHubURLPrefix = "https://github.com/"

// Field length limits, enforced on create and update.
const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 1000
	MaxCommentLen     = 500
)

// Project is a portfolio entry owned by its author. Likes and comments have no
// lifecycle outside their parent project.
type Project struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	Title        string           `gorm:"size:100;not null" json:"title"`
	Description  string           `gorm:"size:1000;not null" json:"description"`
	Technologies StringList       `gorm:"type:text" json:"technologies"`
	Category     string           `gorm:"size:50;not null" json:"category"`
	GithubURL    string           `gorm:"size:500" json:"github_url"`
	LiveURL      string           `gorm:"size:500" json:"live_url"`
	Images       StringList       `gorm:"type:text" json:"images"`
	AuthorID     uint             `gorm:"index;not null" json:"author_id"`
	Author       User             `gorm:"foreignKey:AuthorID" json:"-"`
	Status       string           `gorm:"size:20;default:published" json:"status"`
	Featured     bool             `gorm:"default:false" json:"featured"`
	Likes        []ProjectLike    `gorm:"foreignKey:ProjectID" json:"likes,omitempty"`
	Comments     []ProjectComment `gorm:"foreignKey:ProjectID" json:"comments,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
