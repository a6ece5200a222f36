package models

import "time"

// Author projections. Each endpoint resolves the author reference into one of
// these named views instead of selecting fields ad hoc: the public listing
// shows academic metadata, the admin console additionally sees the email.

// AuthorPublic is the author projection for public listings and comments.
type AuthorPublic struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	University string `json:"university"`
	Branch     string `json:"branch"`
	Year       int    `json:"year"`
}

// AuthorAdmin is the looser projection used in the admin console.
type AuthorAdmin struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PublicAuthor builds the public author view of a user.
func PublicAuthor(u *User) AuthorPublic {
	return AuthorPublic{
		ID:         u.ID,
		Name:       u.Name,
		University: u.University,
		Branch:     u.Branch,
		Year:       u.Year,
	}
}

// AdminAuthor builds the admin author view of a user.
func AdminAuthor(u *User) AuthorAdmin {
	return AuthorAdmin{ID: u.ID, Name: u.Name, Email: u.Email}
}

// CommentView is a comment with its author resolved to the public view.
type CommentView struct {
	ID        uint         `json:"id"`
	Author    AuthorPublic `json:"author"`
	Text      string       `json:"text"`
	CreatedAt time.Time    `json:"created_at"`
}

// LikeView is a like entry as exposed in project payloads.
type LikeView struct {
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectView is the public rendering of a project: author resolved to the
// public projection, embedded likes and comments flattened into views.
type ProjectView struct {
	ID            uint          `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Technologies  StringList    `json:"technologies"`
	Category      string        `json:"category"`
	GithubURL     string        `json:"github_url"`
	LiveURL       string        `json:"live_url"`
	Images        StringList    `json:"images"`
	Author        AuthorPublic  `json:"author"`
	Status        string        `json:"status"`
	Featured      bool          `json:"featured"`
	Likes         []LikeView    `json:"likes"`
	Comments      []CommentView `json:"comments"`
	LikesCount    int           `json:"likes_count"`
	CommentsCount int           `json:"comments_count"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// AdminProjectView is the admin rendering: same content with the admin author
// projection and embedded collections reduced to counts.
type AdminProjectView struct {
	ID            uint        `json:"id"`
	Title         string      `json:"title"`
	Category      string      `json:"category"`
	Author        AuthorAdmin `json:"author"`
	Status        string      `json:"status"`
	Featured      bool        `json:"featured"`
	LikesCount    int         `json:"likes_count"`
	CommentsCount int         `json:"comments_count"`
	CreatedAt     time.Time   `json:"created_at"`
}
