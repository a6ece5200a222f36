package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/campusshowcase/backend/internal/models"
)

func TestProjectCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	author := seedUser(t, db, "Author", "author@vit.ac.in", models.RoleUser)

	view, err := svc.Create(author.ID, &CreateProjectRequest{
		Title:        "  Campus Compass  ",
		Description:  "Indoor navigation for the campus",
		Technologies: []string{"Go", "React"},
		Category:     "Mobile App",
		GithubURL:    "https://github.com/author/campus-compass",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if view.Title != "Campus Compass" {
		t.Errorf("title should be trimmed, got %q", view.Title)
	}
	if view.Status != models.StatusPublished {
		t.Errorf("new projects should default to published, got %q", view.Status)
	}
	if view.Author.Name != "Author" {
		t.Errorf("author should be resolved, got %+v", view.Author)
	}
	if view.LikesCount != 0 || view.CommentsCount != 0 {
		t.Errorf("new project should have no likes or comments, got %d/%d", view.LikesCount, view.CommentsCount)
	}
}

func TestProjectCreate_InvalidCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	author := seedUser(t, db, "Author", "author@vit.ac.in", models.RoleUser)

	_, err := svc.Create(author.ID, &CreateProjectRequest{
		Title:        "Bad Category",
		Description:  "x",
		Technologies: []string{"Go"},
		Category:     "Underwater Basket Weaving",
	})
	if !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestProjectCreate_InvalidGitHubURL(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	author := seedUser(t, db, "Author", "author@vit.ac.in", models.RoleUser)

	_, err := svc.Create(author.ID, &CreateProjectRequest{
		Title:        "Bad URL",
		Description:  "x",
		Technologies: []string{"Go"},
		Category:     "Web Development",
		GithubURL:    "https://gitlab.com/author/repo",
	})
	if !errors.Is(err, ErrInvalidGitHubURL) {
		t.Errorf("expected ErrInvalidGitHubURL, got %v", err)
	}
}

func TestProjectList_PublishedOnlyNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	author := seedUser(t, db, "Author", "author@vit.ac.in", models.RoleUser)

	older := seedProject(t, db, author.ID, "Older")
	newer := seedProject(t, db, author.ID, "Newer")
	// Force a strict ordering; sqlite timestamps can land in the same instant.
	db.Model(&models.Project{}).Where("id = ?", newer.ID).
		Update("created_at", older.CreatedAt.Add(time.Second))

	draft := seedProject(t, db, author.ID, "Hidden Draft")
	db.Model(&models.Project{}).Where("id = ?", draft.ID).Update("status", models.StatusDraft)

	result, err := svc.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if result.Count != 2 {
		t.Fatalf("expected 2 published projects, got %d", result.Count)
	}
	if result.Projects[0].Title != "Newer" || result.Projects[1].Title != "Older" {
		t.Errorf("expected newest-first ordering, got %q then %q",
			result.Projects[0].Title, result.Projects[1].Title)
	}
	for _, p := range result.Projects {
		if p.Title == "Hidden Draft" {
			t.Error("draft projects must not appear in the public listing")
		}
	}
}

func TestProjectUpdate_PartialFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	author := seedUser(t, db, "Author", "author@vit.ac.in", models.RoleUser)
	project := seedProject(t, db, author.ID, "Original Title")

	newTitle := "Updated Title"
	view, err := svc.Update(project.ID, author.ID, &UpdateProjectRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if view.Title != "Updated Title" {
		t.Errorf("expected updated title, got %q", view.Title)
	}
	// Untouched fields keep their values.
	if view.Description != "A seeded test project" {
		t.Errorf("description should be unchanged, got %q", view.Description)
	}
	if view.Category != "Web Development" {
		t.Errorf("category should be unchanged, got %q", view.Category)
	}
}

func TestProjectUpdate_NotOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	author := seedUser(t, db, "Author", "author@vit.ac.in", models.RoleUser)
	intruder := seedUser(t, db, "Intruder", "intruder@vit.ac.in", models.RoleUser)
	project := seedProject(t, db, author.ID, "Protected")

	newTitle := "Hijacked"
	_, err := svc.Update(project.ID, intruder.ID, &UpdateProjectRequest{Title: &newTitle})
	if !errors.Is(err, ErrNotProjectOwner) {
		t.Fatalf("expected ErrNotProjectOwner, got %v", err)
	}

	// The record must be unchanged after the rejected attempt.
	var stored models.Project
	db.First(&stored, project.ID)
	if stored.Title != "Protected" {
		t.Errorf("rejected update must not modify the project, title is now %q", stored.Title)
	}
}

func TestProjectUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	author := seedUser(t, db, "Author", "author@vit.ac.in", models.RoleUser)

	newTitle := "Ghost"
	_, err := svc.Update(9999, author.ID, &UpdateProjectRequest{Title: &newTitle})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectUpdate_InvalidStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	author := seedUser(t, db, "Author", "author@vit.ac.in", models.RoleUser)
	project := seedProject(t, db, author.ID, "Status Check")

	bad := "archived"
	_, err := svc.Update(project.ID, author.ID, &UpdateProjectRequest{Status: &bad})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}

	good := models.StatusDraft
	view, err := svc.Update(project.ID, author.ID, &UpdateProjectRequest{Status: &good})
	if err != nil {
		t.Fatalf("valid status update failed: %v", err)
	}
	if view.Status != models.StatusDraft {
		t.Errorf("expected status draft, got %q", view.Status)
	}
}

func TestToggleLike_Parity(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	author := seedUser(t, db, "Author", "author@vit.ac.in", models.RoleUser)
	liker := seedUser(t, db, "Liker", "liker@vit.ac.in", models.RoleUser)
	project := seedProject(t, db, author.ID, "Likeable")

	// An even number of toggles always lands back at the starting state.
	for i := 0; i < 4; i++ {
		wantLiked := i%2 == 0
		wantCount := int64(0)
		if wantLiked {
			wantCount = 1
		}

		result, err := svc.ToggleLike(project.ID, liker.ID)
		if err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
		if result.IsLiked != wantLiked {
			t.Errorf("toggle %d: expected is_liked=%v, got %v", i, wantLiked, result.IsLiked)
		}
		if result.LikesCount != wantCount {
			t.Errorf("toggle %d: expected likes_count=%d, got %d", i, wantCount, result.LikesCount)
		}
	}
}

func TestToggleLike_TwoUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	author := seedUser(t, db, "Author", "author@vit.ac.in", models.RoleUser)
	alice := seedUser(t, db, "Alice", "alice@vit.ac.in", models.RoleUser)
	bob := seedUser(t, db, "Bob", "bob@vit.ac.in", models.RoleUser)
	project := seedProject(t, db, author.ID, "Popular")

	if _, err := svc.ToggleLike(project.ID, alice.ID); err != nil {
		t.Fatalf("alice like failed: %v", err)
	}
	result, err := svc.ToggleLike(project.ID, bob.ID)
	if err != nil {
		t.Fatalf("bob like failed: %v", err)
	}
	if result.LikesCount != 2 || !result.IsLiked {
		t.Errorf("expected 2 likes with is_liked=true, got %d/%v", result.LikesCount, result.IsLiked)
	}

	// Bob unliking leaves Alice's like intact.
	result, err = svc.ToggleLike(project.ID, bob.ID)
	if err != nil {
		t.Fatalf("bob unlike failed: %v", err)
	}
	if result.LikesCount != 1 || result.IsLiked {
		t.Errorf("expected 1 like with is_liked=false, got %d/%v", result.LikesCount, result.IsLiked)
	}
}

func TestToggleLike_ProjectNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	liker := seedUser(t, db, "Liker", "liker@vit.ac.in", models.RoleUser)

	_, err := svc.ToggleLike(9999, liker.ID)
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestAddComment(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	author := seedUser(t, db, "Author", "author@vit.ac.in", models.RoleUser)
	commenter := seedUser(t, db, "Commenter", "commenter@vit.ac.in", models.RoleUser)
	project := seedProject(t, db, author.ID, "Discussed")

	result, err := svc.AddComment(project.ID, commenter.ID, "  Nice work!  ")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	if result.Comment.Text != "Nice work!" {
		t.Errorf("comment text should be trimmed, got %q", result.Comment.Text)
	}
	if result.Comment.Author.Name != "Commenter" {
		t.Errorf("comment author should be resolved, got %+v", result.Comment.Author)
	}
	if result.Comment.CreatedAt.IsZero() {
		t.Error("comment timestamp should be server-assigned")
	}
	if result.TotalComments != 1 {
		t.Errorf("expected 1 comment total, got %d", result.TotalComments)
	}
}

func TestAddComment_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	author := seedUser(t, db, "Author", "author@vit.ac.in", models.RoleUser)
	project := seedProject(t, db, author.ID, "Discussed")

	if _, err := svc.AddComment(project.ID, author.ID, "   "); !errors.Is(err, ErrCommentRequired) {
		t.Errorf("whitespace-only comment: expected ErrCommentRequired, got %v", err)
	}

	// Exactly 500 characters is still accepted.
	if _, err := svc.AddComment(project.ID, author.ID, strings.Repeat("a", 500)); err != nil {
		t.Errorf("500-char comment should be accepted, got %v", err)
	}

	if _, err := svc.AddComment(project.ID, author.ID, strings.Repeat("a", 501)); !errors.Is(err, ErrCommentTooLong) {
		t.Errorf("501-char comment: expected ErrCommentTooLong, got %v", err)
	}
}

func TestAddComment_ProjectNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	commenter := seedUser(t, db, "Commenter", "commenter@vit.ac.in", models.RoleUser)

	_, err := svc.AddComment(9999, commenter.ID, "hello")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestToggleFeatured(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	author := seedUser(t, db, "Author", "author@vit.ac.in", models.RoleUser)
	project := seedProject(t, db, author.ID, "Spotlight")

	featured, err := svc.ToggleFeatured(project.ID)
	if err != nil {
		t.Fatalf("ToggleFeatured failed: %v", err)
	}
	if !featured {
		t.Error("first toggle should set featured=true")
	}

	featured, err = svc.ToggleFeatured(project.ID)
	if err != nil {
		t.Fatalf("second ToggleFeatured failed: %v", err)
	}
	if featured {
		t.Error("second toggle should set featured=false")
	}

	if _, err := svc.ToggleFeatured(9999); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectDelete_RemovesChildren(t *testing.T) {
	db := newTestDB(t)
	svc := NewProjectService(db)
	author := seedUser(t, db, "Author", "author@vit.ac.in", models.RoleUser)
	fan := seedUser(t, db, "Fan", "fan@vit.ac.in", models.RoleUser)
	project := seedProject(t, db, author.ID, "Doomed")

	if _, err := svc.ToggleLike(project.ID, fan.ID); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if _, err := svc.AddComment(project.ID, fan.ID, "rip"); err != nil {
		t.Fatalf("comment failed: %v", err)
	}

	if err := svc.Delete(project.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var likes, comments, projects int64
	db.Model(&models.ProjectLike{}).Where("project_id = ?", project.ID).Count(&likes)
	db.Model(&models.ProjectComment{}).Where("project_id = ?", project.ID).Count(&comments)
	db.Model(&models.Project{}).Where("id = ?", project.ID).Count(&projects)
	if likes != 0 || comments != 0 || projects != 0 {
		t.Errorf("delete should remove project with likes and comments, got %d/%d/%d", likes, comments, projects)
	}

	if err := svc.Delete(project.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("deleting again: expected ErrProjectNotFound, got %v", err)
	}
}
