package services

import (
	"errors"
	"testing"

	"github.com/akashthakur2701/GitWrite/internal/models"
)

func TestCreateAndGetPost(t *testing.T) {
	database := newTestDB(t)
	svc := NewBlogService(database)
	author := createUser(t, database, "author@example.com", "Author")
	reader := createUser(t, database, "reader@example.com", "Reader")

	post, err := svc.CreatePost(author.ID, CreatePostInput{
		Title: "  Hello  ", Content: "body", Published: true,
	})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if post.Title != "Hello" {
		t.Errorf("expected trimmed title, got %q", post.Title)
	}

	got, err := svc.GetPost(reader.ID, post.ID)
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Views != 1 {
		t.Errorf("expected view counter bumped to 1, got %d", got.Views)
	}
	if got.Author.ID != author.ID {
		t.Errorf("expected author preloaded, got %q", got.Author.ID)
	}
}

func TestDraftVisibility(t *testing.T) {
	database := newTestDB(t)
	svc := NewBlogService(database)
	author := createUser(t, database, "author@example.com", "Author")
	reader := createUser(t, database, "reader@example.com", "Reader")
	draft := createPost(t, database, author, "Draft", false)

	if _, err := svc.GetPost(reader.ID, draft.ID); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected draft hidden from others, got %v", err)
	}

	got, err := svc.GetPost(author.ID, draft.ID)
	if err != nil {
		t.Fatalf("author should see own draft: %v", err)
	}
	if got.Views != 0 {
		t.Errorf("draft reads must not bump views, got %d", got.Views)
	}
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	database := newTestDB(t)
	svc := NewBlogService(database)
	author := createUser(t, database, "author@example.com", "Author")
	other := createUser(t, database, "other@example.com", "Other")
	post := createPost(t, database, author, "Hello", true)

	newTitle := "Updated"
	if _, err := svc.UpdatePost(other.ID, post.ID, UpdatePostInput{Title: &newTitle}); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected not-found for non-author update, got %v", err)
	}

	updated, err := svc.UpdatePost(author.ID, post.ID, UpdatePostInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated.Title != "Updated" {
		t.Errorf("expected title updated, got %q", updated.Title)
	}
	if updated.Content != "content" {
		t.Errorf("partial update must not clear content, got %q", updated.Content)
	}
}

func TestCommentsMaintainCounter(t *testing.T) {
	database := newTestDB(t)
	svc := NewBlogService(database)
	author := createUser(t, database, "author@example.com", "Author")
	reader := createUser(t, database, "reader@example.com", "Reader")
	post := createPost(t, database, author, "Hello", true)

	comment, err := svc.CreateComment(reader.ID, post.ID, "nice post")
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if comment.User.ID != reader.ID {
		t.Errorf("expected comment author preloaded, got %q", comment.User.ID)
	}
	if _, err := svc.CreateComment(author.ID, post.ID, "thanks"); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	var reloaded models.Post
	if err := database.First(&reloaded, "id = ?", post.ID).Error; err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	if reloaded.CommentsCount != 2 {
		t.Errorf("expected comments_count 2, got %d", reloaded.CommentsCount)
	}

	// Only the comment's author may delete it.
	if err := svc.DeleteComment(author.ID, comment.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("expected not-found for non-author delete, got %v", err)
	}
	if err := svc.DeleteComment(reader.ID, comment.ID); err != nil {
		t.Fatalf("DeleteComment failed: %v", err)
	}

	if err := database.First(&reloaded, "id = ?", post.ID).Error; err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	if reloaded.CommentsCount != 1 {
		t.Errorf("expected comments_count 1 after delete, got %d", reloaded.CommentsCount)
	}
}

func TestCommentOnDraftRejected(t *testing.T) {
	database := newTestDB(t)
	svc := NewBlogService(database)
	author := createUser(t, database, "author@example.com", "Author")
	reader := createUser(t, database, "reader@example.com", "Reader")
	draft := createPost(t, database, author, "Draft", false)

	if _, err := svc.CreateComment(reader.ID, draft.ID, "hi"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound for draft comment, got %v", err)
	}
}

func TestListPublished(t *testing.T) {
	database := newTestDB(t)
	svc := NewBlogService(database)
	author := createUser(t, database, "author@example.com", "Author")
	createPost(t, database, author, "Published A", true)
	createPost(t, database, author, "Published B", true)
	createPost(t, database, author, "Draft", false)

	posts, total, err := svc.ListPublished(PageSpec{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if total != 2 || len(posts) != 2 {
		t.Errorf("expected 2 published posts, got total=%d items=%d", total, len(posts))
	}
	for _, p := range posts {
		if !p.Published {
			t.Errorf("draft %q leaked into the public listing", p.Title)
		}
	}

	if _, _, err := svc.ListPublished(PageSpec{Page: -1, Limit: 10}); !errors.Is(err, ErrInvalidPagination) {
		t.Errorf("expected ErrInvalidPagination, got %v", err)
	}
}
