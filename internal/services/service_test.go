package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/akashthakur2701/GitWrite/internal/db"
	"github.com/akashthakur2701/GitWrite/internal/models"
)

// newTestDB opens a fresh in-memory database per test. A single connection
// keeps every goroutine on the same in-memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(database); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return database
}

func createUser(t *testing.T, database *gorm.DB, email, name string) *models.User {
	t.Helper()
	user := models.User{Email: email, Name: name, Password: "x"}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return &user
}

func createPost(t *testing.T, database *gorm.DB, author *models.User, title string, published bool) *models.Post {
	t.Helper()
	post := models.Post{AuthorID: author.ID, Title: title, Content: "content", Published: published}
	if err := database.Create(&post).Error; err != nil {
		t.Fatalf("failed to create post %s: %v", title, err)
	}
	return &post
}

func storedLikesCount(t *testing.T, database *gorm.DB, postID string) int {
	t.Helper()
	var post models.Post
	if err := database.First(&post, "id = ?", postID).Error; err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	return post.LikesCount
}

func likeRowCount(t *testing.T, database *gorm.DB, postID string) int64 {
	t.Helper()
	var n int64
	if err := database.Model(&models.Like{}).Where("post_id = ?", postID).Count(&n).Error; err != nil {
		t.Fatalf("failed to count likes: %v", err)
	}
	return n
}
