package services

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/akashthakur2701/GitWrite/internal/models"
)

var ErrCommentNotFound = errors.New("comment not found")

type CreatePostInput struct {
	Title     string
	Content   string
	Excerpt   string
	Published bool
}

type UpdatePostInput struct {
	Title     *string
	Content   *string
	Excerpt   *string
	Published *bool
}

// BlogService owns posts and comments. Comment creation and deletion maintain
// Post.comments_count under the same transactional contract as the
// like/bookmark toggles.
type BlogService struct {
	db *gorm.DB
}

func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{db: db}
}

func (s *BlogService) CreatePost(authorID string, in CreatePostInput) (*models.Post, error) {
	post := models.Post{
		AuthorID:  authorID,
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Excerpt:   strings.TrimSpace(in.Excerpt),
		Published: in.Published,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies the non-nil fields. Only the author may update; a post
// owned by someone else reads as not found rather than leaking its existence.
func (s *BlogService) UpdatePost(authorID, postID string, in UpdatePostInput) (*models.Post, error) {
	var post models.Post
	err := s.db.Where("id = ? AND author_id = ?", postID, authorID).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	if in.Excerpt != nil {
		updates["excerpt"] = strings.TrimSpace(*in.Excerpt)
	}
	if in.Published != nil {
		updates["published"] = *in.Published
	}
	if len(updates) > 0 {
		if err := s.db.Model(&post).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &post, nil
}

// GetPost returns a published post, or the viewer's own draft. Published reads
// bump the view counter; views are best-effort, not part of the consistency
// contract.
func (s *BlogService) GetPost(viewerID, postID string) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Author").First(&post, "id = ?", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if !post.Published && post.AuthorID != viewerID {
		return nil, ErrPostNotFound
	}

	if post.Published {
		if err := s.db.Model(&post).UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
			log.Printf("failed to bump views for post %s: %v", post.ID, err)
		} else {
			post.Views++
		}
	}
	return &post, nil
}

// ListPublished returns published posts newest first.
func (s *BlogService) ListPublished(page PageSpec) ([]models.Post, int64, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.db.Model(&models.Post{}).Where("published = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]models.Post, 0, page.Limit)
	err := s.db.Preload("Author").
		Where("published = ?", true).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// CreateComment inserts the comment and increments comments_count in one
// transaction. The target must exist and be published.
func (s *BlogService) CreateComment(userID, postID, content string) (*models.Comment, error) {
	var post models.Post
	err := s.db.Where("id = ? AND published = ?", postID, true).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: strings.TrimSpace(content),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(&comment, "id = ?", comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes the caller's comment and decrements comments_count in
// one transaction. The delete's RowsAffected is the presence check, so a
// comment already removed by a concurrent request never double-decrements.
func (s *BlogService) DeleteComment(userID, commentID string) error {
	var comment models.Comment
	err := s.db.Where("id = ? AND user_id = ?", commentID, userID).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCommentNotFound
	}
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", commentID, userID).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("comments_count", gorm.Expr("comments_count - ?", 1)).Error
	})
}

// ListComments returns a published post's comments newest first.
func (s *BlogService) ListComments(postID string, page PageSpec) ([]models.Comment, int64, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}

	var post models.Post
	err := s.db.Where("id = ? AND published = ?", postID, true).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, ErrPostNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	comments := make([]models.Comment, 0, page.Limit)
	err = s.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
