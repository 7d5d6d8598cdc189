package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/akashthakur2701/GitWrite/internal/models"
)

// BlogSearchSpec is the typed filter set for blog search. Empty fields are
// skipped; there is no untyped where-clause accumulator.
type BlogSearchSpec struct {
	Query  string // substring match on title, content, excerpt
	Author string // substring match on author name
	SortBy string // "recent" (default) or "popular"
	Page   PageSpec
}

// UserSearchSpec filters users by substring on name, email or bio.
type UserSearchSpec struct {
	Query string
	Page  PageSpec
}

// SearchService implements simple substring search over published posts and
// users. It is not a full-text engine and does not try to be one.
type SearchService struct {
	db *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

func (s *SearchService) SearchBlogs(spec BlogSearchSpec) ([]models.Post, int64, error) {
	if err := spec.Page.Validate(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.blogQuery(spec).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if spec.SortBy == "popular" {
		order = "likes_count DESC, views DESC"
	}

	posts := make([]models.Post, 0, spec.Page.Limit)
	err := s.blogQuery(spec).
		Preload("Author").
		Order(order).
		Offset(spec.Page.Offset()).
		Limit(spec.Page.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *SearchService) blogQuery(spec BlogSearchSpec) *gorm.DB {
	q := s.db.Model(&models.Post{}).Where("published = ?", true)

	if term := strings.TrimSpace(spec.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(excerpt) LIKE ?", like, like, like)
	}
	if author := strings.TrimSpace(spec.Author); author != "" {
		like := "%" + strings.ToLower(author) + "%"
		q = q.Where("author_id IN (?)",
			s.db.Model(&models.User{}).Select("id").
				Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like))
	}
	return q
}

func (s *SearchService) SearchUsers(spec UserSearchSpec) ([]models.User, int64, error) {
	if err := spec.Page.Validate(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.userQuery(spec).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := make([]models.User, 0, spec.Page.Limit)
	err := s.userQuery(spec).
		Order("created_at DESC").
		Offset(spec.Page.Offset()).
		Limit(spec.Page.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *SearchService) userQuery(spec UserSearchSpec) *gorm.DB {
	q := s.db.Model(&models.User{})
	if term := strings.TrimSpace(spec.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(bio) LIKE ?", like, like, like)
	}
	return q
}

const suggestionLimit = 5

// BlogSuggestion and UserSuggestion are the trimmed projections returned by
// the typeahead endpoint.
type BlogSuggestion struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type UserSuggestion struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Verified bool   `json:"verified"`
}

// Suggestions returns up to 5 published post titles and 5 users matching the
// query. An empty query yields empty lists, not an error.
func (s *SearchService) Suggestions(query string) ([]BlogSuggestion, []UserSuggestion, error) {
	blogs := make([]BlogSuggestion, 0, suggestionLimit)
	users := make([]UserSuggestion, 0, suggestionLimit)

	term := strings.TrimSpace(query)
	if term == "" {
		return blogs, users, nil
	}
	like := "%" + strings.ToLower(term) + "%"

	err := s.db.Model(&models.Post{}).
		Select("id", "title").
		Where("published = ? AND LOWER(title) LIKE ?", true, like).
		Limit(suggestionLimit).
		Find(&blogs).Error
	if err != nil {
		return nil, nil, err
	}

	err = s.db.Model(&models.User{}).
		Select("id", "name", "avatar", "verified").
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like).
		Limit(suggestionLimit).
		Find(&users).Error
	if err != nil {
		return nil, nil, err
	}
	return blogs, users, nil
}
