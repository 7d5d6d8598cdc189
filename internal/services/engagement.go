package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/akashthakur2701/GitWrite/internal/models"
)

var (
	ErrPostNotFound      = errors.New("post not found or not published")
	ErrUserNotFound      = errors.New("user not found")
	ErrSelfFollow        = errors.New("you cannot follow yourself")
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)

// errAlreadyActive aborts a toggle transaction when a concurrent request from
// the same user inserted the relation first. The uniqueness constraint on the
// pair is the backstop; the caller treats this as "no-op, already active".
var errAlreadyActive = errors.New("relation already active")

// ToggleResult is the outcome of a like/bookmark toggle: the new state for the
// acting user and the post's counter re-read after the transaction committed.
type ToggleResult struct {
	Active bool
	Count  int
}

// FollowResult carries the live counts on both sides of the follow edge.
// Follower/following counts are never stored; they are COUNT(*) reads against
// the indexed pair columns.
type FollowResult struct {
	Active         bool
	TargetUser     models.User
	FollowerCount  int64
	FollowingCount int64
}

// PageSpec is the validated pagination window shared by all listings.
type PageSpec struct {
	Page  int
	Limit int
}

func (p PageSpec) Validate() error {
	if p.Page < 1 || p.Limit < 1 || p.Limit > 50 {
		return ErrInvalidPagination
	}
	return nil
}

func (p PageSpec) Offset() int {
	return (p.Page - 1) * p.Limit
}

// EngagementService owns the like/bookmark/follow toggles and their read
// surface. Each toggle flips the relation row and adjusts the paired counter
// in a single transaction; partial application is never acceptable.
type EngagementService struct {
	db *gorm.DB
}

func NewEngagementService(db *gorm.DB) *EngagementService {
	return &EngagementService{db: db}
}

// publishedPost loads the target post and enforces the visibility gate.
func (s *EngagementService) publishedPost(postID string) (*models.Post, error) {
	var post models.Post
	err := s.db.Where("id = ? AND published = ?", postID, true).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ToggleLike flips the (user, post) like row and moves likes_count with it.
//
// The delete carries its own presence check: DELETE ... WHERE pair reports
// RowsAffected, so the decrement is only issued when a row actually went away.
// A concurrent duplicate insert surfaces as gorm.ErrDuplicatedKey and is
// treated as already-active rather than an error.
func (s *EngagementService) ToggleLike(userID, postID string) (ToggleResult, error) {
	if _, err := s.publishedPost(postID); err != nil {
		return ToggleResult{}, err
	}

	active := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			// Was liked; the row is gone, pair the decrement with it.
			return tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("likes_count", gorm.Expr("likes_count - ?", 1)).Error
		}

		like := models.Like{UserID: userID, PostID: postID}
		if err := tx.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyActive
			}
			return err
		}
		active = true
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error
	})
	if errors.Is(err, errAlreadyActive) {
		active = true
	} else if err != nil {
		return ToggleResult{}, err
	}

	count, err := s.likesCount(postID)
	if err != nil {
		return ToggleResult{}, err
	}
	return ToggleResult{Active: active, Count: count}, nil
}

// LikeStatus reports whether userID likes postID and the current counter.
func (s *EngagementService) LikeStatus(userID, postID string) (ToggleResult, error) {
	if _, err := s.publishedPost(postID); err != nil {
		return ToggleResult{}, err
	}

	var like models.Like
	err := s.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ToggleResult{}, err
	}

	count, cerr := s.likesCount(postID)
	if cerr != nil {
		return ToggleResult{}, cerr
	}
	return ToggleResult{Active: err == nil, Count: count}, nil
}

// ToggleBookmark mirrors ToggleLike against the bookmark table and
// bookmarks_count.
func (s *EngagementService) ToggleBookmark(userID, postID string) (ToggleResult, error) {
	if _, err := s.publishedPost(postID); err != nil {
		return ToggleResult{}, err
	}

	active := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Bookmark{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("bookmarks_count", gorm.Expr("bookmarks_count - ?", 1)).Error
		}

		bookmark := models.Bookmark{UserID: userID, PostID: postID}
		if err := tx.Create(&bookmark).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyActive
			}
			return err
		}
		active = true
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("bookmarks_count", gorm.Expr("bookmarks_count + ?", 1)).Error
	})
	if errors.Is(err, errAlreadyActive) {
		active = true
	} else if err != nil {
		return ToggleResult{}, err
	}

	count, err := s.bookmarksCount(postID)
	if err != nil {
		return ToggleResult{}, err
	}
	return ToggleResult{Active: active, Count: count}, nil
}

// BookmarkStatus reports whether userID bookmarked postID and the current counter.
func (s *EngagementService) BookmarkStatus(userID, postID string) (ToggleResult, error) {
	if _, err := s.publishedPost(postID); err != nil {
		return ToggleResult{}, err
	}

	var bookmark models.Bookmark
	err := s.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&bookmark).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ToggleResult{}, err
	}

	count, cerr := s.bookmarksCount(postID)
	if cerr != nil {
		return ToggleResult{}, cerr
	}
	return ToggleResult{Active: err == nil, Count: count}, nil
}

// ListBookmarks returns the user's bookmarks newest first, with the bookmarked
// post and its author preloaded.
func (s *EngagementService) ListBookmarks(userID string, page PageSpec) ([]models.Bookmark, int64, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.db.Model(&models.Bookmark{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	bookmarks := make([]models.Bookmark, 0, page.Limit)
	err := s.db.Preload("Post").Preload("Post.Author").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&bookmarks).Error
	if err != nil {
		return nil, 0, err
	}
	return bookmarks, total, nil
}

// ToggleFollow flips the follow edge from followerID to targetID. Self-follow
// is rejected before any lookup. There is no stored counter to maintain; both
// counts in the result are live reads.
func (s *EngagementService) ToggleFollow(followerID, targetID string) (FollowResult, error) {
	if followerID == targetID {
		return FollowResult{}, ErrSelfFollow
	}

	var target models.User
	if err := s.db.First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FollowResult{}, ErrUserNotFound
		}
		return FollowResult{}, err
	}

	active := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, targetID).Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		follow := models.Follow{FollowerID: followerID, FollowingID: targetID}
		if err := tx.Create(&follow).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyActive
			}
			return err
		}
		active = true
		return nil
	})
	if errors.Is(err, errAlreadyActive) {
		active = true
	} else if err != nil {
		return FollowResult{}, err
	}

	followerCount, followingCount, err := s.followCounts(targetID, followerID)
	if err != nil {
		return FollowResult{}, err
	}
	return FollowResult{
		Active:         active,
		TargetUser:     target,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
	}, nil
}

// FollowStatus reports whether followerID follows targetID, with the target's
// live follower count.
func (s *EngagementService) FollowStatus(followerID, targetID string) (bool, int64, error) {
	var target models.User
	if err := s.db.First(&target, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrUserNotFound
		}
		return false, 0, err
	}

	var follow models.Follow
	err := s.db.Where("follower_id = ? AND following_id = ?", followerID, targetID).First(&follow).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, 0, err
	}

	var followerCount int64
	if cerr := s.db.Model(&models.Follow{}).Where("following_id = ?", targetID).Count(&followerCount).Error; cerr != nil {
		return false, 0, cerr
	}
	return err == nil, followerCount, nil
}

// ListFollowers returns the public profiles of users following userID,
// newest edge first.
func (s *EngagementService) ListFollowers(userID string, page PageSpec) ([]models.PublicProfile, int64, error) {
	return s.listFollowEdges(userID, page, "following_id", "Follower")
}

// ListFollowing returns the public profiles of users that userID follows,
// newest edge first.
func (s *EngagementService) ListFollowing(userID string, page PageSpec) ([]models.PublicProfile, int64, error) {
	return s.listFollowEdges(userID, page, "follower_id", "Following")
}

func (s *EngagementService) listFollowEdges(userID string, page PageSpec, whereColumn, preload string) ([]models.PublicProfile, int64, error) {
	if err := page.Validate(); err != nil {
		return nil, 0, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, err
	}

	var total int64
	if err := s.db.Model(&models.Follow{}).Where(whereColumn+" = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var edges []models.Follow
	err := s.db.Preload(preload).
		Where(whereColumn+" = ?", userID).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&edges).Error
	if err != nil {
		return nil, 0, err
	}

	profiles := make([]models.PublicProfile, 0, len(edges))
	for _, edge := range edges {
		other := edge.Follower
		if preload == "Following" {
			other = edge.Following
		}
		profile, perr := s.publicProfile(&other)
		if perr != nil {
			return nil, 0, perr
		}
		profiles = append(profiles, profile)
	}
	return profiles, total, nil
}

func (s *EngagementService) publicProfile(user *models.User) (models.PublicProfile, error) {
	var postCount, followerCount int64
	if err := s.db.Model(&models.Post{}).Where("author_id = ? AND published = ?", user.ID, true).Count(&postCount).Error; err != nil {
		return models.PublicProfile{}, err
	}
	if err := s.db.Model(&models.Follow{}).Where("following_id = ?", user.ID).Count(&followerCount).Error; err != nil {
		return models.PublicProfile{}, err
	}
	return models.PublicProfile{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Avatar:        user.Avatar,
		Bio:           user.Bio,
		Verified:      user.Verified,
		PostCount:     postCount,
		FollowerCount: followerCount,
	}, nil
}

// likesCount re-reads the stored counter after a toggle committed. The display
// value may be transiently stale under heavy contention; the stored value
// itself is maintained transactionally.
func (s *EngagementService) likesCount(postID string) (int, error) {
	var post models.Post
	if err := s.db.Select("likes_count").First(&post, "id = ?", postID).Error; err != nil {
		return 0, err
	}
	return post.LikesCount, nil
}

func (s *EngagementService) bookmarksCount(postID string) (int, error) {
	var post models.Post
	if err := s.db.Select("bookmarks_count").First(&post, "id = ?", postID).Error; err != nil {
		return 0, err
	}
	return post.BookmarksCount, nil
}

func (s *EngagementService) followCounts(targetID, followerID string) (int64, int64, error) {
	var followerCount, followingCount int64
	if err := s.db.Model(&models.Follow{}).Where("following_id = ?", targetID).Count(&followerCount).Error; err != nil {
		return 0, 0, err
	}
	if err := s.db.Model(&models.Follow{}).Where("follower_id = ?", followerID).Count(&followingCount).Error; err != nil {
		return 0, 0, err
	}
	return followerCount, followingCount, nil
}
