package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akashthakur2701/GitWrite/internal/middleware"
	"github.com/akashthakur2701/GitWrite/internal/services"
)

type BookmarkHandler struct {
	engagement *services.EngagementService
	reconciler *services.Reconciler
}

func NewBookmarkHandler(engagement *services.EngagementService, reconciler *services.Reconciler) *BookmarkHandler {
	return &BookmarkHandler{engagement: engagement, reconciler: reconciler}
}

// Toggle flips the caller's bookmark on a post.
// POST /api/v1/bookmark/:postId
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	postID := c.Param("postId")
	if !validUUID(postID) {
		respondError(c, http.StatusBadRequest, "Invalid post ID format", "INVALID_POST_ID")
		return
	}

	result, err := h.engagement.ToggleBookmark(middleware.CurrentUserID(c), postID)
	if err != nil {
		failService(c, err, "Internal server error while toggling bookmark", "BOOKMARK_TOGGLE_FAILED")
		return
	}

	h.reconciler.Schedule(postID)

	message := "Post removed from bookmarks"
	if result.Active {
		message = "Post bookmarked successfully"
	}
	respondOK(c, message, gin.H{
		"isBookmarked":   result.Active,
		"bookmarksCount": result.Count,
	})
}

// Status reports the caller's bookmark state and the post's counter.
// GET /api/v1/bookmark/:postId/status
func (h *BookmarkHandler) Status(c *gin.Context) {
	postID := c.Param("postId")
	if !validUUID(postID) {
		respondError(c, http.StatusBadRequest, "Invalid post ID format", "INVALID_POST_ID")
		return
	}

	result, err := h.engagement.BookmarkStatus(middleware.CurrentUserID(c), postID)
	if err != nil {
		failService(c, err, "Internal server error while getting bookmark status", "BOOKMARK_STATUS_FAILED")
		return
	}

	respondOK(c, "Bookmark status fetched successfully", gin.H{
		"isBookmarked":   result.Active,
		"bookmarksCount": result.Count,
	})
}

// MyBookmarks lists the caller's bookmarks, newest first.
// GET /api/v1/bookmark/my-bookmarks?page&limit
func (h *BookmarkHandler) MyBookmarks(c *gin.Context) {
	page := parsePage(c, 10)

	bookmarks, total, err := h.engagement.ListBookmarks(middleware.CurrentUserID(c), page)
	if err != nil {
		failService(c, err, "Internal server error while fetching bookmarks", "BOOKMARKS_FETCH_FAILED")
		return
	}

	respondOK(c, "Bookmarked posts fetched successfully", gin.H{
		"bookmarks":  bookmarks,
		"pagination": paginationMeta(page, total, "totalBookmarks"),
	})
}
