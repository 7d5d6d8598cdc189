package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akashthakur2701/GitWrite/internal/middleware"
	"github.com/akashthakur2701/GitWrite/internal/services"
)

type LikeHandler struct {
	engagement *services.EngagementService
	reconciler *services.Reconciler
}

func NewLikeHandler(engagement *services.EngagementService, reconciler *services.Reconciler) *LikeHandler {
	return &LikeHandler{engagement: engagement, reconciler: reconciler}
}

// Toggle flips the caller's like on a post.
// POST /api/v1/like/:postId
func (h *LikeHandler) Toggle(c *gin.Context) {
	postID := c.Param("postId")
	if !validUUID(postID) {
		respondError(c, http.StatusBadRequest, "Invalid post ID format", "INVALID_POST_ID")
		return
	}

	result, err := h.engagement.ToggleLike(middleware.CurrentUserID(c), postID)
	if err != nil {
		failService(c, err, "Internal server error while toggling like", "LIKE_TOGGLE_FAILED")
		return
	}

	h.reconciler.Schedule(postID)

	message := "Post unliked successfully"
	if result.Active {
		message = "Post liked successfully"
	}
	respondOK(c, message, gin.H{
		"isLiked":    result.Active,
		"likesCount": result.Count,
	})
}

// Status reports the caller's like state and the post's counter.
// GET /api/v1/like/:postId/status
func (h *LikeHandler) Status(c *gin.Context) {
	postID := c.Param("postId")
	if !validUUID(postID) {
		respondError(c, http.StatusBadRequest, "Invalid post ID format", "INVALID_POST_ID")
		return
	}

	result, err := h.engagement.LikeStatus(middleware.CurrentUserID(c), postID)
	if err != nil {
		failService(c, err, "Internal server error while getting like status", "LIKE_STATUS_FAILED")
		return
	}

	respondOK(c, "Like status fetched successfully", gin.H{
		"isLiked":    result.Active,
		"likesCount": result.Count,
	})
}
