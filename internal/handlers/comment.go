package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akashthakur2701/GitWrite/internal/middleware"
	"github.com/akashthakur2701/GitWrite/internal/services"
)

type CommentHandler struct {
	blog *services.BlogService
}

func NewCommentHandler(blog *services.BlogService) *CommentHandler {
	return &CommentHandler{blog: blog}
}

type createCommentRequest struct {
	PostID  string `json:"postId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Create adds a comment to a published post; the post's commentsCount moves
// in the same transaction.
// POST /api/v1/comment
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", "VALIDATION_FAILED")
		return
	}
	if !validUUID(req.PostID) {
		respondError(c, http.StatusBadRequest, "Invalid post ID format", "INVALID_POST_ID")
		return
	}

	comment, err := h.blog.CreateComment(middleware.CurrentUserID(c), req.PostID, req.Content)
	if err != nil {
		failService(c, err, "Internal server error while creating comment", "COMMENT_CREATE_FAILED")
		return
	}

	respondOK(c, "Comment created successfully", gin.H{"comment": comment})
}

// ListForPost lists a published post's comments, newest first.
// GET /api/v1/comment/post/:postId?page&limit
func (h *CommentHandler) ListForPost(c *gin.Context) {
	postID := c.Param("postId")
	if !validUUID(postID) {
		respondError(c, http.StatusBadRequest, "Invalid post ID format", "INVALID_POST_ID")
		return
	}
	page := parsePage(c, 20)

	comments, total, err := h.blog.ListComments(postID, page)
	if err != nil {
		failService(c, err, "Internal server error while fetching comments", "COMMENTS_FETCH_FAILED")
		return
	}

	respondOK(c, "Comments fetched successfully", gin.H{
		"comments":   comments,
		"pagination": paginationMeta(page, total, "totalComments"),
	})
}

// Delete removes the caller's own comment; the post's commentsCount moves in
// the same transaction.
// DELETE /api/v1/comment/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID := c.Param("commentId")
	if !validUUID(commentID) {
		respondError(c, http.StatusBadRequest, "Invalid comment ID format", "INVALID_COMMENT_ID")
		return
	}

	if err := h.blog.DeleteComment(middleware.CurrentUserID(c), commentID); err != nil {
		failService(c, err, "Internal server error while deleting comment", "COMMENT_DELETE_FAILED")
		return
	}

	respondOK(c, "Comment deleted successfully", nil)
}
