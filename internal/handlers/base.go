package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akashthakur2701/GitWrite/internal/services"
)

// All endpoints answer with the same envelope:
// {success, message, data} on success, {success, message, error} on failure.

func respondOK(c *gin.Context, message string, data gin.H) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

func respondError(c *gin.Context, status int, message, code string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"error":   code,
	})
}

// failService maps service sentinels onto the HTTP taxonomy. Anything
// unrecognized is a store failure: logged server-side, reported as an opaque
// 500 so internal detail never reaches the client.
func failService(c *gin.Context, err error, message, code string) {
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		respondError(c, http.StatusNotFound, "Post not found or not published", "POST_NOT_FOUND")
	case errors.Is(err, services.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User not found", "USER_NOT_FOUND")
	case errors.Is(err, services.ErrCommentNotFound):
		respondError(c, http.StatusNotFound, "Comment not found", "COMMENT_NOT_FOUND")
	case errors.Is(err, services.ErrSelfFollow):
		respondError(c, http.StatusBadRequest, "You cannot follow yourself", "SELF_FOLLOW_NOT_ALLOWED")
	case errors.Is(err, services.ErrInvalidPagination):
		respondError(c, http.StatusBadRequest, "Invalid pagination parameters", "INVALID_PAGINATION")
	default:
		log.Printf("%s: %v", code, err)
		respondError(c, http.StatusInternalServerError, message, code)
	}
}

// validUUID rejects malformed path ids before any store access.
func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// parsePage reads ?page and ?limit. Bounds are enforced by
// services.PageSpec.Validate, not clamped here.
func parsePage(c *gin.Context, defaultLimit int) services.PageSpec {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil {
		limit = 0
	}
	return services.PageSpec{Page: page, Limit: limit}
}

// paginationMeta builds the envelope's pagination block. totalKey names the
// listing-specific total field (totalFollowers, totalBookmarks, ...).
func paginationMeta(page services.PageSpec, total int64, totalKey string) gin.H {
	totalPages := int((total + int64(page.Limit) - 1) / int64(page.Limit))
	return gin.H{
		"currentPage": page.Page,
		"totalPages":  totalPages,
		totalKey:      total,
		"hasNextPage": page.Page < totalPages,
		"hasPrevPage": page.Page > 1,
	}
}
