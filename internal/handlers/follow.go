package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akashthakur2701/GitWrite/internal/middleware"
	"github.com/akashthakur2701/GitWrite/internal/services"
)

type FollowHandler struct {
	engagement *services.EngagementService
}

func NewFollowHandler(engagement *services.EngagementService) *FollowHandler {
	return &FollowHandler{engagement: engagement}
}

// Toggle flips the follow edge from the caller to the target user.
// POST /api/v1/follow/:targetUserId
func (h *FollowHandler) Toggle(c *gin.Context) {
	targetID := c.Param("targetUserId")
	if !validUUID(targetID) {
		respondError(c, http.StatusBadRequest, "Invalid user ID format", "INVALID_USER_ID")
		return
	}

	result, err := h.engagement.ToggleFollow(middleware.CurrentUserID(c), targetID)
	if err != nil {
		failService(c, err, "Internal server error while toggling follow", "FOLLOW_TOGGLE_FAILED")
		return
	}

	message := fmt.Sprintf("You unfollowed %s", result.TargetUser.Name)
	if result.Active {
		message = fmt.Sprintf("You are now following %s", result.TargetUser.Name)
	}
	respondOK(c, message, gin.H{
		"isFollowing": result.Active,
		"targetUser": gin.H{
			"id":            result.TargetUser.ID,
			"name":          result.TargetUser.Name,
			"followerCount": result.FollowerCount,
		},
		"currentUser": gin.H{
			"followingCount": result.FollowingCount,
		},
	})
}

// Status reports whether the caller follows the target user.
// GET /api/v1/follow/:targetUserId/status
func (h *FollowHandler) Status(c *gin.Context) {
	targetID := c.Param("targetUserId")
	if !validUUID(targetID) {
		respondError(c, http.StatusBadRequest, "Invalid user ID format", "INVALID_USER_ID")
		return
	}

	isFollowing, followerCount, err := h.engagement.FollowStatus(middleware.CurrentUserID(c), targetID)
	if err != nil {
		failService(c, err, "Internal server error while getting follow status", "FOLLOW_STATUS_FAILED")
		return
	}

	respondOK(c, "Follow status fetched successfully", gin.H{
		"isFollowing":   isFollowing,
		"followerCount": followerCount,
	})
}

// Followers lists the users following :userId, newest edge first.
// GET /api/v1/follow/followers/:userId?page&limit
func (h *FollowHandler) Followers(c *gin.Context) {
	userID := c.Param("userId")
	if !validUUID(userID) {
		respondError(c, http.StatusBadRequest, "Invalid user ID format", "INVALID_USER_ID")
		return
	}
	page := parsePage(c, 20)

	followers, total, err := h.engagement.ListFollowers(userID, page)
	if err != nil {
		failService(c, err, "Internal server error while fetching followers", "FOLLOWERS_FETCH_FAILED")
		return
	}

	respondOK(c, "Followers fetched successfully", gin.H{
		"followers":  followers,
		"pagination": paginationMeta(page, total, "totalFollowers"),
	})
}

// Following lists the users that :userId follows, newest edge first.
// GET /api/v1/follow/following/:userId?page&limit
func (h *FollowHandler) Following(c *gin.Context) {
	userID := c.Param("userId")
	if !validUUID(userID) {
		respondError(c, http.StatusBadRequest, "Invalid user ID format", "INVALID_USER_ID")
		return
	}
	page := parsePage(c, 20)

	following, total, err := h.engagement.ListFollowing(userID, page)
	if err != nil {
		failService(c, err, "Internal server error while fetching following", "FOLLOWING_FETCH_FAILED")
		return
	}

	respondOK(c, "Following fetched successfully", gin.H{
		"following":  following,
		"pagination": paginationMeta(page, total, "totalFollowing"),
	})
}
