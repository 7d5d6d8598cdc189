package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/akashthakur2701/GitWrite/internal/services"
)

type SearchHandler struct {
	search *services.SearchService
}

func NewSearchHandler(search *services.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Blogs searches published posts by substring.
// GET /api/v1/search/blogs?query&author&sortBy&page&limit
func (h *SearchHandler) Blogs(c *gin.Context) {
	spec := services.BlogSearchSpec{
		Query:  c.Query("query"),
		Author: c.Query("author"),
		SortBy: c.DefaultQuery("sortBy", "recent"),
		Page:   parsePage(c, 10),
	}

	posts, total, err := h.search.SearchBlogs(spec)
	if err != nil {
		failService(c, err, "Internal server error while searching blogs", "BLOG_SEARCH_FAILED")
		return
	}

	respondOK(c, "Blog search completed successfully", gin.H{
		"blogs":      posts,
		"pagination": paginationMeta(spec.Page, total, "totalResults"),
		"searchQuery": gin.H{
			"query":  spec.Query,
			"author": spec.Author,
			"sortBy": spec.SortBy,
		},
	})
}

// Suggestions returns typeahead suggestions: the top matching published post
// titles and users for the query.
// GET /api/v1/search/suggestions?query
func (h *SearchHandler) Suggestions(c *gin.Context) {
	blogs, users, err := h.search.Suggestions(c.Query("query"))
	if err != nil {
		failService(c, err, "Internal server error while fetching suggestions", "SUGGESTIONS_FAILED")
		return
	}

	respondOK(c, "Search suggestions fetched successfully", gin.H{
		"blogs": blogs,
		"users": users,
	})
}

// Users searches users by substring on name, email or bio.
// GET /api/v1/search/users?query&page&limit
func (h *SearchHandler) Users(c *gin.Context) {
	spec := services.UserSearchSpec{
		Query: c.Query("query"),
		Page:  parsePage(c, 10),
	}

	users, total, err := h.search.SearchUsers(spec)
	if err != nil {
		failService(c, err, "Internal server error while searching users", "USER_SEARCH_FAILED")
		return
	}

	respondOK(c, "User search completed successfully", gin.H{
		"users":      users,
		"pagination": paginationMeta(spec.Page, total, "totalResults"),
	})
}
