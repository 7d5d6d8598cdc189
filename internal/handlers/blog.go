package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akashthakur2701/GitWrite/internal/middleware"
	"github.com/akashthakur2701/GitWrite/internal/services"
	"github.com/akashthakur2701/GitWrite/internal/utils"
)

type BlogHandler struct {
	blog *services.BlogService
}

func NewBlogHandler(blog *services.BlogService) *BlogHandler {
	return &BlogHandler{blog: blog}
}

type createBlogRequest struct {
	Title     string `json:"title" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Excerpt   string `json:"excerpt"`
	Published bool   `json:"published"`
}

type updateBlogRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Excerpt   *string `json:"excerpt"`
	Published *bool   `json:"published"`
}

// Create authors a new post.
// POST /api/v1/blog
func (h *BlogHandler) Create(c *gin.Context) {
	var req createBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", "VALIDATION_FAILED")
		return
	}

	post, err := h.blog.CreatePost(middleware.CurrentUserID(c), services.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Published: req.Published,
	})
	if err != nil {
		failService(c, err, "Internal server error while creating blog", "BLOG_CREATE_FAILED")
		return
	}

	respondOK(c, "Blog created successfully", gin.H{"blog": post})
}

// Update edits the caller's own post.
// PUT /api/v1/blog/:id
func (h *BlogHandler) Update(c *gin.Context) {
	postID := c.Param("id")
	if !validUUID(postID) {
		respondError(c, http.StatusBadRequest, "Invalid post ID format", "INVALID_POST_ID")
		return
	}

	var req updateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", "VALIDATION_FAILED")
		return
	}

	post, err := h.blog.UpdatePost(middleware.CurrentUserID(c), postID, services.UpdatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Published: req.Published,
	})
	if err != nil {
		failService(c, err, "Internal server error while updating blog", "BLOG_UPDATE_FAILED")
		return
	}

	respondOK(c, "Blog updated successfully", gin.H{"blog": post})
}

// Bulk lists published posts, newest first.
// GET /api/v1/blog/bulk?page&limit
func (h *BlogHandler) Bulk(c *gin.Context) {
	page := parsePage(c, 10)

	posts, total, err := h.blog.ListPublished(page)
	if err != nil {
		failService(c, err, "Internal server error while fetching blogs", "BLOGS_FETCH_FAILED")
		return
	}

	respondOK(c, "Blogs fetched successfully", gin.H{
		"blogs":      posts,
		"pagination": paginationMeta(page, total, "totalBlogs"),
	})
}

// Get returns a published post, or the caller's own draft, with the markdown
// content rendered to sanitized HTML.
// GET /api/v1/blog/:id
func (h *BlogHandler) Get(c *gin.Context) {
	postID := c.Param("id")
	if !validUUID(postID) {
		respondError(c, http.StatusBadRequest, "Invalid post ID format", "INVALID_POST_ID")
		return
	}

	post, err := h.blog.GetPost(middleware.CurrentUserID(c), postID)
	if err != nil {
		failService(c, err, "Internal server error while fetching blog", "BLOG_FETCH_FAILED")
		return
	}

	respondOK(c, "Blog fetched successfully", gin.H{
		"blog":        post,
		"contentHtml": utils.RenderMarkdown(post.Content),
	})
}
