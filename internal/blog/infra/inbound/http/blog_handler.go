package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Khangithub17/real-estate-project/internal/blog/application"
	"github.com/Khangithub17/real-estate-project/internal/blog/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
	"github.com/Khangithub17/real-estate-project/pkg/utils"
)

// BlogHandler wires the blog endpoints.
type BlogHandler struct {
	service *application.BlogService
}

func NewBlogHandler(service *application.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// ---------------- Requests ----------------

type createPostRequest struct {
	Title         string            `json:"title" binding:"required"`
	Excerpt       string            `json:"excerpt" binding:"required"`
	Content       string            `json:"content" binding:"required"`
	Author        string            `json:"author" binding:"required"`
	FeaturedImage string            `json:"featuredImage"`
	Tags          []string          `json:"tags"`
	Category      domain.Category   `json:"category" binding:"required"`
	Status        domain.PostStatus `json:"status"`
	Featured      bool              `json:"featured"`
	SEO           domain.SEO        `json:"seo"`
}

type updatePostRequest struct {
	Title         *string            `json:"title,omitempty"`
	Excerpt       *string            `json:"excerpt,omitempty"`
	Content       *string            `json:"content,omitempty"`
	Author        *string            `json:"author,omitempty"`
	FeaturedImage *string            `json:"featuredImage,omitempty"`
	Tags          []string           `json:"tags,omitempty"`
	Category      *domain.Category   `json:"category,omitempty"`
	Status        *domain.PostStatus `json:"status,omitempty"`
	Featured      *bool              `json:"featured,omitempty"`
	SEO           *domain.SEO        `json:"seo,omitempty"`
}

// ---------------- Handlers ----------------

// CreatePost endpoint POST /api/blogs
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	p := &domain.Post{
		Title:         req.Title,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		Author:        req.Author,
		FeaturedImage: req.FeaturedImage,
		Tags:          req.Tags,
		Category:      req.Category,
		Status:        req.Status,
		Featured:      req.Featured,
		SEO:           req.SEO,
	}

	created, err := h.service.CreatePost(c.Request.Context(), p)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPost):
			utils.SendBadRequest(c, err.Error())
		case errors.Is(err, domain.ErrSlugTaken):
			utils.SendConflict(c, "a post with this title already exists")
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendCreated(c, "Blog post created successfully", gin.H{"blog": created})
}

// GetPost endpoint GET /api/blogs/:id
func (h *BlogHandler) GetPost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid blog id")
		return
	}

	p, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			utils.SendNotFound(c, "blog post not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"blog": p})
}

// GetPostBySlug endpoint GET /api/blogs/slug/:slug
func (h *BlogHandler) GetPostBySlug(c *gin.Context) {
	p, err := h.service.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			utils.SendNotFound(c, "blog post not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"blog": p})
}

// ListPosts endpoint GET /api/blogs (admin). The unrestricted list exposes
// drafts and archived posts, so it sits behind the admin middleware.
func (h *BlogHandler) ListPosts(c *gin.Context) {
	var filter domain.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	page, err := h.service.ListPosts(c.Request.Context(), filter, paginationFromQuery(c), sharedQuery.ParseSort(c.Query("sort")))
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, page)
}

// ListPublishedPosts endpoint GET /api/blogs/published. The status clause is
// forced, so anonymous readers never see drafts regardless of the query
// string.
func (h *BlogHandler) ListPublishedPosts(c *gin.Context) {
	var filter domain.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	filter.Status = string(domain.PostPublished)

	page, err := h.service.ListPosts(c.Request.Context(), filter, paginationFromQuery(c), sharedQuery.ParseSort(c.Query("sort")))
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, page)
}

// FeaturedPosts endpoint GET /api/blogs/featured
func (h *BlogHandler) FeaturedPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))

	items, err := h.service.FeaturedPosts(c.Request.Context(), limit)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"blogs": items})
}

// UpdatePost endpoint PUT /api/blogs/:id
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid blog id")
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	p, err := h.service.FindPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			utils.SendNotFound(c, "blog post not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	prevTitle, prevContent := p.Title, p.Content
	applyPostUpdate(p, req)

	if err := h.service.UpdatePost(c.Request.Context(), p, prevTitle, prevContent); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPost):
			utils.SendBadRequest(c, err.Error())
		case errors.Is(err, domain.ErrSlugTaken):
			utils.SendConflict(c, "a post with this title already exists")
		case errors.Is(err, domain.ErrPostNotFound):
			utils.SendNotFound(c, "blog post not found")
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"blog": p})
}

// DeletePost endpoint DELETE /api/blogs/:id
func (h *BlogHandler) DeletePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid blog id")
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			utils.SendNotFound(c, "blog post not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// LikePost endpoint POST /api/blogs/:id/like
func (h *BlogHandler) LikePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid blog id")
		return
	}

	likes, err := h.service.LikePost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			utils.SendNotFound(c, "blog post not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"likes": likes})
}

// BlogStats endpoint GET /api/blogs/stats
func (h *BlogHandler) BlogStats(c *gin.Context) {
	overview, byCategory, err := h.service.BlogStats(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{
		"overview":   overview,
		"categories": byCategory,
	})
}

// ---------------- Helpers ----------------

func paginationFromQuery(c *gin.Context) sharedQuery.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return sharedQuery.NewPagination(page, limit)
}

func applyPostUpdate(p *domain.Post, req updatePostRequest) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Excerpt != nil {
		p.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.Author != nil {
		p.Author = *req.Author
	}
	if req.FeaturedImage != nil {
		p.FeaturedImage = *req.FeaturedImage
	}
	if req.Tags != nil {
		p.Tags = req.Tags
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.SEO != nil {
		p.SEO = *req.SEO
	}
}
