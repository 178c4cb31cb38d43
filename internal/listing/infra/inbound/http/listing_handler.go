package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Khangithub17/real-estate-project/internal/listing/application"
	"github.com/Khangithub17/real-estate-project/internal/listing/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
	"github.com/Khangithub17/real-estate-project/pkg/utils"
)

// ListingHandler wires the listing endpoints.
type ListingHandler struct {
	service *application.ListingService
}

func NewListingHandler(service *application.ListingService) *ListingHandler {
	return &ListingHandler{service: service}
}

// ---------------- Requests ----------------

type createListingRequest struct {
	Title          string                `json:"title" binding:"required"`
	Description    string                `json:"description" binding:"required"`
	Images         []string              `json:"images"`
	Location       domain.Location       `json:"location" binding:"required"`
	Price          float64               `json:"price"`
	PropertyType   domain.PropertyType   `json:"propertyType" binding:"required"`
	Status         domain.ListingStatus  `json:"status"`
	Features       []string              `json:"features"`
	Specifications domain.Specifications `json:"specifications"`
	Amenities      []string              `json:"amenities"`
	Featured       bool                  `json:"featured"`
	Agent          domain.Agent          `json:"agent"`
}

type updateListingRequest struct {
	Title          *string                `json:"title,omitempty"`
	Description    *string                `json:"description,omitempty"`
	Images         []string               `json:"images,omitempty"`
	Location       *domain.Location       `json:"location,omitempty"`
	Price          *float64               `json:"price,omitempty"`
	PropertyType   *domain.PropertyType   `json:"propertyType,omitempty"`
	Status         *domain.ListingStatus  `json:"status,omitempty"`
	Features       []string               `json:"features,omitempty"`
	Specifications *domain.Specifications `json:"specifications,omitempty"`
	Amenities      []string               `json:"amenities,omitempty"`
	Featured       *bool                  `json:"featured,omitempty"`
	Agent          *domain.Agent          `json:"agent,omitempty"`
}

// ---------------- Handlers ----------------

// CreateListing endpoint POST /api/projects
func (h *ListingHandler) CreateListing(c *gin.Context) {
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	l := &domain.Listing{
		Title:          req.Title,
		Description:    req.Description,
		Images:         req.Images,
		Location:       req.Location,
		Price:          req.Price,
		PropertyType:   req.PropertyType,
		Status:         req.Status,
		Features:       req.Features,
		Specifications: req.Specifications,
		Amenities:      req.Amenities,
		Featured:       req.Featured,
		Agent:          req.Agent,
	}

	created, err := h.service.CreateListing(c.Request.Context(), l)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidListing) {
			utils.SendBadRequest(c, err.Error())
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendCreated(c, "Project created successfully", gin.H{"project": created})
}

// GetListing endpoint GET /api/projects/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid project id")
		return
	}

	l, err := h.service.GetListing(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			utils.SendNotFound(c, "project not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"project": l})
}

// ListListings endpoint GET /api/projects
func (h *ListingHandler) ListListings(c *gin.Context) {
	var filter domain.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	page, err := h.service.ListListings(c.Request.Context(), filter, paginationFromQuery(c), sharedQuery.ParseSort(c.Query("sort")))
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, page)
}

// FeaturedListings endpoint GET /api/projects/featured
func (h *ListingHandler) FeaturedListings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))

	items, err := h.service.FeaturedListings(c.Request.Context(), limit)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"projects": items})
}

// UpdateListing endpoint PUT /api/projects/:id
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid project id")
		return
	}

	var req updateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	l, err := h.service.FindListing(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			utils.SendNotFound(c, "project not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	applyListingUpdate(l, req)

	if err := h.service.UpdateListing(c.Request.Context(), l); err != nil {
		if errors.Is(err, domain.ErrInvalidListing) {
			utils.SendBadRequest(c, err.Error())
			return
		}
		if errors.Is(err, domain.ErrListingNotFound) {
			utils.SendNotFound(c, "project not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"project": l})
}

// AddListingImage endpoint POST /api/projects/:id/images. The image arrives
// as the raw request body; the filename comes from the query string.
func (h *ListingHandler) AddListingImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid project id")
		return
	}

	filename := c.Query("filename")
	if filename == "" {
		utils.SendBadRequest(c, "filename is required")
		return
	}

	l, err := h.service.AddImage(c.Request.Context(), id, filename, c.ContentType(), c.Request.Body, c.Request.ContentLength)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrListingNotFound):
			utils.SendNotFound(c, "project not found")
		case errors.Is(err, application.ErrStorageUnavailable):
			utils.SendError(c, http.StatusServiceUnavailable, err.Error())
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"project": l})
}

// DeleteListing endpoint DELETE /api/projects/:id
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid project id")
		return
	}

	if err := h.service.DeleteListing(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			utils.SendNotFound(c, "project not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// ListingStats endpoint GET /api/projects/stats
func (h *ListingHandler) ListingStats(c *gin.Context) {
	overview, byType, err := h.service.ListingStats(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{
		"overview":      overview,
		"propertyTypes": byType,
	})
}

// ---------------- Helpers ----------------

func paginationFromQuery(c *gin.Context) sharedQuery.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return sharedQuery.NewPagination(page, limit)
}

func applyListingUpdate(l *domain.Listing, req updateListingRequest) {
	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Images != nil {
		l.Images = req.Images
	}
	if req.Location != nil {
		l.Location = *req.Location
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.PropertyType != nil {
		l.PropertyType = *req.PropertyType
	}
	if req.Status != nil {
		l.Status = *req.Status
	}
	if req.Features != nil {
		l.Features = req.Features
	}
	if req.Specifications != nil {
		l.Specifications = *req.Specifications
	}
	if req.Amenities != nil {
		l.Amenities = req.Amenities
	}
	if req.Featured != nil {
		l.Featured = *req.Featured
	}
	if req.Agent != nil {
		l.Agent = *req.Agent
	}
}
