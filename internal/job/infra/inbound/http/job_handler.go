package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Khangithub17/real-estate-project/internal/job/application"
	"github.com/Khangithub17/real-estate-project/internal/job/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
	"github.com/Khangithub17/real-estate-project/pkg/utils"
)

// JobHandler wires the job posting endpoints.
type JobHandler struct {
	service *application.JobService
}

func NewJobHandler(service *application.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// ---------------- Requests ----------------

type createJobRequest struct {
	Title               string                 `json:"title" binding:"required"`
	Description         string                 `json:"description" binding:"required"`
	Location            domain.JobLocation     `json:"location" binding:"required"`
	Department          domain.Department      `json:"department" binding:"required"`
	EmploymentType      domain.EmploymentType  `json:"employmentType" binding:"required"`
	ExperienceLevel     domain.ExperienceLevel `json:"experienceLevel" binding:"required"`
	Salary              domain.Salary          `json:"salary"`
	Requirements        []string               `json:"requirements"`
	Responsibilities    []string               `json:"responsibilities"`
	Benefits            []string               `json:"benefits"`
	Skills              []string               `json:"skills"`
	Status              domain.PostingStatus   `json:"status"`
	Featured            bool                   `json:"featured"`
	ApplicationDeadline *time.Time             `json:"applicationDeadline"`
	ContactEmail        string                 `json:"contactEmail" binding:"required"`
}

type updateJobRequest struct {
	Title               *string                 `json:"title,omitempty"`
	Description         *string                 `json:"description,omitempty"`
	Location            *domain.JobLocation     `json:"location,omitempty"`
	Department          *domain.Department      `json:"department,omitempty"`
	EmploymentType      *domain.EmploymentType  `json:"employmentType,omitempty"`
	ExperienceLevel     *domain.ExperienceLevel `json:"experienceLevel,omitempty"`
	Salary              *domain.Salary          `json:"salary,omitempty"`
	Requirements        []string                `json:"requirements,omitempty"`
	Responsibilities    []string                `json:"responsibilities,omitempty"`
	Benefits            []string                `json:"benefits,omitempty"`
	Skills              []string                `json:"skills,omitempty"`
	Status              *domain.PostingStatus   `json:"status,omitempty"`
	Featured            *bool                   `json:"featured,omitempty"`
	ApplicationDeadline *time.Time              `json:"applicationDeadline,omitempty"`
	ContactEmail        *string                 `json:"contactEmail,omitempty"`
}

// ---------------- Handlers ----------------

// CreateJob endpoint POST /api/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	j := &domain.Posting{
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		Department:          req.Department,
		EmploymentType:      req.EmploymentType,
		ExperienceLevel:     req.ExperienceLevel,
		Salary:              req.Salary,
		Requirements:        req.Requirements,
		Responsibilities:    req.Responsibilities,
		Benefits:            req.Benefits,
		Skills:              req.Skills,
		Status:              req.Status,
		Featured:            req.Featured,
		ApplicationDeadline: req.ApplicationDeadline,
		ContactEmail:        req.ContactEmail,
	}

	created, err := h.service.CreateJob(c.Request.Context(), j)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPosting):
			utils.SendBadRequest(c, err.Error())
		case errors.Is(err, domain.ErrSlugTaken):
			utils.SendConflict(c, "a job with this title already exists")
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendCreated(c, "Job posted successfully", gin.H{"job": created})
}

// GetJob endpoint GET /api/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid job id")
		return
	}

	j, err := h.service.GetJob(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPostingNotFound) {
			utils.SendNotFound(c, "job not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"job": j})
}

// GetJobBySlug endpoint GET /api/jobs/slug/:slug
func (h *JobHandler) GetJobBySlug(c *gin.Context) {
	j, err := h.service.GetJobBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrPostingNotFound) {
			utils.SendNotFound(c, "job not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"job": j})
}

// ListJobs endpoint GET /api/jobs (admin). The unrestricted list exposes
// draft, paused and closed postings, so it sits behind the admin middleware.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var filter domain.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	page, err := h.service.ListJobs(c.Request.Context(), filter, paginationFromQuery(c), sharedQuery.ParseSort(c.Query("sort")))
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, page)
}

// ListActiveJobs endpoint GET /api/jobs/active. The status clause is forced,
// so anonymous visitors only see open positions regardless of the query
// string.
func (h *JobHandler) ListActiveJobs(c *gin.Context) {
	var filter domain.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	filter.Status = string(domain.PostingActive)

	page, err := h.service.ListJobs(c.Request.Context(), filter, paginationFromQuery(c), sharedQuery.ParseSort(c.Query("sort")))
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, page)
}

// FeaturedJobs endpoint GET /api/jobs/featured
func (h *JobHandler) FeaturedJobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))

	items, err := h.service.FeaturedJobs(c.Request.Context(), limit)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"jobs": items})
}

// UpdateJob endpoint PUT /api/jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid job id")
		return
	}

	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	j, err := h.service.FindJob(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPostingNotFound) {
			utils.SendNotFound(c, "job not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	prevTitle := j.Title
	applyJobUpdate(j, req)

	if err := h.service.UpdateJob(c.Request.Context(), j, prevTitle); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPosting):
			utils.SendBadRequest(c, err.Error())
		case errors.Is(err, domain.ErrSlugTaken):
			utils.SendConflict(c, "a job with this title already exists")
		case errors.Is(err, domain.ErrPostingNotFound):
			utils.SendNotFound(c, "job not found")
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"job": j})
}

// DeleteJob endpoint DELETE /api/jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid job id")
		return
	}

	if err := h.service.DeleteJob(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrPostingNotFound) {
			utils.SendNotFound(c, "job not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// ApplyToJob endpoint POST /api/jobs/:id/apply
func (h *JobHandler) ApplyToJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid job id")
		return
	}

	applications, err := h.service.ApplyToJob(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPostingNotFound):
			utils.SendNotFound(c, "job not found")
		case errors.Is(err, domain.ErrPostingClosed):
			utils.SendBadRequest(c, "this job is no longer accepting applications")
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{
		"message":      "Application submitted successfully",
		"applications": applications,
	})
}

// JobStats endpoint GET /api/jobs/stats
func (h *JobHandler) JobStats(c *gin.Context) {
	overview, byDepartment, err := h.service.JobStats(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{
		"overview":    overview,
		"departments": byDepartment,
	})
}

// ---------------- Helpers ----------------

func paginationFromQuery(c *gin.Context) sharedQuery.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return sharedQuery.NewPagination(page, limit)
}

func applyJobUpdate(j *domain.Posting, req updateJobRequest) {
	if req.Title != nil {
		j.Title = *req.Title
	}
	if req.Description != nil {
		j.Description = *req.Description
	}
	if req.Location != nil {
		j.Location = *req.Location
	}
	if req.Department != nil {
		j.Department = *req.Department
	}
	if req.EmploymentType != nil {
		j.EmploymentType = *req.EmploymentType
	}
	if req.ExperienceLevel != nil {
		j.ExperienceLevel = *req.ExperienceLevel
	}
	if req.Salary != nil {
		j.Salary = *req.Salary
	}
	if req.Requirements != nil {
		j.Requirements = req.Requirements
	}
	if req.Responsibilities != nil {
		j.Responsibilities = req.Responsibilities
	}
	if req.Benefits != nil {
		j.Benefits = req.Benefits
	}
	if req.Skills != nil {
		j.Skills = req.Skills
	}
	if req.Status != nil {
		j.Status = *req.Status
	}
	if req.Featured != nil {
		j.Featured = *req.Featured
	}
	if req.ApplicationDeadline != nil {
		j.ApplicationDeadline = req.ApplicationDeadline
	}
	if req.ContactEmail != nil {
		j.ContactEmail = *req.ContactEmail
	}
}
