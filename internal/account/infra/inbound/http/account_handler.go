package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Khangithub17/real-estate-project/internal/account/application"
	"github.com/Khangithub17/real-estate-project/internal/account/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
	"github.com/Khangithub17/real-estate-project/pkg/utils"
)

// AccountHandler wires the auth and user administration endpoints.
type AccountHandler struct {
	service *application.AccountService
}

func NewAccountHandler(service *application.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// ---------------- Requests ----------------

type registerRequest struct {
	Username string      `json:"username" binding:"required"`
	Email    string      `json:"email" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     domain.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateAccountRequest struct {
	Username *string      `json:"username,omitempty"`
	Email    *string      `json:"email,omitempty"`
	Password string       `json:"password,omitempty"`
	Role     *domain.Role `json:"role,omitempty"`
	Active   *bool        `json:"active,omitempty"`
}

// ---------------- Handlers ----------------

// Register endpoint POST /api/auth/register
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	a, token, err := h.service.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAccount):
			utils.SendBadRequest(c, err.Error())
		case errors.Is(err, domain.ErrAccountExists):
			utils.SendConflict(c, "username or email already registered")
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendCreated(c, "Account registered successfully", gin.H{
		"user":  a,
		"token": token,
	})
}

// Login endpoint POST /api/auth/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	a, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrBadCredentials) {
			utils.SendUnauthorized(c, "invalid email or password")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{
		"user":  a,
		"token": token,
	})
}

// Me endpoint GET /api/auth/me
func (h *AccountHandler) Me(c *gin.Context) {
	utils.SendSuccess(c, http.StatusOK, gin.H{"user": CurrentAccount(c)})
}

// Refresh endpoint POST /api/auth/refresh. Issues a new token for the
// account resolved from the current one.
func (h *AccountHandler) Refresh(c *gin.Context) {
	a := CurrentAccount(c)

	token, err := h.service.RefreshToken(a)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{
		"user":  a,
		"token": token,
	})
}

// GetAccount endpoint GET /api/users/:id
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid user id")
		return
	}

	a, err := h.service.GetAccount(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			utils.SendNotFound(c, "user not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"user": a})
}

// ListAccounts endpoint GET /api/users
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	var filter domain.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	page, err := h.service.ListAccounts(c.Request.Context(), filter, paginationFromQuery(c), sharedQuery.ParseSort(c.Query("sort")))
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, page)
}

// AccountStats endpoint GET /api/users/stats
func (h *AccountHandler) AccountStats(c *gin.Context) {
	overview, byRole, err := h.service.AccountStats(c.Request.Context())
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{
		"overview": overview,
		"roles":    byRole,
	})
}

// UpdateAccount endpoint PUT /api/users/:id
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid user id")
		return
	}

	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	a, err := h.service.GetAccount(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			utils.SendNotFound(c, "user not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	applyAccountUpdate(a, req)

	if err := h.service.UpdateAccount(c.Request.Context(), a, req.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAccount):
			utils.SendBadRequest(c, err.Error())
		case errors.Is(err, domain.ErrAccountExists):
			utils.SendConflict(c, "username or email already registered")
		case errors.Is(err, domain.ErrAccountNotFound):
			utils.SendNotFound(c, "user not found")
		default:
			utils.SendInternalServerError(c, err.Error())
		}
		return
	}

	utils.SendSuccess(c, http.StatusOK, gin.H{"user": a})
}

// DeleteAccount endpoint DELETE /api/users/:id
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, "invalid user id")
		return
	}

	if err := h.service.DeleteAccount(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			utils.SendNotFound(c, "user not found")
			return
		}
		utils.SendInternalServerError(c, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// ---------------- Helpers ----------------

func paginationFromQuery(c *gin.Context) sharedQuery.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return sharedQuery.NewPagination(page, limit)
}

func applyAccountUpdate(a *domain.Account, req updateAccountRequest) {
	if req.Username != nil {
		a.Username = *req.Username
	}
	if req.Email != nil {
		a.Email = *req.Email
	}
	if req.Role != nil {
		a.Role = *req.Role
	}
	if req.Active != nil {
		a.Active = *req.Active
	}
}
