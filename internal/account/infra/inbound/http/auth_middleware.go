package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Khangithub17/real-estate-project/internal/account/application"
	"github.com/Khangithub17/real-estate-project/internal/account/domain"
	"github.com/Khangithub17/real-estate-project/pkg/utils"
)

const accountContextKey = "account"

// authenticate resolves the bearer token and stores the account in the
// request context. On failure it writes the error response, aborts the
// chain and returns false. It never advances the chain itself, so callers
// can run further checks before the handler executes.
func authenticate(c *gin.Context, service *application.AccountService) bool {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		utils.SendUnauthorized(c, "missing bearer token")
		c.Abort()
		return false
	}

	a, err := service.Authenticate(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, application.ErrInvalidToken) || errors.Is(err, domain.ErrAccountNotFound) {
			utils.SendUnauthorized(c, "invalid or expired token")
		} else {
			utils.SendInternalServerError(c, err.Error())
		}
		c.Abort()
		return false
	}

	c.Set(accountContextKey, a)
	return true
}

// RequireAuth resolves the bearer token and stores the account in the
// request context.
func RequireAuth(service *application.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, service)
	}
}

// RequireAdmin authenticates and additionally checks the role before the
// protected handler runs.
func RequireAdmin(service *application.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, service) {
			return
		}
		if CurrentAccount(c).Role != domain.RoleAdmin {
			utils.SendForbidden(c, "admin access required")
			c.Abort()
		}
	}
}

// CurrentAccount returns the authenticated account stored by RequireAuth.
func CurrentAccount(c *gin.Context) *domain.Account {
	a, _ := c.Get(accountContextKey)
	account, _ := a.(*domain.Account)
	return account
}
