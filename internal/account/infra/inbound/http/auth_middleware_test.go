package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Khangithub17/real-estate-project/internal/account/application"
	"github.com/Khangithub17/real-estate-project/internal/account/domain"
	"github.com/Khangithub17/real-estate-project/tests/mocks"
)

func newMiddlewareTestService() *application.AccountService {
	tokens := application.NewTokenManager("test-secret", time.Hour)
	return application.NewAccountService(mocks.NewInMemoryAccountRepo(), tokens, nil, zap.NewNop())
}

// mountProtected mounts one admin-gated mutation and reports whether its
// handler ran.
func mountProtected(svc *application.AccountService) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	executed := false
	r := gin.New()
	r.POST("/protected", RequireAdmin(svc), func(c *gin.Context) {
		executed = true
		c.Status(http.StatusCreated)
	})
	return r, &executed
}

func doPost(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdminRejectsNonAdminBeforeHandlerRuns(t *testing.T) {
	svc := newMiddlewareTestService()
	_, token, err := svc.Register(context.Background(), "jane_doe", "jane@example.com", "s3cret99", domain.RoleUser)
	require.NoError(t, err)

	r, executed := mountProtected(svc)
	w := doPost(r, token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, *executed)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	svc := newMiddlewareTestService()
	_, token, err := svc.Register(context.Background(), "the_admin", "admin@example.com", "s3cret99", domain.RoleAdmin)
	require.NoError(t, err)

	r, executed := mountProtected(svc)
	w := doPost(r, token)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, *executed)
}

func TestRequireAdminRejectsMissingToken(t *testing.T) {
	svc := newMiddlewareTestService()

	r, executed := mountProtected(svc)
	w := doPost(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *executed)
}

func TestRequireAuthStoresAccount(t *testing.T) {
	svc := newMiddlewareTestService()
	a, token, err := svc.Register(context.Background(), "jane_doe", "jane@example.com", "s3cret99", domain.RoleUser)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(svc), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentAccount(c).ID.String())
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, a.ID.String(), w.Body.String())
}
