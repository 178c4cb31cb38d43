package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Khangithub17/real-estate-project/internal/blog/application"
	"github.com/Khangithub17/real-estate-project/internal/blog/domain"
	"github.com/Khangithub17/real-estate-project/tests/mocks"
)

// denyAll stands in for the admin middleware so routing tests stay inside
// this package.
func denyAll(c *gin.Context) {
	c.AbortWithStatus(http.StatusForbidden)
}

func newRouterTestEngine(t *testing.T) (*gin.Engine, *application.BlogService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := application.NewBlogService(mocks.NewInMemoryBlogRepo(), nil, nil, nil, nil, zap.NewNop())
	r := gin.New()
	RegisterBlogRoutes(r, NewBlogHandler(svc), denyAll)
	return r, svc
}

func seedPost(t *testing.T, svc *application.BlogService, title string, status domain.PostStatus) {
	t.Helper()
	_, err := svc.CreatePost(context.Background(), &domain.Post{
		Title:    title,
		Excerpt:  "excerpt",
		Content:  "some content here",
		Author:   "Jane",
		Category: domain.CategoryNews,
		Status:   status,
	})
	require.NoError(t, err)
}

type postPage struct {
	Data struct {
		Items []struct {
			Title  string `json:"title"`
			Status string `json:"status"`
		} `json:"items"`
	} `json:"data"`
}

func TestUnrestrictedBlogListRequiresAdmin(t *testing.T) {
	r, _ := newRouterTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blogs", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPublishedBlogListHidesDrafts(t *testing.T) {
	r, svc := newRouterTestEngine(t)
	seedPost(t, svc, "Public Article", domain.PostPublished)
	seedPost(t, svc, "Secret Draft", domain.PostDraft)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blogs/published", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var page postPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Data.Items, 1)
	assert.Equal(t, "Public Article", page.Data.Items[0].Title)
}

func TestPublishedBlogListIgnoresStatusOverride(t *testing.T) {
	r, svc := newRouterTestEngine(t)
	seedPost(t, svc, "Public Article", domain.PostPublished)
	seedPost(t, svc, "Secret Draft", domain.PostDraft)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/blogs/published?status=draft", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var page postPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Data.Items, 1)
	assert.Equal(t, "published", page.Data.Items[0].Status)
}
