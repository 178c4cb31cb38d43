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

	"github.com/Khangithub17/real-estate-project/internal/job/application"
	"github.com/Khangithub17/real-estate-project/internal/job/domain"
	"github.com/Khangithub17/real-estate-project/tests/mocks"
)

// denyAll stands in for the admin middleware so routing tests stay inside
// this package.
func denyAll(c *gin.Context) {
	c.AbortWithStatus(http.StatusForbidden)
}

func newRouterTestEngine(t *testing.T) (*gin.Engine, *application.JobService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := application.NewJobService(mocks.NewInMemoryJobRepo(), nil, nil, nil, zap.NewNop())
	r := gin.New()
	RegisterJobRoutes(r, NewJobHandler(svc), denyAll)
	return r, svc
}

func seedJob(t *testing.T, svc *application.JobService, title string, status domain.PostingStatus) {
	t.Helper()
	_, err := svc.CreateJob(context.Background(), &domain.Posting{
		Title:           title,
		Description:     "description",
		Location:        domain.JobLocation{City: "Valencia", State: "Valencia"},
		Department:      domain.DeptSales,
		EmploymentType:  domain.FullTime,
		ExperienceLevel: domain.MidLevel,
		ContactEmail:    "jobs@example.com",
		Status:          status,
	})
	require.NoError(t, err)
}

type jobPage struct {
	Data struct {
		Items []struct {
			Title  string `json:"title"`
			Status string `json:"status"`
		} `json:"items"`
	} `json:"data"`
}

func TestUnrestrictedJobListRequiresAdmin(t *testing.T) {
	r, _ := newRouterTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestActiveJobListHidesNonActivePostings(t *testing.T) {
	r, svc := newRouterTestEngine(t)
	seedJob(t, svc, "Open Position", domain.PostingActive)
	seedJob(t, svc, "Paused Position", domain.PostingPaused)
	seedJob(t, svc, "Draft Position", domain.PostingDraft)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/jobs/active", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var page jobPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Data.Items, 1)
	assert.Equal(t, "Open Position", page.Data.Items[0].Title)
}

func TestActiveJobListIgnoresStatusOverride(t *testing.T) {
	r, svc := newRouterTestEngine(t)
	seedJob(t, svc, "Open Position", domain.PostingActive)
	seedJob(t, svc, "Paused Position", domain.PostingPaused)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/jobs/active?status=paused", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var page jobPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Data.Items, 1)
	assert.Equal(t, "active", page.Data.Items[0].Status)
}
