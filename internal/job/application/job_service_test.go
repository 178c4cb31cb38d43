package application

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Khangithub17/real-estate-project/internal/job/domain"
	sharedEvents "github.com/Khangithub17/real-estate-project/internal/shared/events"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/events"
	sharedBus "github.com/Khangithub17/real-estate-project/internal/shared/platform/bus"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
	"github.com/Khangithub17/real-estate-project/tests/mocks"
)

func newTestService(repo domain.JobRepository) (*JobService, *mocks.CapturingPublisher) {
	pub := mocks.NewCapturingPublisher()
	notifier := events.NewNotifier(map[string]sharedBus.EventPublisher{
		sharedEvents.TopicJobs: pub,
	}, nil, zap.NewNop())
	return NewJobService(repo, nil, notifier, nil, zap.NewNop()), pub
}

func validJob() *domain.Posting {
	return &domain.Posting{
		Title:           "Senior Property Manager",
		Description:     "Manage our residential portfolio",
		Location:        domain.JobLocation{City: "Madrid", State: "Madrid"},
		Department:      domain.DeptOperations,
		EmploymentType:  domain.FullTime,
		ExperienceLevel: domain.SeniorLevel,
		ContactEmail:    "jobs@example.com",
		Skills:          []string{" Leadership ", "NEGOTIATION"},
	}
}

func TestCreateJobDefaultsAndNotifies(t *testing.T) {
	repo := mocks.NewInMemoryJobRepo()
	svc, pub := newTestService(repo)

	created, err := svc.CreateJob(context.Background(), validJob())
	require.NoError(t, err)

	assert.Equal(t, "senior-property-manager", created.Slug)
	assert.Equal(t, domain.PostingActive, created.Status)
	assert.Equal(t, []string{"leadership", "negotiation"}, created.Skills)
	assert.Zero(t, created.Applications)

	assert.Eventually(t, func() bool {
		for _, evt := range pub.Published() {
			if strings.Contains(evt, sharedEvents.JobCreated) {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestCreateJobValidation(t *testing.T) {
	repo := mocks.NewInMemoryJobRepo()
	svc, _ := newTestService(repo)

	j := validJob()
	j.ContactEmail = "not-an-email"
	_, err := svc.CreateJob(context.Background(), j)
	assert.ErrorIs(t, err, domain.ErrInvalidPosting)

	j = validJob()
	j.Department = "circus"
	_, err = svc.CreateJob(context.Background(), j)
	assert.ErrorIs(t, err, domain.ErrInvalidPosting)
}

func TestApplyToJobOnlyWhenActive(t *testing.T) {
	repo := mocks.NewInMemoryJobRepo()
	svc, _ := newTestService(repo)

	created, err := svc.CreateJob(context.Background(), validJob())
	require.NoError(t, err)

	applications, err := svc.ApplyToJob(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), applications)

	// pause the posting, applications must be rejected
	created.Status = domain.PostingPaused
	require.NoError(t, svc.UpdateJob(context.Background(), created, created.Title))

	_, err = svc.ApplyToJob(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrPostingClosed)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Applications)
}

func TestConcurrentApplicationsAllCounted(t *testing.T) {
	repo := mocks.NewInMemoryJobRepo()
	svc, _ := newTestService(repo)

	created, err := svc.CreateJob(context.Background(), validJob())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ApplyToJob(context.Background(), created.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.Applications)
}

func TestListJobsLocationMatchesCityOrState(t *testing.T) {
	repo := mocks.NewInMemoryJobRepo()
	svc, _ := newTestService(repo)

	inCity := validJob()
	inCity.Location = domain.JobLocation{City: "Valencia", State: "Comunidad Valenciana"}
	_, err := svc.CreateJob(context.Background(), inCity)
	require.NoError(t, err)

	inState := validJob()
	inState.Title = "Office Administrator"
	inState.Location = domain.JobLocation{City: "Gandia", State: "Valencia"}
	_, err = svc.CreateJob(context.Background(), inState)
	require.NoError(t, err)

	elsewhere := validJob()
	elsewhere.Title = "Branch Accountant"
	elsewhere.Location = domain.JobLocation{City: "Sevilla", State: "Andalucia"}
	_, err = svc.CreateJob(context.Background(), elsewhere)
	require.NoError(t, err)

	page, err := svc.ListJobs(context.Background(),
		domain.ListFilter{Location: "valencia"},
		sharedQuery.NewPagination(1, 10),
		sharedQuery.Sort{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.TotalRecords)
}

func TestDeleteJobNotifies(t *testing.T) {
	repo := mocks.NewInMemoryJobRepo()
	svc, pub := newTestService(repo)

	created, err := svc.CreateJob(context.Background(), validJob())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteJob(context.Background(), created.ID))
	_, err = repo.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrPostingNotFound)

	assert.Eventually(t, func() bool {
		for _, evt := range pub.Published() {
			if strings.Contains(evt, sharedEvents.JobDeleted) {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestJobStats(t *testing.T) {
	repo := mocks.NewInMemoryJobRepo()
	svc, _ := newTestService(repo)

	active := validJob()
	_, err := svc.CreateJob(context.Background(), active)
	require.NoError(t, err)

	closed := validJob()
	closed.Title = "Closed Role"
	closed.Status = domain.PostingClosed
	_, err = svc.CreateJob(context.Background(), closed)
	require.NoError(t, err)

	stats, byDepartment, err := svc.JobStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalJobs)
	assert.Equal(t, int64(1), stats.ActiveJobs)
	assert.Equal(t, int64(1), stats.ClosedJobs)
	require.Len(t, byDepartment, 1)
	assert.Equal(t, domain.DeptOperations, byDepartment[0].Department)
}
