package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Khangithub17/real-estate-project/internal/analytics"
	"github.com/Khangithub17/real-estate-project/internal/job/domain"
	sharedEvents "github.com/Khangithub17/real-estate-project/internal/shared/events"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/cache"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/events"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

const cacheKeyFeatured = "jobs:featured"

// JobService implements the job posting use cases.
type JobService struct {
	repo     domain.JobRepository
	cache    cache.Cache
	notifier *events.Notifier
	views    *analytics.Collector
	log      *zap.Logger
}

func NewJobService(repo domain.JobRepository, cache cache.Cache, notifier *events.Notifier, views *analytics.Collector, log *zap.Logger) *JobService {
	return &JobService{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		views:    views,
		log:      log,
	}
}

func (s *JobService) CreateJob(ctx context.Context, j *domain.Posting) (*domain.Posting, error) {
	j.ID = uuid.New()
	if j.Status == "" {
		j.Status = domain.PostingActive
	}
	j.Views = 0
	j.Applications = 0
	j.Slug = domain.Slugify(j.Title)
	j.NormalizeSkills()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now

	if err := j.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return nil, err
	}

	s.invalidateFeatured()
	s.notifier.Notify(sharedEvents.TopicJobs, sharedEvents.JobCreated, j.ID.String(), map[string]interface{}{
		"job":     j,
		"message": "New job posted",
	})

	return j, nil
}

// GetJob fetches one posting and counts the view atomically.
func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*domain.Posting, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.countView(ctx, j)
	return j, nil
}

// GetJobBySlug is the public permalink lookup; it counts a view too.
func (s *JobService) GetJobBySlug(ctx context.Context, slug string) (*domain.Posting, error) {
	j, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.countView(ctx, j)
	return j, nil
}

// FindJob fetches without counting a view; used by the admin edit flow.
func (s *JobService) FindJob(ctx context.Context, id uuid.UUID) (*domain.Posting, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *JobService) ListJobs(ctx context.Context, f domain.ListFilter, p sharedQuery.Pagination, sort sharedQuery.Sort) (sharedQuery.Page[*domain.Posting], error) {
	items, total, err := s.repo.List(ctx, f.Criteria(), p, sort)
	if err != nil {
		return sharedQuery.Page[*domain.Posting]{}, err
	}
	return sharedQuery.NewPage(items, total, p), nil
}

func (s *JobService) FeaturedJobs(ctx context.Context, limit int) ([]*domain.Posting, error) {
	if limit < 1 {
		limit = 4
	}

	if s.cache != nil {
		var cached []*domain.Posting
		if ok, _ := s.cache.Get(ctx, cacheKeyFeatured, &cached); ok && len(cached) >= limit {
			return cached[:limit], nil
		}
	}

	items, err := s.repo.Featured(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		go func(items []*domain.Posting) {
			ctxCache, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			_ = s.cache.Set(ctxCache, cacheKeyFeatured, items, 0)
		}(items)
	}

	return items, nil
}

// UpdateJob persists an edited posting. prevTitle is the title before the
// edit; the slug is recomputed only when the title changed.
func (s *JobService) UpdateJob(ctx context.Context, j *domain.Posting, prevTitle string) error {
	j.RecomputeSlug(prevTitle)
	j.NormalizeSkills()
	j.UpdatedAt = time.Now().UTC()

	if err := j.Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, j); err != nil {
		return err
	}

	s.invalidateFeatured()
	s.notifier.Notify(sharedEvents.TopicJobs, sharedEvents.JobUpdated, j.ID.String(), map[string]interface{}{
		"job":     j,
		"message": "Job updated",
	})

	return nil
}

func (s *JobService) DeleteJob(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.invalidateFeatured()
	s.notifier.Notify(sharedEvents.TopicJobs, sharedEvents.JobDeleted, id.String(), map[string]interface{}{
		"jobId":   id.String(),
		"message": "Job deleted",
	})

	return nil
}

// ApplyToJob records an application. Only active postings accept them;
// anything else is rejected before touching the counter.
func (s *JobService) ApplyToJob(ctx context.Context, id uuid.UUID) (int64, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if !j.AcceptingApplications() {
		return 0, domain.ErrPostingClosed
	}
	return s.repo.IncrementApplications(ctx, id)
}

func (s *JobService) JobStats(ctx context.Context) (*domain.JobStats, []domain.DepartmentStat, error) {
	return s.repo.Stats(ctx)
}

func (s *JobService) countView(ctx context.Context, j *domain.Posting) {
	views, err := s.repo.IncrementViews(ctx, j.ID)
	if err != nil {
		s.log.Warn("job view count not incremented", zap.String("id", j.ID.String()), zap.Error(err))
		return
	}
	j.Views = views
	s.views.Record("job", j.ID)
}

func (s *JobService) invalidateFeatured() {
	if s.cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = s.cache.Delete(ctx, cacheKeyFeatured)
	}()
}
