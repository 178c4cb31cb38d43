package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Khangithub17/real-estate-project/internal/job/domain"
	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// InMemoryJobRepo simulates JobRepository, including the unique-slug
// constraint and the atomic counters.
type InMemoryJobRepo struct {
	Jobs map[uuid.UUID]*domain.Posting
	mu   sync.Mutex
}

var _ domain.JobRepository = (*InMemoryJobRepo)(nil)

func NewInMemoryJobRepo() *InMemoryJobRepo {
	return &InMemoryJobRepo{
		Jobs: make(map[uuid.UUID]*domain.Posting),
	}
}

func (r *InMemoryJobRepo) Create(ctx context.Context, j *domain.Posting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Jobs {
		if existing.Slug == j.Slug {
			return domain.ErrSlugTaken
		}
	}
	clone := *j
	r.Jobs[j.ID] = &clone
	return nil
}

func (r *InMemoryJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.Jobs[id]
	if !ok {
		return nil, domain.ErrPostingNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *InMemoryJobRepo) GetBySlug(ctx context.Context, slug string) (*domain.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.Jobs {
		if j.Slug == slug {
			clone := *j
			return &clone, nil
		}
	}
	return nil, domain.ErrPostingNotFound
}

func (r *InMemoryJobRepo) Update(ctx context.Context, j *domain.Posting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Jobs[j.ID]; !ok {
		return domain.ErrPostingNotFound
	}
	for id, existing := range r.Jobs {
		if id != j.ID && existing.Slug == j.Slug {
			return domain.ErrSlugTaken
		}
	}
	clone := *j
	r.Jobs[j.ID] = &clone
	return nil
}

func (r *InMemoryJobRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Jobs[id]; !ok {
		return domain.ErrPostingNotFound
	}
	delete(r.Jobs, id)
	return nil
}

func (r *InMemoryJobRepo) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.Pagination, s sharedQuery.Sort) ([]*domain.Posting, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []*domain.Posting
	for _, j := range r.Jobs {
		if matches(j, criteria, jobField) {
			clone := *j
			list = append(list, &clone)
		}
	}

	total := int64(len(list))
	return sortAndPage(list, s, p, jobField), total, nil
}

func (r *InMemoryJobRepo) Featured(ctx context.Context, limit int) ([]*domain.Posting, error) {
	items, _, err := r.List(ctx, domain.FeaturedCriteria(),
		sharedQuery.NewPagination(1, limit),
		sharedQuery.Sort{Field: "createdAt", Desc: true})
	return items, err
}

func (r *InMemoryJobRepo) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.Jobs[id]
	if !ok {
		return 0, domain.ErrPostingNotFound
	}
	j.Views++
	return j.Views, nil
}

func (r *InMemoryJobRepo) IncrementApplications(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.Jobs[id]
	if !ok {
		return 0, domain.ErrPostingNotFound
	}
	j.Applications++
	return j.Applications, nil
}

func (r *InMemoryJobRepo) Stats(ctx context.Context) (*domain.JobStats, []domain.DepartmentStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &domain.JobStats{}
	byDepartment := map[domain.Department]*domain.DepartmentStat{}

	for _, j := range r.Jobs {
		stats.TotalJobs++
		stats.TotalViews += j.Views
		stats.TotalApplications += j.Applications
		switch j.Status {
		case domain.PostingActive:
			stats.ActiveJobs++
		case domain.PostingPaused:
			stats.PausedJobs++
		case domain.PostingClosed:
			stats.ClosedJobs++
		}

		ds, ok := byDepartment[j.Department]
		if !ok {
			ds = &domain.DepartmentStat{Department: j.Department}
			byDepartment[j.Department] = ds
		}
		ds.Count++
		ds.TotalApplications += j.Applications
	}

	var out []domain.DepartmentStat
	for _, ds := range byDepartment {
		out = append(out, *ds)
	}
	return stats, out, nil
}

func jobField(j *domain.Posting, field string) (interface{}, bool) {
	switch field {
	case "":
		return strings.Join(append([]string{j.Title, j.Description}, j.Skills...), " "), true
	case "department":
		return string(j.Department), true
	case "employmentType":
		return string(j.EmploymentType), true
	case "experienceLevel":
		return string(j.ExperienceLevel), true
	case "status":
		return string(j.Status), true
	case "location.city":
		return j.Location.City, true
	case "location.state":
		return j.Location.State, true
	case "location.remote":
		return j.Location.Remote, true
	case "featured":
		return j.Featured, true
	case "views":
		return j.Views, true
	case "applications":
		return j.Applications, true
	case "createdAt":
		return j.CreatedAt, true
	case "title":
		return j.Title, true
	default:
		return nil, false
	}
}
