package domain

import (
	"context"

	"github.com/google/uuid"

	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// JobRepository is the outbound port for job posting persistence.
type JobRepository interface {
	Create(ctx context.Context, j *Posting) error
	GetByID(ctx context.Context, id uuid.UUID) (*Posting, error)
	GetBySlug(ctx context.Context, slug string) (*Posting, error)
	Update(ctx context.Context, j *Posting) error
	DeleteByID(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, criteria shared.Criteria, p sharedQuery.Pagination, sort sharedQuery.Sort) ([]*Posting, int64, error)
	Featured(ctx context.Context, limit int) ([]*Posting, error)

	// IncrementViews / IncrementApplications are atomic; concurrent calls
	// must all be reflected.
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
	IncrementApplications(ctx context.Context, id uuid.UUID) (int64, error)

	Stats(ctx context.Context) (*JobStats, []DepartmentStat, error)
}
