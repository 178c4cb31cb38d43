package domain

import (
	"context"

	"github.com/google/uuid"

	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// BlogRepository is the outbound port for blog persistence.
type BlogRepository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	Update(ctx context.Context, p *Post) error
	DeleteByID(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, criteria shared.Criteria, p sharedQuery.Pagination, sort sharedQuery.Sort) ([]*Post, int64, error)
	Featured(ctx context.Context, limit int) ([]*Post, error)

	// IncrementViews / IncrementLikes are atomic; concurrent calls must all
	// be reflected.
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
	IncrementLikes(ctx context.Context, id uuid.UUID) (int64, error)

	Stats(ctx context.Context) (*BlogStats, []CategoryStat, error)
}
