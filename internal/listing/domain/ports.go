package domain

import (
	"context"

	"github.com/google/uuid"

	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// ListingRepository is the outbound port for listing persistence.
type ListingRepository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	Update(ctx context.Context, l *Listing) error
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// List returns one page of listings plus the total matching count.
	List(ctx context.Context, criteria shared.Criteria, p sharedQuery.Pagination, sort sharedQuery.Sort) ([]*Listing, int64, error)

	// Featured returns up to limit featured, available listings, newest first.
	Featured(ctx context.Context, limit int) ([]*Listing, error)

	// IncrementViews atomically bumps the view counter and returns the new
	// value. Two concurrent calls must both be reflected.
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)

	// Stats aggregates the dashboard overview and per-type breakdown.
	Stats(ctx context.Context) (*ListingStats, []PropertyTypeStat, error)
}
