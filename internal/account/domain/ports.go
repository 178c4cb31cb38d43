package domain

import (
	"context"

	"github.com/google/uuid"

	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// AccountRepository is the outbound port for account persistence.
type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Update(ctx context.Context, a *Account) error
	DeleteByID(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, criteria shared.Criteria, p sharedQuery.Pagination, sort sharedQuery.Sort) ([]*Account, int64, error)

	// Stats aggregates the user administration overview and per-role
	// breakdown.
	Stats(ctx context.Context) (*AccountStats, []RoleStat, error)
}
