package mocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Khangithub17/real-estate-project/internal/account/domain"
	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// InMemoryAccountRepo simulates AccountRepository, including the unique
// username and email constraints.
type InMemoryAccountRepo struct {
	Accounts map[uuid.UUID]*domain.Account
	mu       sync.Mutex
}

var _ domain.AccountRepository = (*InMemoryAccountRepo)(nil)

func NewInMemoryAccountRepo() *InMemoryAccountRepo {
	return &InMemoryAccountRepo{
		Accounts: make(map[uuid.UUID]*domain.Account),
	}
}

func (r *InMemoryAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Accounts {
		if existing.Username == a.Username || existing.Email == a.Email {
			return domain.ErrAccountExists
		}
	}
	clone := *a
	r.Accounts[a.ID] = &clone
	return nil
}

func (r *InMemoryAccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *InMemoryAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.Accounts {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *InMemoryAccountRepo) Update(ctx context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Accounts[a.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	for id, existing := range r.Accounts {
		if id != a.ID && (existing.Username == a.Username || existing.Email == a.Email) {
			return domain.ErrAccountExists
		}
	}
	clone := *a
	r.Accounts[a.ID] = &clone
	return nil
}

func (r *InMemoryAccountRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.Accounts, id)
	return nil
}

func (r *InMemoryAccountRepo) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.Pagination, s sharedQuery.Sort) ([]*domain.Account, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []*domain.Account
	for _, a := range r.Accounts {
		if matches(a, criteria, accountField) {
			clone := *a
			list = append(list, &clone)
		}
	}

	total := int64(len(list))
	return sortAndPage(list, s, p, accountField), total, nil
}

func (r *InMemoryAccountRepo) Stats(ctx context.Context) (*domain.AccountStats, []domain.RoleStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	overview := &domain.AccountStats{}
	counts := make(map[domain.Role]int64)
	cutoff := time.Now().UTC().Add(-domain.RecentLoginWindow)

	for _, a := range r.Accounts {
		overview.TotalUsers++
		if a.Active {
			overview.ActiveUsers++
		} else {
			overview.InactiveUsers++
		}
		if a.Role == domain.RoleAdmin {
			overview.AdminUsers++
		}
		if a.LastLoginAt != nil && !a.LastLoginAt.Before(cutoff) {
			overview.RecentLogins++
		}
		counts[a.Role]++
	}

	byRole := make([]domain.RoleStat, 0, len(counts))
	for role, count := range counts {
		byRole = append(byRole, domain.RoleStat{Role: role, Count: count})
	}
	return overview, byRole, nil
}

func accountField(a *domain.Account, field string) (interface{}, bool) {
	switch field {
	case "":
		return strings.Join([]string{a.Username, a.Email}, " "), true
	case "username":
		return a.Username, true
	case "email":
		return a.Email, true
	case "role":
		return string(a.Role), true
	case "active":
		return a.Active, true
	case "createdAt":
		return a.CreatedAt, true
	default:
		return nil, false
	}
}
