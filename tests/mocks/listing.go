package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Khangithub17/real-estate-project/internal/listing/domain"
	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// InMemoryListingRepo simulates ListingRepository with the same filter and
// counter semantics as the MongoDB adapter.
type InMemoryListingRepo struct {
	Listings map[uuid.UUID]*domain.Listing
	mu       sync.Mutex
}

var _ domain.ListingRepository = (*InMemoryListingRepo)(nil)

func NewInMemoryListingRepo() *InMemoryListingRepo {
	return &InMemoryListingRepo{
		Listings: make(map[uuid.UUID]*domain.Listing),
	}
}

func (r *InMemoryListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Listings[l.ID]; ok {
		return domain.ErrListingExists
	}
	clone := *l
	r.Listings[l.ID] = &clone
	return nil
}

func (r *InMemoryListingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.Listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *InMemoryListingRepo) Update(ctx context.Context, l *domain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Listings[l.ID]; !ok {
		return domain.ErrListingNotFound
	}
	clone := *l
	r.Listings[l.ID] = &clone
	return nil
}

func (r *InMemoryListingRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Listings[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.Listings, id)
	return nil
}

func (r *InMemoryListingRepo) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.Pagination, s sharedQuery.Sort) ([]*domain.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []*domain.Listing
	for _, l := range r.Listings {
		if matches(l, criteria, listingField) {
			clone := *l
			list = append(list, &clone)
		}
	}

	total := int64(len(list))
	return sortAndPage(list, s, p, listingField), total, nil
}

func (r *InMemoryListingRepo) Featured(ctx context.Context, limit int) ([]*domain.Listing, error) {
	items, _, err := r.List(ctx, domain.FeaturedCriteria(),
		sharedQuery.NewPagination(1, limit),
		sharedQuery.Sort{Field: "createdAt", Desc: true})
	return items, err
}

func (r *InMemoryListingRepo) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.Listings[id]
	if !ok {
		return 0, domain.ErrListingNotFound
	}
	l.Views++
	return l.Views, nil
}

func (r *InMemoryListingRepo) Stats(ctx context.Context) (*domain.ListingStats, []domain.PropertyTypeStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &domain.ListingStats{}
	byType := map[domain.PropertyType]*domain.PropertyTypeStat{}
	var priceSum float64
	typePriceSum := map[domain.PropertyType]float64{}

	for _, l := range r.Listings {
		stats.TotalListings++
		stats.TotalViews += l.Views
		priceSum += l.Price
		switch l.Status {
		case domain.StatusAvailable:
			stats.AvailableListings++
		case domain.StatusSold:
			stats.SoldListings++
		case domain.StatusPending:
			stats.PendingListings++
		}

		ts, ok := byType[l.PropertyType]
		if !ok {
			ts = &domain.PropertyTypeStat{PropertyType: l.PropertyType}
			byType[l.PropertyType] = ts
		}
		ts.Count++
		typePriceSum[l.PropertyType] += l.Price
	}

	if stats.TotalListings > 0 {
		stats.AveragePrice = priceSum / float64(stats.TotalListings)
	}

	var out []domain.PropertyTypeStat
	for t, ts := range byType {
		ts.AveragePrice = typePriceSum[t] / float64(ts.Count)
		out = append(out, *ts)
	}
	return stats, out, nil
}

func listingField(l *domain.Listing, field string) (interface{}, bool) {
	switch field {
	case "":
		return strings.Join([]string{l.Title, l.Description, l.Location.City}, " "), true
	case "propertyType":
		return string(l.PropertyType), true
	case "status":
		return string(l.Status), true
	case "price":
		return l.Price, true
	case "location.city":
		return l.Location.City, true
	case "location.state":
		return l.Location.State, true
	case "specifications.bedrooms":
		return l.Specifications.Bedrooms, true
	case "specifications.bathrooms":
		return l.Specifications.Bathrooms, true
	case "featured":
		return l.Featured, true
	case "views":
		return l.Views, true
	case "createdAt":
		return l.CreatedAt, true
	case "title":
		return l.Title, true
	default:
		return nil, false
	}
}
