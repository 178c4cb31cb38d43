package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Khangithub17/real-estate-project/internal/listing/domain"
	sharedEvents "github.com/Khangithub17/real-estate-project/internal/shared/events"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/events"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/storage"
	sharedBus "github.com/Khangithub17/real-estate-project/internal/shared/platform/bus"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
	"github.com/Khangithub17/real-estate-project/tests/mocks"
)

func newTestService(repo domain.ListingRepository, files *mocks.RecordingFileStore) (*ListingService, *mocks.CapturingPublisher) {
	pub := mocks.NewCapturingPublisher()
	notifier := events.NewNotifier(map[string]sharedBus.EventPublisher{
		sharedEvents.TopicListings: pub,
	}, nil, zap.NewNop())

	var fs storage.FileStore
	if files != nil {
		fs = files
	}
	return NewListingService(repo, nil, notifier, fs, nil, zap.NewNop()), pub
}

func validListing() *domain.Listing {
	return &domain.Listing{
		Title:       "Sunny Villa",
		Description: "A villa with sea views",
		Location: domain.Location{
			Address: "Calle Mayor 1",
			City:    "Valencia",
			State:   "Valencia",
			ZipCode: "46001",
		},
		Price:        350000,
		PropertyType: domain.PropertyResidential,
	}
}

func TestCreateListingDefaultsAndNotifies(t *testing.T) {
	repo := mocks.NewInMemoryListingRepo()
	svc, pub := newTestService(repo, nil)

	created, err := svc.CreateListing(context.Background(), validListing())
	require.NoError(t, err)

	assert.NotEqual(t, "", created.ID.String())
	assert.Equal(t, domain.StatusAvailable, created.Status)
	assert.Zero(t, created.Views)
	assert.False(t, created.CreatedAt.IsZero())

	assert.Eventually(t, func() bool {
		for _, evt := range pub.Published() {
			if strings.Contains(evt, sharedEvents.ListingCreated) {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestCreateListingValidation(t *testing.T) {
	repo := mocks.NewInMemoryListingRepo()
	svc, _ := newTestService(repo, nil)

	l := validListing()
	l.Price = -1
	_, err := svc.CreateListing(context.Background(), l)
	assert.ErrorIs(t, err, domain.ErrInvalidListing)

	l = validListing()
	l.PropertyType = "castle"
	_, err = svc.CreateListing(context.Background(), l)
	assert.ErrorIs(t, err, domain.ErrInvalidListing)
}

func TestGetListingCountsView(t *testing.T) {
	repo := mocks.NewInMemoryListingRepo()
	svc, _ := newTestService(repo, nil)

	created, err := svc.CreateListing(context.Background(), validListing())
	require.NoError(t, err)

	got, err := svc.GetListing(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)

	got, err = svc.GetListing(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)
}

func TestFindListingDoesNotCountView(t *testing.T) {
	repo := mocks.NewInMemoryListingRepo()
	svc, _ := newTestService(repo, nil)

	created, err := svc.CreateListing(context.Background(), validListing())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.FindListing(context.Background(), created.ID)
		require.NoError(t, err)
	}

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Views)
}

func TestConcurrentViewsAllCounted(t *testing.T) {
	repo := mocks.NewInMemoryListingRepo()
	svc, _ := newTestService(repo, nil)

	created, err := svc.CreateListing(context.Background(), validListing())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.GetListing(context.Background(), created.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stored.Views)
}

func TestListListingsFiltersAndPaginates(t *testing.T) {
	repo := mocks.NewInMemoryListingRepo()
	svc, _ := newTestService(repo, nil)

	for i := 0; i < 15; i++ {
		l := validListing()
		if i < 5 {
			l.Location.City = "Madrid"
		}
		_, err := svc.CreateListing(context.Background(), l)
		require.NoError(t, err)
	}

	page, err := svc.ListListings(context.Background(),
		domain.ListFilter{},
		sharedQuery.NewPagination(2, 10),
		sharedQuery.Sort{Field: "createdAt", Desc: true})
	require.NoError(t, err)

	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(15), page.Pagination.TotalRecords)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNextPage)
	assert.True(t, page.Pagination.HasPrevPage)

	page, err = svc.ListListings(context.Background(),
		domain.ListFilter{City: "madrid"},
		sharedQuery.NewPagination(1, 10),
		sharedQuery.Sort{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Pagination.TotalRecords)
}

func TestListListingsIgnoresBadPriceBounds(t *testing.T) {
	repo := mocks.NewInMemoryListingRepo()
	svc, _ := newTestService(repo, nil)

	_, err := svc.CreateListing(context.Background(), validListing())
	require.NoError(t, err)

	page, err := svc.ListListings(context.Background(),
		domain.ListFilter{MinPrice: "cheap", MaxPrice: "1000000"},
		sharedQuery.NewPagination(1, 10),
		sharedQuery.Sort{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Pagination.TotalRecords)
}

func TestDeleteListingRemovesImages(t *testing.T) {
	repo := mocks.NewInMemoryListingRepo()
	files := mocks.NewRecordingFileStore()
	svc, pub := newTestService(repo, files)

	l := validListing()
	l.Images = []string{"/uploads/a.jpg", "/uploads/b.jpg"}
	created, err := svc.CreateListing(context.Background(), l)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteListing(context.Background(), created.ID))

	_, err = repo.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	assert.Eventually(t, func() bool {
		return len(files.Removed()) == 2
	}, time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		for _, evt := range pub.Published() {
			if strings.Contains(evt, sharedEvents.ListingDeleted) {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestAddImageStoresObjectAndAppendsPath(t *testing.T) {
	repo := mocks.NewInMemoryListingRepo()
	files := mocks.NewRecordingFileStore()
	svc, _ := newTestService(repo, files)

	created, err := svc.CreateListing(context.Background(), validListing())
	require.NoError(t, err)

	l, err := svc.AddImage(context.Background(), created.ID, "front.jpg", "image/jpeg",
		strings.NewReader("jpeg bytes"), 10)
	require.NoError(t, err)

	key := fmt.Sprintf("listings/%s/front.jpg", created.ID)
	require.Len(t, l.Images, 1)
	assert.Equal(t, "/"+key, l.Images[0])
	require.Len(t, files.Stored(), 1)
	assert.Equal(t, key, files.Stored()[0])

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Images, 1)
}

func TestAddImageStripsDirectoryFromFilename(t *testing.T) {
	repo := mocks.NewInMemoryListingRepo()
	files := mocks.NewRecordingFileStore()
	svc, _ := newTestService(repo, files)

	created, err := svc.CreateListing(context.Background(), validListing())
	require.NoError(t, err)

	_, err = svc.AddImage(context.Background(), created.ID, "../../etc/passwd", "image/jpeg",
		strings.NewReader("x"), 1)
	require.NoError(t, err)

	require.Len(t, files.Stored(), 1)
	assert.Equal(t, fmt.Sprintf("listings/%s/passwd", created.ID), files.Stored()[0])
}

func TestAddImageWithoutConfiguredStore(t *testing.T) {
	repo := mocks.NewInMemoryListingRepo()
	svc, _ := newTestService(repo, nil)

	created, err := svc.CreateListing(context.Background(), validListing())
	require.NoError(t, err)

	_, err = svc.AddImage(context.Background(), created.ID, "front.jpg", "image/jpeg",
		strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestFeaturedListingsCacheInvalidatedOnMutation(t *testing.T) {
	repo := mocks.NewInMemoryListingRepo()
	cacheMock := mocks.NewDummyCache()
	pub := mocks.NewCapturingPublisher()
	notifier := events.NewNotifier(map[string]sharedBus.EventPublisher{
		sharedEvents.TopicListings: pub,
	}, nil, zap.NewNop())
	svc := NewListingService(repo, cacheMock, notifier, nil, nil, zap.NewNop())

	l := validListing()
	l.Featured = true
	created, err := svc.CreateListing(context.Background(), l)
	require.NoError(t, err)

	// warm the cache with a non-default limit
	_, err = svc.FeaturedListings(context.Background(), 1)
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		return cacheMock.Has(cacheKeyFeatured)
	}, time.Second, 10*time.Millisecond)

	// any mutation drops the single key, so no limit serves stale data
	created.Title = "Renamed Villa"
	require.NoError(t, svc.UpdateListing(context.Background(), created))
	assert.Eventually(t, func() bool {
		return !cacheMock.Has(cacheKeyFeatured)
	}, time.Second, 10*time.Millisecond)
}

func TestFeaturedListingsRefetchesWhenCacheTooSmall(t *testing.T) {
	repo := mocks.NewInMemoryListingRepo()
	cacheMock := mocks.NewDummyCache()
	svc := NewListingService(repo, cacheMock, nil, nil, nil, zap.NewNop())

	for i := 0; i < 3; i++ {
		l := validListing()
		l.Featured = true
		_, err := svc.CreateListing(context.Background(), l)
		require.NoError(t, err)
	}

	one, err := svc.FeaturedListings(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)

	// a short cached strip must not satisfy a larger request
	three, err := svc.FeaturedListings(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, three, 3)
}

func TestListingStats(t *testing.T) {
	repo := mocks.NewInMemoryListingRepo()
	svc, _ := newTestService(repo, nil)

	prices := []float64{100000, 200000, 300000}
	for _, p := range prices {
		l := validListing()
		l.Price = p
		_, err := svc.CreateListing(context.Background(), l)
		require.NoError(t, err)
	}

	stats, byType, err := svc.ListingStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalListings)
	assert.Equal(t, int64(3), stats.AvailableListings)
	assert.InDelta(t, 200000, stats.AveragePrice, 0.01)
	require.Len(t, byType, 1)
	assert.Equal(t, domain.PropertyResidential, byType[0].PropertyType)
}
