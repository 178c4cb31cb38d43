package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Khangithub17/real-estate-project/internal/analytics"
	"github.com/Khangithub17/real-estate-project/internal/listing/domain"
	sharedEvents "github.com/Khangithub17/real-estate-project/internal/shared/events"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/cache"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/events"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/storage"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// ErrStorageUnavailable is returned when an upload arrives but no file
// store is configured.
var ErrStorageUnavailable = errors.New("file storage is not configured")

// cacheKeyFeatured holds the home-page featured strip. One key regardless
// of the requested limit, so a single delete invalidates every reader.
const cacheKeyFeatured = "listings:featured"

// ListingService implements the listing use cases.
type ListingService struct {
	repo     domain.ListingRepository
	cache    cache.Cache
	notifier *events.Notifier
	files    storage.FileStore
	views    *analytics.Collector
	log      *zap.Logger
}

// NewListingService constructor. cache, notifier, files and views may be
// nil; the service degrades to plain repository access.
func NewListingService(repo domain.ListingRepository, cache cache.Cache, notifier *events.Notifier, files storage.FileStore, views *analytics.Collector, log *zap.Logger) *ListingService {
	return &ListingService{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		files:    files,
		views:    views,
		log:      log,
	}
}

func (s *ListingService) CreateListing(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	l.ID = uuid.New()
	if l.Status == "" {
		l.Status = domain.StatusAvailable
	}
	l.Views = 0
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.invalidateFeatured()
	s.notifier.Notify(sharedEvents.TopicListings, sharedEvents.ListingCreated, l.ID.String(), map[string]interface{}{
		"project": l,
		"message": "New project added",
	})

	return l, nil
}

// GetListing fetches one listing and counts the view. The counter uses the
// repository's atomic increment, so concurrent reads never lose an update.
func (s *ListingService) GetListing(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		// the record was read fine, a lost view count is not worth a 500
		s.log.Warn("listing view count not incremented", zap.String("id", id.String()), zap.Error(err))
	} else {
		l.Views = views
	}

	s.views.Record("listing", id)

	return l, nil
}

// FindListing fetches one listing without counting a view; used by the
// admin edit flow.
func (s *ListingService) FindListing(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ListingService) ListListings(ctx context.Context, f domain.ListFilter, p sharedQuery.Pagination, sort sharedQuery.Sort) (sharedQuery.Page[*domain.Listing], error) {
	items, total, err := s.repo.List(ctx, f.Criteria(), p, sort)
	if err != nil {
		return sharedQuery.Page[*domain.Listing]{}, err
	}
	return sharedQuery.NewPage(items, total, p), nil
}

func (s *ListingService) FeaturedListings(ctx context.Context, limit int) ([]*domain.Listing, error) {
	if limit < 1 {
		limit = 6
	}

	if s.cache != nil {
		var cached []*domain.Listing
		if ok, _ := s.cache.Get(ctx, cacheKeyFeatured, &cached); ok && len(cached) >= limit {
			return cached[:limit], nil
		}
	}

	items, err := s.repo.Featured(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		go func(items []*domain.Listing) {
			ctxCache, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			_ = s.cache.Set(ctxCache, cacheKeyFeatured, items, 0)
		}(items)
	}

	return items, nil
}

// AddImage stores one uploaded image and appends its public path to the
// listing. The body streams straight into the file store.
func (s *ListingService) AddImage(ctx context.Context, id uuid.UUID, filename, contentType string, r io.Reader, size int64) (*domain.Listing, error) {
	if s.files == nil {
		return nil, ErrStorageUnavailable
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("listings/%s/%s", id, path.Base(filename))
	stored, err := s.files.Put(ctx, key, r, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	l.Images = append(l.Images, stored)
	l.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}

	s.invalidateFeatured()
	s.notifier.Notify(sharedEvents.TopicListings, sharedEvents.ListingUpdated, l.ID.String(), map[string]interface{}{
		"project": l,
		"message": "Project updated",
	})

	return l, nil
}

func (s *ListingService) UpdateListing(ctx context.Context, l *domain.Listing) error {
	l.UpdatedAt = time.Now().UTC()

	if err := l.Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, l); err != nil {
		return err
	}

	s.invalidateFeatured()
	s.notifier.Notify(sharedEvents.TopicListings, sharedEvents.ListingUpdated, l.ID.String(), map[string]interface{}{
		"project": l,
		"message": "Project updated",
	})

	return nil
}

func (s *ListingService) DeleteListing(ctx context.Context, id uuid.UUID) error {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.removeImages(l.Images)
	s.invalidateFeatured()
	s.notifier.Notify(sharedEvents.TopicListings, sharedEvents.ListingDeleted, id.String(), map[string]interface{}{
		"projectId": id.String(),
		"message":   "Project deleted",
	})

	return nil
}

func (s *ListingService) ListingStats(ctx context.Context) (*domain.ListingStats, []domain.PropertyTypeStat, error) {
	return s.repo.Stats(ctx)
}

// removeImages deletes associated media off the request path. Failures are
// logged; the record deletion already succeeded.
func (s *ListingService) removeImages(paths []string) {
	if s.files == nil || len(paths) == 0 {
		return
	}
	go func(paths []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, p := range paths {
			if err := s.files.Remove(ctx, p); err != nil {
				s.log.Warn("listing image not removed", zap.String("path", p), zap.Error(err))
			}
		}
	}(paths)
}

func (s *ListingService) invalidateFeatured() {
	if s.cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = s.cache.Delete(ctx, cacheKeyFeatured)
	}()
}
