package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Khangithub17/real-estate-project/internal/analytics"
	"github.com/Khangithub17/real-estate-project/internal/blog/domain"
	sharedEvents "github.com/Khangithub17/real-estate-project/internal/shared/events"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/cache"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/events"
	"github.com/Khangithub17/real-estate-project/internal/shared/infra/storage"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

const cacheKeyFeatured = "blogs:featured"

// BlogService implements the blog use cases.
type BlogService struct {
	repo     domain.BlogRepository
	cache    cache.Cache
	notifier *events.Notifier
	files    storage.FileStore
	views    *analytics.Collector
	log      *zap.Logger
}

func NewBlogService(repo domain.BlogRepository, cache cache.Cache, notifier *events.Notifier, files storage.FileStore, views *analytics.Collector, log *zap.Logger) *BlogService {
	return &BlogService{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		files:    files,
		views:    views,
		log:      log,
	}
}

func (s *BlogService) CreatePost(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	p.ID = uuid.New()
	if p.Status == "" {
		p.Status = domain.PostDraft
	}
	p.Views = 0
	p.Likes = 0
	p.Slug = domain.Slugify(p.Title)
	p.ReadTime = domain.ReadTime(p.Content)
	p.NormalizeTags()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateFeatured()
	s.notifier.Notify(sharedEvents.TopicBlogs, sharedEvents.BlogCreated, p.ID.String(), map[string]interface{}{
		"blog":    p,
		"message": "New blog post created",
	})

	return p, nil
}

// GetPost fetches one post and counts the view atomically.
func (s *BlogService) GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.countView(ctx, p)
	return p, nil
}

// GetPostBySlug is the public permalink lookup; it counts a view too.
func (s *BlogService) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.countView(ctx, p)
	return p, nil
}

// FindPost fetches without counting a view; used by the admin edit flow.
func (s *BlogService) FindPost(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BlogService) ListPosts(ctx context.Context, f domain.ListFilter, p sharedQuery.Pagination, sort sharedQuery.Sort) (sharedQuery.Page[*domain.Post], error) {
	items, total, err := s.repo.List(ctx, f.Criteria(), p, sort)
	if err != nil {
		return sharedQuery.Page[*domain.Post]{}, err
	}
	return sharedQuery.NewPage(items, total, p), nil
}

func (s *BlogService) FeaturedPosts(ctx context.Context, limit int) ([]*domain.Post, error) {
	if limit < 1 {
		limit = 3
	}

	if s.cache != nil {
		var cached []*domain.Post
		if ok, _ := s.cache.Get(ctx, cacheKeyFeatured, &cached); ok && len(cached) >= limit {
			return cached[:limit], nil
		}
	}

	items, err := s.repo.Featured(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		go func(items []*domain.Post) {
			ctxCache, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			_ = s.cache.Set(ctxCache, cacheKeyFeatured, items, 0)
		}(items)
	}

	return items, nil
}

// UpdatePost persists an edited post. prevTitle/prevContent are the values
// before the edit; slug and read time are recomputed only when their source
// changed.
func (s *BlogService) UpdatePost(ctx context.Context, p *domain.Post, prevTitle, prevContent string) error {
	p.RecomputeDerived(prevTitle, prevContent)
	p.NormalizeTags()
	p.UpdatedAt = time.Now().UTC()

	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	s.invalidateFeatured()
	s.notifier.Notify(sharedEvents.TopicBlogs, sharedEvents.BlogUpdated, p.ID.String(), map[string]interface{}{
		"blog":    p,
		"message": "Blog post updated",
	})

	return nil
}

func (s *BlogService) DeletePost(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	if s.files != nil && p.FeaturedImage != "" {
		go func(path string) {
			ctxFiles, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.files.Remove(ctxFiles, path); err != nil {
				s.log.Warn("blog image not removed", zap.String("path", path), zap.Error(err))
			}
		}(p.FeaturedImage)
	}

	s.invalidateFeatured()
	s.notifier.Notify(sharedEvents.TopicBlogs, sharedEvents.BlogDeleted, id.String(), map[string]interface{}{
		"blogId":  id.String(),
		"message": "Blog post deleted",
	})

	return nil
}

// LikePost bumps the like counter atomically and returns the new value.
func (s *BlogService) LikePost(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.repo.IncrementLikes(ctx, id)
}

func (s *BlogService) BlogStats(ctx context.Context) (*domain.BlogStats, []domain.CategoryStat, error) {
	return s.repo.Stats(ctx)
}

func (s *BlogService) countView(ctx context.Context, p *domain.Post) {
	views, err := s.repo.IncrementViews(ctx, p.ID)
	if err != nil {
		s.log.Warn("blog view count not incremented", zap.String("id", p.ID.String()), zap.Error(err))
		return
	}
	p.Views = views
	s.views.Record("blog", p.ID)
}

func (s *BlogService) invalidateFeatured() {
	if s.cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = s.cache.Delete(ctx, cacheKeyFeatured)
	}()
}
