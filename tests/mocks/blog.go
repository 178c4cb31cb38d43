package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Khangithub17/real-estate-project/internal/blog/domain"
	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
	sharedQuery "github.com/Khangithub17/real-estate-project/internal/shared/platform/query"
)

// InMemoryBlogRepo simulates BlogRepository, including the unique-slug
// constraint of the real collection.
type InMemoryBlogRepo struct {
	Posts map[uuid.UUID]*domain.Post
	mu    sync.Mutex
}

var _ domain.BlogRepository = (*InMemoryBlogRepo)(nil)

func NewInMemoryBlogRepo() *InMemoryBlogRepo {
	return &InMemoryBlogRepo{
		Posts: make(map[uuid.UUID]*domain.Post),
	}
}

func (r *InMemoryBlogRepo) Create(ctx context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Posts {
		if existing.Slug == p.Slug {
			return domain.ErrSlugTaken
		}
	}
	clone := *p
	r.Posts[p.ID] = &clone
	return nil
}

func (r *InMemoryBlogRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *InMemoryBlogRepo) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.Posts {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPostNotFound
}

func (r *InMemoryBlogRepo) Update(ctx context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Posts[p.ID]; !ok {
		return domain.ErrPostNotFound
	}
	for id, existing := range r.Posts {
		if id != p.ID && existing.Slug == p.Slug {
			return domain.ErrSlugTaken
		}
	}
	clone := *p
	r.Posts[p.ID] = &clone
	return nil
}

func (r *InMemoryBlogRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.Posts, id)
	return nil
}

func (r *InMemoryBlogRepo) List(ctx context.Context, criteria shared.Criteria, p sharedQuery.Pagination, s sharedQuery.Sort) ([]*domain.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []*domain.Post
	for _, post := range r.Posts {
		if matches(post, criteria, blogField) {
			clone := *post
			list = append(list, &clone)
		}
	}

	total := int64(len(list))
	return sortAndPage(list, s, p, blogField), total, nil
}

func (r *InMemoryBlogRepo) Featured(ctx context.Context, limit int) ([]*domain.Post, error) {
	items, _, err := r.List(ctx, domain.FeaturedCriteria(),
		sharedQuery.NewPagination(1, limit),
		sharedQuery.Sort{Field: "createdAt", Desc: true})
	return items, err
}

func (r *InMemoryBlogRepo) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Posts[id]
	if !ok {
		return 0, domain.ErrPostNotFound
	}
	p.Views++
	return p.Views, nil
}

func (r *InMemoryBlogRepo) IncrementLikes(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Posts[id]
	if !ok {
		return 0, domain.ErrPostNotFound
	}
	p.Likes++
	return p.Likes, nil
}

func (r *InMemoryBlogRepo) Stats(ctx context.Context) (*domain.BlogStats, []domain.CategoryStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &domain.BlogStats{}
	byCategory := map[domain.Category]*domain.CategoryStat{}

	for _, p := range r.Posts {
		stats.TotalPosts++
		stats.TotalViews += p.Views
		stats.TotalLikes += p.Likes
		switch p.Status {
		case domain.PostPublished:
			stats.PublishedPosts++
		case domain.PostDraft:
			stats.DraftPosts++
		case domain.PostArchived:
			stats.ArchivedPosts++
		}

		cs, ok := byCategory[p.Category]
		if !ok {
			cs = &domain.CategoryStat{Category: p.Category}
			byCategory[p.Category] = cs
		}
		cs.Count++
		cs.TotalViews += p.Views
	}

	var out []domain.CategoryStat
	for _, cs := range byCategory {
		out = append(out, *cs)
	}
	return stats, out, nil
}

func blogField(p *domain.Post, field string) (interface{}, bool) {
	switch field {
	case "":
		return strings.Join(append([]string{p.Title, p.Content}, p.Tags...), " "), true
	case "category":
		return string(p.Category), true
	case "status":
		return string(p.Status), true
	case "featured":
		return p.Featured, true
	case "author":
		return p.Author, true
	case "tags":
		return p.Tags, true
	case "views":
		return p.Views, true
	case "likes":
		return p.Likes, true
	case "createdAt":
		return p.CreatedAt, true
	case "title":
		return p.Title, true
	default:
		return nil, false
	}
}
