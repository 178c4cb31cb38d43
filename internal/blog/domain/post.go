package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound = errors.New("blog post not found")
	ErrSlugTaken    = errors.New("slug already in use")
	ErrInvalidPost  = errors.New("invalid blog post")
)

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPost, msg)
}

// ---------------- Enums ----------------

type Category string

const (
	CategoryMarketTrends Category = "market-trends"
	CategoryBuyingGuide  Category = "buying-guide"
	CategorySellingTips  Category = "selling-tips"
	CategoryInvestment   Category = "investment"
	CategoryNews         Category = "news"
	CategoryLifestyle    Category = "lifestyle"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMarketTrends, CategoryBuyingGuide, CategorySellingTips,
		CategoryInvestment, CategoryNews, CategoryLifestyle:
		return true
	}
	return false
}

type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
	PostArchived  PostStatus = "archived"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostDraft, PostPublished, PostArchived:
		return true
	}
	return false
}

// ---------------- Entity ----------------

type SEO struct {
	MetaTitle       string   `json:"metaTitle,omitempty" bson:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty" bson:"metaDescription,omitempty"`
	Keywords        []string `json:"keywords,omitempty" bson:"keywords,omitempty"`
}

// Post is one blog article. Slug and ReadTime are derived fields: the slug
// follows the title and the read time follows the content, recomputed only
// when their source changes.
type Post struct {
	ID            uuid.UUID  `json:"id" bson:"_id"`
	Title         string     `json:"title" bson:"title"`
	Slug          string     `json:"slug" bson:"slug"`
	Excerpt       string     `json:"excerpt" bson:"excerpt"`
	Content       string     `json:"content" bson:"content"`
	Author        string     `json:"author" bson:"author"`
	FeaturedImage string     `json:"featuredImage,omitempty" bson:"featuredImage,omitempty"`
	Tags          []string   `json:"tags" bson:"tags"`
	Category      Category   `json:"category" bson:"category"`
	Status        PostStatus `json:"status" bson:"status"`
	Featured      bool       `json:"featured" bson:"featured"`
	Views         int64      `json:"views" bson:"views"`
	Likes         int64      `json:"likes" bson:"likes"`
	ReadTime      int        `json:"readTime" bson:"readTime"`
	SEO           SEO        `json:"seo" bson:"seo"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updatedAt"`
}

func (p *Post) Validate() error {
	if p.Title == "" {
		return invalid("title is required")
	}
	if len(p.Title) > 200 {
		return invalid("title cannot exceed 200 characters")
	}
	if p.Excerpt == "" {
		return invalid("excerpt is required")
	}
	if len(p.Excerpt) > 300 {
		return invalid("excerpt cannot exceed 300 characters")
	}
	if p.Content == "" {
		return invalid("content is required")
	}
	if p.Author == "" {
		return invalid("author is required")
	}
	if !p.Category.Valid() {
		return invalid(fmt.Sprintf("category %q is not recognized", p.Category))
	}
	if !p.Status.Valid() {
		return invalid(fmt.Sprintf("status %q is not recognized", p.Status))
	}
	if len(p.SEO.MetaTitle) > 60 {
		return invalid("meta title cannot exceed 60 characters")
	}
	if len(p.SEO.MetaDescription) > 160 {
		return invalid("meta description cannot exceed 160 characters")
	}
	return nil
}

// NormalizeTags lowercases and trims tags, dropping empties.
func (p *Post) NormalizeTags() {
	out := p.Tags[:0]
	for _, t := range p.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	p.Tags = out
}

// RecomputeDerived refreshes slug and read time, but only for the source
// fields that actually changed.
func (p *Post) RecomputeDerived(prevTitle, prevContent string) {
	if p.Title != prevTitle {
		p.Slug = Slugify(p.Title)
	}
	if p.Content != prevContent {
		p.ReadTime = ReadTime(p.Content)
	}
}

// ---------------- Derived-field transforms ----------------

// Slugify lowercases the title, collapses every run of non-alphanumerics
// into a single hyphen and strips leading/trailing hyphens.
// "Modern 3BR Condo!!" -> "modern-3br-condo".
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := false
	for _, r := range strings.ToLower(title) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen && b.Len() > 0 {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// wordsPerMinute is the average adult reading speed the read time is based on.
const wordsPerMinute = 200

// ReadTime estimates reading minutes from the word count, rounding up.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// ---------------- Stats ----------------

type BlogStats struct {
	TotalPosts     int64 `json:"totalPosts" bson:"totalPosts"`
	PublishedPosts int64 `json:"publishedPosts" bson:"publishedPosts"`
	DraftPosts     int64 `json:"draftPosts" bson:"draftPosts"`
	ArchivedPosts  int64 `json:"archivedPosts" bson:"archivedPosts"`
	TotalViews     int64 `json:"totalViews" bson:"totalViews"`
	TotalLikes     int64 `json:"totalLikes" bson:"totalLikes"`
}

type CategoryStat struct {
	Category   Category `json:"category" bson:"_id"`
	Count      int64    `json:"count" bson:"count"`
	TotalViews int64    `json:"totalViews" bson:"totalViews"`
}
