package domain

import (
	"strings"

	shared "github.com/Khangithub17/real-estate-project/internal/shared/domain"
)

// ListFilter holds the optional blog query parameters.
type ListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status"`
	Featured string `form:"featured"`
	Author   string `form:"author"`
	Tags     string `form:"tags"` // comma-separated, any-of semantics
}

// Criteria translates the filter into neutral conditions. Pure and
// idempotent.
func (f ListFilter) Criteria() shared.Criteria {
	var criterias []shared.Criteria

	if f.Search != "" {
		criterias = append(criterias, shared.Where("", shared.OpText, f.Search))
	}
	if f.Category != "" {
		criterias = append(criterias, shared.Where("category", shared.OpEq, f.Category))
	}
	if f.Status != "" {
		criterias = append(criterias, shared.Where("status", shared.OpEq, f.Status))
	}
	if f.Featured != "" {
		criterias = append(criterias, shared.Where("featured", shared.OpEq, f.Featured == "true"))
	}
	if f.Author != "" {
		criterias = append(criterias, shared.Where("author", shared.OpILike, f.Author))
	}
	if tags := splitTags(f.Tags); len(tags) > 0 {
		criterias = append(criterias, shared.Where("tags", shared.OpIn, tags))
	}

	return shared.And(criterias...)
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// FeaturedCriteria selects the posts shown on the home page.
func FeaturedCriteria() shared.Criteria {
	return shared.And(
		shared.Where("featured", shared.OpEq, true),
		shared.Where("status", shared.OpEq, string(PostPublished)),
	)
}
