package query

import "strings"

// ---------- Pagination / sort / page envelope ----------

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination is classic page/limit pagination.
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination normalizes page and limit: non-positive values fall back to
// the defaults and limit is clamped to MaxLimit.
func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset returns the number of records to skip for this page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Sort indicates field and direction.
type Sort struct {
	Field string // e.g. "createdAt", "price", "title"
	Desc  bool
}

// ParseSort parses the API sort parameter, where a leading '-' means
// descending ("-createdAt"). An empty value yields the default newest-first
// order.
func ParseSort(s string) Sort {
	s = strings.TrimSpace(s)
	if s == "" {
		return Sort{Field: "createdAt", Desc: true}
	}
	if strings.HasPrefix(s, "-") {
		return Sort{Field: s[1:], Desc: true}
	}
	return Sort{Field: s}
}

// Meta carries everything a client needs to render pagination controls
// without a second round trip.
type Meta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// Page is the envelope combining one page of records with its pagination
// metadata. The shape is identical for every record kind.
type Page[T any] struct {
	Items      []T  `json:"items"`
	Pagination Meta `json:"pagination"`
}

// NewPage assembles the envelope. totalPages is ceil(total/limit), zero when
// there are no matching records.
func NewPage[T any](items []T, total int64, p Pagination) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Page[T]{
		Items: items,
		Pagination: Meta{
			CurrentPage:  p.Page,
			TotalPages:   totalPages,
			TotalRecords: total,
			HasNextPage:  p.Page < totalPages,
			HasPrevPage:  p.Page > 1,
		},
	}
}
