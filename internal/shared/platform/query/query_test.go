package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(0, -5)
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = NewPagination(3, 500)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)

	assert.Equal(t, 20, NewPagination(3, 10).Offset())
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, Sort{Field: "createdAt", Desc: true}, ParseSort(""))
	assert.Equal(t, Sort{Field: "price", Desc: true}, ParseSort("-price"))
	assert.Equal(t, Sort{Field: "title"}, ParseSort("title"))
}

func TestNewPageMetadata(t *testing.T) {
	tests := []struct {
		name       string
		items      int
		total      int64
		page       int
		limit      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"empty result", 0, 0, 1, 10, 0, false, false},
		{"single page", 5, 5, 1, 10, 1, false, false},
		{"first of two", 10, 15, 1, 10, 2, true, false},
		{"last of two", 5, 15, 2, 10, 2, false, true},
		{"middle page", 10, 30, 2, 10, 3, true, true},
		{"exact boundary", 10, 20, 2, 10, 2, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.items)
			page := NewPage(items, tt.total, Pagination{Page: tt.page, Limit: tt.limit})

			assert.Equal(t, tt.page, page.Pagination.CurrentPage)
			assert.Equal(t, tt.totalPages, page.Pagination.TotalPages)
			assert.Equal(t, tt.total, page.Pagination.TotalRecords)
			assert.Equal(t, tt.hasNext, page.Pagination.HasNextPage)
			assert.Equal(t, tt.hasPrev, page.Pagination.HasPrevPage)
		})
	}
}

func TestNewPageNilItems(t *testing.T) {
	page := NewPage[string](nil, 0, NewPagination(1, 10))
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}
