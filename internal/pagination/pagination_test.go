package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "courtpub/pkg/domain-errors"
)

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name         string
		currentPage  int
		totalItems   int
		itemsPerPage int
		totalPages   int
		pageNumbers  []int
		hasNext      bool
		hasPrevious  bool
	}{
		{name: "single page", currentPage: 1, totalItems: 10, itemsPerPage: 50, totalPages: 1, pageNumbers: []int{1}},
		{name: "first of twenty", currentPage: 1, totalItems: 1000, itemsPerPage: 50, totalPages: 20, pageNumbers: seq(1, 7), hasNext: true},
		{name: "centered window", currentPage: 10, totalItems: 1000, itemsPerPage: 50, totalPages: 20, pageNumbers: seq(7, 13), hasNext: true, hasPrevious: true},
		{name: "last page", currentPage: 20, totalItems: 1000, itemsPerPage: 50, totalPages: 20, pageNumbers: seq(14, 20), hasPrevious: true},
		{name: "no items", currentPage: 1, totalItems: 0, itemsPerPage: 50, totalPages: 0, pageNumbers: []int{}},
		{name: "exactly seven pages", currentPage: 6, totalItems: 70, itemsPerPage: 10, totalPages: 7, pageNumbers: seq(1, 7), hasNext: true, hasPrevious: true},
		{name: "page four keeps leading window", currentPage: 4, totalItems: 1000, itemsPerPage: 50, totalPages: 20, pageNumbers: seq(1, 7), hasNext: true, hasPrevious: true},
		{name: "page five centers", currentPage: 5, totalItems: 1000, itemsPerPage: 50, totalPages: 20, pageNumbers: seq(2, 8), hasNext: true, hasPrevious: true},
		{name: "three from end centers", currentPage: 17, totalItems: 1000, itemsPerPage: 50, totalPages: 20, pageNumbers: seq(14, 20), hasNext: true, hasPrevious: true},
		{name: "two from end uses trailing window", currentPage: 18, totalItems: 1000, itemsPerPage: 50, totalPages: 20, pageNumbers: seq(14, 20), hasNext: true, hasPrevious: true},
		{name: "partial last page rounds up", currentPage: 1, totalItems: 51, itemsPerPage: 50, totalPages: 2, pageNumbers: seq(1, 2), hasNext: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Paginate(tt.currentPage, tt.totalItems, tt.itemsPerPage)
			require.NoError(t, err)

			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.pageNumbers, p.PageNumbers)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrevious, p.HasPrevious)
			assert.Equal(t, tt.totalItems, p.TotalItems)
			assert.Equal(t, tt.itemsPerPage, p.ItemsPerPage)
			assert.LessOrEqual(t, len(p.PageNumbers), WindowSize)
			if tt.totalPages > 0 {
				assert.Contains(t, p.PageNumbers, tt.currentPage)
			}
		})
	}
}

func TestPaginateRejectsInvalidInput(t *testing.T) {
	for _, in := range [][3]int{{0, 10, 10}, {1, -1, 10}, {1, 10, 0}} {
		_, err := Paginate(in[0], in[1], in[2])
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), "input %v", in)
	}
}

func TestPage(t *testing.T) {
	items := seq(1, 23)

	p, err := Paginate(3, len(items), 10)
	require.NoError(t, err)
	assert.Equal(t, []int{21, 22, 23}, Page(items, p))

	p, err = Paginate(9, len(items), 10)
	require.NoError(t, err)
	assert.Empty(t, Page(items, p))
}

func TestPageHugeInputs(t *testing.T) {
	items := seq(1, 3)

	t.Run("page number whose offset overflows int", func(t *testing.T) {
		p, err := Paginate(100000000000000000, len(items), 100)
		require.NoError(t, err)
		lo, hi := p.Bounds()
		assert.Equal(t, 3, lo)
		assert.Equal(t, 3, hi)
		assert.Empty(t, Page(items, p))
		assert.False(t, p.HasNext)
	})

	t.Run("max int page", func(t *testing.T) {
		p, err := Paginate(math.MaxInt, len(items), 10)
		require.NoError(t, err)
		assert.Empty(t, Page(items, p))
		assert.Equal(t, []int{1}, p.PageNumbers)
	})

	t.Run("max int page size", func(t *testing.T) {
		p, err := Paginate(1, len(items), math.MaxInt)
		require.NoError(t, err)
		assert.Equal(t, 1, p.TotalPages)
		assert.Equal(t, []int{1, 2, 3}, Page(items, p))
	})
}
