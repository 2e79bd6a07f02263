// Package pagination computes the page-number window shown under long list
// views.
package pagination

import (
	dErrors "courtpub/pkg/domain-errors"
)

// WindowSize is the maximum number of page links shown at once.
const WindowSize = 7

// Pagination is the view model for one page of a result set.
type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int   `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
	HasNext      bool  `json:"has_next"`
	HasPrevious  bool  `json:"has_previous"`
	PageNumbers  []int `json:"page_numbers"`
}

// Paginate computes the pagination view for currentPage.
//
// Window rules, in order:
//  1. totalPages <= 7: every page
//  2. currentPage <= 4: pages 1..7
//  3. totalPages-currentPage < 3: the last seven pages
//  4. otherwise: currentPage-3..currentPage+3
func Paginate(currentPage, totalItems, itemsPerPage int) (Pagination, error) {
	if currentPage < 1 {
		return Pagination{}, dErrors.New(dErrors.CodeValidation, "page must be at least 1")
	}
	if totalItems < 0 {
		return Pagination{}, dErrors.New(dErrors.CodeValidation, "total items must not be negative")
	}
	if itemsPerPage <= 0 {
		return Pagination{}, dErrors.New(dErrors.CodeValidation, "items per page must be positive")
	}

	totalPages := ceilDiv(totalItems, itemsPerPage)

	return Pagination{
		CurrentPage:  currentPage,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: itemsPerPage,
		HasNext:      currentPage < totalPages,
		HasPrevious:  currentPage > 1,
		PageNumbers:  pageNumbers(currentPage, totalPages),
	}, nil
}

func pageNumbers(currentPage, totalPages int) []int {
	if totalPages == 0 {
		return []int{}
	}

	var start, end int
	switch {
	case totalPages <= WindowSize:
		start, end = 1, totalPages
	case currentPage <= 4:
		start, end = 1, WindowSize
	case totalPages-currentPage < 3:
		start, end = totalPages-WindowSize+1, totalPages
	default:
		start, end = currentPage-3, currentPage+3
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Bounds returns the [lo, hi) slice indexes of the current page within a list
// of p.TotalItems elements. A page past the end yields an empty range. The
// page offset is only multiplied out once it is known to lie inside the list.
func (p Pagination) Bounds() (lo, hi int) {
	if p.ItemsPerPage <= 0 || p.CurrentPage < 1 || p.CurrentPage-1 >= ceilDiv(p.TotalItems, p.ItemsPerPage) {
		return p.TotalItems, p.TotalItems
	}
	lo = (p.CurrentPage - 1) * p.ItemsPerPage
	if p.ItemsPerPage >= p.TotalItems-lo {
		return lo, p.TotalItems
	}
	return lo, lo + p.ItemsPerPage
}

func ceilDiv(n, d int) int {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}

// Page slices items to the current page.
func Page[T any](items []T, p Pagination) []T {
	lo, hi := p.Bounds()
	if lo >= len(items) {
		return []T{}
	}
	if hi > len(items) {
		hi = len(items)
	}
	return items[lo:hi]
}
