// Package listing derives what the list and grid panels show: the current
// page slice, the page-number strip, filtering and page-scoped selection.
// Everything here is recomputed from its inputs on each render.
package listing

import (
	"github.com/spec-kit/employee-directory/internal/domain"
)

const (
	DefaultPage         = 1
	DefaultItemsPerPage = 10
	MaxVisiblePages     = 5
)

// TotalPages is ceil(totalItems / itemsPerPage).
func TotalPages(totalItems, itemsPerPage int) int {
	if totalItems <= 0 || itemsPerPage <= 0 {
		return 0
	}
	return (totalItems + itemsPerPage - 1) / itemsPerPage
}

// Clamp keeps page within [1, totalPages]; an empty list stays on page 1.
func Clamp(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns list[(page-1)*perPage : page*perPage] clipped to the list.
// The result aliases list and must not be modified.
func Paginate(list []domain.Employee, page, itemsPerPage int) []domain.Employee {
	if page < 1 || itemsPerPage <= 0 {
		return nil
	}
	start := (page - 1) * itemsPerPage
	if start >= len(list) {
		return nil
	}
	end := start + itemsPerPage
	if end > len(list) {
		end = len(list)
	}
	return list[start:end:end]
}

// Bounds returns the 1-based first and last item numbers shown on a page,
// e.g. "11-20 of 42". Both are zero for an empty list.
func Bounds(page, itemsPerPage, totalItems int) (first, last int) {
	if totalItems <= 0 || itemsPerPage <= 0 || page < 1 {
		return 0, 0
	}
	first = (page-1)*itemsPerPage + 1
	last = page * itemsPerPage
	if last > totalItems {
		last = totalItems
	}
	if first > last {
		return 0, 0
	}
	return first, last
}

// PageItem is one cell of the page-number strip.
type PageItem struct {
	Number   int
	Ellipsis bool
}

// Visible reports whether the pagination control renders at all.
func Visible(totalPages int) bool {
	return totalPages > 1
}

// PageNumbers lays out the strip. With at most maxVisible pages every page is
// listed; otherwise a window of two pages either side of current is shown,
// page 1 and the last page are pinned and a single ellipsis fills any gap
// between the window and a pinned end.
func PageNumbers(current, totalPages, maxVisible int) []PageItem {
	if totalPages <= 0 {
		return nil
	}
	if maxVisible <= 0 {
		maxVisible = MaxVisiblePages
	}

	items := make([]PageItem, 0, maxVisible+4)
	if totalPages <= maxVisible {
		for i := 1; i <= totalPages; i++ {
			items = append(items, PageItem{Number: i})
		}
		return items
	}

	start := max(1, current-2)
	end := min(totalPages, current+2)

	if start > 1 {
		items = append(items, PageItem{Number: 1})
		if start > 2 {
			items = append(items, PageItem{Ellipsis: true})
		}
	}
	for i := start; i <= end; i++ {
		items = append(items, PageItem{Number: i})
	}
	if end < totalPages {
		if end < totalPages-1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Number: totalPages})
	}
	return items
}

// IDs lists the ids of a page in order.
func IDs(page []domain.Employee) []int {
	out := make([]int, 0, len(page))
	for _, e := range page {
		out = append(out, e.ID)
	}
	return out
}

// Window is the slice of a filtered list shown at one cursor position.
type Window struct {
	Items      []domain.Employee
	Page       int
	PerPage    int
	TotalItems int
	TotalPages int
}

// Compute filters list, clamps page into range and cuts the page out.
func Compute(list []domain.Employee, f Filter, page, itemsPerPage int) Window {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	filtered := f.Apply(list)
	total := TotalPages(len(filtered), itemsPerPage)
	page = Clamp(page, total)
	return Window{
		Items:      Paginate(filtered, page, itemsPerPage),
		Page:       page,
		PerPage:    itemsPerPage,
		TotalItems: len(filtered),
		TotalPages: total,
	}
}

// IDs lists the ids shown in the window.
func (w Window) IDs() []int {
	return IDs(w.Items)
}
