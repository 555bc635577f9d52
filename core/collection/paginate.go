// ABOUTME: Client-side page slicing for search results and the list view
// ABOUTME: Out-of-range pages are empty, never an error

package collection

import "github.com/jbpiacentino/lumen-digest/core/domain"

// Paginate returns the 1-based page of the given size from items. Pages
// past the end are empty; a page or size below 1 falls back to page 1 and
// the default page size.
func Paginate(items []domain.Article, page, pageSize int) []domain.Article {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []domain.Article{}
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
