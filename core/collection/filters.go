// ABOUTME: Filter mutation operations and their refetch/recompute decisions
// ABOUTME: Encodes the invalidation trigger table for the two article caches

package collection

import (
	"context"

	"github.com/jbpiacentino/lumen-digest/core/domain"
)

// Invalidation triggers, per operation:
//
//	category / time window / source  -> page 1, refetch snapshot + page
//	search query                     -> local recompute only
//	language facet                   -> local recompute only
//	sort                             -> local recompute only
//	page (cards, no search)          -> refetch page
//	page (search or list)            -> local recompute only
//	page size                        -> page 1, refetch page when paged
//	view mode                        -> refetch page when entering cards

// SetCategory selects a taxonomy node, "all" or "other", resets to page 1
// and refetches both collections.
func (c *Controller) SetCategory(ctx context.Context, categoryID string) error {
	c.mu.Lock()
	if categoryID == "" {
		categoryID = domain.CategoryAll
	}
	c.filter.ActiveCategory = categoryID
	c.filter.Page = 1
	c.notifyChangeLocked()
	c.mu.Unlock()

	return c.refetch(ctx)
}

// SetTimeWindow changes the look-back window in days (0 for unbounded),
// resets to page 1 and refetches both collections.
func (c *Controller) SetTimeWindow(ctx context.Context, days int) error {
	c.mu.Lock()
	if days < 0 {
		days = 0
	}
	c.filter.TimeWindowDays = days
	c.filter.Page = 1
	c.notifyChangeLocked()
	c.mu.Unlock()

	return c.refetch(ctx)
}

// SetSource changes the source facet used for faceted browsing. Unlike the
// language facet this changes the denominator for pagination totals, so it
// refetches both collections.
func (c *Controller) SetSource(ctx context.Context, source string) error {
	c.mu.Lock()
	c.filter.Source = source
	c.filter.Page = 1
	c.notifyChangeLocked()
	c.mu.Unlock()

	return c.refetch(ctx)
}

// SetSearchQuery updates the free-text filter. It never issues a server
// query: results come from the resident snapshot so search feels
// instantaneous. An empty query reverts to the server-paginated view on
// the page the paged cache still holds, so the filter and the displayed
// articles stay consistent without a fetch.
func (c *Controller) SetSearchQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.filter.SearchQuery == query {
		return
	}
	clearing := query == "" && c.filter.SearchQuery != ""
	c.filter.SearchQuery = query
	if clearing {
		c.filter.Page = c.pagedPage
	} else {
		c.filter.Page = 1
	}
	c.clampPageLocked()
	c.notifyChangeLocked()
}

// SetLanguage updates the language facet, applied client-side without a
// fetch (cheap, low cardinality).
func (c *Controller) SetLanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.Language = lang
	c.filter.Page = 1
	c.clampPageLocked()
	c.notifyChangeLocked()
}

// SetSort changes the list-view sort column and direction. Sorting always
// operates on the full snapshot, so no fetch is needed.
func (c *Controller) SetSort(key domain.SortKey, asc bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.SortKey = key
	c.filter.SortAsc = asc
	c.notifyChangeLocked()
}

// SetViewMode switches between the card browser and the flat list. When
// entering cards mode the server page may be stale or missing and is
// refetched.
func (c *Controller) SetViewMode(ctx context.Context, mode domain.ViewMode) error {
	c.mu.Lock()
	if mode != domain.ViewCards && mode != domain.ViewList {
		mode = domain.ViewCards
	}
	changed := c.filter.ViewMode != mode
	c.filter.ViewMode = mode
	c.clampPageLocked()
	c.notifyChangeLocked()
	needPage := changed && mode == domain.ViewCards && c.filter.SearchQuery == ""
	c.mu.Unlock()

	if needPage {
		return c.refetchPage(ctx)
	}
	return nil
}

// SetPage navigates to a 1-based page, clamped into the valid range. In
// cards mode without an active search the page comes from the server;
// otherwise it is a slice of the local result set.
func (c *Controller) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	if page < 1 {
		page = 1
	}
	if max := c.totalPagesLocked(); page > max {
		page = max
	}
	c.filter.Page = page
	c.notifyChangeLocked()
	serverPaged := c.filter.ViewMode == domain.ViewCards && c.filter.SearchQuery == ""
	c.mu.Unlock()

	if serverPaged {
		return c.refetchPage(ctx)
	}
	return nil
}

// SetPageSize changes the page length and resets to page 1
func (c *Controller) SetPageSize(ctx context.Context, size int) error {
	c.mu.Lock()
	if size < 1 {
		size = domain.DefaultPageSize
	}
	c.filter.PageSize = size
	c.filter.Page = 1
	c.notifyChangeLocked()
	serverPaged := c.filter.ViewMode == domain.ViewCards && c.filter.SearchQuery == ""
	c.mu.Unlock()

	if serverPaged {
		return c.refetchPage(ctx)
	}
	return nil
}

// clampPageLocked enforces 1 <= page <= totalPages after any change that
// can shrink the result set.
func (c *Controller) clampPageLocked() {
	if c.filter.Page < 1 {
		c.filter.Page = 1
	}
	if max := c.totalPagesLocked(); c.filter.Page > max {
		c.filter.Page = max
	}
}

// notifyChangeLocked invokes the persistence hook with a filter copy.
// Called with the lock held; the hook runs on a copy so it may not call
// back into the controller synchronously from another goroutine's lock.
func (c *Controller) notifyChangeLocked() {
	if c.onChange != nil {
		c.onChange(c.filter)
	}
}
