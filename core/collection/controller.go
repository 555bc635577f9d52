// ABOUTME: ArticleCollectionController owns the paged and full article caches
// ABOUTME: Reconciles server-paginated truth with the local snapshot and discards stale responses

// Package collection implements the dual-mode article collection
// controller. It keeps two coupled views of the article set: the current
// server page (authoritative for default browsing) and a fully fetched
// local snapshot (authoritative for free-text search, client-side sort
// and count displays), and decides per filter change whether to re-query
// the server or recompute locally.
package collection

import (
	"context"
	"sync"

	"github.com/jbpiacentino/lumen-digest/core/backend"
	"github.com/jbpiacentino/lumen-digest/core/domain"
	coreerrors "github.com/jbpiacentino/lumen-digest/core/errors"
	"github.com/jbpiacentino/lumen-digest/core/interfaces"
	"github.com/jbpiacentino/lumen-digest/core/notify"
	"github.com/jbpiacentino/lumen-digest/core/taxonomy"
)

// Controller coordinates the article collections, the active filter and
// the taxonomy tree. All methods are safe for concurrent use; overlapping
// refetches are resolved by generation stamping, so a stale response for
// an old filter is discarded instead of clobbering newer state.
type Controller struct {
	mu       sync.Mutex
	deps     interfaces.Dependencies
	client   *backend.Client
	notifier notify.Notifier

	filter domain.FilterState
	paged  []domain.Article
	all    []domain.Article
	total  int

	// pagedPage is the 1-based server page the paged cache currently
	// holds, so the filter can realign with it when a search is cleared
	pagedPage int

	loading bool

	tax             domain.TaxonomyResponse
	uiLang          string
	taxonomyVersion uint64
	articleVersion  uint64
	treeCache       taxonomy.TreeCache

	// generation stamps every refetch with the filter state it was
	// issued for; responses whose stamp is no longer current are dropped
	generation uint64

	// onChange is invoked with a copy of the filter after every filter
	// mutation, for view-state persistence
	onChange func(domain.FilterState)
}

// NewController creates a controller with the default filter state
func NewController(deps interfaces.Dependencies, client *backend.Client, notifier notify.Notifier) *Controller {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Controller{
		deps:     deps,
		client:   client,
		notifier: notifier,
		filter:   domain.DefaultFilterState(),
		tax:      domain.EmptyTaxonomy(),
		uiLang:   "en",
	}
}

// SetOnChange registers the filter persistence hook
func (c *Controller) SetOnChange(fn func(domain.FilterState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// RestoreFilter replaces the filter with a persisted selection. Callers
// should Refresh afterwards to populate the collections.
func (c *Controller) RestoreFilter(f domain.FilterState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = domain.DefaultPageSize
	}
	c.filter = f
}

// Filter returns a copy of the active filter state
func (c *Controller) Filter() domain.FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Loading reports whether a collection refetch is in flight
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Total returns the server-reported match count for the active filter
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// PagedArticles returns a copy of the current server page
func (c *Controller) PagedArticles() []domain.Article {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Article, len(c.paged))
	copy(out, c.paged)
	return out
}

// AllArticles returns a copy of the full local snapshot
func (c *Controller) AllArticles() []domain.Article {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Article, len(c.all))
	copy(out, c.all)
	return out
}

// LoadTaxonomy fetches the taxonomy for the given UI language. A session
// failure propagates; any other failure leaves the previous tree in place.
func (c *Controller) LoadTaxonomy(ctx context.Context, lang string) error {
	tax, err := c.client.Taxonomy(ctx, lang)
	if err != nil {
		if coreerrors.IsSessionExpired(err) {
			return err
		}
		c.log().Warn("taxonomy fetch failed, keeping previous tree", map[string]interface{}{
			"lang":  lang,
			"error": err.Error(),
		})
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tax = tax
	if lang != "" {
		c.uiLang = lang
	}
	c.taxonomyVersion++
	return nil
}

// Refresh refetches both collections for the current filter
func (c *Controller) Refresh(ctx context.Context) error {
	return c.refetch(ctx)
}

// refetch reloads the full snapshot and, in cards mode without an active
// search, the current server page. A failed fetch leaves the existing
// collections untouched apart from clearing the loading flag.
func (c *Controller) refetch(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading = true
	params := c.listParamsLocked()
	pageParams, wantPage := c.pageParamsLocked()
	c.mu.Unlock()

	full, err := c.client.ListArticles(ctx, params)
	if err != nil {
		return c.finishFetchError(gen, err)
	}

	var page *backend.ArticleList
	if wantPage {
		page, err = c.client.ListArticles(ctx, pageParams)
		if err != nil {
			return c.finishFetchError(gen, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// a newer filter change superseded this response; its fetch owns
		// the loading flag now
		return nil
	}
	c.loading = false

	c.all = full.Items
	c.total = full.Total
	c.articleVersion++
	if page != nil {
		c.paged = page.Items
		c.pagedPage = pageParams.Page
	}
	c.clampPageLocked()
	return nil
}

// refetchPage reloads only the server page, for page navigation in cards
// mode.
func (c *Controller) refetchPage(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	params, want := c.pageParamsLocked()
	if !want {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.mu.Unlock()

	page, err := c.client.ListArticles(ctx, params)
	if err != nil {
		return c.finishFetchError(gen, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}
	c.loading = false
	c.paged = page.Items
	c.pagedPage = params.Page
	c.total = page.Total
	return nil
}

// finishFetchError applies the error policy for list queries: session
// expiry surfaces a banner and propagates; everything else is swallowed
// so collections are never blanked by a failed refresh. The loading flag
// belongs to the newest fetch, so a stale failure leaves it alone.
func (c *Controller) finishFetchError(gen uint64, err error) error {
	c.mu.Lock()
	if gen == c.generation {
		c.loading = false
	}
	c.mu.Unlock()

	if coreerrors.IsSessionExpired(err) {
		c.notifier.Banner("Your session has expired. Please sign in again.")
		return err
	}

	c.log().Warn("article list fetch failed, keeping existing collections", map[string]interface{}{
		"error": err.Error(),
	})
	return nil
}

// listParamsLocked builds the unpaginated snapshot query for the active
// category/time/source filter. page_size=0 requests all matching rows.
func (c *Controller) listParamsLocked() backend.ListParams {
	params := backend.ListParams{
		Days:     c.filter.TimeWindowDays,
		PageSize: 0,
	}
	if set := taxonomy.Resolve(c.filter.ActiveCategory, c.treeLocked()); set != nil {
		params.CategoryIDs = make([]string, 0, len(set))
		// descendant order is not semantic; the set is only a membership filter
		for _, id := range orderedIDs(set, c.filter.ActiveCategory, c.treeLocked()) {
			params.CategoryIDs = append(params.CategoryIDs, id)
		}
	}
	if c.filter.Source != "" {
		params.Sources = []string{c.filter.Source}
	}
	return params
}

// pageParamsLocked builds the server page query. The page is only wanted
// in cards mode without an active search; list view and search always
// derive from the full snapshot.
func (c *Controller) pageParamsLocked() (backend.ListParams, bool) {
	if c.filter.ViewMode != domain.ViewCards || c.filter.SearchQuery != "" {
		return backend.ListParams{}, false
	}
	params := c.listParamsLocked()
	params.Page = c.filter.Page
	params.PageSize = c.filter.PageSize
	return params, true
}

// orderedIDs returns the membership set in a stable order: the tree's
// descendant order when the selection is a known node, else sorted-free
// fixed order for the synthetic buckets.
func orderedIDs(set map[string]struct{}, selection string, tree []domain.CategoryTreeNode) []string {
	if selection == domain.CategoryOther {
		return []string{domain.CategoryOther, domain.CategoryUncategorized}
	}
	if node := findTreeNode(selection, tree); node != nil {
		return node.Descendants
	}
	return []string{selection}
}

func findTreeNode(id string, nodes []domain.CategoryTreeNode) *domain.CategoryTreeNode {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i]
		}
		if found := findTreeNode(id, nodes[i].Children); found != nil {
			return found
		}
	}
	return nil
}

func (c *Controller) log() interfaces.Logger {
	if c.deps.Logger != nil {
		return c.deps.Logger
	}
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
