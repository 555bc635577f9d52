// ABOUTME: Derived views over the article caches: display slices, counts, facets, tree
// ABOUTME: The list view and active search always derive from the full snapshot

package collection

import (
	"context"
	"math"
	"sort"

	"github.com/jbpiacentino/lumen-digest/core/domain"
	coreerrors "github.com/jbpiacentino/lumen-digest/core/errors"
	"github.com/jbpiacentino/lumen-digest/core/taxonomy"
)

// DisplayArticles returns the article slice the active view should render.
//
//   - cards mode, no search: the server page, language and source facets
//     applied client-side.
//   - active search (any mode): the matching snapshot articles in snapshot
//     order, paginated client-side.
//   - list mode: the filtered snapshot, sorted by the active column and
//     paginated client-side.
func (c *Controller) DisplayArticles() []domain.Article {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filter.SearchQuery != "" {
		matches := c.clientFilteredLocked()
		return Paginate(matches, c.filter.Page, c.filter.PageSize)
	}

	if c.filter.ViewMode == domain.ViewList {
		items := c.clientFilteredLocked()
		sortArticles(items, c.filter.SortKey, c.filter.SortAsc, c.tax.Labels, c.uiLang)
		return Paginate(items, c.filter.Page, c.filter.PageSize)
	}

	return filterSource(filterLanguage(c.paged, c.filter.Language), c.filter.Source)
}

// DisplayTotal returns the denominator for the active view's pagination:
// the local match count under search or list mode, else the server total.
func (c *Controller) DisplayTotal() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayTotalLocked()
}

// TotalPages returns max(1, ceil(displayTotal/pageSize))
func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPagesLocked()
}

func (c *Controller) displayTotalLocked() int {
	if c.filter.SearchQuery != "" || c.filter.ViewMode == domain.ViewList {
		return len(c.clientFilteredLocked())
	}
	return c.total
}

func (c *Controller) totalPagesLocked() int {
	size := c.filter.PageSize
	if size < 1 {
		size = domain.DefaultPageSize
	}
	pages := int(math.Ceil(float64(c.displayTotalLocked()) / float64(size)))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// clientFilteredLocked applies the client-side facets to the snapshot:
// language and source, then the free-text search over title, summary and
// source. Snapshot order is preserved.
func (c *Controller) clientFilteredLocked() []domain.Article {
	items := filterSource(filterLanguage(c.all, c.filter.Language), c.filter.Source)
	if c.filter.SearchQuery != "" {
		items = filterSearch(items, c.filter.SearchQuery)
	}
	return items
}

// Tree returns the annotated taxonomy tree with roll-up counts over the
// current snapshot, memoized by the taxonomy and article set versions.
func (c *Controller) Tree() []domain.CategoryTreeNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.treeLocked()
}

func (c *Controller) treeLocked() []domain.CategoryTreeNode {
	forest, articles := c.tax.Tree, c.all
	return c.treeCache.Get(c.taxonomyVersion, c.articleVersion, func() []domain.CategoryTreeNode {
		return taxonomy.BuildTree(forest, articles)
	})
}

// OtherBucketCount returns the snapshot size of the synthetic other bucket
func (c *Controller) OtherBucketCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return taxonomy.OtherCount(c.all)
}

// Labels returns the flat taxonomy labels for the UI language
func (c *Controller) Labels() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.tax.Labels))
	for k, v := range c.tax.Labels {
		out[k] = v
	}
	return out
}

// Languages returns the distinct article languages in the snapshot, sorted
func (c *Controller) Languages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return distinct(c.all, func(a *domain.Article) string { return a.Language })
}

// Sources returns the distinct article sources in the snapshot, sorted
func (c *Controller) Sources() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return distinct(c.all, func(a *domain.Article) string { return a.Source })
}

func distinct(items []domain.Article, key func(*domain.Article) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range items {
		k := key(&items[i])
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ReplaceArticle merges a canonical server article into both collections
// wherever its id is present. Lookup is by id; object identity is not
// assumed.
func (c *Controller) ReplaceArticle(article domain.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()

	replaced := false
	for i := range c.paged {
		if c.paged[i].ID == article.ID {
			c.paged[i] = article
			replaced = true
		}
	}
	for i := range c.all {
		if c.all[i].ID == article.ID {
			c.all[i] = article
			replaced = true
		}
	}
	if replaced {
		c.articleVersion++
	}
}

// FindArticle looks an article up by id, preferring the full snapshot
func (c *Controller) FindArticle(id int64) (domain.Article, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.all {
		if c.all[i].ID == id {
			return c.all[i], true
		}
	}
	for i := range c.paged {
		if c.paged[i].ID == id {
			return c.paged[i], true
		}
	}
	return domain.Article{}, false
}

// RemoveArticle deletes an article on the server, removes it from both
// collections and decrements the cached total.
func (c *Controller) RemoveArticle(ctx context.Context, id int64) error {
	if err := c.client.DeleteArticle(ctx, id); err != nil {
		if coreerrors.IsSessionExpired(err) {
			c.notifier.Banner("Your session has expired. Please sign in again.")
		} else {
			c.notifier.Toast(err.Error())
		}
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.paged = removeByID(c.paged, id)
	c.all = removeByID(c.all, id)
	if c.total > 0 {
		c.total--
	}
	c.articleVersion++
	c.clampPageLocked()
	return nil
}

func removeByID(items []domain.Article, id int64) []domain.Article {
	out := items[:0]
	for i := range items {
		if items[i].ID != id {
			out = append(out, items[i])
		}
	}
	return out
}
