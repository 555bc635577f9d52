// ABOUTME: Article query and mutation endpoints of the classifier backend
// ABOUTME: Covers paginated listing, review patches, reclassify calls and deletion

package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jbpiacentino/lumen-digest/core/domain"
)

// ListParams are the query parameters of the articles endpoint. Zero
// values mean "unfiltered" except PageSize, where 0 is the contract for
// returning all matching rows unpaginated.
type ListParams struct {
	// Days and Hours bound the look-back window; 0 disables each
	Days  int
	Hours int

	// Page is the 1-based page to fetch; ignored when PageSize is 0
	Page int

	// PageSize is the page length; 0 requests all matching rows
	PageSize int

	// CategoryIDs filter by effective category; repeated values are OR'd.
	// An empty slice means unfiltered.
	CategoryIDs []string

	// Sources filter by publisher; repeated values are OR'd
	Sources []string
}

// ArticleList is the articles endpoint response: one page of items plus
// the total match count for the active filter.
type ArticleList struct {
	Items []domain.Article `json:"items"`
	Total int              `json:"total"`
}

// ReclassifyResult is the reclassify endpoint response. Article is present
// only when the call applied the new assignment; Debug is always present.
type ReclassifyResult struct {
	Article *domain.Article       `json:"article,omitempty"`
	Debug   *domain.DebugSnapshot `json:"debug,omitempty"`
}

// ListArticles queries articles matching the given filter
func (c *Client) ListArticles(ctx context.Context, params ListParams) (*ArticleList, error) {
	q := url.Values{}
	if params.Days > 0 {
		q.Set("days", strconv.Itoa(params.Days))
	}
	if params.Hours > 0 {
		q.Set("hours", strconv.Itoa(params.Hours))
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	q.Set("page_size", strconv.Itoa(params.PageSize))
	for _, id := range params.CategoryIDs {
		q.Add("category_ids", id)
	}
	for _, src := range params.Sources {
		q.Add("sources", src)
	}

	var list ArticleList
	if err := c.get(ctx, "/articles?"+q.Encode(), &list); err != nil {
		return nil, err
	}
	if list.Items == nil {
		list.Items = []domain.Article{}
	}
	return &list, nil
}

// UpdateReview sends a partial review patch and returns the canonical
// article as persisted by the backend.
func (c *Client) UpdateReview(ctx context.Context, articleID int64, patch domain.ReviewPatch) (*domain.Article, error) {
	var article domain.Article
	path := fmt.Sprintf("/articles/%d/review", articleID)
	if err := c.patch(ctx, path, patch, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// Reclassify asks the backend to re-score an article. With Apply unset
// the stored assignment is left untouched and only debug data comes back.
func (c *Client) Reclassify(ctx context.Context, articleID int64, opts domain.ReclassifyOptions) (*ReclassifyResult, error) {
	var result ReclassifyResult
	path := fmt.Sprintf("/articles/%d/reclassify", articleID)
	if err := c.post(ctx, path, opts, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteArticle removes an article. Callers must also drop the article
// from any local collections and decrement cached totals.
func (c *Client) DeleteArticle(ctx context.Context, articleID int64) error {
	return c.del(ctx, fmt.Sprintf("/articles/%d", articleID), nil)
}
