// ABOUTME: CRUD passthroughs for clusters, cluster anchors and category anchors
// ABOUTME: Opaque to the curation core beyond typing the payloads

package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jbpiacentino/lumen-digest/core/domain"
)

// ListClusters lists clusters, optionally filtered by language
func (c *Client) ListClusters(ctx context.Context, language string) ([]domain.Cluster, error) {
	path := "/clusters"
	if language != "" {
		path += "?language=" + url.QueryEscape(language)
	}

	var clusters []domain.Cluster
	if err := c.get(ctx, path, &clusters); err != nil {
		return nil, err
	}
	return clusters, nil
}

// UpdateCluster patches a cluster's editable fields (currently the name)
func (c *Client) UpdateCluster(ctx context.Context, clusterID int64, name string) (*domain.Cluster, error) {
	body := map[string]string{"name": name}
	var cluster domain.Cluster
	if err := c.patch(ctx, fmt.Sprintf("/clusters/%d", clusterID), body, &cluster); err != nil {
		return nil, err
	}
	return &cluster, nil
}

// DeleteCluster removes a cluster and its anchors
func (c *Client) DeleteCluster(ctx context.Context, clusterID int64) error {
	return c.del(ctx, fmt.Sprintf("/clusters/%d", clusterID), nil)
}

// ListClusterAnchors lists the anchor phrases of a cluster
func (c *Client) ListClusterAnchors(ctx context.Context, clusterID int64) ([]domain.ClusterAnchor, error) {
	var anchors []domain.ClusterAnchor
	if err := c.get(ctx, fmt.Sprintf("/clusters/%d/anchors", clusterID), &anchors); err != nil {
		return nil, err
	}
	return anchors, nil
}

// CreateClusterAnchor adds an anchor phrase to a cluster
func (c *Client) CreateClusterAnchor(ctx context.Context, clusterID int64, phrase string) (*domain.ClusterAnchor, error) {
	body := map[string]string{"phrase": phrase}
	var anchor domain.ClusterAnchor
	if err := c.post(ctx, fmt.Sprintf("/clusters/%d/anchors", clusterID), body, &anchor); err != nil {
		return nil, err
	}
	return &anchor, nil
}

// UpdateClusterAnchor rewrites a single anchor row's phrase
func (c *Client) UpdateClusterAnchor(ctx context.Context, anchorID int64, phrase string) (*domain.ClusterAnchor, error) {
	body := map[string]string{"phrase": phrase}
	var anchor domain.ClusterAnchor
	if err := c.patch(ctx, fmt.Sprintf("/cluster-anchors/%d", anchorID), body, &anchor); err != nil {
		return nil, err
	}
	return &anchor, nil
}

// DeleteClusterAnchor removes a single anchor row
func (c *Client) DeleteClusterAnchor(ctx context.Context, anchorID int64) error {
	return c.del(ctx, fmt.Sprintf("/cluster-anchors/%d", anchorID), nil)
}

// ListCategoryAnchors lists anchor phrases attached to a taxonomy category
func (c *Client) ListCategoryAnchors(ctx context.Context, categoryID, language string) ([]domain.CategoryAnchor, error) {
	q := url.Values{}
	q.Set("category_id", categoryID)
	if language != "" {
		q.Set("language", language)
	}

	var anchors []domain.CategoryAnchor
	if err := c.get(ctx, "/anchors?"+q.Encode(), &anchors); err != nil {
		return nil, err
	}
	return anchors, nil
}

// CreateCategoryAnchor attaches an anchor phrase to a taxonomy category.
// sourceArticleID records which article the phrase was extracted from,
// when any.
func (c *Client) CreateCategoryAnchor(ctx context.Context, categoryID, language, text string, sourceArticleID *int64) (*domain.CategoryAnchor, error) {
	body := domain.CategoryAnchor{
		CategoryID:      categoryID,
		Language:        language,
		Text:            text,
		SourceArticleID: sourceArticleID,
	}
	var anchor domain.CategoryAnchor
	if err := c.post(ctx, "/anchors", body, &anchor); err != nil {
		return nil, err
	}
	return &anchor, nil
}

// DeleteCategoryAnchor removes a category anchor row
func (c *Client) DeleteCategoryAnchor(ctx context.Context, anchorID int64) error {
	return c.del(ctx, fmt.Sprintf("/anchors/%d", anchorID), nil)
}
