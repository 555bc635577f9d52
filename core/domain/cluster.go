// ABOUTME: Cluster and anchor models for the secondary curation workflow
// ABOUTME: Treated as opaque CRUD payloads by the curation core

package domain

import "time"

// Cluster groups articles discovered by topic modelling under a name and
// a set of anchor phrases.
type Cluster struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name,omitempty"`
	Language    string    `json:"language"`
	Status      string    `json:"status"`
	Model       string    `json:"model"`
	NComponents *int      `json:"n_components,omitempty"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// ClusterAnchor is a single anchor phrase owned by exactly one cluster.
// Rows are edited independently; Dirty tracks unsaved local edits and is
// never sent over the wire.
type ClusterAnchor struct {
	ID        int64    `json:"id"`
	ClusterID int64    `json:"cluster_id"`
	Phrase    string   `json:"phrase"`
	Score     *float64 `json:"score,omitempty"`

	Dirty bool `json:"-"`
}

// CategoryAnchor is an anchor phrase attached directly to a taxonomy
// category, seeding the classifier's centroid for it.
type CategoryAnchor struct {
	ID              int64  `json:"id"`
	CategoryID      string `json:"category_id"`
	Language        string `json:"language"`
	Text            string `json:"text"`
	SourceArticleID *int64 `json:"source_article_id,omitempty"`
}
