// ABOUTME: Taxonomy endpoints, including the raw definition editor surface
// ABOUTME: Falls back to an empty taxonomy when the response is malformed

package backend

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	coreerrors "github.com/jbpiacentino/lumen-digest/core/errors"
	"github.com/jbpiacentino/lumen-digest/core/domain"
)

// Taxonomy fetches the labels and definition forest for a language.
// A malformed or missing response degrades to an empty taxonomy so the
// article views stay usable; network and auth failures are still returned.
func (c *Client) Taxonomy(ctx context.Context, lang string) (domain.TaxonomyResponse, error) {
	if lang == "" {
		lang = "en"
	}

	var tax domain.TaxonomyResponse
	err := c.get(ctx, "/digest/taxonomy?lang="+url.QueryEscape(lang), &tax)
	if err != nil {
		if coreerrors.IsNetwork(err) || coreerrors.IsSessionExpired(err) {
			return domain.EmptyTaxonomy(), err
		}
		if c.deps.Logger != nil {
			c.deps.Logger.Warn("taxonomy response unusable, falling back to empty tree", map[string]interface{}{
				"lang":  lang,
				"error": err.Error(),
			})
		}
		return domain.EmptyTaxonomy(), nil
	}

	if tax.Labels == nil {
		tax.Labels = map[string]string{}
	}
	if tax.Tree == nil {
		tax.Tree = []domain.CategoryNode{}
	}
	return tax, nil
}

// TaxonomyVersion describes one saved revision of the raw taxonomy file
type TaxonomyVersion struct {
	Version   int       `json:"version"`
	SavedAt   time.Time `json:"saved_at"`
	SavedBy   string    `json:"saved_by,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	Active    bool      `json:"active"`
	SizeBytes int       `json:"size_bytes,omitempty"`
}

// TaxonomyRaw reads the raw taxonomy definition for the editor
func (c *Client) TaxonomyRaw(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/taxonomy/raw", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// SaveTaxonomyRaw persists a new raw taxonomy definition
func (c *Client) SaveTaxonomyRaw(ctx context.Context, raw json.RawMessage) error {
	return c.post(ctx, "/taxonomy/raw", raw, nil)
}

// TaxonomyVersions lists saved taxonomy revisions, newest first
func (c *Client) TaxonomyVersions(ctx context.Context) ([]TaxonomyVersion, error) {
	var versions []TaxonomyVersion
	if err := c.get(ctx, "/taxonomy/versions", &versions); err != nil {
		return nil, err
	}
	return versions, nil
}
