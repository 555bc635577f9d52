// ABOUTME: ViewStatePersistence saves the active filter selection across reloads
// ABOUTME: Each field restores independently; malformed fields fall back to defaults

// Package viewstate serializes the filter/sort/pagination selection to a
// durable key-value store so a reload restores the same view. The storage
// medium is injected; in non-interactive contexts no store is available
// and persistence is skipped entirely.
package viewstate

import (
	"context"
	"encoding/json"

	"github.com/jbpiacentino/lumen-digest/core/domain"
	"github.com/jbpiacentino/lumen-digest/core/interfaces"
)

// StorageKey is the single namespaced key all view state lives under
const StorageKey = "lumen:viewstate"

// Persistence reads and writes the persisted view selection
type Persistence struct {
	store  interfaces.Cache
	logger interfaces.Logger
}

// NewPersistence creates a persistence layer over the given store.
// A nil store disables persistence: Save becomes a no-op and Load
// returns defaults.
func NewPersistence(store interfaces.Cache, logger interfaces.Logger) *Persistence {
	return &Persistence{store: store, logger: logger}
}

// Enabled reports whether a durable store is available
func (p *Persistence) Enabled() bool {
	return p.store != nil
}

// persistedState mirrors the stored JSON document. Fields are raw so a
// single malformed field can fall back without aborting the whole
// restore.
type persistedState struct {
	SearchQuery    json.RawMessage `json:"searchQuery,omitempty"`
	Language       json.RawMessage `json:"languageFilter,omitempty"`
	Source         json.RawMessage `json:"sourceFilter,omitempty"`
	TimeWindowDays json.RawMessage `json:"timeWindowDays,omitempty"`
	ActiveCategory json.RawMessage `json:"activeCategory,omitempty"`
	Page           json.RawMessage `json:"currentPage,omitempty"`
	ViewMode       json.RawMessage `json:"viewMode,omitempty"`
}

// Save persists the restorable subset of the filter state. Called on
// every filter change.
func (p *Persistence) Save(ctx context.Context, f domain.FilterState) error {
	if p.store == nil {
		return nil
	}

	doc := map[string]interface{}{
		"searchQuery":    f.SearchQuery,
		"languageFilter": f.Language,
		"sourceFilter":   f.Source,
		"timeWindowDays": f.TimeWindowDays,
		"activeCategory": f.ActiveCategory,
		"currentPage":    f.Page,
		"viewMode":       string(f.ViewMode),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return p.store.Set(ctx, StorageKey, data, 0)
}

// Load restores the persisted selection on top of the default filter
// state. A missing document, or any individual missing or malformed
// field, falls back to the default for that field rather than failing
// the restore.
func (p *Persistence) Load(ctx context.Context) domain.FilterState {
	f := domain.DefaultFilterState()
	if p.store == nil {
		return f
	}

	data, err := p.store.Get(ctx, StorageKey)
	if err != nil || len(data) == 0 {
		return f
	}

	var doc persistedState
	if err := json.Unmarshal(data, &doc); err != nil {
		if p.logger != nil {
			p.logger.Warn("persisted view state unreadable, using defaults", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return f
	}

	restoreString(doc.SearchQuery, &f.SearchQuery)
	restoreString(doc.Language, &f.Language)
	restoreString(doc.Source, &f.Source)

	if v, ok := restoreInt(doc.TimeWindowDays); ok && v >= 0 {
		f.TimeWindowDays = v
	}

	var category string
	if restoreString(doc.ActiveCategory, &category); category != "" {
		f.ActiveCategory = category
	}

	if v, ok := restoreInt(doc.Page); ok && v >= 1 {
		f.Page = v
	}

	var mode string
	if restoreString(doc.ViewMode, &mode); mode != "" {
		switch domain.ViewMode(mode) {
		case domain.ViewCards, domain.ViewList:
			f.ViewMode = domain.ViewMode(mode)
		}
	}

	return f
}

// Clear removes the persisted document
func (p *Persistence) Clear(ctx context.Context) error {
	if p.store == nil {
		return nil
	}
	return p.store.Delete(ctx, StorageKey)
}

func restoreString(raw json.RawMessage, out *string) bool {
	if len(raw) == 0 {
		return false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	*out = v
	return true
}

func restoreInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}
