// ABOUTME: Per-article cache of classifier debug payloads from reclassify calls
// ABOUTME: Keyed by article id only; a new call overwrites any prior entry

package review

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jbpiacentino/lumen-digest/core/domain"
	"github.com/jbpiacentino/lumen-digest/core/interfaces"
)

// debugKeyPrefix namespaces debug entries in the shared cache
const debugKeyPrefix = "reclassify:debug:"

// debugTTL bounds how long a stale debug payload can linger
const debugTTL = 1 * time.Hour

// DebugCache stores the debug introspection of the last reclassify call
// issued per article id. It is not a multi-version history: a new
// preview or apply call for an id overwrites the previous entry.
// Pending tracking is a per-id boolean, last-write-wins under rapid
// double requests.
type DebugCache struct {
	cache interfaces.Cache

	mu      sync.Mutex
	pending map[int64]bool
}

// NewDebugCache creates a debug cache over the given key-value backend
func NewDebugCache(cache interfaces.Cache) *DebugCache {
	return &DebugCache{
		cache:   cache,
		pending: make(map[int64]bool),
	}
}

func debugKey(articleID int64) string {
	return fmt.Sprintf("%s%d", debugKeyPrefix, articleID)
}

// Get returns the cached snapshot for an article id, if any
func (d *DebugCache) Get(ctx context.Context, articleID int64) (*domain.DebugSnapshot, bool) {
	data, err := d.cache.Get(ctx, debugKey(articleID))
	if err != nil || data == nil {
		return nil, false
	}

	var snap domain.DebugSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

// Put stores a snapshot for an article id, replacing any prior entry
func (d *DebugCache) Put(ctx context.Context, articleID int64, snap domain.DebugSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return d.cache.Set(ctx, debugKey(articleID), data, debugTTL)
}

// Invalidate clears the entry for an article id. Called when the article
// leaves focus or its underlying content is refetched.
func (d *DebugCache) Invalidate(ctx context.Context, articleID int64) error {
	d.mu.Lock()
	delete(d.pending, articleID)
	d.mu.Unlock()
	return d.cache.Delete(ctx, debugKey(articleID))
}

// Pending reports whether a reclassify request for the id is in flight
func (d *DebugCache) Pending(articleID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending[articleID]
}

func (d *DebugCache) setPending(articleID int64, v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if v {
		d.pending[articleID] = true
	} else {
		delete(d.pending, articleID)
	}
}
