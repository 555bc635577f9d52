// ABOUTME: ReviewSynchronizer applies review patches and reclassify calls
// ABOUTME: Merges canonical server responses back into both article collections

// Package review synchronizes human review verdicts and reclassification
// requests with the backend, keeping the collection controller's two
// article caches coherent with the server's canonical state.
package review

import (
	"context"
	"strconv"

	"github.com/jbpiacentino/lumen-digest/core/backend"
	"github.com/jbpiacentino/lumen-digest/core/collection"
	"github.com/jbpiacentino/lumen-digest/core/domain"
	coreerrors "github.com/jbpiacentino/lumen-digest/core/errors"
	"github.com/jbpiacentino/lumen-digest/core/interfaces"
	"github.com/jbpiacentino/lumen-digest/core/notify"
)

// Synchronizer performs review mutations for single articles. On success
// the server's canonical article is merged into both collections; on
// failure the collections are left unchanged and the error is surfaced,
// with no automatic retry.
type Synchronizer struct {
	deps       interfaces.Dependencies
	client     *backend.Client
	collection *collection.Controller
	debug      *DebugCache
	notifier   notify.Notifier
}

// NewSynchronizer creates a review synchronizer bound to a collection
// controller and a debug cache.
func NewSynchronizer(deps interfaces.Dependencies, client *backend.Client, coll *collection.Controller, debug *DebugCache, notifier notify.Notifier) *Synchronizer {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Synchronizer{
		deps:       deps,
		client:     client,
		collection: coll,
		debug:      debug,
		notifier:   notifier,
	}
}

// Debug exposes the reclassify debug cache
func (s *Synchronizer) Debug() *DebugCache {
	return s.debug
}

// UpdateReview sends a partial review patch for an article and merges the
// canonical response into both collections by id.
func (s *Synchronizer) UpdateReview(ctx context.Context, articleID int64, patch domain.ReviewPatch) (*domain.Article, error) {
	if patch.IsEmpty() {
		return nil, &coreerrors.ValidationError{Field: "patch", Message: "patch must carry at least one field"}
	}

	article, err := s.client.UpdateReview(ctx, articleID, patch)
	if err != nil {
		s.surface(err)
		return nil, err
	}

	s.collection.ReplaceArticle(*article)
	return article, nil
}

// ToggleStatus applies the three-way review status toggle: selecting the
// currently-active status clears it back to unset; selecting a different
// status sets it directly.
func (s *Synchronizer) ToggleStatus(ctx context.Context, articleID int64, status domain.ReviewStatus) (*domain.Article, error) {
	current, ok := s.collection.FindArticle(articleID)
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "article", ID: formatID(articleID)}
	}

	next := status
	if current.ReviewStatus == status {
		next = domain.ReviewUnset
	}

	return s.UpdateReview(ctx, articleID, domain.ReviewPatch{ReviewStatus: &next})
}

// ToggleFlag adds the flag if absent, removes it if present, and sends
// the full resulting set rather than a delta.
func (s *Synchronizer) ToggleFlag(ctx context.Context, articleID int64, flag string) (*domain.Article, error) {
	current, ok := s.collection.FindArticle(articleID)
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "article", ID: formatID(articleID)}
	}

	flags := make([]string, 0, len(current.ReviewFlags)+1)
	removed := false
	for _, f := range current.ReviewFlags {
		if f == flag {
			removed = true
			continue
		}
		flags = append(flags, f)
	}
	if !removed {
		flags = append(flags, flag)
	}

	return s.UpdateReview(ctx, articleID, domain.ReviewPatch{ReviewFlags: &flags})
}

// SetOverrideCategory relabels an article. A nil categoryID clears the
// override back to the classifier assignment.
func (s *Synchronizer) SetOverrideCategory(ctx context.Context, articleID int64, categoryID *string) (*domain.Article, error) {
	if categoryID == nil {
		empty := ""
		categoryID = &empty
	}
	return s.UpdateReview(ctx, articleID, domain.ReviewPatch{OverrideCategoryID: categoryID})
}

// SetNote replaces the reviewer note
func (s *Synchronizer) SetNote(ctx context.Context, articleID int64, note string) (*domain.Article, error) {
	return s.UpdateReview(ctx, articleID, domain.ReviewPatch{ReviewNote: &note})
}

// Reclassify asks the backend to re-score an article. A preview call
// (Apply unset) only refreshes the debug cache and never changes the
// article held by the collections; an apply call also persists the new
// assignment, and the returned article replaces the matching entries in
// both lists.
func (s *Synchronizer) Reclassify(ctx context.Context, articleID int64, opts domain.ReclassifyOptions) (*backend.ReclassifyResult, error) {
	s.debug.setPending(articleID, true)
	defer s.debug.setPending(articleID, false)

	result, err := s.client.Reclassify(ctx, articleID, opts)
	if err != nil {
		s.surface(err)
		return nil, err
	}

	if result.Debug != nil {
		if err := s.debug.Put(ctx, articleID, *result.Debug); err != nil && s.deps.Logger != nil {
			s.deps.Logger.Warn("failed to cache reclassify debug payload", map[string]interface{}{
				"article_id": articleID,
				"error":      err.Error(),
			})
		}
	}

	if opts.Apply && result.Article != nil {
		s.collection.ReplaceArticle(*result.Article)
	}
	return result, nil
}

// surface routes an error to the notifier per the error policy: session
// expiry gets a persistent banner, anything else a transient toast with
// the server message when available.
func (s *Synchronizer) surface(err error) {
	if coreerrors.IsSessionExpired(err) {
		s.notifier.Banner("Your session has expired. Please sign in again.")
		return
	}
	s.notifier.Toast(err.Error())
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
