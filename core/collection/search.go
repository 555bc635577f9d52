// ABOUTME: Client-side facet and free-text filtering over resident articles
// ABOUTME: Search matches case-insensitively across title, summary and source

package collection

import (
	"strings"

	"github.com/jbpiacentino/lumen-digest/core/domain"
)

// filterLanguage keeps articles matching the language facet. An empty
// facet passes everything; articles with no detected language only pass
// the empty facet.
func filterLanguage(items []domain.Article, lang string) []domain.Article {
	if lang == "" {
		out := make([]domain.Article, len(items))
		copy(out, items)
		return out
	}

	out := make([]domain.Article, 0, len(items))
	for i := range items {
		if items[i].Language == lang {
			out = append(out, items[i])
		}
	}
	return out
}

// filterSource keeps articles from the selected source, case-insensitively.
// The server already restricts the collections to the facet; this narrows
// the visible page while a refetch for a new facet is still in flight.
func filterSource(items []domain.Article, source string) []domain.Article {
	if source == "" {
		out := make([]domain.Article, len(items))
		copy(out, items)
		return out
	}

	out := make([]domain.Article, 0, len(items))
	for i := range items {
		if strings.EqualFold(items[i].Source, source) {
			out = append(out, items[i])
		}
	}
	return out
}

// filterSearch keeps articles whose title, summary or source contains the
// query, case-insensitively. Input order is preserved.
func filterSearch(items []domain.Article, query string) []domain.Article {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]domain.Article, len(items))
		copy(out, items)
		return out
	}

	out := make([]domain.Article, 0, len(items))
	for i := range items {
		if matchesQuery(&items[i], q) {
			out = append(out, items[i])
		}
	}
	return out
}

// matchesQuery expects an already-lowercased query
func matchesQuery(a *domain.Article, q string) bool {
	if strings.Contains(strings.ToLower(a.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(a.Summary), q) {
		return true
	}
	return strings.Contains(strings.ToLower(a.Source), q)
}
