// ABOUTME: Locale-aware column sorting for the list view
// ABOUTME: Sorts the full snapshot stably by date, title, source or category label

package collection

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jbpiacentino/lumen-digest/core/domain"
)

// sortArticles orders items in place by the given column. String columns
// compare with a collator for the UI language so accented and case
// variants order the way the operator expects. The sort is stable: equal
// keys keep snapshot order.
func sortArticles(items []domain.Article, key domain.SortKey, asc bool, labels map[string]string, uiLang string) {
	tag, err := language.Parse(uiLang)
	if err != nil {
		tag = language.English
	}
	col := collate.New(tag, collate.IgnoreCase)

	var less func(a, b *domain.Article) bool
	switch key {
	case domain.SortByTitle:
		less = func(a, b *domain.Article) bool {
			return col.CompareString(a.Title, b.Title) < 0
		}
	case domain.SortBySource:
		less = func(a, b *domain.Article) bool {
			return col.CompareString(a.Source, b.Source) < 0
		}
	case domain.SortByCategory:
		less = func(a, b *domain.Article) bool {
			return col.CompareString(categoryLabel(a, labels), categoryLabel(b, labels)) < 0
		}
	default: // SortByDate
		less = func(a, b *domain.Article) bool {
			return a.PublishedAt.Before(b.PublishedAt)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if asc {
			return less(&items[i], &items[j])
		}
		return less(&items[j], &items[i])
	})
}

// categoryLabel resolves an article's effective category to its display
// label, falling back to the raw id for unknown categories.
func categoryLabel(a *domain.Article, labels map[string]string) string {
	id := a.EffectiveCategory()
	if label, ok := labels[id]; ok && label != "" {
		return label
	}
	return id
}
