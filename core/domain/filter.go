// ABOUTME: FilterState captures the full view selection driving the article collection
// ABOUTME: Defines sort keys, view modes and the session defaults

package domain

// SortKey identifies the column a list view is sorted by
type SortKey string

const (
	// SortByDate sorts by publication timestamp
	SortByDate SortKey = "date"

	// SortByTitle sorts by article title, locale-aware
	SortByTitle SortKey = "title"

	// SortBySource sorts by publisher name, locale-aware
	SortBySource SortKey = "source"

	// SortByCategory sorts by the effective category's display label,
	// locale-aware
	SortByCategory SortKey = "category"
)

// ViewMode selects between the paged card browser and the flat table
type ViewMode string

const (
	// ViewCards is the default server-paginated card browser
	ViewCards ViewMode = "cards"

	// ViewList is the flat table; it always sorts and paginates from the
	// full local snapshot, never from a server page
	ViewList ViewMode = "list"
)

// FilterState is the active view selection. It is created at session start
// (optionally restored from persisted state), mutated by user interaction
// and persisted on every change.
type FilterState struct {
	// ActiveCategory is the selected taxonomy node id, "all" or "other"
	ActiveCategory string `json:"activeCategory"`

	// SearchQuery is the free-text filter, matched client-side
	SearchQuery string `json:"searchQuery"`

	// Language is the language facet, empty for no filter
	Language string `json:"languageFilter"`

	// Source is the source facet, empty for no filter
	Source string `json:"sourceFilter"`

	// TimeWindowDays is the look-back window; 0 means unbounded
	TimeWindowDays int `json:"timeWindowDays"`

	// SortKey and SortAsc control list-view ordering
	SortKey SortKey `json:"-"`
	SortAsc bool    `json:"-"`

	// ViewMode selects cards or list presentation
	ViewMode ViewMode `json:"viewMode"`

	// Page is the 1-based current page
	Page int `json:"currentPage"`

	// PageSize is the number of articles per page
	PageSize int `json:"-"`
}

// DefaultPageSize matches the card browser's default page length
const DefaultPageSize = 24

// DefaultTimeWindowDays is the initial look-back window
const DefaultTimeWindowDays = 7

// DefaultFilterState returns the selection used for a fresh session
func DefaultFilterState() FilterState {
	return FilterState{
		ActiveCategory: CategoryAll,
		TimeWindowDays: DefaultTimeWindowDays,
		SortKey:        SortByDate,
		SortAsc:        false,
		ViewMode:       ViewCards,
		Page:           1,
		PageSize:       DefaultPageSize,
	}
}
