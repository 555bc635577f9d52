// ABOUTME: Article domain model represents a classified news article
// ABOUTME: Carries the classifier assignment, diagnostics and human review metadata

package domain

import "time"

// ReviewStatus is the human verdict on a classifier assignment.
// The empty string means the article has not been reviewed.
type ReviewStatus string

const (
	// ReviewUnset means no reviewer has looked at the article yet
	ReviewUnset ReviewStatus = ""

	// ReviewCorrect confirms the classifier assignment
	ReviewCorrect ReviewStatus = "correct"

	// ReviewIncorrect rejects the classifier assignment
	ReviewIncorrect ReviewStatus = "incorrect"
)

// Article represents a single classified news article as served by the
// backend. Articles are owned by the collection controller and mutated only
// through the review synchronizer or full replacement from a server fetch.
type Article struct {
	// ID is the stable unique identifier assigned by the backend
	ID int64 `json:"id"`

	// FreshRSSID is the upstream reader identity used for ingest dedup
	FreshRSSID string `json:"freshrss_id,omitempty"`

	// Title is the article headline
	Title string `json:"title"`

	// URL links to the full article
	URL string `json:"url"`

	// Source is the publisher name
	Source string `json:"source,omitempty"`

	// Summary is the generated or snippet summary shown in lists
	Summary string `json:"summary,omitempty"`

	// FullText is the cleaned article body, when extraction succeeded
	FullText string `json:"full_text,omitempty"`

	// FullTextFormat describes the FullText payload (plain, markdown)
	FullTextFormat string `json:"full_text_format,omitempty"`

	// Language is the detected two-letter language code
	Language string `json:"language,omitempty"`

	// PublishedAt is the upstream publication timestamp
	PublishedAt time.Time `json:"published_at"`

	// CategoryID is the classifier's current assignment
	CategoryID string `json:"category_id"`

	// OverrideCategoryID is the human relabel, when present
	OverrideCategoryID *string `json:"override_category_id,omitempty"`

	// ReviewStatus is the reviewer verdict (unset, correct, incorrect)
	ReviewStatus ReviewStatus `json:"review_status,omitempty"`

	// ReviewFlags is a set of enum tags attached by reviewers
	ReviewFlags []string `json:"review_flags,omitempty"`

	// ReviewNote is reviewer free text
	ReviewNote string `json:"review_note,omitempty"`

	// Classifier diagnostics for the current assignment
	Confidence         float64  `json:"confidence,omitempty"`
	RunnerUpConfidence *float64 `json:"runner_up_confidence,omitempty"`
	Margin             *float64 `json:"margin,omitempty"`
	NeedsReview        bool     `json:"needs_review,omitempty"`
	Reason             *string  `json:"reason,omitempty"`
}

// EffectiveCategory returns the category the article is displayed under:
// the human override when set, else the classifier assignment. Articles
// with neither land in the synthetic uncategorized bucket.
func (a *Article) EffectiveCategory() string {
	if a.OverrideCategoryID != nil && *a.OverrideCategoryID != "" {
		return *a.OverrideCategoryID
	}
	if a.CategoryID == "" {
		return CategoryUncategorized
	}
	return a.CategoryID
}

// HasFlag reports whether the given review flag is present
func (a *Article) HasFlag(flag string) bool {
	for _, f := range a.ReviewFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// IsValid checks if the article has all required fields
func (a *Article) IsValid() bool {
	if a.ID == 0 {
		return false
	}

	if a.Title == "" {
		return false
	}

	return true
}
