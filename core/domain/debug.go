// ABOUTME: Classifier debug introspection types for the reclassify workflow
// ABOUTME: Defines scored candidates, debug snapshots and reclassify parameters

package domain

// CategoryScore is a scored taxonomy candidate from the classifier
type CategoryScore struct {
	CategoryID string  `json:"category_id"`
	Score      float64 `json:"score"`
}

// DebugSnapshot is the classifier's per-article introspection payload:
// the text it saw, the text it scored, and the top-k candidates, together
// with the thresholds that produced them.
type DebugSnapshot struct {
	RawText     string          `json:"raw_text"`
	CleanedText string          `json:"cleaned_text"`
	TopK        []CategoryScore `json:"top_k"`

	// Parameters of the reclassify call that produced this snapshot
	Threshold       float64 `json:"threshold"`
	MarginThreshold float64 `json:"margin_threshold"`
}

// ReclassifyOptions are the parameters of a reclassify call. Apply=false
// is a preview: scores are recomputed without mutating the stored
// assignment. Apply=true also persists the new assignment.
type ReclassifyOptions struct {
	Threshold       float64 `json:"threshold"`
	MarginThreshold float64 `json:"margin_threshold"`
	MinLen          int     `json:"min_len"`
	LowBucket       string  `json:"low_bucket"`
	TopK            int     `json:"top_k"`
	Apply           bool    `json:"apply"`
}

// Classifier parameter defaults, as used by the backend
const (
	DefaultThreshold       = 0.36
	DefaultMarginThreshold = 0.07
	DefaultMinLen          = 30
	DefaultTopK            = 5
)

// DefaultReclassifyOptions returns a preview call with the backend's
// default scoring parameters.
func DefaultReclassifyOptions() ReclassifyOptions {
	return ReclassifyOptions{
		Threshold:       DefaultThreshold,
		MarginThreshold: DefaultMarginThreshold,
		MinLen:          DefaultMinLen,
		LowBucket:       CategoryOther,
		TopK:            DefaultTopK,
		Apply:           false,
	}
}

// ReviewPatch is a partial update of an article's review metadata. Nil
// fields are omitted from the patch; the flags field, when present,
// always carries the full resulting set, not a delta.
type ReviewPatch struct {
	ReviewStatus       *ReviewStatus `json:"review_status,omitempty"`
	OverrideCategoryID *string       `json:"override_category_id,omitempty"`
	ReviewFlags        *[]string     `json:"review_flags,omitempty"`
	ReviewNote         *string       `json:"review_note,omitempty"`
}

// IsEmpty reports whether the patch carries no fields
func (p *ReviewPatch) IsEmpty() bool {
	return p.ReviewStatus == nil && p.OverrideCategoryID == nil &&
		p.ReviewFlags == nil && p.ReviewNote == nil
}
