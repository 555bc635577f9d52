// ABOUTME: Taxonomy domain models for the hierarchical category forest
// ABOUTME: Defines raw taxonomy nodes and the derived countable tree nodes

package domain

const (
	// CategoryAll is the sentinel selection meaning "no category filter"
	CategoryAll = "all"

	// CategoryOther is the synthetic bucket for low-confidence assignments
	CategoryOther = "other"

	// CategoryUncategorized is the synthetic bucket for skipped or failed
	// classification. It exists in filtering logic even when absent from
	// the taxonomy definition.
	CategoryUncategorized = "uncategorized"
)

// CategoryNode is a node of the taxonomy definition as served by the
// backend. Nodes form a forest; ids are assumed unique across it.
type CategoryNode struct {
	// ID is the category identifier, unique within the taxonomy
	ID string `json:"id"`

	// Labels maps language codes to display labels
	Labels map[string]string `json:"labels,omitempty"`

	// Children are sub-categories in definition order
	Children []CategoryNode `json:"children,omitempty"`
}

// Label resolves the display label for a language, falling back to
// English and finally to the id itself.
func (n *CategoryNode) Label(lang string) string {
	if l, ok := n.Labels[lang]; ok && l != "" {
		return l
	}
	if l, ok := n.Labels["en"]; ok && l != "" {
		return l
	}
	return n.ID
}

// CategoryTreeNode is a taxonomy node annotated with its descendant id set
// and the roll-up article count. Derived from CategoryNode by
// taxonomy.BuildTree; never part of a wire payload.
type CategoryTreeNode struct {
	// ID is the category identifier
	ID string

	// Labels maps language codes to display labels
	Labels map[string]string

	// Children are the annotated sub-trees in definition order
	Children []CategoryTreeNode

	// Descendants is the node's own id followed by all descendant ids.
	// Used as a membership set when filtering articles.
	Descendants []string

	// Count is the number of snapshot articles whose effective category
	// is in Descendants
	Count int
}

// Label resolves the display label for a language with the same fallback
// chain as CategoryNode.
func (n *CategoryTreeNode) Label(lang string) string {
	if l, ok := n.Labels[lang]; ok && l != "" {
		return l
	}
	if l, ok := n.Labels["en"]; ok && l != "" {
		return l
	}
	return n.ID
}

// TaxonomyResponse is the backend's taxonomy payload: flat labels for the
// requested language plus the definition forest.
type TaxonomyResponse struct {
	Labels map[string]string `json:"labels"`
	Tree   []CategoryNode    `json:"tree"`
}

// EmptyTaxonomy is the fallback for a malformed or missing taxonomy
// response: the view degrades to no tree rather than failing outright.
func EmptyTaxonomy() TaxonomyResponse {
	return TaxonomyResponse{Labels: map[string]string{}, Tree: []CategoryNode{}}
}
