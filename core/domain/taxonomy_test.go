package domain

import "testing"

func TestCategoryNode_Label_FallbackChain(t *testing.T) {
	node := CategoryNode{
		ID:     "tech",
		Labels: map[string]string{"en": "Technology", "de": "Technik"},
	}

	if got := node.Label("de"); got != "Technik" {
		t.Errorf("Label(de) = %q, want Technik", got)
	}
	if got := node.Label("fr"); got != "Technology" {
		t.Errorf("Label(fr) = %q, want the English fallback", got)
	}

	bare := CategoryNode{ID: "tech"}
	if got := bare.Label("en"); got != "tech" {
		t.Errorf("Label without labels = %q, want the id", got)
	}
}

func TestCategoryTreeNode_Label_SameFallbackChain(t *testing.T) {
	node := CategoryTreeNode{
		ID:     "tech",
		Labels: map[string]string{"en": "Technology"},
	}

	if got := node.Label("de"); got != "Technology" {
		t.Errorf("Label(de) = %q, want the English fallback", got)
	}
}

func TestEmptyTaxonomy(t *testing.T) {
	tax := EmptyTaxonomy()

	if tax.Labels == nil || tax.Tree == nil {
		t.Error("EmptyTaxonomy should return empty maps and slices, not nil")
	}
	if len(tax.Labels) != 0 || len(tax.Tree) != 0 {
		t.Errorf("EmptyTaxonomy = %+v, want empty", tax)
	}
}
