// ABOUTME: Pure aggregation turning the taxonomy forest into a countable tree
// ABOUTME: Annotates every node with its descendant id set and roll-up article count

// Package taxonomy builds the hierarchical navigation structure from the
// flat taxonomy definition and the current article snapshot, and resolves
// category selections into membership sets for filtering.
package taxonomy

import (
	"sync"

	"github.com/jbpiacentino/lumen-digest/core/domain"
)

// BuildTree builds the annotated category tree for a taxonomy forest and
// an article snapshot. For each node, Descendants is the node's own id
// followed by the flattened descendants of its children in definition
// order, and Count is the number of articles whose effective category is
// in that set.
//
// BuildTree is deterministic and performs no mutation of its inputs;
// re-running it with the same inputs yields a structurally equal tree.
// Ids duplicated across the forest are an unchecked precondition of the
// taxonomy source.
func BuildTree(forest []domain.CategoryNode, articles []domain.Article) []domain.CategoryTreeNode {
	counts := make(map[string]int, len(articles))
	for i := range articles {
		counts[articles[i].EffectiveCategory()]++
	}

	tree := make([]domain.CategoryTreeNode, 0, len(forest))
	for i := range forest {
		tree = append(tree, buildNode(&forest[i], counts))
	}
	return tree
}

func buildNode(node *domain.CategoryNode, counts map[string]int) domain.CategoryTreeNode {
	out := domain.CategoryTreeNode{
		ID:          node.ID,
		Labels:      node.Labels,
		Descendants: []string{node.ID},
	}

	out.Children = make([]domain.CategoryTreeNode, 0, len(node.Children))
	for i := range node.Children {
		child := buildNode(&node.Children[i], counts)
		out.Children = append(out.Children, child)
		out.Descendants = append(out.Descendants, child.Descendants...)
	}

	for _, id := range out.Descendants {
		out.Count += counts[id]
	}
	return out
}

// OtherCount returns the size of the synthetic "other" bucket for a
// snapshot: articles whose effective category is other or uncategorized.
func OtherCount(articles []domain.Article) int {
	n := 0
	for i := range articles {
		switch articles[i].EffectiveCategory() {
		case domain.CategoryOther, domain.CategoryUncategorized:
			n++
		}
	}
	return n
}

// TreeCache memoizes BuildTree by an explicit (taxonomy version, article
// set version) key. Versions are bumped by the owners of the two inputs;
// any mismatch recomputes. This replaces implicit dependency-tracked
// recomputation with a documented cache key.
type TreeCache struct {
	mu sync.Mutex

	taxonomyVersion uint64
	articleVersion  uint64
	tree            []domain.CategoryTreeNode
	valid           bool
}

// Get returns the memoized tree for the given version pair, rebuilding
// via build when either version moved since the last call.
func (c *TreeCache) Get(taxonomyVersion, articleVersion uint64, build func() []domain.CategoryTreeNode) []domain.CategoryTreeNode {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.taxonomyVersion == taxonomyVersion && c.articleVersion == articleVersion {
		return c.tree
	}

	c.tree = build()
	c.taxonomyVersion = taxonomyVersion
	c.articleVersion = articleVersion
	c.valid = true
	return c.tree
}

// Invalidate drops the memoized tree unconditionally
func (c *TreeCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.tree = nil
}
