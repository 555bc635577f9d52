// ABOUTME: CategoryResolver maps a selected node id to its descendant membership set
// ABOUTME: Handles the all/other sentinels and fails open on unknown ids

package taxonomy

import "github.com/jbpiacentino/lumen-digest/core/domain"

// Resolve maps a category selection to the set of ids an article's
// effective category may take to pass the filter.
//
// A nil return means "no category filter": every article passes. This
// nil-vs-empty distinction is load-bearing; Resolve never returns an
// empty set.
//
//   - "all" resolves to nil.
//   - "other" resolves to the fixed synthetic bucket {other, uncategorized},
//     independent of the tree.
//   - a known node id resolves to that node's Descendants.
//   - an unknown id resolves to its own singleton set, so a stale or
//     foreign selection never silently drops all articles.
func Resolve(selection string, tree []domain.CategoryTreeNode) map[string]struct{} {
	switch selection {
	case "", domain.CategoryAll:
		return nil
	case domain.CategoryOther:
		return map[string]struct{}{
			domain.CategoryOther:         {},
			domain.CategoryUncategorized: {},
		}
	}

	if node := findNode(selection, tree); node != nil {
		set := make(map[string]struct{}, len(node.Descendants))
		for _, id := range node.Descendants {
			set[id] = struct{}{}
		}
		return set
	}

	return map[string]struct{}{selection: {}}
}

// Matches reports whether an article passes the resolved category set.
// A nil set passes everything.
func Matches(a *domain.Article, set map[string]struct{}) bool {
	if set == nil {
		return true
	}
	_, ok := set[a.EffectiveCategory()]
	return ok
}

func findNode(id string, nodes []domain.CategoryTreeNode) *domain.CategoryTreeNode {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i]
		}
		if found := findNode(id, nodes[i].Children); found != nil {
			return found
		}
	}
	return nil
}
