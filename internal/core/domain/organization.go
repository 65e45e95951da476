package domain

import (
	"fmt"
	"maps"
	"strings"
)

// Organization is a unit in the organizational hierarchy owning accounts and entries.
type Organization struct {
	ID       int64    `json:"id"`
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	ParentID *int64   `json:"parent_id"`
	Path     string   `json:"path"` // dot-separated ordinal segments, root first
	Currency string   `json:"currency"`
	Metadata Metadata `json:"metadata"`
	Timestamps
}

// IsRoot reports whether the organization has no parent.
func (o Organization) IsRoot() bool {
	return o.ParentID == nil
}

// Depth is the number of path segments (1 for a root organization).
func (o Organization) Depth() int {
	if o.Path == "" {
		return 0
	}
	return strings.Count(o.Path, ".") + 1
}

// OrganizationPath returns the materialized path for an organization with the given id,
// nested under parentPath (empty for roots).
func OrganizationPath(parentPath string, id int64) string {
	segment := fmt.Sprintf("%06d", id)
	if parentPath == "" {
		return segment
	}
	return parentPath + "." + segment
}

// NormalizeOrganizationCode trims and upper-cases an organization code.
func NormalizeOrganizationCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// detached copies the pointer and map fields of o.
func (o Organization) detached() Organization {
	if o.ParentID != nil {
		parentID := *o.ParentID
		o.ParentID = &parentID
	}
	o.Metadata = maps.Clone(o.Metadata)
	return o
}

// OrganizationNode is an organization with its nested children.
type OrganizationNode struct {
	Organization
	Children []OrganizationNode `json:"children"`
}

// BuildOrganizationTree assembles a flat, path-ordered list into nested nodes.
// Entries whose parent is absent from the list become roots. Input order is kept
// among siblings. Each node gets its own ParentID and top-level Metadata map; nested
// metadata values are still shared with the input.
func BuildOrganizationTree(orgs []Organization) []OrganizationNode {
	present := make(map[int64]bool, len(orgs))
	for _, o := range orgs {
		present[o.ID] = true
	}

	childrenOf := make(map[int64][]Organization, len(orgs))
	roots := make([]Organization, 0)
	for _, o := range orgs {
		if o.ParentID == nil || !present[*o.ParentID] || *o.ParentID == o.ID {
			roots = append(roots, o)
			continue
		}
		childrenOf[*o.ParentID] = append(childrenOf[*o.ParentID], o)
	}

	visiting := make(map[int64]bool, len(orgs))
	var build func(o Organization) OrganizationNode
	build = func(o Organization) OrganizationNode {
		visiting[o.ID] = true
		defer delete(visiting, o.ID)

		kids := childrenOf[o.ID]
		node := OrganizationNode{Organization: o.detached(), Children: make([]OrganizationNode, 0, len(kids))}
		for _, child := range kids {
			if visiting[child.ID] {
				continue
			}
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	tree := make([]OrganizationNode, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, build(root))
	}
	return tree
}
