package engine

import (
	"slices"
	"sort"

	"github.com/tatianab/absurd-path/internal/models"
)

// Content is a compiled, read-only story. It is safe to share across
// goroutines once built.
type Content struct {
	title string
	start string
	nodes map[string]models.NodeDef
}

// BuildContent compiles doc. Nothing is validated: a repeated id keeps the
// last definition and dangling references only fail when traversal reaches
// them. Use Validate for an eager check.
func BuildContent(doc models.ContentDoc) *Content {
	nodes := make(map[string]models.NodeDef, len(doc.Nodes))
	for _, n := range doc.Nodes {
		nodes[n.ID] = n.Clone()
	}
	return &Content{title: doc.Title, start: doc.Start, nodes: nodes}
}

// Start returns the id of the first node.
func (c *Content) Start() string { return c.start }

// Title returns the story title, which may be empty.
func (c *Content) Title() string { return c.title }

// Len returns the number of distinct nodes.
func (c *Content) Len() int { return len(c.nodes) }

// Node looks up a node by id.
func (c *Content) Node(id string) (models.NodeDef, bool) {
	n, ok := c.nodes[id]
	return n, ok
}

// IDs returns every node id, sorted.
func (c *Content) IDs() []string {
	ids := make([]string, 0, len(c.nodes))
	for id := range c.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reachable returns the ids reachable from the start node by following
// choices regardless of their conditions, in breadth-first order. Dangling
// targets are not included.
func (c *Content) Reachable() []string {
	if _, ok := c.nodes[c.start]; !ok {
		return []string{}
	}
	seen := map[string]bool{c.start: true}
	order := []string{c.start}
	for i := 0; i < len(order); i++ {
		for _, choice := range c.nodes[order[i]].Choices {
			if seen[choice.Next] {
				continue
			}
			if _, ok := c.nodes[choice.Next]; !ok {
				continue
			}
			seen[choice.Next] = true
			order = append(order, choice.Next)
		}
	}
	return order
}

// Unreachable returns the ids Reachable never reaches, sorted.
func (c *Content) Unreachable() []string {
	reached := c.Reachable()
	out := []string{}
	for _, id := range c.IDs() {
		if !slices.Contains(reached, id) {
			out = append(out, id)
		}
	}
	return out
}
