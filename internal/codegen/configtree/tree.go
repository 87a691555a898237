// Package configtree builds the nested configuration view of a model: one
// container for the root entity holding its attribute leaves, followed by one
// container per entity aggregated into the root.
package configtree

import (
	"github.com/Alia5/umlconf/internal/codegen/model"
)

// Node is either a leaf (name -> value) or a container of ordered children.
type Node struct {
	Name     string
	Value    string
	Children []*Node
	leaf     bool
}

// Leaf returns a leaf node carrying value as its text.
func Leaf(name, value string) *Node {
	return &Node{Name: name, Value: value, leaf: true}
}

// Container returns a container node; it may be empty.
func Container(name string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Name: name, Children: children}
}

func (n *Node) IsLeaf() bool {
	return n.leaf
}

// Append adds child at the end of n's children.
func (n *Node) Append(child *Node) {
	n.Children = append(n.Children, child)
}

// Find returns the first direct child called name.
func (n *Node) Find(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Leaves returns the direct leaf children in order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.leaf {
			out = append(out, c)
		}
	}
	return out
}

// Containers returns the direct container children in order.
func (n *Node) Containers() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if !c.leaf {
			out = append(out, c)
		}
	}
	return out
}

// Build materializes the config tree of m. The root is the single entity
// flagged isRoot; zero or several roots are errors. Aggregation sources that
// are not in the model still get a container, left empty.
func Build(m *model.Model) (*Node, error) {
	root, err := m.Root()
	if err != nil {
		return nil, err
	}

	tree := Container(root.Name, attributeLeaves(root.Attributes)...)
	for _, rel := range m.IncomingTo(root.Name) {
		child := Container(rel.Source)
		if source, ok := m.Entity(rel.Source); ok {
			child.Children = attributeLeaves(source.Attributes)
		}
		tree.Append(child)
	}
	return tree, nil
}

func attributeLeaves(attrs []model.Attribute) []*Node {
	leaves := make([]*Node, 0, len(attrs))
	for _, a := range attrs {
		leaves = append(leaves, Leaf(a.Name, a.Type))
	}
	return leaves
}
