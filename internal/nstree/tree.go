// Package nstree holds the namespace tree built from definition parent paths.
// A tree lives for a single resolution pass; callers create a fresh root
// with NewRoot each time.
package nstree

import "github.com/reoring/lexgen/internal/naming"

// Node is one namespace segment. A node owns its children; parent is a
// back-reference used only to rebuild paths.
type Node struct {
	name     string
	children []*Node
	parent   *Node
}

// NewRoot returns the sentinel root: empty name, no parent, no children.
func NewRoot() *Node { return &Node{} }

// Name returns the segment name; empty for the root.
func (n *Node) Name() string { return n.name }

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes in insertion order. Callers must not
// modify the slice.
func (n *Node) Children() []*Node { return n.children }

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Insert adds the path below n, reusing existing children with the same
// name. Inserting the same path again changes nothing.
func (n *Node) Insert(names []string) {
	target := n
	for _, name := range names {
		target = target.child(name)
	}
}

func (n *Node) child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	c := &Node{name: name, parent: n}
	n.children = append(n.children, c)
	return c
}

// AllNodes lists every node under n in pre-order, children in insertion
// order. The root itself is never included.
func (n *Node) AllNodes() []*Node {
	var nodes []*Node
	if !n.IsRoot() {
		nodes = append(nodes, n)
	}
	for _, c := range n.children {
		nodes = append(nodes, c.AllNodes()...)
	}
	return nodes
}

// Namespace is the dotted path of n's ancestors, excluding the root and n.
func (n *Node) Namespace() string {
	var names []string
	for p := n.parent; p != nil; p = p.parent {
		names = append(names, p.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return naming.JoinNonEmpty(names...)
}

// FullName is Namespace and Name joined, empty parts dropped.
func (n *Node) FullName() string {
	return naming.JoinNonEmpty(n.Namespace(), n.name)
}

// Equal reports structural equality: same name, pairwise-equal children in
// order, and an equal parent chain.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if !equalSubtree(n, other) {
		return false
	}
	for a, b := n.parent, other.parent; ; a, b = a.parent, b.parent {
		if a == nil || b == nil {
			return a == b
		}
		if !equalSubtree(a, b) {
			return false
		}
	}
}

func equalSubtree(a, b *Node) bool {
	if a == b {
		return true
	}
	if a.name != b.name || len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !equalSubtree(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}
