// Package taxonomy maintains the category hierarchy as an ordered forest.
// Nodes are only ever appended, never relinked, so the structure stays a
// forest by construction.
package taxonomy

import (
	"errors"
	"sync"
)

// ErrParentNotFound is returned when an insert names a parent id that does
// not exist anywhere in the forest.
var ErrParentNotFound = errors.New("parent category not found")

// Node is a single category. Children are ordered by insertion.
type Node struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Children []*Node `json:"children,omitempty"`
}

// Entry is one step of a depth-first walk: a node and the number of
// ancestors above it.
type Entry struct {
	Node  *Node
	Depth int
}

// Tree holds the category forest. Ids are assigned sequentially on insert.
type Tree struct {
	mu     sync.RWMutex
	roots  []*Node
	nextID int64
}

// NewTree creates an empty category tree.
func NewTree() *Tree {
	return &Tree{nextID: 1}
}

// Insert appends a new category. A zero parentID creates a root; otherwise
// the child is appended under the first node found (depth-first) with a
// matching id. An unknown parentID is an error, not a silent no-op.
func (t *Tree) Insert(name string, parentID int64) (*Node, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	node := &Node{ID: t.nextID, Name: name}

	if parentID == 0 {
		t.nextID++
		t.roots = append(t.roots, node)
		return node, nil
	}

	parent := findLocked(t.roots, parentID)
	if parent == nil {
		return nil, ErrParentNotFound
	}

	t.nextID++
	parent.Children = append(parent.Children, node)
	return node, nil
}

// findLocked searches the forest depth-first and returns the first node with
// the given id. Iterative with an explicit stack.
func findLocked(roots []*Node, id int64) *Node {
	stack := make([]*Node, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if node.ID == id {
			return node
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
	return nil
}

// Walk returns a depth-first, parent-before-children traversal of the
// forest with each node's depth. It does not mutate the tree.
func (t *Tree) Walk() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	type frame struct {
		node  *Node
		depth int
	}

	var entries []Entry
	stack := make([]frame, 0, len(t.roots))
	for i := len(t.roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: t.roots[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries = append(entries, Entry{Node: f.node, Depth: f.depth})
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], depth: f.depth + 1})
		}
	}
	return entries
}

// Len returns the total number of categories in the forest.
func (t *Tree) Len() int {
	return len(t.Walk())
}
