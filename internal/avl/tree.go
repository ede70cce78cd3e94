// Package avl provides a height-balanced binary search tree keyed by string.
//
// Keys are compared byte-wise with the ordinary string operators, so callers
// that need case-insensitive lookups normalize keys before handing them in.
// The tree is not safe for concurrent mutation: serialize Insert calls and
// only run Search or All alongside each other while no Insert is in flight.
//
// There is no delete operation. Inserting an existing key replaces its value
// in place and leaves the shape of the tree untouched.
package avl

import "iter"

// Tree is an AVL tree mapping string keys to values of type V.
// The zero value is an empty tree ready to use.
type Tree[V any] struct {
	root *node[V]
	size int
}

type node[V any] struct {
	key    string
	value  V
	left   *node[V]
	right  *node[V]
	height int
}

// New returns an empty tree.
func New[V any]() *Tree[V] {
	return &Tree[V]{}
}

// Len returns the number of keys stored in the tree.
func (t *Tree[V]) Len() int {
	return t.size
}

// Height returns the height of the tree: 0 when empty, 1 for a single node.
func (t *Tree[V]) Height() int {
	return t.root.getHeight()
}

// Insert stores value under key. An existing key has its value replaced.
func (t *Tree[V]) Insert(key string, value V) {
	var added bool
	t.root, added = t.root.insert(key, value)
	if added {
		t.size++
	}
}

// Search returns the value stored under key. The boolean is false when the
// key is absent, in which case the zero V is returned.
func (t *Tree[V]) Search(key string) (V, bool) {
	n := t.root
	for n != nil {
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

// All returns an iterator over key/value pairs in ascending key order.
// Every call starts a fresh traversal.
func (t *Tree[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		t.root.inOrder(yield)
	}
}

// Keys returns an iterator over the keys in ascending order.
func (t *Tree[V]) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}

func (n *node[V]) getHeight() int {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *node[V]) resetHeight() {
	n.height = 1 + max(n.left.getHeight(), n.right.getHeight())
}

// balance is positive when the left subtree is taller.
func (n *node[V]) balance() int {
	return n.left.getHeight() - n.right.getHeight()
}

// insert returns the new root of the subtree and whether a node was added.
func (n *node[V]) insert(key string, value V) (*node[V], bool) {
	if n == nil {
		return &node[V]{key: key, value: value, height: 1}, true
	}

	var added bool
	switch {
	case key < n.key:
		n.left, added = n.left.insert(key, value)
	case key > n.key:
		n.right, added = n.right.insert(key, value)
	default:
		n.value = value
		return n, false
	}

	// Replacement somewhere below: heights and balance are unchanged.
	if !added {
		return n, false
	}

	n.resetHeight()

	switch b := n.balance(); {
	case b > 1:
		// left-left
		if key < n.left.key {
			return n.rotateRight(), true
		}
		// left-right
		n.left = n.left.rotateLeft()
		return n.rotateRight(), true

	case b < -1:
		// right-right
		if key > n.right.key {
			return n.rotateLeft(), true
		}
		// right-left
		n.right = n.right.rotateRight()
		return n.rotateLeft(), true
	}

	return n, true
}

// rotateRight lifts the left child into n's place and returns it.
func (n *node[V]) rotateRight() *node[V] {
	x := n.left
	moved := x.right

	x.right = n
	n.left = moved

	n.resetHeight()
	x.resetHeight()
	return x
}

// rotateLeft lifts the right child into n's place and returns it.
func (n *node[V]) rotateLeft() *node[V] {
	y := n.right
	moved := y.left

	y.left = n
	n.right = moved

	n.resetHeight()
	y.resetHeight()
	return y
}

func (n *node[V]) inOrder(yield func(string, V) bool) bool {
	if n == nil {
		return true
	}
	return n.left.inOrder(yield) && yield(n.key, n.value) && n.right.inOrder(yield)
}
