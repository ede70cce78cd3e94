package avl

import (
	"fmt"
	"io"
	"strings"

	"github.com/xlab/treeprint"
)

// ##################################################
//  useful during development, debugging and testing
// ##################################################

// dumpIndent is the horizontal step per tree level in Dump output.
const dumpIndent = "          "

// Dump writes the tree sideways to w: the right subtree first, then the
// node, then the left subtree, each line indented by depth and annotated
// with the cached height. Reading the output with the head tilted left
// shows the tree with its root at the top.
func (t *Tree[V]) Dump(w io.Writer) {
	t.root.dumpRec(w, 0)
}

// DumpString is a wrapper around Dump.
func (t *Tree[V]) DumpString() string {
	w := new(strings.Builder)
	t.Dump(w)
	return w.String()
}

func (n *node[V]) dumpRec(w io.Writer, level int) {
	if n == nil {
		return
	}
	n.right.dumpRec(w, level+1)
	fmt.Fprintf(w, "%s%s (H=%d)\n", strings.Repeat(dumpIndent, level), n.key, n.height)
	n.left.dumpRec(w, level+1)
}

// Render draws the tree top-down as an ASCII tree. Children are prefixed
// with L: and R: so lopsided subtrees stay readable.
func (t *Tree[V]) Render() string {
	if t.root == nil {
		return treeprint.NewWithRoot("(empty)").String()
	}
	tree := treeprint.NewWithRoot(t.root.label())
	t.root.renderRec(tree)
	return tree.String()
}

func (n *node[V]) label() string {
	return fmt.Sprintf("%s (H=%d)", n.key, n.height)
}

func (n *node[V]) renderRec(branch treeprint.Tree) {
	for _, c := range []struct {
		side  string
		child *node[V]
	}{{"L", n.left}, {"R", n.right}} {
		if c.child == nil {
			continue
		}
		label := c.side + ": " + c.child.label()
		if c.child.left == nil && c.child.right == nil {
			branch.AddNode(label)
			continue
		}
		c.child.renderRec(branch.AddBranch(label))
	}
}

// Verify walks the whole tree and reports the first broken invariant:
// key ordering, cached height, or a balance factor outside [-1, 1].
func (t *Tree[V]) Verify() error {
	count, _, err := t.root.verifyRec("", "", false, false)
	if err != nil {
		return err
	}
	if count != t.size {
		return fmt.Errorf("size is %d but %d nodes are reachable", t.size, count)
	}
	return nil
}

// verifyRec checks the subtree against exclusive bounds lo and hi and
// returns its node count and computed height.
func (n *node[V]) verifyRec(lo, hi string, hasLo, hasHi bool) (int, int, error) {
	if n == nil {
		return 0, 0, nil
	}
	if hasLo && n.key <= lo {
		return 0, 0, fmt.Errorf("key %q is not greater than ancestor %q", n.key, lo)
	}
	if hasHi && n.key >= hi {
		return 0, 0, fmt.Errorf("key %q is not less than ancestor %q", n.key, hi)
	}

	lc, lh, err := n.left.verifyRec(lo, n.key, hasLo, true)
	if err != nil {
		return 0, 0, err
	}
	rc, rh, err := n.right.verifyRec(n.key, hi, true, hasHi)
	if err != nil {
		return 0, 0, err
	}

	h := 1 + max(lh, rh)
	if n.height != h {
		return 0, 0, fmt.Errorf("node %q caches height %d, computed %d", n.key, n.height, h)
	}
	if b := lh - rh; b < -1 || b > 1 {
		return 0, 0, fmt.Errorf("node %q has balance factor %d", n.key, b)
	}
	return lc + rc + 1, h, nil
}
