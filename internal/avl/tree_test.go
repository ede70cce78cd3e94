package avl

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

func TestTree_Empty(t *testing.T) {
	tree := New[int]()

	if tree.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tree.Len())
	}
	if tree.Height() != 0 {
		t.Errorf("Height() = %d, want 0", tree.Height())
	}
	if _, ok := tree.Search("X"); ok {
		t.Error("Search on empty tree reported a hit")
	}
	for k := range tree.All() {
		t.Errorf("All() on empty tree yielded %q", k)
	}
	if err := tree.Verify(); err != nil {
		t.Errorf("Verify() = %v", err)
	}
}

func TestTree_ZeroValueUsable(t *testing.T) {
	var tree Tree[string]
	tree.Insert("A", "alpha")

	got, ok := tree.Search("A")
	if !ok || got != "alpha" {
		t.Errorf("Search(A) = %q, %v; want alpha, true", got, ok)
	}
}

func TestTree_TraversalOrder(t *testing.T) {
	tree := New[int]()
	for i, k := range []string{"M", "C", "T", "B", "D", "S", "Z"} {
		tree.Insert(k, i)
	}

	got := slices.Collect(tree.Keys())
	want := []string{"B", "C", "D", "M", "S", "T", "Z"}
	if !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if tree.Height() != 3 {
		t.Errorf("Height() = %d, want 3", tree.Height())
	}
}

func TestTree_RotationCases(t *testing.T) {
	tests := []struct {
		name  string
		order []string
	}{
		{name: "left-left", order: []string{"C", "B", "A"}},
		{name: "left-right", order: []string{"C", "A", "B"}},
		{name: "right-right", order: []string{"A", "B", "C"}},
		{name: "right-left", order: []string{"A", "C", "B"}},
	}

	want := "" +
		dumpIndent + "C (H=1)\n" +
		"B (H=2)\n" +
		dumpIndent + "A (H=1)\n"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := New[struct{}]()
			for _, k := range tt.order {
				tree.Insert(k, struct{}{})
			}
			if got := tree.DumpString(); got != want {
				t.Errorf("DumpString() =\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestTree_DeeperRotation(t *testing.T) {
	// Inserting 1..7 in order exercises repeated right-right rotations
	// higher up the tree and ends perfectly balanced.
	tree := New[int]()
	for i := 1; i <= 7; i++ {
		tree.Insert(fmt.Sprint(i), i)
	}

	want := "" +
		strings.Repeat(dumpIndent, 2) + "7 (H=1)\n" +
		dumpIndent + "6 (H=2)\n" +
		strings.Repeat(dumpIndent, 2) + "5 (H=1)\n" +
		"4 (H=3)\n" +
		strings.Repeat(dumpIndent, 2) + "3 (H=1)\n" +
		dumpIndent + "2 (H=2)\n" +
		strings.Repeat(dumpIndent, 2) + "1 (H=1)\n"

	if got := tree.DumpString(); got != want {
		t.Errorf("DumpString() =\n%s\nwant\n%s", got, want)
	}
}

func TestTree_Replace(t *testing.T) {
	tree := New[string]()
	for _, k := range []string{"M", "C", "T", "B"} {
		tree.Insert(k, "first")
	}
	heightBefore := tree.Height()
	dumpBefore := tree.DumpString()

	tree.Insert("B", "second")

	if tree.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tree.Len())
	}
	if tree.Height() != heightBefore {
		t.Errorf("Height() = %d after replace, want %d", tree.Height(), heightBefore)
	}
	if got := tree.DumpString(); got != dumpBefore {
		t.Errorf("shape changed on replace:\n%s\nwas\n%s", got, dumpBefore)
	}
	got, ok := tree.Search("B")
	if !ok || got != "second" {
		t.Errorf("Search(B) = %q, %v; want second, true", got, ok)
	}

	count := 0
	for k := range tree.All() {
		if k == "B" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("key B enumerated %d times, want 1", count)
	}
}

func TestTree_AllStopsEarly(t *testing.T) {
	tree := New[int]()
	for i, k := range []string{"D", "B", "F", "A", "C", "E", "G"} {
		tree.Insert(k, i)
	}

	var got []string
	for k := range tree.All() {
		got = append(got, k)
		if len(got) == 3 {
			break
		}
	}
	if want := []string{"A", "B", "C"}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// A second traversal starts from the beginning.
	first := ""
	for k := range tree.All() {
		first = k
		break
	}
	if first != "A" {
		t.Errorf("restarted traversal began at %q, want A", first)
	}
}

func TestTree_RandomInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for round := 0; round < 20; round++ {
		tree := New[int]()
		ref := make(map[string]int)

		n := 1 + rng.IntN(500)
		for i := 0; i < n; i++ {
			k := fmt.Sprintf("K%04d", rng.IntN(1000))
			tree.Insert(k, i)
			ref[k] = i

			if err := tree.Verify(); err != nil {
				t.Fatalf("round %d insert %d (%s): %v", round, i, k, err)
			}
		}

		if tree.Len() != len(ref) {
			t.Fatalf("Len() = %d, want %d", tree.Len(), len(ref))
		}

		bound := 1.44 * math.Log2(float64(tree.Len()+2))
		if float64(tree.Height()) > bound {
			t.Errorf("Height() = %d exceeds AVL bound %.2f for %d nodes", tree.Height(), bound, tree.Len())
		}

		keys := slices.Collect(tree.Keys())
		for i := 1; i < len(keys); i++ {
			if keys[i-1] >= keys[i] {
				t.Fatalf("keys out of order at %d: %q >= %q", i, keys[i-1], keys[i])
			}
		}

		for k, v := range ref {
			got, ok := tree.Search(k)
			if !ok || got != v {
				t.Errorf("Search(%s) = %d, %v; want %d, true", k, got, ok, v)
			}
		}
		for _, k := range []string{"K1000", "A", "", "ZZZ"} {
			if _, ok := tree.Search(k); ok {
				t.Errorf("Search(%q) found a key that was never inserted", k)
			}
		}
	}
}

func TestTree_SortedInsertStaysShallow(t *testing.T) {
	tree := New[int]()
	for i := 0; i < 1024; i++ {
		tree.Insert(fmt.Sprintf("%05d", i), i)
	}
	if err := tree.Verify(); err != nil {
		t.Fatal(err)
	}
	// A plain BST would be a 1024 deep list here.
	if tree.Height() > 11 {
		t.Errorf("Height() = %d, want <= 11", tree.Height())
	}
}

func TestTree_Render(t *testing.T) {
	tree := New[int]()
	if got := tree.Render(); !strings.Contains(got, "(empty)") {
		t.Errorf("Render() of empty tree = %q", got)
	}

	for i, k := range []string{"M", "C", "T", "B"} {
		tree.Insert(k, i)
	}
	got := tree.Render()
	for _, want := range []string{"M (H=3)", "L: C (H=2)", "R: T (H=1)", "L: B (H=1)"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q:\n%s", want, got)
		}
	}
}
