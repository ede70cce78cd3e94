package avl

import (
	"fmt"
	"testing"
)

func benchKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("CSCI%05d", i)
	}
	return keys
}

// BenchmarkInsert_Sorted inserts keys in ascending order, the worst case
// for an unbalanced tree and the way catalogs are built.
func BenchmarkInsert_Sorted(b *testing.B) {
	keys := benchKeys(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t := New[int]()
		for j, k := range keys {
			t.Insert(k, j)
		}
	}
}

// BenchmarkSearch benchmarks point lookups in a 10k-entry tree.
func BenchmarkSearch(b *testing.B) {
	keys := benchKeys(10000)
	t := New[int]()
	for j, k := range keys {
		t.Insert(k, j)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		t.Search(keys[i%len(keys)])
	}
}

// BenchmarkAll benchmarks a full in-order traversal.
func BenchmarkAll(b *testing.B) {
	t := New[int]()
	for j, k := range benchKeys(10000) {
		t.Insert(k, j)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for range t.All() {
		}
	}
}
