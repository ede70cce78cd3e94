package catalog

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/JonMunkholm/CoursePlanner/internal/avl"
)

// Index is the balanced index the catalog is served from.
type Index = avl.Tree[Course]

// Load parses rows into a mapping of normalized identifier to Course and
// checks that every prerequisite names a course in the same set.
//
// Row layout is identifier, title, then zero or more prerequisites. A later
// row with the same identifier replaces an earlier one. On any failure the
// returned map is nil. MalformedRowError.Row is the 1-based index into rows.
func Load(rows [][]string) (map[string]Course, error) {
	courses := make(map[string]Course, len(rows))

	for i, row := range rows {
		if len(row) < 2 {
			return nil, &MalformedRowError{
				Row:    i + 1,
				Reason: fmt.Sprintf("found %d field(s), need course number and title", len(row)),
			}
		}

		id := NormalizeID(row[0])
		if id == "" {
			return nil, &MalformedRowError{Row: i + 1, Reason: "course number is empty"}
		}
		title := strings.TrimSpace(row[1])
		if title == "" {
			return nil, &MalformedRowError{Row: i + 1, Reason: fmt.Sprintf("course %s has an empty title", id)}
		}

		// Prerequisites are only trimmed. They must name a course exactly
		// as its normalized identifier reads.
		var prereqs []string
		for _, field := range row[2:] {
			if p := strings.TrimSpace(field); p != "" {
				prereqs = append(prereqs, p)
			}
		}

		courses[id] = NewCourse(title, prereqs)
	}

	if missing := unresolvedPrerequisites(courses); len(missing) > 0 {
		return nil, &UnresolvedPrerequisiteError{Missing: missing}
	}

	return courses, nil
}

// unresolvedPrerequisites returns the sorted set of prerequisite
// identifiers that have no course of their own.
func unresolvedPrerequisites(courses map[string]Course) []string {
	missing := make(map[string]struct{})
	for _, c := range courses {
		for _, p := range c.prereqs {
			if _, ok := courses[p]; !ok {
				missing[p] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(missing))
}

// BuildIndex inserts every course into a fresh index. Keys go in sorted
// order so the same catalog always produces the same tree.
func BuildIndex(courses map[string]Course) *Index {
	idx := avl.New[Course]()
	for _, id := range slices.Sorted(maps.Keys(courses)) {
		idx.Insert(id, courses[id])
	}
	return idx
}
