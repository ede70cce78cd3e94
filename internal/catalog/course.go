package catalog

import (
	"slices"
	"strings"
)

// Course is one catalog entry. It is immutable once constructed: the
// prerequisite list is copied in NewCourse and copied again on the way out.
type Course struct {
	title   string
	prereqs []string
}

// NewCourse builds a Course from a title and prerequisite identifiers, in
// the order they appeared in the source.
func NewCourse(title string, prereqs []string) Course {
	return Course{
		title:   title,
		prereqs: slices.Clone(prereqs),
	}
}

// Title returns the course title.
func (c Course) Title() string {
	return c.title
}

// Prerequisites returns a copy of the prerequisite identifiers.
func (c Course) Prerequisites() []string {
	return slices.Clone(c.prereqs)
}

// NumPrerequisites returns how many prerequisites the course lists.
func (c Course) NumPrerequisites() int {
	return len(c.prereqs)
}

// String formats the course the way the planner prints course details.
func (c Course) String() string {
	prereqs := "None"
	if len(c.prereqs) > 0 {
		prereqs = strings.Join(c.prereqs, ", ")
	}
	return c.title + "\nPrerequisites: " + prereqs
}

// Entry pairs a normalized course identifier with its Course.
type Entry struct {
	ID     string
	Course Course
}

// NormalizeID trims surrounding whitespace and upper-cases an identifier so
// that "csci200 " and "CSCI200" address the same course.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
