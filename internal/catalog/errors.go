package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is. The typed errors below match them via Is.
var (
	ErrMalformedRow           = errors.New("malformed row")
	ErrUnresolvedPrerequisite = errors.New("unresolved prerequisite")
	ErrSourceUnavailable      = errors.New("source unavailable")

	// ErrCourseNotFound is what front ends report for a lookup miss.
	// The index itself signals absence with a boolean.
	ErrCourseNotFound = errors.New("course not found")

	// ErrNoSource is returned when a load is requested without a file name
	// or with an empty request body.
	ErrNoSource = errors.New("no source provided")
)

// MalformedRowError reports a row that could not be parsed: it lacks one of
// the two mandatory fields, or the CSV itself is broken (Err).
type MalformedRowError struct {
	Row    int    // 1-based record number; blank lines are not counted. 0 when unknown
	Reason string // what is wrong with the row
	Err    error  // underlying parse error, if any
}

func (e *MalformedRowError) Error() string {
	var b strings.Builder
	b.WriteString("malformed row")
	if e.Row > 0 {
		fmt.Fprintf(&b, " %d", e.Row)
	}
	if e.Reason != "" {
		b.WriteString(": " + e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

func (e *MalformedRowError) Is(target error) bool { return target == ErrMalformedRow }

// UnresolvedPrerequisiteError lists every prerequisite identifier that names
// no course in the loaded set, sorted.
type UnresolvedPrerequisiteError struct {
	Missing []string
}

func (e *UnresolvedPrerequisiteError) Error() string {
	return "unresolved prerequisite(s): " + strings.Join(e.Missing, ", ")
}

func (e *UnresolvedPrerequisiteError) Is(target error) bool {
	return target == ErrUnresolvedPrerequisite
}

// SourceUnavailableError means the source could not be opened or read at
// all, as opposed to being read and found invalid. Callers typically ask
// for a different source.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable: %s: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

func (e *SourceUnavailableError) Is(target error) bool { return target == ErrSourceUnavailable }
