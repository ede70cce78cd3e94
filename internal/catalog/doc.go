// Package catalog loads a course catalog from a tabular source and serves
// lookups over it through a balanced index.
//
// Loading is two-phase. A [Source] is read to completion and every row is
// parsed and cross-checked by [Load] before anything touches an index; only
// a fully validated mapping is handed to [BuildIndex]. A failed load never
// produces a partial catalog.
//
// # Source Format
//
// One course per line, comma separated, no header row:
//
//	CSCI100,Introduction to Computer Science
//	CSCI200,Data Structures,CSCI100
//	CSCI300,Introduction to Algorithms,CSCI200,MATH201
//
// Field 0 is the course identifier, field 1 the title, and any further
// fields name prerequisite courses. A UTF-8 byte-order mark is ignored.
//
// # Validation
//
// Identifiers are trimmed and upper-cased. A row with fewer than two fields
// fails the whole load with [ErrMalformedRow]. Every prerequisite must name
// a course present in the same source, otherwise the load fails with
// [ErrUnresolvedPrerequisite] listing every missing identifier. Prerequisite
// cycles are not detected.
//
// # Error Codes
//
// [MapError] turns load and lookup failures into messages for the person
// at the keyboard:
//
//	CAT001 - Malformed row: a line has fewer than two fields
//	CAT002 - Unresolved prerequisite: a prerequisite names no course
//	CAT003 - Source unavailable: the file or database could not be read
//	CAT004 - Course not found
//	CAT005 - Empty source: nothing to load
//	FILE001 - File too large
//	DB004 - Connection refused
//	RATE001 - Too many loads in flight
//	ERR000 - Anything else
//
// # Service
//
// [Service] owns the live index for long-running front ends. Readers share
// a read lock; Load and Insert take the write lock, and Load swaps in a tree
// that was built completely off to the side.
package catalog
