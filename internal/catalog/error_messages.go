package catalog

// error_messages.go maps technical errors to short messages for whoever is
// driving the planner or calling the HTTP API. Codes are listed in the
// package documentation. Patterns are matched case-insensitively with
// strings.Contains and the first match wins, so specific patterns come
// before general ones.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Details string // Specifics pulled from typed errors, e.g. the missing prerequisites
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// Catalog format errors (CAT001-CAT002)
	// =========================================================================
	{
		pattern: "malformed row",
		msg: UserMessage{
			Message: "Improper file format: each line needs a course number and a title",
			Action:  "Fix the reported line and load the file again",
			Code:    "CAT001",
		},
	},
	{
		pattern: "unresolved prerequisite",
		msg: UserMessage{
			Message: "Some prerequisites do not have a corresponding course in the file",
			Action:  "Add the missing courses or remove them from the prerequisite lists",
			Code:    "CAT002",
		},
	},

	// =========================================================================
	// Source errors (DB004, CAT003, FILE001)
	// Connection failures are reported through SourceUnavailableError, so
	// the more specific database pattern has to come first.
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "source unavailable",
		msg: UserMessage{
			Message: "Could not open input file",
			Action:  "Check the file name and try again",
			Code:    "CAT003",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum catalog size",
			Action:  "Split the catalog or raise CATALOG_MAX_FILE_SIZE",
			Code:    "FILE001",
		},
	},

	// =========================================================================
	// Lookup and request errors (CAT004-CAT005)
	// =========================================================================
	{
		pattern: "course not found",
		msg: UserMessage{
			Message: "Course not found",
			Action:  "Check the course number and try again",
			Code:    "CAT004",
		},
	},
	{
		pattern: "no source provided",
		msg: UserMessage{
			Message: "No catalog was provided",
			Action:  "Enter a file name or send the catalog as the request body",
			Code:    "CAT005",
		},
	},

	// =========================================================================
	// Throttling (RATE001)
	// =========================================================================
	{
		pattern: "too many catalog loads",
		msg: UserMessage{
			Message: "Another catalog load is still running",
			Action:  "Please wait a moment and try again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the logs",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// A nil error yields the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			msg := ep.msg
			msg.Details = ErrorDetails(err)
			return msg
		}
	}

	return defaultMessage
}

// ErrorDetails describes the specifics carried by a typed catalog error:
// the full sorted set of missing prerequisites, or the offending row and
// reason. It returns "" for other errors.
func ErrorDetails(err error) string {
	var upe *UnresolvedPrerequisiteError
	if errors.As(err, &upe) && len(upe.Missing) > 0 {
		return "Missing prerequisite(s): " + strings.Join(upe.Missing, ", ")
	}

	var mre *MalformedRowError
	if errors.As(err, &mre) {
		var b strings.Builder
		if mre.Row > 0 {
			fmt.Fprintf(&b, "Row %d", mre.Row)
		}
		if mre.Reason != "" {
			if b.Len() > 0 {
				b.WriteString(": ")
			}
			b.WriteString(mre.Reason)
		}
		if mre.Err != nil {
			fmt.Fprintf(&b, " (%v)", mre.Err)
		}
		return b.String()
	}

	return ""
}

// FormatUserError renders err as "Message (Code: XXX). Details. Action",
// leaving out Details when there are none.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	if msg.Details != "" {
		return fmt.Sprintf("%s (Code: %s). %s. %s", msg.Message, msg.Code, msg.Details, msg.Action)
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matched a specific pattern rather than
// falling through to ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
