package core

// error_messages.go maps technical errors to user-facing messages with
// support codes. When a dispatcher sees "could not load schema (SCH001)"
// the code narrows the diagnosis without anyone reading server logs.

import (
	"fmt"
	"strings"
)

// UserMessage is a user-friendly rendering of a technical error.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error substrings (case-insensitive) to
// user messages. First match wins, so specific patterns come before
// general ones.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Record store errors (DB001-DB004)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the record store",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "The record store connection was interrupted",
			Action:  "Please try again",
			Code:    "DB002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The operation timed out",
			Action:  "Please try again",
			Code:    "DB003",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The operation timed out",
			Action:  "Please try again",
			Code:    "DB003",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "DB004",
		},
	},

	// =========================================================================
	// Schema assembly errors (SCH001-SCH004)
	// =========================================================================
	{
		pattern: "could not load schema",
		msg: UserMessage{
			Message: "The vehicle schema could not be loaded",
			Action:  "Check that the record store is reachable and try again",
			Code:    "SCH001",
		},
	},
	{
		pattern: "has no columns",
		msg: UserMessage{
			Message: "The vehicle table is missing or empty",
			Action:  "Contact support with this code",
			Code:    "SCH002",
		},
	},
	{
		pattern: "not found in schema",
		msg: UserMessage{
			Message: "That component is not part of the maintenance schema",
			Action:  "Reload the schema view and pick a current component",
			Code:    "SCH003",
		},
	},
	{
		pattern: "not found",
		msg: UserMessage{
			Message: "Vehicle not found",
			Action:  "Reload the fleet list and try again",
			Code:    "SCH004",
		},
	},

	// =========================================================================
	// Validation errors (VAL001-VAL004)
	// =========================================================================
	{
		pattern: "invalid integer",
		msg: UserMessage{
			Message: "A numeric value is not a whole number",
			Action:  "Correct the value; nothing was saved",
			Code:    "VAL001",
		},
	},
	{
		pattern: "unknown preset",
		msg: UserMessage{
			Message: "Unknown status threshold preset",
			Action:  `Use "standard" or "dashboard"`,
			Code:    "VAL002",
		},
	},
	{
		pattern: "invalid alias entry",
		msg: UserMessage{
			Message: "An alias entry is incomplete or duplicated",
			Action:  "Every alias needs a unique column name and a component",
			Code:    "VAL003",
		},
	},
	{
		pattern: "invalid category",
		msg: UserMessage{
			Message: "The category configuration is invalid",
			Action:  "Category ids must be unique and assignments must point at existing categories",
			Code:    "VAL004",
		},
	},
	{
		pattern: "invalid assignment",
		msg: UserMessage{
			Message: "The category configuration is invalid",
			Action:  "Category ids must be unique and assignments must point at existing categories",
			Code:    "VAL004",
		},
	},
}

// defaultMessage is the fallback for unrecognized errors.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again; contact support with this code if it persists",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
