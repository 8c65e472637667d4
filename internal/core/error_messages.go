package core

// error_messages.go maps registry errors to user-facing messages with codes.
//
// # Error Codes Reference
//
// Codes are stable so clients can branch on them and users can quote them.
//
// # String Errors (STR001-STR099)
//
//	STR001 - Missing value: No string value was supplied
//	         Action: Send a JSON body like {"value": "some text"}
//
//	STR002 - Invalid type: The value is not a string
//	         Action: Send the value as a JSON string
//
//	STR003 - Duplicate: The string is already registered
//	         Action: Look the string up instead of creating it again
//
//	STR004 - Not found: The string is not registered
//	         Action: Create the string first
//
// # Filter Errors (FLT001-FLT099)
//
//	FLT001 - No filters: A filter request carried no criteria
//	         Action: Add at least one of is_palindrome, min_length, max_length,
//	         word_count or contains_character
//
//	FLT002 - Invalid filter: A filter parameter failed validation
//	         Action: See the message for the offending parameter
//
// # Natural-Language Query Errors (NLQ001-NLQ099)
//
//	NLQ001 - Unparseable: The query is not a supported phrase
//	         Action: Lists every supported phrase
//	NLQ002 - Conflicting: The query maps to criteria nothing can satisfy
//	NLQ003 - Missing query: No query parameter was supplied
//
// # Other
//
//	REQ001 - Invalid request body
//	RATE001 - Too many requests
//	AUTH001 - Missing API key
//	AUTH002 - Invalid API key
//	ERR000 - Unknown error
//
// Sentinel errors are matched with errors.Is first. Errors that carry no
// sentinel fall back to case-insensitive substring patterns, first match wins.

import (
	"errors"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Stable error code
}

type sentinelMessage struct {
	err error
	msg UserMessage
}

var sentinelMessages = []sentinelMessage{
	{ErrMissingValue, UserMessage{
		Message: "Missing 'value' field in request body",
		Action:  `Send a JSON body like {"value": "some text"}`,
		Code:    "STR001",
	}},
	{ErrInvalidType, UserMessage{
		Message: "Invalid data type for 'value', must be string",
		Action:  "Send the value as a JSON string",
		Code:    "STR002",
	}},
	{ErrDuplicate, UserMessage{
		Message: "String already exists in the system",
		Action:  "Look the string up instead of creating it again",
		Code:    "STR003",
	}},
	{ErrNotFound, UserMessage{
		Message: "String does not exist in the system",
		Action:  "Create the string first",
		Code:    "STR004",
	}},
	{ErrNoFilters, UserMessage{
		Message: "No filters provided",
		Action:  "Add at least one of is_palindrome, min_length, max_length, word_count or contains_character",
		Code:    "FLT001",
	}},
	{ErrInvalidCriteria, UserMessage{
		Message: "Invalid filter parameter",
		Action:  "Check the parameter types and ranges",
		Code:    "FLT002",
	}},
	{ErrUnparseableQuery, UserMessage{
		Message: "Unable to parse natural language query",
		Action:  "Use one of: " + strings.Join(Phrases(), ", "),
		Code:    "NLQ001",
	}},
	{ErrConflictingFilters, UserMessage{
		Message: "Query parsed but resulted in conflicting filters",
		Action:  "Rephrase the query",
		Code:    "NLQ002",
	}},
	{ErrMissingQuery, UserMessage{
		Message: "Missing query parameter",
		Action:  "Pass the phrase as ?query=...",
		Code:    "NLQ003",
	}},
	{ErrInvalidBody, UserMessage{
		Message: "Invalid request body",
		Action:  "Send a valid JSON object",
		Code:    "REQ001",
	}},
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "missing api key",
		msg: UserMessage{
			Message: "Authentication required",
			Action:  "Send your key in the X-API-Key header",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "invalid api key",
		msg: UserMessage{
			Message: "API key not recognized",
			Action:  "Check the key or ask an administrator for a new one",
			Code:    "AUTH002",
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

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error into a user-friendly message.
// A nil error returns the zero UserMessage.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			msg := sm.msg
			// Wrapped validation errors carry the parameter detail.
			if errors.Is(err, ErrInvalidCriteria) && err != ErrInvalidCriteria {
				msg.Message = err.Error()
			}
			return msg
		}
	}

	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}

	return defaultMessage
}
