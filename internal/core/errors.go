package core

import "errors"

// Registry failure kinds. Every registry operation either succeeds or
// returns exactly one of these (possibly wrapped) and leaves the
// collection untouched.
var (
	// ErrMissingValue is returned when no value, or an empty one, is supplied.
	ErrMissingValue = errors.New("missing value")

	// ErrInvalidType is returned when the submitted value is not a string.
	ErrInvalidType = errors.New("invalid value type: must be string")

	// ErrDuplicate is returned when inserting a value that is already registered.
	ErrDuplicate = errors.New("string already exists")

	// ErrNotFound is returned when a lookup or delete misses.
	ErrNotFound = errors.New("string not found")

	// ErrNoFilters is returned when Filter is called with empty criteria.
	// It is distinct from a filter that matches nothing.
	ErrNoFilters = errors.New("no filters provided")

	// ErrInvalidCriteria is returned when a filter parameter fails validation.
	ErrInvalidCriteria = errors.New("invalid filter parameter")

	// ErrUnparseableQuery is returned for a natural-language query that is not in the phrase table.
	ErrUnparseableQuery = errors.New("unable to parse natural language query")

	// ErrConflictingFilters is returned when a query maps to criteria no string can satisfy.
	ErrConflictingFilters = errors.New("query resulted in conflicting filters")

	// ErrMissingQuery is returned when a natural-language request has no query.
	ErrMissingQuery = errors.New("missing query parameter")

	// ErrInvalidBody is returned when a request body cannot be decoded.
	ErrInvalidBody = errors.New("invalid request body")
)
