package core

import (
	"fmt"
	"net/url"
	"strconv"
	"unicode/utf8"
)

// Empty reports whether no constraint is set.
func (c Criteria) Empty() bool {
	return c.IsPalindrome == nil &&
		c.MinLength == nil &&
		c.MaxLength == nil &&
		c.WordCount == nil &&
		c.ContainsCharacter == nil
}

// Matches reports whether p satisfies every constraint in c.
// Length bounds are inclusive. Empty criteria match everything.
func (c Criteria) Matches(p Properties) bool {
	if c.IsPalindrome != nil && p.IsPalindrome != *c.IsPalindrome {
		return false
	}
	if c.MinLength != nil && p.Length < *c.MinLength {
		return false
	}
	if c.MaxLength != nil && p.Length > *c.MaxLength {
		return false
	}
	if c.WordCount != nil && p.WordCount != *c.WordCount {
		return false
	}
	if c.ContainsCharacter != nil && p.CharacterFrequencyMap[*c.ContainsCharacter] <= 0 {
		return false
	}
	return true
}

// Conflict returns a non-nil error wrapping ErrConflictingFilters when no
// string could ever satisfy c.
func (c Criteria) Conflict() error {
	if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
		return fmt.Errorf("%w: min_length %d exceeds max_length %d",
			ErrConflictingFilters, *c.MinLength, *c.MaxLength)
	}
	if c.ContainsCharacter != nil && c.MaxLength != nil && *c.MaxLength == 0 {
		return fmt.Errorf("%w: contains_character requires max_length >= 1", ErrConflictingFilters)
	}
	// Splitting always yields at least one segment.
	if c.WordCount != nil && *c.WordCount == 0 {
		return fmt.Errorf("%w: word_count 0 is never produced", ErrConflictingFilters)
	}
	return nil
}

// ParseCriteria builds Criteria from query parameters, validating each one.
// Absent or empty parameters are not applied. Errors wrap ErrInvalidCriteria.
func ParseCriteria(q url.Values) (Criteria, error) {
	var c Criteria

	if v := q.Get("is_palindrome"); v != "" {
		switch v {
		case "true":
			c.IsPalindrome = Bool(true)
		case "false":
			c.IsPalindrome = Bool(false)
		default:
			return Criteria{}, fmt.Errorf("%w: is_palindrome must be true or false", ErrInvalidCriteria)
		}
	}

	var err error
	if c.MinLength, err = parseNonNegative(q, "min_length"); err != nil {
		return Criteria{}, err
	}
	if c.MaxLength, err = parseNonNegative(q, "max_length"); err != nil {
		return Criteria{}, err
	}
	if c.WordCount, err = parseNonNegative(q, "word_count"); err != nil {
		return Criteria{}, err
	}

	if v := q.Get("contains_character"); v != "" {
		if utf8.RuneCountInString(v) != 1 {
			return Criteria{}, fmt.Errorf("%w: contains_character must be a single character", ErrInvalidCriteria)
		}
		c.ContainsCharacter = Char(v)
	}

	return c, nil
}

// parseNonNegative returns nil when the parameter is absent.
func parseNonNegative(q url.Values, name string) (*int, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: %s must be a non-negative integer", ErrInvalidCriteria, name)
	}
	return &n, nil
}

// clone deep-copies c so the copy shares no pointers with the original.
func (c Criteria) clone() Criteria {
	var out Criteria
	if c.IsPalindrome != nil {
		out.IsPalindrome = Bool(*c.IsPalindrome)
	}
	if c.MinLength != nil {
		out.MinLength = Int(*c.MinLength)
	}
	if c.MaxLength != nil {
		out.MaxLength = Int(*c.MaxLength)
	}
	if c.WordCount != nil {
		out.WordCount = Int(*c.WordCount)
	}
	if c.ContainsCharacter != nil {
		out.ContainsCharacter = Char(*c.ContainsCharacter)
	}
	return out
}
