package core

import (
	"encoding/json"
	"time"
)

// Properties holds the values derived from a string when it is registered.
// They are computed once by Analyze and never change afterwards.
//
// Length counts Unicode code points, not UTF-16 code units: "😀a" has
// length 2. UniqueCharacters ignores whitespace, so it can be smaller than
// len(CharacterFrequencyMap).
type Properties struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	WordCount             int            `json:"word_count"`
	UniqueCharacters      int            `json:"unique_characters"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// StringRecord is a single registered string plus its derived properties.
type StringRecord struct {
	ID         string     `json:"id"`
	Value      string     `json:"value"`
	Properties Properties `json:"properties"`
	CreatedAt  time.Time  `json:"created_at"`
}

// MarshalJSON renders CreatedAt as an RFC 3339 UTC timestamp with millisecond precision.
func (r StringRecord) MarshalJSON() ([]byte, error) {
	type alias StringRecord
	return json.Marshal(struct {
		alias
		CreatedAt string `json:"created_at"`
	}{
		alias:     alias(r),
		CreatedAt: r.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// Criteria is a conjunction of optional constraints on record properties.
// A nil field means the constraint is not applied.
type Criteria struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

// FilterResult is the outcome of a filter over the registry.
type FilterResult struct {
	Data           []StringRecord `json:"data"`
	Count          int            `json:"count"`
	FiltersApplied Criteria       `json:"filters_applied"`
}

// InterpretedResult is a FilterResult produced from a natural-language query.
type InterpretedResult struct {
	FilterResult
	Original      string   `json:"original"`
	ParsedFilters Criteria `json:"parsed_filters"`
}

// Bool returns a pointer to b, for building Criteria literals.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i, for building Criteria literals.
func Int(i int) *int { return &i }

// Char returns a pointer to s, for building Criteria literals.
func Char(s string) *string { return &s }
