package core

import (
	"maps"
	"slices"
)

// phraseTable maps exact natural-language queries to the criteria they stand for.
// Matching is literal; there is no parsing. To support a new query, add an
// entry here. Entries are checked with Criteria.Conflict before use.
var phraseTable = map[string]Criteria{
	"all single word palindromic strings": {
		WordCount:    Int(1),
		IsPalindrome: Bool(true),
	},
	"strings longer than 10 characters": {
		MinLength: Int(11),
	},
	"palindromic strings that contain the first vowel": {
		IsPalindrome:      Bool(true),
		ContainsCharacter: Char("a"),
	},
	"strings containing the letter z": {
		ContainsCharacter: Char("z"),
	},
}

// InterpretQuery returns the criteria for a known phrase.
// Unknown phrases yield ErrUnparseableQuery; unsatisfiable criteria yield
// ErrConflictingFilters.
func InterpretQuery(query string) (Criteria, error) {
	c, ok := phraseTable[query]
	if !ok {
		return Criteria{}, ErrUnparseableQuery
	}
	if err := c.Conflict(); err != nil {
		return Criteria{}, err
	}
	return c.clone(), nil
}

// Phrases returns the supported natural-language queries, sorted.
func Phrases() []string {
	return slices.Sorted(maps.Keys(phraseTable))
}
