// Package core provides the string registry: analysis, storage and filtering.
//
// This package holds all domain logic independent of any transport layer.
// It performs no I/O and can be used by web handlers, CLI tools or tests
// without modification.
//
// # Registry
//
// A [Registry] owns an ordered collection of [StringRecord] values, one per
// unique string. It is created once at startup and passed to whoever needs
// it; there is no package-level state.
//
//	reg := core.NewRegistry()
//	rec, err := reg.Insert("Racecar")
//	// rec.Properties.IsPalindrome == true
//
// Records are immutable. Changing a string means deleting and re-inserting it.
//
// # Analysis
//
// [Analyze] is a pure function computing length, palindrome flag, word count,
// distinct character count, SHA-256 hash and character frequencies. It is
// called exactly once per successful insert.
//
// # Filtering
//
// [Criteria] is a conjunction of optional constraints. [Registry.Filter]
// returns matches in insertion order and reports [ErrNoFilters] for empty
// criteria, which callers must keep distinct from an empty result.
//
// [Registry.FilterNaturalLanguage] looks the query up in a fixed phrase table
// (see [Phrases]) and filters with the mapped criteria.
//
// # Error Handling
//
// Every failure is one of the sentinel errors in errors.go, matched with
// errors.Is. [MapError] turns them into user-facing messages with stable
// codes for the HTTP layer.
package core
