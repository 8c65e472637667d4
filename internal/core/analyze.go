package core

// analyze.go derives the Properties of a string.
//
// Characters are Unicode code points. For ASCII input this matches a
// per-byte view exactly; for other input it keeps multi-byte characters
// intact in the frequency map instead of splitting them.

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Analyze computes the derived properties of value. It is a pure function:
// the same input always yields an identical result.
func Analyze(value string) Properties {
	freq := characterFrequency(value)

	return Properties{
		Length:                utf8.RuneCountInString(value),
		IsPalindrome:          isPalindrome(value),
		WordCount:             wordCount(value),
		UniqueCharacters:      uniqueCharacters(freq),
		SHA256Hash:            hashString(value),
		CharacterFrequencyMap: freq,
	}
}

// isPalindrome reports whether the lowercased value reads the same reversed.
// Only simple lowercasing is applied; no full Unicode case folding.
func isPalindrome(value string) bool {
	runes := []rune(strings.ToLower(value))
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}

// wordCount splits on a single space, so consecutive spaces produce empty
// segments that are still counted: "a  b" has three words.
func wordCount(value string) int {
	return len(strings.Split(value, " "))
}

// uniqueCharacters counts distinct non-whitespace characters, so
// "hello world" has 7 and "   " has 0. This is one less than
// len(CharacterFrequencyMap) whenever the value holds whitespace, since
// the map still records it.
func uniqueCharacters(freq map[string]int) int {
	n := 0
	for ch := range freq {
		r, _ := utf8.DecodeRuneInString(ch)
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func hashString(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func characterFrequency(value string) map[string]int {
	freq := make(map[string]int)
	for _, r := range value {
		freq[string(r)]++
	}
	return freq
}
