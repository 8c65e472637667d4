package core

import (
	"errors"
	"strconv"
	"testing"
)

func TestInterpretQuery(t *testing.T) {
	tests := []struct {
		query string
		want  Criteria
	}{
		{"all single word palindromic strings", Criteria{WordCount: Int(1), IsPalindrome: Bool(true)}},
		{"strings longer than 10 characters", Criteria{MinLength: Int(11)}},
		{"palindromic strings that contain the first vowel", Criteria{IsPalindrome: Bool(true), ContainsCharacter: Char("a")}},
		{"strings containing the letter z", Criteria{ContainsCharacter: Char("z")}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := InterpretQuery(tt.query)
			if err != nil {
				t.Fatalf("InterpretQuery() error = %v", err)
			}
			if !equalCriteria(got, tt.want) {
				t.Errorf("InterpretQuery() = %s, want %s", describe(got), describe(tt.want))
			}
		})
	}
}

func TestInterpretQuery_Unknown(t *testing.T) {
	for _, q := range []string{
		"",
		"strings containing the letter Z",
		" strings containing the letter z",
		"palindromes",
	} {
		if _, err := InterpretQuery(q); !errors.Is(err, ErrUnparseableQuery) {
			t.Errorf("InterpretQuery(%q) error = %v, want ErrUnparseableQuery", q, err)
		}
	}
}

func TestInterpretQuery_TableHasNoConflicts(t *testing.T) {
	for _, p := range Phrases() {
		if err := phraseTable[p].Conflict(); err != nil {
			t.Errorf("phrase %q maps to conflicting criteria: %v", p, err)
		}
	}
}

func TestInterpretQuery_ConflictingEntry(t *testing.T) {
	const phrase = "strings shorter than 2 and longer than 5 characters"
	phraseTable[phrase] = Criteria{MinLength: Int(6), MaxLength: Int(1)}
	defer delete(phraseTable, phrase)

	if _, err := InterpretQuery(phrase); !errors.Is(err, ErrConflictingFilters) {
		t.Errorf("InterpretQuery() error = %v, want ErrConflictingFilters", err)
	}
}

func TestInterpretQuery_ResultDoesNotAliasTable(t *testing.T) {
	c, _ := InterpretQuery("strings longer than 10 characters")
	*c.MinLength = 0

	again, _ := InterpretQuery("strings longer than 10 characters")
	if *again.MinLength != 11 {
		t.Errorf("phrase table mutated through returned criteria: min_length = %d", *again.MinLength)
	}
}

func TestPhrases_Sorted(t *testing.T) {
	p := Phrases()
	if len(p) != 4 {
		t.Fatalf("len(Phrases()) = %d, want 4", len(p))
	}
	for i := 1; i < len(p); i++ {
		if p[i-1] > p[i] {
			t.Errorf("Phrases() not sorted: %q before %q", p[i-1], p[i])
		}
	}
}

func equalCriteria(a, b Criteria) bool {
	return describe(a) == describe(b)
}

func describe(c Criteria) string {
	s := ""
	if c.IsPalindrome != nil {
		s += "is_palindrome=" + strconv.FormatBool(*c.IsPalindrome) + ";"
	}
	if c.MinLength != nil {
		s += "min_length=" + strconv.Itoa(*c.MinLength) + ";"
	}
	if c.MaxLength != nil {
		s += "max_length=" + strconv.Itoa(*c.MaxLength) + ";"
	}
	if c.WordCount != nil {
		s += "word_count=" + strconv.Itoa(*c.WordCount) + ";"
	}
	if c.ContainsCharacter != nil {
		s += "contains_character=" + *c.ContainsCharacter + ";"
	}
	return s
}
