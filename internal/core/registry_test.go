package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestRegistry() *Registry {
	n := 0
	fixed := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	return NewRegistry(
		WithClock(func() time.Time { return fixed }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func values(recs []StringRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Value
	}
	return out
}

func TestRegistry_InsertAndLookup(t *testing.T) {
	reg := newTestRegistry()

	rec, err := reg.Insert("Racecar")
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if rec.ID != "id-1" {
		t.Errorf("ID = %q, want %q", rec.ID, "id-1")
	}
	if rec.Value != "Racecar" {
		t.Errorf("Value = %q, want %q", rec.Value, "Racecar")
	}
	if !rec.Properties.IsPalindrome || rec.Properties.Length != 7 || rec.Properties.WordCount != 1 {
		t.Errorf("unexpected properties: %+v", rec.Properties)
	}

	got, ok := reg.Lookup("Racecar")
	if !ok {
		t.Fatal("Lookup() found = false, want true")
	}
	if got.ID != rec.ID || got.Properties.SHA256Hash != Analyze("Racecar").SHA256Hash {
		t.Errorf("Lookup() = %+v, want %+v", got, rec)
	}
}

func TestRegistry_LookupIsCaseSensitive(t *testing.T) {
	reg := newTestRegistry()
	if _, err := reg.Insert("Hello"); err != nil {
		t.Fatal(err)
	}

	if _, ok := reg.Lookup("hello"); ok {
		t.Error("Lookup(hello) found a record inserted as Hello")
	}
	if _, err := reg.Insert("hello"); err != nil {
		t.Errorf("Insert(hello) error = %v, want nil", err)
	}
}

func TestRegistry_InsertDuplicate(t *testing.T) {
	reg := newTestRegistry()
	if _, err := reg.Insert("abc"); err != nil {
		t.Fatal(err)
	}

	_, err := reg.Insert("abc")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second Insert() error = %v, want ErrDuplicate", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestRegistry_InsertEmpty(t *testing.T) {
	reg := newTestRegistry()

	if _, err := reg.Insert(""); !errors.Is(err, ErrMissingValue) {
		t.Fatalf("Insert(\"\") error = %v, want ErrMissingValue", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Len() = %d, want 0", reg.Len())
	}
}

func TestRegistry_Get(t *testing.T) {
	reg := newTestRegistry()

	if _, err := reg.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	reg.Insert("present")
	rec, err := reg.Get("present")
	if err != nil {
		t.Fatalf("Get(present) error = %v", err)
	}
	if rec.Value != "present" {
		t.Errorf("Value = %q, want %q", rec.Value, "present")
	}
}

func TestRegistry_Delete(t *testing.T) {
	reg := newTestRegistry()
	for _, v := range []string{"one", "two", "three", "four"} {
		if _, err := reg.Insert(v); err != nil {
			t.Fatal(err)
		}
	}

	if err := reg.Delete("two"); err != nil {
		t.Fatalf("Delete(two) error = %v", err)
	}

	got := strings.Join(values(reg.All()), ",")
	if got != "one,three,four" {
		t.Errorf("All() after delete = %s, want one,three,four", got)
	}

	// Index must still resolve the shifted records.
	for _, v := range []string{"one", "three", "four"} {
		if rec, ok := reg.Lookup(v); !ok || rec.Value != v {
			t.Errorf("Lookup(%q) = %+v, %v after delete", v, rec, ok)
		}
	}
	if _, ok := reg.Lookup("two"); ok {
		t.Error("Lookup(two) still finds deleted record")
	}
}

func TestRegistry_DeleteMissing(t *testing.T) {
	reg := newTestRegistry()
	reg.Insert("kept")

	if err := reg.Delete("absent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete(absent) error = %v, want ErrNotFound", err)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestRegistry_ReinsertAfterDelete(t *testing.T) {
	reg := newTestRegistry()
	first, _ := reg.Insert("again")
	if err := reg.Delete("again"); err != nil {
		t.Fatal(err)
	}

	second, err := reg.Insert("again")
	if err != nil {
		t.Fatalf("re-Insert error = %v", err)
	}
	if first.ID == second.ID {
		t.Errorf("re-inserted record reused id %q", first.ID)
	}
}

func TestRegistry_ReturnedRecordsAreCopies(t *testing.T) {
	reg := newTestRegistry()
	rec, _ := reg.Insert("aab")
	rec.Properties.CharacterFrequencyMap["a"] = 100

	got, _ := reg.Lookup("aab")
	if got.Properties.CharacterFrequencyMap["a"] != 2 {
		t.Errorf("stored frequency mutated through returned record: %d", got.Properties.CharacterFrequencyMap["a"])
	}
}

func TestRegistry_Filter(t *testing.T) {
	reg := newTestRegistry()
	for _, v := range []string{"abcde", "ab", "level", "noon at noon", "zebra", "racecar a"} {
		if _, err := reg.Insert(v); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name     string
		criteria Criteria
		want     string
	}{
		{"exact length", Criteria{MinLength: Int(5), MaxLength: Int(5)}, "abcde,level,zebra"},
		{"min length only", Criteria{MinLength: Int(9)}, "noon at noon,racecar a"},
		{"max length only", Criteria{MaxLength: Int(2)}, "ab"},
		{"palindromes", Criteria{IsPalindrome: Bool(true)}, "level"},
		{"non palindromes", Criteria{IsPalindrome: Bool(false)}, "abcde,ab,noon at noon,zebra,racecar a"},
		{"word count", Criteria{WordCount: Int(3)}, "noon at noon"},
		{"contains z", Criteria{ContainsCharacter: Char("z")}, "zebra"},
		{"contains space", Criteria{ContainsCharacter: Char(" ")}, "noon at noon,racecar a"},
		{"conjunction", Criteria{WordCount: Int(1), ContainsCharacter: Char("e")}, "abcde,level,zebra"},
		{"no match", Criteria{ContainsCharacter: Char("q")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := reg.Filter(tt.criteria)
			if err != nil {
				t.Fatalf("Filter() error = %v", err)
			}
			if got := strings.Join(values(res.Data), ","); got != tt.want {
				t.Errorf("Filter() = %s, want %s", got, tt.want)
			}
			if res.Count != len(res.Data) {
				t.Errorf("Count = %d, len(Data) = %d", res.Count, len(res.Data))
			}
		})
	}
}

func TestRegistry_FilterMinMaxScenario(t *testing.T) {
	reg := newTestRegistry()
	reg.Insert("abcde")
	reg.Insert("ab")

	res, err := reg.Filter(Criteria{MinLength: Int(5), MaxLength: Int(5)})
	if err != nil {
		t.Fatal(err)
	}
	if res.Count != 1 || res.Data[0].Value != "abcde" {
		t.Errorf("Filter() = %v (count %d), want [abcde]", values(res.Data), res.Count)
	}
	if *res.FiltersApplied.MinLength != 5 || *res.FiltersApplied.MaxLength != 5 {
		t.Errorf("FiltersApplied = %+v", res.FiltersApplied)
	}
}

func TestRegistry_FilterNoCriteria(t *testing.T) {
	reg := newTestRegistry()
	reg.Insert("anything")

	_, err := reg.Filter(Criteria{})
	if !errors.Is(err, ErrNoFilters) {
		t.Fatalf("Filter(empty) error = %v, want ErrNoFilters", err)
	}
}

func TestRegistry_FilterEmptyResultIsNotNil(t *testing.T) {
	reg := newTestRegistry()

	res, err := reg.Filter(Criteria{WordCount: Int(1)})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := json.Marshal(res)
	if !strings.Contains(string(b), `"data":[]`) {
		t.Errorf("empty result should encode data as [], got %s", b)
	}
}

func TestRegistry_FilterNaturalLanguage(t *testing.T) {
	reg := newTestRegistry()
	reg.Insert("zebra")
	reg.Insert("lion")

	res, err := reg.FilterNaturalLanguage("strings containing the letter z")
	if err != nil {
		t.Fatalf("FilterNaturalLanguage() error = %v", err)
	}
	if res.Count != 1 || res.Data[0].Value != "zebra" {
		t.Errorf("FilterNaturalLanguage() = %v, want [zebra]", values(res.Data))
	}
	if res.Original != "strings containing the letter z" {
		t.Errorf("Original = %q", res.Original)
	}
	if res.ParsedFilters.ContainsCharacter == nil || *res.ParsedFilters.ContainsCharacter != "z" {
		t.Errorf("ParsedFilters = %+v", res.ParsedFilters)
	}

	if _, err := reg.FilterNaturalLanguage("show me everything"); !errors.Is(err, ErrUnparseableQuery) {
		t.Errorf("unknown phrase error = %v, want ErrUnparseableQuery", err)
	}
}

func TestRegistry_RecordJSON(t *testing.T) {
	reg := newTestRegistry()
	rec, _ := reg.Insert("hi")

	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, want := range []string{
		`"id":"id-1"`,
		`"value":"hi"`,
		`"created_at":"2025-10-20T12:00:00.000Z"`,
		`"is_palindrome":false`,
		`"character_frequency_map":{"h":1,"i":1}`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s missing %s", s, want)
		}
	}
}

func TestRegistry_ConcurrentInsertKeepsValuesUnique(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.Insert("contended"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("successful inserts = %d, want 1", successes)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}
