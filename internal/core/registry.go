package core

import (
	"encoding/json"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry holds analyzed strings in insertion order.
// All operations are serialized by a single lock, so check-then-act
// sequences (duplicate check + append, lookup + remove) are atomic.
type Registry struct {
	mu      sync.RWMutex
	records []*StringRecord
	index   map[string]int // value -> position in records

	now   func() time.Time
	newID func() string
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithIDGenerator sets the function used to create record IDs.
func WithIDGenerator(newID func() string) Option {
	return func(r *Registry) { r.newID = newID }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		index: make(map[string]int),
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DecodeValue extracts the string value from a raw JSON field.
// A missing, null or empty value yields ErrMissingValue; any other
// non-string JSON value yields ErrInvalidType.
func DecodeValue(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", ErrMissingValue
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", ErrInvalidType
	}
	if s == "" {
		return "", ErrMissingValue
	}
	return s, nil
}

// Insert analyzes value and appends a new record for it.
func (r *Registry) Insert(value string) (StringRecord, error) {
	if value == "" {
		return StringRecord{}, ErrMissingValue
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[value]; exists {
		return StringRecord{}, ErrDuplicate
	}

	rec := &StringRecord{
		ID:         r.newID(),
		Value:      value,
		Properties: Analyze(value),
		CreatedAt:  r.now().UTC(),
	}
	r.index[value] = len(r.records)
	r.records = append(r.records, rec)

	return rec.clone(), nil
}

// Lookup returns the record with exactly this value.
// The boolean is false when no such record exists.
func (r *Registry) Lookup(value string) (StringRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[value]
	if !ok {
		return StringRecord{}, false
	}
	return r.records[i].clone(), true
}

// Get is Lookup with a miss reported as ErrNotFound.
func (r *Registry) Get(value string) (StringRecord, error) {
	rec, ok := r.Lookup(value)
	if !ok {
		return StringRecord{}, ErrNotFound
	}
	return rec, nil
}

// Delete removes the record with this value, keeping the order of the rest.
func (r *Registry) Delete(value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[value]
	if !ok {
		return ErrNotFound
	}

	r.records = slices.Delete(r.records, i, i+1)
	delete(r.index, value)
	for j := i; j < len(r.records); j++ {
		r.index[r.records[j].Value] = j
	}
	return nil
}

// Len returns the number of registered strings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// All returns every record in insertion order.
func (r *Registry) All() []StringRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]StringRecord, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.clone()
	}
	return out
}

// Filter returns the records matching every constraint in c, in insertion order.
// Empty criteria yield ErrNoFilters rather than the whole collection.
func (r *Registry) Filter(c Criteria) (FilterResult, error) {
	if c.Empty() {
		return FilterResult{}, ErrNoFilters
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data := make([]StringRecord, 0)
	for _, rec := range r.records {
		if c.Matches(rec.Properties) {
			data = append(data, rec.clone())
		}
	}

	return FilterResult{
		Data:           data,
		Count:          len(data),
		FiltersApplied: c.clone(),
	}, nil
}

// FilterNaturalLanguage interprets query through the phrase table and filters with the result.
func (r *Registry) FilterNaturalLanguage(query string) (InterpretedResult, error) {
	c, err := InterpretQuery(query)
	if err != nil {
		return InterpretedResult{}, err
	}

	res, err := r.Filter(c)
	if err != nil {
		return InterpretedResult{}, err
	}

	return InterpretedResult{
		FilterResult:  res,
		Original:      query,
		ParsedFilters: c,
	}, nil
}

// clone copies the record so callers cannot mutate stored properties.
func (s *StringRecord) clone() StringRecord {
	out := *s
	out.Properties.CharacterFrequencyMap = maps.Clone(s.Properties.CharacterFrequencyMap)
	return out
}
