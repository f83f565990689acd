// Package form holds the per-modal field store: current values and the
// inline error message of every field.
package form

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownField is returned when a field outside the form's schema is written
	ErrUnknownField = errors.New("unknown field")
	// ErrStaleSession is returned when an async completion targets a closed or reopened store
	ErrStaleSession = errors.New("form session is no longer active")
)

// Field names a form input
type Field string

// Entry is the value and inline error of a single field
type Entry struct {
	Value any
	Error string
}

// Schema is the ordered field domain of a form with each field's default
type Schema struct {
	Name     string
	Fields   []Field
	Defaults map[Field]any
}

// Has reports whether f belongs to the schema
func (s Schema) Has(f Field) bool {
	_, ok := s.Defaults[f]
	return ok
}

// Store is the field store of one modal instance. Writes coming back from
// async work are guarded by a session counter so they can be dropped once
// the modal has been closed or reset.
type Store struct {
	mu      sync.RWMutex
	schema  Schema
	entries map[Field]*Entry
	closed  bool
	session uint64
}

// NewStore creates an open store populated with the schema defaults
func NewStore(schema Schema) *Store {
	s := &Store{schema: schema}
	s.resetLocked()
	return s
}

// Schema returns the store's schema
func (s *Store) Schema() Schema {
	return s.schema
}

// Get returns the current value of f, or nil for unknown fields
func (s *Store) Get(f Field) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[f]; ok {
		return e.Value
	}
	return nil
}

// String returns the value of f as a string ("" when unset or not a string)
func (s *Store) String(f Field) string {
	v, _ := s.Get(f).(string)
	return v
}

// Int returns the value of f as an int (0 when unset or not an int)
func (s *Store) Int(f Field) int {
	v, _ := s.Get(f).(int)
	return v
}

// Set stores value for f and clears f's error. Other fields are untouched.
// Writes to a closed store are ignored.
func (s *Store) Set(f Field, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(f, value)
}

// SetInSession applies values only while session is still the active one.
// Each write clears the written field's error.
func (s *Store) SetInSession(session uint64, values map[Field]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.session != session {
		return ErrStaleSession
	}
	for f := range values {
		if !s.schema.Has(f) {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	for f, v := range values {
		e := s.entries[f]
		e.Value = v
		e.Error = ""
	}
	return nil
}

func (s *Store) setLocked(f Field, value any) error {
	e, ok := s.entries[f]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	if s.closed {
		return nil
	}
	e.Value = value
	e.Error = ""
	return nil
}

// Error returns the inline error of f, "" when there is none
func (s *Store) Error(f Field) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entries[f]; ok {
		return e.Error
	}
	return ""
}

// SetError sets the inline error of f
func (s *Store) SetError(f Field, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[f]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	if s.closed {
		return nil
	}
	e.Error = message
	return nil
}

// ApplyErrors writes a batch of errors at once, leaving fields not in
// errs as they are
func (s *Store) ApplyErrors(errs map[Field]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	for f := range errs {
		if !s.schema.Has(f) {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	for f, msg := range errs {
		s.entries[f].Error = msg
	}
	return nil
}

// ReplaceErrors makes errs the complete error state of the form: fields in
// errs get their message, every other field is cleared
func (s *Store) ReplaceErrors(errs map[Field]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	for f := range errs {
		if !s.schema.Has(f) {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	for f, e := range s.entries {
		e.Error = errs[f]
	}
	return nil
}

// Errors returns every non-empty field error
func (s *Store) Errors() map[Field]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[Field]string)
	for f, e := range s.entries {
		if e.Error != "" {
			out[f] = e.Error
		}
	}
	return out
}

// HasErrors reports whether any field currently shows an error
func (s *Store) HasErrors() bool {
	return len(s.Errors()) > 0
}

// Snapshot returns an immutable copy of the current values
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[Field]any, len(s.entries))
	for f, e := range s.entries {
		values[f] = e.Value
	}
	return Snapshot{values: values, session: s.session}
}

// Session identifies the current open/reset cycle of the store
func (s *Store) Session() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Reset restores defaults, clears every error and starts a new session
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// ResetSession resets only if session is still active. It reports whether
// the reset happened.
func (s *Store) ResetSession(session uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.session != session {
		return false
	}
	s.resetLocked()
	return true
}

// Open reopens a closed store with fresh defaults
func (s *Store) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.closed = false
}

// Close resets the store and rejects further writes until Open
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.closed = true
}

// CloseSession closes the store only if session is still active. It
// reports whether the close happened.
func (s *Store) CloseSession(session uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.session != session {
		return false
	}
	s.resetLocked()
	s.closed = true
	return true
}

// Closed reports whether the store is closed
func (s *Store) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *Store) resetLocked() {
	s.entries = make(map[Field]*Entry, len(s.schema.Defaults))
	for f, v := range s.schema.Defaults {
		s.entries[f] = &Entry{Value: v}
	}
	s.session++
}

// Snapshot is a read-only copy of a store's values taken at one instant
type Snapshot struct {
	values  map[Field]any
	session uint64
}

// NewSnapshot builds a snapshot from plain values
func NewSnapshot(values map[Field]any) Snapshot {
	cp := make(map[Field]any, len(values))
	for f, v := range values {
		cp[f] = v
	}
	return Snapshot{values: cp}
}

// Get returns the value of f in the snapshot
func (s Snapshot) Get(f Field) any {
	return s.values[f]
}

// String returns the value of f as a string
func (s Snapshot) String(f Field) string {
	v, _ := s.values[f].(string)
	return v
}

// Int returns the value of f as an int
func (s Snapshot) Int(f Field) int {
	v, _ := s.values[f].(int)
	return v
}

// Session is the store session the snapshot was taken in
func (s Snapshot) Session() uint64 {
	return s.session
}
