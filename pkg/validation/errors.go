package validation

import (
	"fmt"
	"strings"
)

// Kind classifies why a field was rejected.
type Kind string

const (
	KindFormat      Kind = "format"
	KindChecksum    Kind = "checksum"
	KindDate        Kind = "date"
	KindCapacity    Kind = "capacity"
	KindConsistency Kind = "consistency"
	KindConflict    Kind = "conflict"
)

// FieldError is a single violated rule on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Violations accumulates every violated rule instead of stopping at the
// first, so callers receive the full field-keyed picture in one response.
type Violations struct {
	errors []FieldError
}

func (v *Violations) Add(field string, kind Kind, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Kind: kind, Message: message})
}

// Collect appends err when it is a FieldError; any other non-nil error is
// recorded against the given field as a consistency violation.
func (v *Violations) Collect(field string, err error) {
	if err == nil {
		return
	}
	if fe, ok := err.(FieldError); ok {
		v.errors = append(v.errors, fe)
		return
	}
	v.Add(field, KindConsistency, err.Error())
}

func (v *Violations) Empty() bool {
	return len(v.errors) == 0
}

// Err returns the accumulated violations as an error, or nil when clean.
func (v *Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return &Violations{errors: v.errors}
}

func (v *Violations) Error() string {
	parts := make([]string, 0, len(v.errors))
	for _, e := range v.errors {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func (v *Violations) All() []FieldError {
	return v.errors
}

// Fields maps each field name to its violation messages, the shape
// returned to HTTP clients.
func (v *Violations) Fields() map[string][]string {
	out := make(map[string][]string, len(v.errors))
	for _, e := range v.errors {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// Conflict builds the error reported when the storage layer rejects a
// duplicate unique key, with the offending field identified.
func Conflict(field, message string) error {
	return FieldError{Field: field, Kind: KindConflict, Message: message}
}
