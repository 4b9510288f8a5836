package model

import (
	"fmt"
	"strconv"
	"time"
)

// Record is a raw attribute bag as returned by the Basecamp API.
// Values are whatever encoding/json produced: strings, float64 numbers,
// bools, nested maps, and slices of maps.
type Record map[string]any

// ID returns the record's integer identifier, or 0 if absent.
func (r Record) ID() int64 {
	id, _ := asInt64(r["id"])
	return id
}

// FieldError reports a record that could not be converted because a
// required field was missing or unparsable.
type FieldError struct {
	Kind  Kind
	ID    int64
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %d: field %q: %v", e.Kind, e.ID, e.Field, e.Err)
	}
	return fmt.Sprintf("%s %d: missing required field %q", e.Kind, e.ID, e.Field)
}

func (e *FieldError) Unwrap() error { return e.Err }

// asInt64 coerces the number representations seen in decoded JSON.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// reader extracts typed fields from a Record, remembering the first
// failure so converters can read every field and check once at the end.
type reader struct {
	kind Kind
	rec  Record
	err  error
}

func newReader(kind Kind, rec Record) *reader {
	return &reader{kind: kind, rec: rec}
}

func (r *reader) fail(field string, cause error) {
	if r.err == nil {
		r.err = &FieldError{Kind: r.kind, ID: r.rec.ID(), Field: field, Err: cause}
	}
}

func (r *reader) id() int64 {
	v, ok := r.rec["id"]
	if !ok {
		r.fail("id", nil)
		return 0
	}
	id, ok := asInt64(v)
	if !ok {
		r.fail("id", fmt.Errorf("not an integer: %v", v))
		return 0
	}
	return id
}

func (r *reader) str(field string) string {
	v, ok := r.rec[field]
	if !ok || v == nil {
		r.fail(field, nil)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(field, fmt.Errorf("not a string: %v", v))
		return ""
	}
	return s
}

func (r *reader) optStr(field string) *string {
	v, ok := r.rec[field]
	if !ok || v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func (r *reader) boolean(field string) bool {
	v, ok := r.rec[field]
	if !ok || v == nil {
		r.fail(field, nil)
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(field, fmt.Errorf("not a bool: %v", v))
		return false
	}
	return b
}

func (r *reader) optBool(field string) *bool {
	v, ok := r.rec[field]
	if !ok || v == nil {
		return nil
	}
	if b, ok := v.(bool); ok {
		return &b
	}
	return nil
}

func (r *reader) integer(field string) int64 {
	v, ok := r.rec[field]
	if !ok || v == nil {
		r.fail(field, nil)
		return 0
	}
	n, ok := asInt64(v)
	if !ok {
		r.fail(field, fmt.Errorf("not an integer: %v", v))
		return 0
	}
	return n
}

// timestamp parses a required ISO-8601 instant with a trailing zone marker.
// An empty string is as unparsable as garbage; only a str failure already
// recorded for this field short-circuits.
func (r *reader) timestamp(field string) time.Time {
	s := r.str(field)
	if s == "" {
		if r.err == nil {
			r.fail(field, fmt.Errorf("empty timestamp"))
		}
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		r.fail(field, err)
		return time.Time{}
	}
	return t
}

// optDate parses an optional date-only field ("2006-01-02").
func (r *reader) optDate(field string) *time.Time {
	v, ok := r.rec[field]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		r.fail(field, err)
		return nil
	}
	return &t
}

// dict returns an optional nested attribute map, nil when absent.
func (r *reader) dict(field string) map[string]any {
	v, ok := r.rec[field]
	if !ok || v == nil {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

// dictSlice returns an optional sequence of attribute maps.
func (r *reader) dictSlice(field string) []map[string]any {
	v, ok := r.rec[field]
	if !ok || v == nil {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]map[string]any); ok {
			return typed
		}
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, el := range raw {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
