package jsonpath

import (
	"errors"

	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidJSON is returned for input that is not well-formed JSON.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrNotObject is returned when a document is not a JSON object.
	ErrNotObject = errors.New("document is not a JSON object")
)

// Get returns the value of one top-level field. The boolean is false when
// the field is absent.
func Get(raw []byte, field string) (any, bool) {
	result := gjson.GetBytes(raw, Escape(field))
	if !result.Exists() {
		return nil, false
	}
	return result.Value(), true
}

// String returns a top-level field as a string, or "" when it is absent or
// not a string.
func String(raw []byte, field string) string {
	result := gjson.GetBytes(raw, Escape(field))
	if result.Type != gjson.String {
		return ""
	}
	return result.Str
}

// Project decodes only the listed top-level fields of a JSON object.
// Absent fields are left out of the result. Nested objects are kept whole.
// An empty field list projects every field.
func Project(raw []byte, fields []string) (map[string]any, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, ErrNotObject
	}

	if len(fields) == 0 {
		values, ok := doc.Value().(map[string]any)
		if !ok {
			return nil, ErrNotObject
		}
		return values, nil
	}

	paths := make([]string, len(fields))
	for i, f := range fields {
		paths[i] = Escape(f)
	}

	projected := make(map[string]any, len(fields))
	for i, value := range gjson.GetManyBytes(raw, paths...) {
		if value.Exists() {
			projected[fields[i]] = value.Value()
		}
	}
	return projected, nil
}

// Escape quotes gjson path syntax in a field name so it is matched
// literally.
func Escape(field string) string {
	return gjson.Escape(field)
}
