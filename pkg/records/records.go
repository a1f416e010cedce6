// Package records defines the record type exchanged between parsers,
// transformers, and storage, plus typed field accessors.
//
// Records are decoded from NDJSON with json.Decoder.UseNumber, so numeric
// values arrive as json.Number. The accessors below absorb that detail and
// report a FieldError when a required field is absent or has the wrong shape.
package records

import (
	"encoding/json"
	"fmt"
)

// Record is a single decoded input record: field name -> value.
type Record map[string]any

// FieldError reports a required field that is missing or mistyped. It is the
// data-format error of the pipeline: callers abort the current file when they
// see one, they do not retry.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

// Has reports whether the field is present and non-nil.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// String returns the field as a string. json.Number values are accepted and
// rendered as their literal text, since NDJSON sources are inconsistent about
// quoting identifiers.
func (r Record) String(field string) (string, error) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", &FieldError{Field: field, Reason: "missing"}
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	default:
		return "", &FieldError{Field: field, Reason: fmt.Sprintf("want string, got %T", v)}
	}
}

// Int returns the field as an int.
func (r Record) Int(field string) (int, error) {
	n, err := r.Int64(field)
	return int(n), err
}

// Int64 returns the field as an int64. Accepts json.Number, float64 with an
// integral value, and native ints.
func (r Record) Int64(field string) (int64, error) {
	v, ok := r[field]
	if !ok || v == nil {
		return 0, &FieldError{Field: field, Reason: "missing"}
	}
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case float64:
		return int64(t), nil
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, &FieldError{Field: field, Reason: fmt.Sprintf("not an integer: %v", err)}
		}
		return n, nil
	default:
		return 0, &FieldError{Field: field, Reason: fmt.Sprintf("want integer, got %T", v)}
	}
}

// Float returns the field as a float64.
func (r Record) Float(field string) (float64, error) {
	v, ok := r[field]
	if !ok || v == nil {
		return 0, &FieldError{Field: field, Reason: "missing"}
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, &FieldError{Field: field, Reason: fmt.Sprintf("not a number: %v", err)}
		}
		return f, nil
	default:
		return 0, &FieldError{Field: field, Reason: fmt.Sprintf("want number, got %T", v)}
	}
}

// NullFloat returns the field as a float64, or nil when the field is absent
// or JSON null. Used for optional numeric columns such as artist coordinates.
func (r Record) NullFloat(field string) (any, error) {
	if !r.Has(field) {
		return nil, nil
	}
	f, err := r.Float(field)
	if err != nil {
		return nil, err
	}
	return f, nil
}
