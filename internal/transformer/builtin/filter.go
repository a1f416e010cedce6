// Package builtin contains small, reusable record transformers.
package builtin

import "sparkify/pkg/records"

// Filter keeps only records whose Field equals Value. Records missing the
// field are dropped, not failed; they simply belong to another action type.
type Filter struct {
	Field string
	Value string
}

// Apply filters in place and returns the retained prefix.
func (f Filter) Apply(in []records.Record) []records.Record {
	out := in[:0]
	for _, rec := range in {
		if v, ok := rec[f.Field].(string); ok && v == f.Value {
			out = append(out, rec)
		}
	}
	return out
}
