// Package json turns NDJSON input into records.Record maps.
//
// Both input families of the pipeline fit this shape: song-metadata files
// hold a single JSON object, activity logs hold one object per line. The
// decoder rejects non-object top-level values; a malformed line fails the
// whole file rather than being skipped.
package json

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"sparkify/pkg/records"
)

// Decoder reads a stream of JSON objects.
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder wraps r. UseNumber keeps numeric values as json.Number so the
// record accessors decide how to interpret them.
func NewDecoder(r io.Reader) *Decoder {
	d := json.NewDecoder(r)
	d.UseNumber()
	return &Decoder{dec: d}
}

// Next returns the next object in the stream as a record, or io.EOF when
// the stream is exhausted.
func (d *Decoder) Next() (records.Record, error) {
	var raw any
	if err := d.dec.Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("json parser: decode: %w", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("json parser: top-level value is %T, want object", raw)
	}
	return records.Record(obj), nil
}

// DecodeAll reads every object from r.
func DecodeAll(r io.Reader) ([]records.Record, error) {
	dec := NewDecoder(r)
	var out []records.Record
	for {
		rec, err := dec.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

// DecodeFile reads every object from the file at path.
func DecodeFile(path string) ([]records.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("json parser: open %s: %w", path, err)
	}
	defer f.Close()

	recs, err := DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}
