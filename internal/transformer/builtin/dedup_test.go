package builtin

import (
	"testing"

	"sparkify/pkg/records"
)

func TestDedupKeepLast(t *testing.T) {
	in := []records.Record{
		{"userId": "U1", "level": "free"},
		{"userId": "U2", "level": "paid"},
		{"userId": "U1", "level": "paid"},
	}
	out := Dedup{Keys: []string{"userId"}}.Apply(in)
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	// First-seen key order, last occurrence wins.
	if out[0]["userId"] != "U1" || out[0]["level"] != "paid" {
		t.Fatalf("out[0] = %v", out[0])
	}
	if out[1]["userId"] != "U2" {
		t.Fatalf("out[1] = %v", out[1])
	}
}

func TestDedupKeepFirst(t *testing.T) {
	in := []records.Record{
		{"ts": "1", "hour": 0},
		{"ts": "1", "hour": 99},
		{"ts": "2", "hour": 1},
	}
	out := Dedup{Keys: []string{"ts"}, Policy: "keep-first"}.Apply(in)
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	if out[0]["hour"] != 0 {
		t.Fatalf("keep-first lost the first record: %v", out[0])
	}
}

func TestDedupCompositeKeyNoConcatCollision(t *testing.T) {
	// "ab"+"c" must not collide with "a"+"bc".
	in := []records.Record{
		{"x": "ab", "y": "c"},
		{"x": "a", "y": "bc"},
	}
	out := Dedup{Keys: []string{"x", "y"}}.Apply(in)
	if len(out) != 2 {
		t.Fatalf("composite keys collided: %v", out)
	}
}

func TestDedupMissingKeyPassesThrough(t *testing.T) {
	in := []records.Record{
		{"k": "a"},
		{"other": "x"},
		{"k": "a"},
	}
	out := Dedup{Keys: []string{"k"}}.Apply(in)
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2 (one winner + one passthrough): %v", len(out), out)
	}
}

func TestDedupNoKeysIsNoop(t *testing.T) {
	in := []records.Record{{"a": 1}, {"a": 1}}
	out := Dedup{}.Apply(in)
	if len(out) != 2 {
		t.Fatalf("no-key dedup should be a no-op, got %v", out)
	}
}
