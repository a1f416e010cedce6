package builtin

import (
	"fmt"

	"github.com/zeebo/xxh3"

	"sparkify/pkg/records"
)

// Dedup collapses records that share a key within one batch, so a file full
// of repeats does not hammer the database with conflicting upserts. The
// database constraints remain the backstop; this only trims write
// amplification inside a single file.
//
// Policies:
//
//	"keep-first"  keep the earliest occurrence (matches insert-ignore)
//	"keep-last"   keep the latest occurrence (matches update-on-conflict,
//	              where the last row's mutable column would win anyway)
type Dedup struct {
	Keys   []string
	Policy string // "keep-first" or "keep-last"; default "keep-last"
}

// Apply returns the winning record per key, in first-seen key order.
// Records missing any key field pass through untouched.
func (d Dedup) Apply(in []records.Record) []records.Record {
	if len(in) == 0 || len(d.Keys) == 0 {
		return in
	}
	keepFirst := d.Policy == "keep-first"

	winners := make(map[uint64]records.Record, len(in))
	order := make([]uint64, 0, len(in))

	var passthrough []records.Record
	for _, rec := range in {
		key, ok := d.keyOf(rec)
		if !ok {
			passthrough = append(passthrough, rec)
			continue
		}
		if _, seen := winners[key]; !seen {
			winners[key] = rec
			order = append(order, key)
		} else if !keepFirst {
			winners[key] = rec
		}
	}

	out := make([]records.Record, 0, len(order)+len(passthrough))
	for _, key := range order {
		out = append(out, winners[key])
	}
	return append(out, passthrough...)
}

// keyOf hashes the key fields into a single 64-bit value. Field values are
// separated by a 0x1f byte so adjacent fields cannot collide by
// concatenation.
func (d Dedup) keyOf(rec records.Record) (uint64, bool) {
	h := xxh3.New()
	for i, k := range d.Keys {
		v, ok := rec[k]
		if !ok {
			return 0, false
		}
		if i > 0 {
			_, _ = h.Write([]byte{0x1f})
		}
		switch t := v.(type) {
		case nil:
			_, _ = h.Write([]byte{0x00})
		case string:
			_, _ = h.WriteString(t)
		default:
			_, _ = h.WriteString(fmt.Sprint(t))
		}
	}
	return h.Sum64(), true
}
