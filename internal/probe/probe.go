// Package probe inspects a directory of NDJSON files and reports the fields
// they carry, with inferred types and SQL-safe normalized names. It exists
// for working out (or double-checking) input contracts before wiring a new
// data family into the pipeline; the pipeline itself never calls it.
package probe

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"sparkify/internal/datasource/file"
	jsonparser "sparkify/internal/parser/json"
)

// Field is one observed field across the scanned files.
type Field struct {
	Name       string // as found in the input
	Normalized string // SQL-safe lowercase ASCII identifier
	Type       string // "integer", "number", "string", "bool", or "mixed"
	Seen       int    // records carrying the field
	Nulls      int    // records where the value was null
}

// Report is the outcome of scanning one directory.
type Report struct {
	Files   int
	Records int
	Fields  []Field
}

// Scan reads every *.json file under dir and aggregates field observations.
func Scan(dir string) (*Report, error) {
	paths, err := file.ListFiles(dir, ".json")
	if err != nil {
		return nil, err
	}

	type agg struct {
		types map[string]int
		seen  int
		nulls int
	}
	byName := map[string]*agg{}
	rep := &Report{Files: len(paths)}

	for _, path := range paths {
		recs, err := jsonparser.DecodeFile(path)
		if err != nil {
			return nil, err
		}
		rep.Records += len(recs)
		for _, rec := range recs {
			for name, v := range rec {
				a := byName[name]
				if a == nil {
					a = &agg{types: map[string]int{}}
					byName[name] = a
				}
				a.seen++
				if v == nil {
					a.nulls++
					continue
				}
				a.types[typeOf(v)]++
			}
		}
	}

	for name, a := range byName {
		rep.Fields = append(rep.Fields, Field{
			Name:       name,
			Normalized: NormalizeFieldName(name),
			Type:       dominantType(a.types),
			Seen:       a.seen,
			Nulls:      a.nulls,
		})
	}
	sort.Slice(rep.Fields, func(i, j int) bool { return rep.Fields[i].Name < rep.Fields[j].Name })
	return rep, nil
}

// Print writes the report as an aligned table.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "%d files, %d records\n", r.Files, r.Records)
	for _, f := range r.Fields {
		fmt.Fprintf(w, "  %-24s %-24s %-8s seen=%d nulls=%d\n",
			f.Name, f.Normalized, f.Type, f.Seen, f.Nulls)
	}
}

func typeOf(v any) string {
	switch t := v.(type) {
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return "integer"
		}
		return "number"
	case bool:
		return "bool"
	case string:
		return "string"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// dominantType collapses the observed value types: one type wins outright,
// integer widens to number, anything else is "mixed".
func dominantType(types map[string]int) string {
	delete(types, "")
	if len(types) == 1 {
		for t := range types {
			return t
		}
	}
	if len(types) == 2 && types["integer"] > 0 && types["number"] > 0 {
		return "number"
	}
	return "mixed"
}

// NormalizeFieldName converts arbitrary field text into a lowercase ASCII
// identifier suitable for SQL schemas: lowercase, accents stripped
// (NFD, drop nonspacing marks, NFC), [a-z0-9_] kept, space/dash/dot folded
// to a single underscore, "col" when nothing survives.
func NormalizeFieldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, _ := transform.String(t, s)

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "col"
	}
	return out
}
