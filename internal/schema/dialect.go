package schema

import (
	"fmt"
	"strings"
)

// Dialect supplies the per-engine primitives the catalog needs to render its
// statements: placeholder style, identifier quoting, type names, and the
// conflict-policy syntax, which is where the engines genuinely diverge.
type Dialect interface {
	Name() string

	// Placeholder renders the i-th (1-based) bind parameter.
	Placeholder(i int) string

	// QuoteIdent quotes a single identifier segment.
	QuoteIdent(id string) string

	// TypeName renders the SQL type for a column.
	TypeName(c Column) string

	// SerialDef renders the full column definition for a synthetic
	// auto-incrementing primary key.
	SerialDef(col string) string

	// InsertIgnore renders an insert whose conflicts on the table key are
	// silently discarded (first writer wins).
	InsertIgnore(t Table) string

	// InsertUpdating renders an insert that, on conflict with the table key,
	// updates just the named column from the incoming row.
	InsertUpdating(t Table, col string) string
}

// CreateTable renders a deterministic CREATE TABLE IF NOT EXISTS statement.
// Primary-key columns are always NOT NULL; the key itself is emitted as a
// separate constraint clause.
func CreateTable(d Dialect, t Table) string {
	defs := make([]string, 0, len(t.Columns)+2)
	if t.Serial != "" {
		defs = append(defs, d.SerialDef(t.Serial))
	}

	var pks []string
	for _, c := range t.Columns {
		var sb strings.Builder
		sb.WriteString(d.QuoteIdent(c.Name))
		sb.WriteByte(' ')
		sb.WriteString(d.TypeName(c))
		if c.NotNull || c.PrimaryKey {
			sb.WriteString(" NOT NULL")
		}
		defs = append(defs, sb.String())
		if c.PrimaryKey {
			pks = append(pks, d.QuoteIdent(c.Name))
		}
	}

	if len(pks) > 0 {
		defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}
	if len(t.Unique) > 0 {
		defs = append(defs, fmt.Sprintf("UNIQUE (%s)", strings.Join(quoteAll(d, t.Unique), ", ")))
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		d.QuoteIdent(t.Name),
		strings.Join(defs, ",\n  "),
	)
}

// DropTable renders a DROP TABLE IF EXISTS statement.
func DropTable(d Dialect, t Table) string {
	return "DROP TABLE IF EXISTS " + d.QuoteIdent(t.Name)
}

// Insert renders a plain insert with no conflict policy. Every execution adds
// a row; the fact table relies on this.
func Insert(d Dialect, t Table) string {
	cols := t.Insertable()
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdent(t.Name),
		strings.Join(quoteAll(d, cols), ", "),
		placeholderList(d, len(cols)),
	)
}

// onConflictInsert builds the shared ON CONFLICT form used by the engines
// that support it (Postgres, SQLite).
func onConflictInsert(d Dialect, t Table, action string) string {
	return fmt.Sprintf(
		"%s ON CONFLICT (%s) %s",
		Insert(d, t),
		d.QuoteIdent(t.Key()),
		action,
	)
}

func placeholderList(d Dialect, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = d.Placeholder(i + 1)
	}
	return strings.Join(ph, ", ")
}

func quoteAll(d Dialect, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = d.QuoteIdent(c)
	}
	return out
}

// quoteDouble quotes an identifier with double quotes, escaping embedded
// quotes. Shared by the Postgres and SQLite dialects.
func quoteDouble(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
