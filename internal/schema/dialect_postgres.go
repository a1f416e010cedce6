package schema

import "fmt"

// PostgresDialect renders statements for Postgres ($n placeholders,
// double-quoted identifiers, serial keys, ON CONFLICT clauses).
type PostgresDialect struct{}

func (PostgresDialect) Name() string { return "postgres" }

func (PostgresDialect) Placeholder(i int) string { return fmt.Sprintf("$%d", i) }

func (PostgresDialect) QuoteIdent(id string) string { return quoteDouble(id) }

func (PostgresDialect) TypeName(c Column) string {
	switch c.Type {
	case Int:
		return "int"
	case Float:
		return "double precision"
	case Timestamp:
		return "timestamp"
	default:
		return "text"
	}
}

func (d PostgresDialect) SerialDef(col string) string {
	return d.QuoteIdent(col) + " serial PRIMARY KEY"
}

func (d PostgresDialect) InsertIgnore(t Table) string {
	return onConflictInsert(d, t, "DO NOTHING")
}

func (d PostgresDialect) InsertUpdating(t Table, col string) string {
	q := d.QuoteIdent(col)
	return onConflictInsert(d, t, fmt.Sprintf("DO UPDATE SET %s = EXCLUDED.%s", q, q))
}
