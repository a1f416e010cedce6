package schema

import "fmt"

// SQLiteDialect renders statements for SQLite. The upsert syntax matches
// Postgres (SQLite 3.24+); the differences are the placeholder style, type
// affinities, and the rowid-backed autoincrement key.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string { return "sqlite" }

func (SQLiteDialect) Placeholder(int) string { return "?" }

func (SQLiteDialect) QuoteIdent(id string) string { return quoteDouble(id) }

func (SQLiteDialect) TypeName(c Column) string {
	switch c.Type {
	case Int:
		return "integer"
	case Float:
		return "real"
	case Timestamp:
		return "timestamp"
	default:
		return "text"
	}
}

func (d SQLiteDialect) SerialDef(col string) string {
	return d.QuoteIdent(col) + " integer PRIMARY KEY AUTOINCREMENT"
}

func (d SQLiteDialect) InsertIgnore(t Table) string {
	return onConflictInsert(d, t, "DO NOTHING")
}

func (d SQLiteDialect) InsertUpdating(t Table, col string) string {
	q := d.QuoteIdent(col)
	return onConflictInsert(d, t, fmt.Sprintf("DO UPDATE SET %s = EXCLUDED.%s", q, q))
}
