// Package schema is the catalog of the song-play star schema: the five table
// definitions and the exact parameterized statements the transformers issue.
// It is pure data, constructed once at startup for a given SQL dialect and
// passed by reference through the pipeline.
package schema

import "fmt"

// Catalog holds the rendered DDL and DML statements for one dialect.
//
// Conflict policies per table:
//
//	songplays  none (always insert; re-runs duplicate the fact rows)
//	users      update level on conflict by user_id
//	songs      ignore on conflict
//	artists    ignore on conflict
//	time       ignore on conflict
type Catalog struct {
	dialect Dialect
	tables  []Table

	ArtistInsert   Statement
	SongInsert     Statement
	UserInsert     Statement
	TimeInsert     Statement
	SongplayInsert Statement

	// SongSelect resolves (title, artist name, duration) to (song_id,
	// artist_id) by an exact match over songs joined to artists.
	SongSelect Statement
}

// New renders the catalog for the given dialect.
func New(d Dialect) *Catalog {
	c := &Catalog{dialect: d, tables: Tables()}

	byName := make(map[string]Table, len(c.tables))
	for _, t := range c.tables {
		byName[t.Name] = t
	}

	stmt := func(name, sql string, t Table) Statement {
		return Statement{Name: name, SQL: sql, Arity: len(t.Insertable())}
	}

	artists := byName["artists"]
	songs := byName["songs"]
	users := byName["users"]
	times := byName["time"]
	songplays := byName["songplays"]

	c.ArtistInsert = stmt("artist_insert", d.InsertIgnore(artists), artists)
	c.SongInsert = stmt("song_insert", d.InsertIgnore(songs), songs)
	c.UserInsert = stmt("user_insert", d.InsertUpdating(users, "level"), users)
	c.TimeInsert = stmt("time_insert", d.InsertIgnore(times), times)
	c.SongplayInsert = stmt("songplay_insert", Insert(d, songplays), songplays)

	c.SongSelect = Statement{
		Name: "song_select",
		SQL: fmt.Sprintf(
			"SELECT s.%s, s.%s FROM %s s JOIN %s a ON s.%s = a.%s WHERE s.%s = %s AND a.%s = %s AND s.%s = %s",
			d.QuoteIdent("song_id"), d.QuoteIdent("artist_id"),
			d.QuoteIdent("songs"), d.QuoteIdent("artists"),
			d.QuoteIdent("artist_id"), d.QuoteIdent("artist_id"),
			d.QuoteIdent("title"), d.Placeholder(1),
			d.QuoteIdent("name"), d.Placeholder(2),
			d.QuoteIdent("duration"), d.Placeholder(3),
		),
		Arity: 3,
	}

	return c
}

// Dialect returns the dialect the catalog was rendered for.
func (c *Catalog) Dialect() Dialect { return c.dialect }

// Tables returns the table definitions in creation order.
func (c *Catalog) Tables() []Table { return c.tables }

// CreateAll returns the CREATE TABLE statements in creation order.
func (c *Catalog) CreateAll() []string {
	out := make([]string, len(c.tables))
	for i, t := range c.tables {
		out[i] = CreateTable(c.dialect, t)
	}
	return out
}

// DropAll returns the DROP TABLE statements, fact table first.
func (c *Catalog) DropAll() []string {
	out := make([]string, 0, len(c.tables))
	for i := len(c.tables) - 1; i >= 0; i-- {
		out = append(out, DropTable(c.dialect, c.tables[i]))
	}
	return out
}
