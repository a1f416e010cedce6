package schema

// ColType is the abstract column type; each dialect renders it to its own
// SQL type name.
type ColType int

const (
	Text ColType = iota
	Int
	Float
	Timestamp
)

// Column describes one column of a table.
type Column struct {
	Name       string
	Type       ColType
	NotNull    bool
	PrimaryKey bool
}

// Table describes one table of the star schema. When Serial is non-empty the
// table gets a synthetic auto-incrementing primary key of that name, rendered
// dialect-specifically, and none of the Columns may be marked PrimaryKey.
type Table struct {
	Name    string
	Serial  string
	Columns []Column
	Unique  []string // column names under a UNIQUE constraint
}

// Insertable returns the column names that inserts provide values for, in
// declaration order. The serial column is owned by the database and excluded.
func (t Table) Insertable() []string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = c.Name
	}
	return cols
}

// Key returns the conflict-target column for upserts: the primary key if one
// is declared, otherwise the first unique column. Empty when the table has
// neither (the fact table).
func (t Table) Key() string {
	for _, c := range t.Columns {
		if c.PrimaryKey {
			return c.Name
		}
	}
	if len(t.Unique) > 0 {
		return t.Unique[0]
	}
	return ""
}

// Tables returns the five analytics tables in creation order: dimensions
// first, the fact table last.
func Tables() []Table {
	return []Table{
		{
			Name: "users",
			Columns: []Column{
				{Name: "user_id", Type: Text, PrimaryKey: true},
				{Name: "first_name", Type: Text},
				{Name: "last_name", Type: Text},
				{Name: "gender", Type: Text},
				{Name: "level", Type: Text, NotNull: true},
			},
		},
		{
			Name: "artists",
			Columns: []Column{
				{Name: "artist_id", Type: Text, PrimaryKey: true},
				{Name: "name", Type: Text, NotNull: true},
				{Name: "location", Type: Text},
				{Name: "latitude", Type: Float},
				{Name: "longitude", Type: Float},
			},
		},
		{
			Name: "songs",
			Columns: []Column{
				{Name: "song_id", Type: Text, PrimaryKey: true},
				{Name: "title", Type: Text, NotNull: true},
				{Name: "artist_id", Type: Text},
				{Name: "year", Type: Int},
				{Name: "duration", Type: Float},
			},
		},
		{
			Name:   "time",
			Serial: "time_id",
			Columns: []Column{
				{Name: "start_time", Type: Timestamp, NotNull: true},
				{Name: "hour", Type: Int, NotNull: true},
				{Name: "day", Type: Int, NotNull: true},
				{Name: "week", Type: Int, NotNull: true},
				{Name: "month", Type: Int, NotNull: true},
				{Name: "year", Type: Int, NotNull: true},
				{Name: "weekday", Type: Int, NotNull: true},
			},
			Unique: []string{"start_time"},
		},
		{
			Name:   "songplays",
			Serial: "songplay_id",
			Columns: []Column{
				{Name: "start_time", Type: Timestamp, NotNull: true},
				{Name: "user_id", Type: Text, NotNull: true},
				{Name: "level", Type: Text},
				{Name: "song_id", Type: Text},
				{Name: "artist_id", Type: Text},
				{Name: "session_id", Type: Int},
				{Name: "location", Type: Text},
				{Name: "user_agent", Type: Text},
			},
		},
	}
}
