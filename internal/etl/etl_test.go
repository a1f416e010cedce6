package etl

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"sparkify/internal/schema"
	"sparkify/internal/storage"
	"sparkify/internal/storage/sqlite"
	"sparkify/internal/transformer"
)

func newPipeline(t *testing.T) (*Pipeline, storage.Conn, *sql.DB) {
	t.Helper()
	ctx := context.Background()

	dbPath := filepath.Join(t.TempDir(), "sparkify.db")
	conn, err := sqlite.Open(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(conn.Close)

	p := New(conn, schema.New(conn.Dialect()), zerolog.Nop())
	require.NoError(t, p.EnsureSchema(ctx))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return p, conn, db
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func count(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %q`, table)).Scan(&n))
	return n
}

const songJSON = `{"num_songs": 1, "song_id": "S1", "title": "T", "artist_id": "A1", "year": 2000, "duration": 180.5, "artist_name": "N", "artist_location": "L", "artist_longitude": 1.0, "artist_latitude": 2.0}`

func eventJSON(userID string, ts int64) string {
	return fmt.Sprintf(
		`{"page": "NextSong", "ts": %d, "userId": %q, "firstName": "Jane", "lastName": "Doe", "gender": "F", "level": "free", "song": "T", "artist": "N", "length": 180.5, "sessionId": 583, "location": "CA", "userAgent": "Mozilla/5.0"}`,
		ts, userID,
	)
}

func TestRunEndToEnd(t *testing.T) {
	p, _, db := newPipeline(t)
	root := t.TempDir()

	// Nested directories exercise the recursive walk.
	mustWrite(t, filepath.Join(root, "song_data", "A", "B", "s1.json"), songJSON)
	mustWrite(t, filepath.Join(root, "log_data", "2018", "11", "events.json"),
		eventJSON("U1", 1541903636796)+"\n"+eventJSON("U2", 1541910000000)+"\n")

	require.NoError(t, p.Run(context.Background(),
		filepath.Join(root, "song_data"), filepath.Join(root, "log_data")))

	require.Equal(t, 1, count(t, db, "songs"))
	require.Equal(t, 1, count(t, db, "artists"))
	require.Equal(t, 2, count(t, db, "users"))
	require.Equal(t, 2, count(t, db, "time"))
	require.Equal(t, 2, count(t, db, "songplays"))

	// Both facts resolved against the loaded song.
	var resolved int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM "songplays" WHERE "song_id" = 'S1' AND "artist_id" = 'A1'`,
	).Scan(&resolved))
	require.Equal(t, 2, resolved)
}

func TestFailingFileHaltsRunAndRollsBack(t *testing.T) {
	p, _, db := newPipeline(t)
	root := t.TempDir()

	// Sorted discovery order: 01 commits, 02 fails halfway, 03 never runs.
	mustWrite(t, filepath.Join(root, "logs", "01.json"), eventJSON("U1", 1541903636796)+"\n")
	mustWrite(t, filepath.Join(root, "logs", "02.json"),
		eventJSON("U2", 1541910000000)+"\n"+`{"page": "NextSong", "ts": "broken"}`+"\n")
	mustWrite(t, filepath.Join(root, "logs", "03.json"), eventJSON("U3", 1541920000000)+"\n")

	err := p.ProcessDir(context.Background(), filepath.Join(root, "logs"),
		transformer.Events(p.cat))
	require.Error(t, err)

	// File 01 is durable, 02 rolled back entirely, 03 untouched.
	require.Equal(t, 1, count(t, db, "songplays"))
	require.Equal(t, 1, count(t, db, "users"))
	var userID string
	require.NoError(t, db.QueryRow(`SELECT "user_id" FROM "users"`).Scan(&userID))
	require.Equal(t, "U1", userID)
}

func TestProcessDirMissingDirectoryFails(t *testing.T) {
	p, _, _ := newPipeline(t)
	err := p.ProcessDir(context.Background(),
		filepath.Join(t.TempDir(), "absent"), transformer.Events(p.cat))
	require.Error(t, err)
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	p, _, db := newPipeline(t)
	require.NoError(t, p.EnsureSchema(context.Background()))
	require.Zero(t, count(t, db, "songplays"))
}
