// Package transformer holds the per-file transform-and-load logic: song
// metadata files feed the songs and artists dimensions, activity logs feed
// the time and users dimensions and the songplays fact table.
//
// Each exported loader satisfies the etl.ProcessFunc contract: given an open
// session and a file path, decode, shape, and issue the parameterized
// statements. Committing is the caller's job.
package transformer

import (
	"context"
	"fmt"

	"sparkify/internal/parser/json"
	"sparkify/internal/schema"
	"sparkify/internal/storage"
	"sparkify/pkg/records"
)

// ProcessFunc is the uniform per-file contract consumed by the loader.
type ProcessFunc func(ctx context.Context, sess storage.Session, path string) error

// Song returns the ProcessFunc for song-metadata files. Each file carries
// exactly one song; the surplus records of a malformed multi-object file are
// rejected rather than guessed at.
func Song(cat *schema.Catalog) ProcessFunc {
	return func(ctx context.Context, sess storage.Session, path string) error {
		recs, err := json.DecodeFile(path)
		if err != nil {
			return err
		}
		if len(recs) != 1 {
			return fmt.Errorf("%s: want 1 song record, got %d", path, len(recs))
		}
		if err := InsertSong(ctx, sess, cat, recs[0]); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	}
}

// InsertSong loads one song-metadata record: an artist upsert followed by a
// song upsert, both ignore-on-conflict so re-loads are no-ops.
func InsertSong(ctx context.Context, sess storage.Session, cat *schema.Catalog, rec records.Record) error {
	artistID, err := rec.String("artist_id")
	if err != nil {
		return err
	}
	artistName, err := rec.String("artist_name")
	if err != nil {
		return err
	}
	artistLocation, err := rec.String("artist_location")
	if err != nil {
		return err
	}
	latitude, err := rec.NullFloat("artist_latitude")
	if err != nil {
		return err
	}
	longitude, err := rec.NullFloat("artist_longitude")
	if err != nil {
		return err
	}

	songID, err := rec.String("song_id")
	if err != nil {
		return err
	}
	title, err := rec.String("title")
	if err != nil {
		return err
	}
	year, err := rec.Int("year")
	if err != nil {
		return err
	}
	duration, err := rec.Float("duration")
	if err != nil {
		return err
	}

	// Artist first so dependent lookups in later log passes always see it.
	if err := sess.Exec(ctx, cat.ArtistInsert, artistID, artistName, artistLocation, latitude, longitude); err != nil {
		return err
	}
	return sess.Exec(ctx, cat.SongInsert, songID, title, artistID, year, duration)
}
