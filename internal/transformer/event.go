package transformer

import (
	"context"
	"errors"
	"fmt"

	"sparkify/internal/parser/json"
	"sparkify/internal/schema"
	"sparkify/internal/storage"
	"sparkify/internal/transformer/builtin"
	"sparkify/pkg/records"
)

// Events returns the ProcessFunc for activity-log files.
//
// Per file: keep only NextSong events, load the time dimension (duplicate
// timestamps pre-collapsed in memory, with the table constraint as the
// backstop), load the users dimension, then write one songplays fact row
// per event in log order. The fact insert has no conflict key, so replaying
// a file appends duplicate fact rows; that matches the upstream system and
// is deliberately kept.
func Events(cat *schema.Catalog) ProcessFunc {
	return func(ctx context.Context, sess storage.Session, path string) error {
		recs, err := json.DecodeFile(path)
		if err != nil {
			return err
		}
		plays := builtin.Filter{Field: "page", Value: "NextSong"}.Apply(recs)

		if err := insertTimeRows(ctx, sess, cat, plays); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := insertUserRows(ctx, sess, cat, plays); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, rec := range plays {
			if err := InsertSongplay(ctx, sess, cat, rec); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	}
}

// insertTimeRows loads one time row per distinct timestamp in the batch.
// Keep-first: every duplicate carries the same derived fields anyway.
func insertTimeRows(ctx context.Context, sess storage.Session, cat *schema.Catalog, plays []records.Record) error {
	dedup := builtin.Dedup{Keys: []string{"ts"}, Policy: "keep-first"}
	for _, rec := range dedup.Apply(plays) {
		ms, err := rec.Int64("ts")
		if err != nil {
			return err
		}
		p := PartsFromMillis(ms)
		if err := sess.Exec(ctx, cat.TimeInsert,
			p.Start, p.Hour, p.Day, p.Week, p.Month, p.Year, p.Weekday); err != nil {
			return err
		}
	}
	return nil
}

// insertUserRows loads a users row per event, in order. No pre-collapse
// here: the conflict policy updates only level, so the first occurrence must
// be the one that sets the identity fields.
func insertUserRows(ctx context.Context, sess storage.Session, cat *schema.Catalog, plays []records.Record) error {
	for _, rec := range plays {
		userID, err := rec.String("userId")
		if err != nil {
			return err
		}
		firstName, err := rec.String("firstName")
		if err != nil {
			return err
		}
		lastName, err := rec.String("lastName")
		if err != nil {
			return err
		}
		gender, err := rec.String("gender")
		if err != nil {
			return err
		}
		level, err := rec.String("level")
		if err != nil {
			return err
		}
		if err := sess.Exec(ctx, cat.UserInsert, userID, firstName, lastName, gender, level); err != nil {
			return err
		}
	}
	return nil
}

// InsertSongplay resolves the song/artist foreign keys for one event and
// writes the fact row. A lookup miss is not an error: the keys are stored
// as nulls and the play is still recorded.
func InsertSongplay(ctx context.Context, sess storage.Session, cat *schema.Catalog, rec records.Record) error {
	ms, err := rec.Int64("ts")
	if err != nil {
		return err
	}
	userID, err := rec.String("userId")
	if err != nil {
		return err
	}
	level, err := rec.String("level")
	if err != nil {
		return err
	}
	title, err := rec.String("song")
	if err != nil {
		return err
	}
	artist, err := rec.String("artist")
	if err != nil {
		return err
	}
	length, err := rec.Float("length")
	if err != nil {
		return err
	}
	sessionID, err := rec.Int("sessionId")
	if err != nil {
		return err
	}
	location, err := rec.String("location")
	if err != nil {
		return err
	}
	userAgent, err := rec.String("userAgent")
	if err != nil {
		return err
	}

	var songID, artistID any
	var s, a string
	switch err := sess.QueryRow(ctx, cat.SongSelect, title, artist, length).Scan(&s, &a); {
	case err == nil:
		songID, artistID = s, a
	case errors.Is(err, storage.ErrNoRows):
		// no dimension match; keep the fact with null keys
	default:
		return fmt.Errorf("song lookup: %w", err)
	}

	return sess.Exec(ctx, cat.SongplayInsert,
		PartsFromMillis(ms).Start, userID, level, songID, artistID, sessionID, location, userAgent)
}
