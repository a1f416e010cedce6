package transformer

import "time"

// TimeParts is one decomposed event timestamp: the row shape of the time
// dimension minus its synthetic id.
//
// Conventions, fixed across the pipeline: all instants are UTC, Week is the
// ISO-8601 week-of-year, and Weekday is 0-indexed with Monday=0 (the
// convention of the system these logs originate from).
type TimeParts struct {
	Start   time.Time
	Hour    int
	Day     int
	Week    int
	Month   int
	Year    int
	Weekday int
}

// PartsFromMillis decomposes an epoch-milliseconds timestamp.
func PartsFromMillis(ms int64) TimeParts {
	t := time.UnixMilli(ms).UTC()
	_, week := t.ISOWeek()
	return TimeParts{
		Start:   t,
		Hour:    t.Hour(),
		Day:     t.Day(),
		Week:    week,
		Month:   int(t.Month()),
		Year:    t.Year(),
		Weekday: (int(t.Weekday()) + 6) % 7, // Go counts from Sunday=0
	}
}
