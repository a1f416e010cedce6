package transformer

import (
	"testing"
	"time"
)

func TestPartsFromMillisKnownInstant(t *testing.T) {
	// 2018-11-21 01:57:02.3 UTC, a Wednesday in ISO week 47.
	instant := time.Date(2018, time.November, 21, 1, 57, 2, 300_000_000, time.UTC)
	p := PartsFromMillis(instant.UnixMilli())

	if !p.Start.Equal(instant) {
		t.Fatalf("Start = %v, want %v", p.Start, instant)
	}
	if p.Hour != 1 || p.Day != 21 || p.Month != 11 || p.Year != 2018 {
		t.Fatalf("parts = %+v", p)
	}
	if p.Week != 47 {
		t.Fatalf("Week = %d, want 47", p.Week)
	}
	if p.Weekday != 2 { // Monday=0, so Wednesday=2
		t.Fatalf("Weekday = %d, want 2", p.Weekday)
	}
}

func TestPartsWeekdayConvention(t *testing.T) {
	// A known Monday and Sunday pin down the 0-indexed, Monday-first scheme.
	monday := time.Date(2018, time.November, 5, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2018, time.November, 4, 12, 0, 0, 0, time.UTC)

	if got := PartsFromMillis(monday.UnixMilli()).Weekday; got != 0 {
		t.Fatalf("Monday weekday = %d, want 0", got)
	}
	if got := PartsFromMillis(sunday.UnixMilli()).Weekday; got != 6 {
		t.Fatalf("Sunday weekday = %d, want 6", got)
	}
}

func TestPartsRoundTripCalendarDate(t *testing.T) {
	// Reconstructing a date from (year, month, day) must reproduce the
	// calendar date of the source instant, for instants across the year.
	for _, ms := range []int64{
		time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		time.Date(2018, 6, 15, 23, 59, 59, 0, time.UTC).UnixMilli(),
		time.Date(2018, 12, 31, 12, 30, 0, 0, time.UTC).UnixMilli(),
	} {
		p := PartsFromMillis(ms)
		rebuilt := time.Date(p.Year, time.Month(p.Month), p.Day, p.Hour, 0, 0, 0, time.UTC)
		direct := time.UnixMilli(ms).UTC()
		if rebuilt.Format("2006-01-02 15") != direct.Format("2006-01-02 15") {
			t.Fatalf("rebuilt %v != direct %v", rebuilt, direct)
		}
	}
}

func TestPartsMillisecondPrecision(t *testing.T) {
	p := PartsFromMillis(1541903636796)
	if p.Start.UnixMilli() != 1541903636796 {
		t.Fatalf("millis lost: %d", p.Start.UnixMilli())
	}
	if p.Start.Location() != time.UTC {
		t.Fatalf("Start not UTC: %v", p.Start.Location())
	}
}
