package timeutil

import (
	"testing"
	"time"
)

func TestParseInVenue(t *testing.T) {
	got, err := ParseInVenue(DateLayout, "2026-06-15")
	if err != nil {
		t.Fatalf("ParseInVenue: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.June || got.Day() != 15 {
		t.Errorf("got %v, want 2026-06-15", got)
	}
	if got.Location() != Venue {
		t.Errorf("parsed time not in venue timezone: %v", got.Location())
	}

	if _, err := ParseInVenue(DateLayout, "15-06-2026"); err == nil {
		t.Error("expected error for wrong layout")
	}
}

func TestStartAndEndOfDay(t *testing.T) {
	in, _ := ParseInVenue(DateTimeLayout, "2026-06-15 19:30:00")

	start := StartOfDay(in)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("StartOfDay = %v, want midnight", start)
	}
	if start.Day() != 15 {
		t.Errorf("StartOfDay day = %d, want 15", start.Day())
	}

	end := EndOfDay(in)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("EndOfDay = %v, want end of day", end)
	}
	if !start.Before(end) {
		t.Error("start of day should precede end of day")
	}
}

func TestToVenueConvertsZone(t *testing.T) {
	utc := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	v := ToVenue(utc)
	if !v.Equal(utc) {
		t.Error("conversion must not change the instant")
	}
	if v.Location() != Venue {
		t.Errorf("location = %v, want venue", v.Location())
	}
}
