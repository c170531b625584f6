package timeutil

import (
	"time"
)

// Venue is the theater's local timezone. All event dates, booking windows
// and option expiries are interpreted in it.
var Venue *time.Location

func init() {
	var err error
	Venue, err = time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		// Fallback to CET if tzdata is not available
		Venue = time.FixedZone("CET", 1*60*60)
	}
}

// Now returns the current time in the venue timezone
func Now() time.Time {
	return time.Now().In(Venue)
}

// ToVenue converts any time to the venue timezone
func ToVenue(t time.Time) time.Time {
	return t.In(Venue)
}

// ParseInVenue parses a time string in the venue timezone
func ParseInVenue(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, Venue)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatVenue formats a time in the venue timezone using the given layout
func FormatVenue(t time.Time, layout string) string {
	return t.In(Venue).Format(layout)
}

// StartOfDay returns 00:00:00 venue time for the given time's day
func StartOfDay(t time.Time) time.Time {
	v := t.In(Venue)
	return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, Venue)
}

// EndOfDay returns 23:59:59.999999999 venue time for the given time's day
func EndOfDay(t time.Time) time.Time {
	v := t.In(Venue)
	return time.Date(v.Year(), v.Month(), v.Day(), 23, 59, 59, 999999999, Venue)
}

// Common layouts for venue-local formatting
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 15:04"
)
