package booking

import "time"

// WindowState classifies whether an event currently accepts bookings.
type WindowState string

const (
	WindowNotYetOpen WindowState = "not_yet_open"
	WindowOpen       WindowState = "open"
	WindowCutoff     WindowState = "cutoff"
	WindowPast       WindowState = "past"
	WindowInactive   WindowState = "inactive"
)

// WindowStateAt classifies an event's booking window at the given instant.
// A nil opensAt means bookings open immediately, a nil cutoff means bookings
// stay open until the event date.
func WindowStateAt(date time.Time, opensAt, cutoff *time.Time, active bool, now time.Time) WindowState {
	if !active {
		return WindowInactive
	}
	if now.After(date) {
		return WindowPast
	}
	if opensAt != nil && now.Before(*opensAt) {
		return WindowNotYetOpen
	}
	if cutoff != nil && now.After(*cutoff) {
		return WindowCutoff
	}
	return WindowOpen
}

// OptionExpiry returns the instant an option placed now stops holding
// capacity. holdDays <= 0 falls back to the default hold.
func OptionExpiry(now time.Time, holdDays int) time.Time {
	if holdDays <= 0 {
		holdDays = DefaultOptionHoldDays
	}
	return now.AddDate(0, 0, holdDays)
}
