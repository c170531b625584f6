package services

import (
	"testing"
	"time"

	"theater-backend/internal/models"
	"theater-backend/internal/timeutil"
)

func TestDuplicateFromCopiesConfiguration(t *testing.T) {
	date, _ := timeutil.ParseInVenue(timeutil.DateLayout, "2026-06-05")
	opens := date.AddDate(0, -2, 0)
	cutoff := date.AddDate(0, 0, -2)

	src := &models.Event{
		ID:             7,
		ShowID:         3,
		Date:           date,
		Type:           models.EventWeekend,
		DoorsOpen:      "18:00",
		StartsAt:       "19:30",
		EndsAt:         "23:00",
		Capacity:       180,
		BookingOpensAt: &opens,
		BookingCutoff:  &cutoff,
		WaitlistActive: true,
		IsActive:       false,
	}

	newDate := date.AddDate(0, 0, 7)
	dup := duplicateFrom(src, newDate)

	if dup.ShowID != 3 || dup.Type != models.EventWeekend || dup.Capacity != 180 {
		t.Errorf("configuration not copied: %+v", dup)
	}
	if dup.DoorsOpen != "18:00" || dup.StartsAt != "19:30" || dup.EndsAt != "23:00" {
		t.Errorf("times not copied: %+v", dup)
	}
	if !dup.Date.Equal(newDate) {
		t.Errorf("Date = %v, want %v", dup.Date, newDate)
	}
}

func TestDuplicateFromShiftsBookingWindow(t *testing.T) {
	date, _ := timeutil.ParseInVenue(timeutil.DateLayout, "2026-06-05")
	opens := date.AddDate(0, 0, -30)
	cutoff := date.AddDate(0, 0, -2)
	src := &models.Event{Date: date, BookingOpensAt: &opens, BookingCutoff: &cutoff}

	newDate := date.AddDate(0, 0, 14)
	dup := duplicateFrom(src, newDate)

	wantOpens := opens.Add(14 * 24 * time.Hour)
	if dup.BookingOpensAt == nil || !dup.BookingOpensAt.Equal(wantOpens) {
		t.Errorf("BookingOpensAt = %v, want %v", dup.BookingOpensAt, wantOpens)
	}
	wantCutoff := cutoff.Add(14 * 24 * time.Hour)
	if dup.BookingCutoff == nil || !dup.BookingCutoff.Equal(wantCutoff) {
		t.Errorf("BookingCutoff = %v, want %v", dup.BookingCutoff, wantCutoff)
	}
}

func TestDuplicateFromResetsFlags(t *testing.T) {
	date, _ := timeutil.ParseInVenue(timeutil.DateLayout, "2026-06-05")
	src := &models.Event{Date: date, WaitlistActive: true, IsActive: false}

	dup := duplicateFrom(src, date.AddDate(0, 0, 1))

	if dup.WaitlistActive {
		t.Error("duplicated event must start with the waitlist closed")
	}
	if !dup.IsActive {
		t.Error("duplicated event must start active")
	}
	if dup.BookingOpensAt != nil || dup.BookingCutoff != nil {
		t.Error("source without a booking window must not gain one")
	}
}
