package booking

import (
	"testing"
	"time"

	"theater-backend/internal/models"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func res(eventID, persons int, status models.ReservationStatus) *models.Reservation {
	return &models.Reservation{EventID: eventID, NumberOfPersons: persons, Status: status}
}

func optionRes(eventID, persons int, expires time.Time) *models.Reservation {
	r := res(eventID, persons, models.StatusOption)
	r.OptionExpiresAt = &expires
	return r
}

func TestOccupancyCountsOnlyCapacityStatuses(t *testing.T) {
	event := &models.Event{ID: 1, Capacity: 100}
	reservations := []*models.Reservation{
		res(1, 40, models.StatusConfirmed),
		res(1, 25, models.StatusPending),
		res(1, 20, models.StatusCheckedIn),
		res(1, 10, models.StatusCancelled),
		res(1, 10, models.StatusRejected),
		res(1, 10, models.StatusRequest),
		res(2, 50, models.StatusConfirmed), // other event
	}

	occ := Occupancy(event, reservations, nil, testNow)
	if occ.TotalBooked != 85 {
		t.Fatalf("TotalBooked = %d, want 85", occ.TotalBooked)
	}
	if occ.RemainingCapacity != 15 {
		t.Errorf("RemainingCapacity = %d, want 15", occ.RemainingCapacity)
	}
	if occ.UtilizationPercent != 85 {
		t.Errorf("UtilizationPercent = %v, want 85", occ.UtilizationPercent)
	}
	if occ.IsOverbooked {
		t.Error("IsOverbooked = true for 85/100")
	}
	if occ.PendingPersons != 25 || occ.BookedPersons != 60 {
		t.Errorf("split = booked %d / pending %d, want 60 / 25", occ.BookedPersons, occ.PendingPersons)
	}
}

func TestOccupancyExpiredOptionReleasesSeats(t *testing.T) {
	event := &models.Event{ID: 1, Capacity: 50}
	reservations := []*models.Reservation{
		res(1, 30, models.StatusConfirmed),
		optionRes(1, 10, testNow.Add(24*time.Hour)),
		optionRes(1, 8, testNow.Add(-time.Hour)),
	}

	occ := Occupancy(event, reservations, nil, testNow)
	if occ.TotalBooked != 40 {
		t.Fatalf("TotalBooked = %d, want 40 (expired option excluded)", occ.TotalBooked)
	}
	if occ.OptionPersons != 10 {
		t.Errorf("OptionPersons = %d, want 10", occ.OptionPersons)
	}
}

// Remaining capacity is reported negative when overbooked, never clamped.
func TestOccupancyOverbookedGoesNegative(t *testing.T) {
	event := &models.Event{ID: 3, Capacity: 120}
	reservations := []*models.Reservation{
		res(3, 90, models.StatusConfirmed),
		res(3, 45, models.StatusConfirmed),
	}

	occ := Occupancy(event, reservations, nil, testNow)
	if occ.RemainingCapacity != -15 {
		t.Fatalf("RemainingCapacity = %d, want -15", occ.RemainingCapacity)
	}
	if !occ.IsOverbooked || occ.OverbookedBy != 15 {
		t.Errorf("overbooked = %v by %d, want true by 15", occ.IsOverbooked, occ.OverbookedBy)
	}
	if occ.UtilizationPercent != 112.5 {
		t.Errorf("UtilizationPercent = %v, want 112.5", occ.UtilizationPercent)
	}
}

func TestOccupancyWaitlist(t *testing.T) {
	event := &models.Event{ID: 1, Capacity: 100}
	waitlist := []*models.WaitlistEntry{
		{EventID: 1, NumberOfPersons: 4, Status: models.WaitlistPending},
		{EventID: 1, NumberOfPersons: 6, Status: models.WaitlistContacted},
		{EventID: 1, NumberOfPersons: 3, Status: models.WaitlistConverted},
		{EventID: 1, NumberOfPersons: 2, Status: models.WaitlistExpired},
		{EventID: 9, NumberOfPersons: 5, Status: models.WaitlistPending},
	}

	occ := Occupancy(event, nil, waitlist, testNow)
	if occ.WaitlistCount != 2 {
		t.Errorf("WaitlistCount = %d, want 2", occ.WaitlistCount)
	}
	if occ.WaitlistPersons != 10 {
		t.Errorf("WaitlistPersons = %d, want 10", occ.WaitlistPersons)
	}
}

func TestCanForceBook(t *testing.T) {
	tests := []struct {
		name        string
		totalBooked int
		groupSize   int
		capacity    int
		want        bool
	}{
		{"fits regular capacity", 70, 20, 100, true},
		{"fits only with allowance", 95, 20, 100, true},
		{"exactly at allowance limit", 100, 20, 100, true},
		{"group of 25 at 98 of 100 exceeds allowance", 98, 25, 100, false},
		{"one seat past allowance", 101, 20, 100, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanForceBook(tt.totalBooked, tt.groupSize, tt.capacity, DefaultOverbookingAllowance)
			if got != tt.want {
				t.Errorf("CanForceBook(%d, %d, %d, 20) = %v, want %v",
					tt.totalBooked, tt.groupSize, tt.capacity, got, tt.want)
			}
		})
	}
}

func TestCanBook(t *testing.T) {
	if !CanBook(80, 20, 100) {
		t.Error("CanBook(80, 20, 100) = false, want true")
	}
	if CanBook(81, 20, 100) {
		t.Error("CanBook(81, 20, 100) = true, want false")
	}
}

func TestWaitlistOpen(t *testing.T) {
	tests := []struct {
		name           string
		waitlistActive bool
		remaining      int
		want           bool
	}{
		{"flag forced on with seats left", true, 40, true},
		{"flag off with seats left", false, 40, false},
		{"flag off but sold out", false, 0, true},
		{"flag off and overbooked", false, -5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WaitlistOpen(tt.waitlistActive, tt.remaining); got != tt.want {
				t.Errorf("WaitlistOpen(%v, %d) = %v, want %v",
					tt.waitlistActive, tt.remaining, got, tt.want)
			}
		})
	}
}
