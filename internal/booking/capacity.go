package booking

import (
	"time"

	"theater-backend/internal/models"
)

// DefaultOverbookingAllowance is the number of seats past capacity a
// force-booked group may take. Product policy, overridable per deployment.
const DefaultOverbookingAllowance = 20

// DefaultOptionHoldDays is how long an option holds capacity before it
// expires.
const DefaultOptionHoldDays = 7

// CapacityCountingStatuses is the canonical set of reservation statuses that
// count toward event capacity. Applied uniformly at every call site.
var CapacityCountingStatuses = map[models.ReservationStatus]bool{
	models.StatusPending:   true,
	models.StatusConfirmed: true,
	models.StatusCheckedIn: true,
	models.StatusOption:    true,
}

// CountsTowardCapacity reports whether a reservation takes seats at the
// given instant. Expired options no longer hold capacity.
func CountsTowardCapacity(r *models.Reservation, now time.Time) bool {
	if !CapacityCountingStatuses[r.Status] {
		return false
	}
	if r.Status == models.StatusOption {
		return r.IsActiveOption(now)
	}
	return true
}

// Occupancy aggregates person counts for one event. RemainingCapacity goes
// negative when overbooked, callers render that as overbooked rather than
// clamping.
func Occupancy(event *models.Event, reservations []*models.Reservation, waitlist []*models.WaitlistEntry, now time.Time) models.EventOccupancy {
	occ := models.EventOccupancy{
		EventID:  event.ID,
		Capacity: event.Capacity,
	}

	for _, r := range reservations {
		if r.EventID != event.ID || !CountsTowardCapacity(r, now) {
			continue
		}
		occ.TotalBooked += r.NumberOfPersons
		switch r.Status {
		case models.StatusPending:
			occ.PendingPersons += r.NumberOfPersons
		case models.StatusOption:
			occ.OptionPersons += r.NumberOfPersons
		default:
			occ.BookedPersons += r.NumberOfPersons
		}
	}

	for _, w := range waitlist {
		if w.EventID != event.ID {
			continue
		}
		if w.Status == models.WaitlistPending || w.Status == models.WaitlistContacted {
			occ.WaitlistCount++
			occ.WaitlistPersons += w.NumberOfPersons
		}
	}

	occ.RemainingCapacity = event.Capacity - occ.TotalBooked
	if occ.RemainingCapacity < 0 {
		occ.IsOverbooked = true
		occ.OverbookedBy = -occ.RemainingCapacity
	}
	if event.Capacity > 0 {
		occ.UtilizationPercent = float64(occ.TotalBooked) / float64(event.Capacity) * 100
	}
	return occ
}

// CanBook reports whether a group fits within the regular capacity.
func CanBook(totalBooked, groupSize, capacity int) bool {
	return totalBooked+groupSize <= capacity
}

// CanForceBook reports whether a group may be admitted past capacity under
// the overbooking allowance.
func CanForceBook(totalBooked, groupSize, capacity, allowance int) bool {
	return totalBooked+groupSize <= capacity+allowance
}

// WaitlistOpen reports whether an event takes waitlist entries: either the
// flag is forced on, or the event has no seats left.
func WaitlistOpen(waitlistActive bool, remainingCapacity int) bool {
	return waitlistActive || remainingCapacity <= 0
}
