package models

import "time"

// ArchivedReservation is an immutable snapshot of a reservation plus its
// full payment and refund history, taken at archive time. Snapshot holds the
// serialized JSON document.
type ArchivedReservation struct {
	ID            int       `json:"id"`
	ReservationID int       `json:"reservation_id"`
	EventID       int       `json:"event_id"`
	Email         string    `json:"email"`
	Snapshot      string    `json:"snapshot"`
	Reason        string    `json:"reason"`
	ArchivedBy    string    `json:"archived_by"`
	ArchivedAt    time.Time `json:"archived_at"`
}
