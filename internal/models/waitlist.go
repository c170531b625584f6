package models

import "time"

type WaitlistStatus string

const (
	WaitlistPending   WaitlistStatus = "pending"
	WaitlistContacted WaitlistStatus = "contacted"
	WaitlistConverted WaitlistStatus = "converted"
	WaitlistExpired   WaitlistStatus = "expired"
	WaitlistCancelled WaitlistStatus = "cancelled"
)

// WaitlistEntry records interest in a full event. It never carries price or
// arrangement data, those are fixed when the entry converts to a reservation.
type WaitlistEntry struct {
	ID                     int            `json:"id"`
	EventID                int            `json:"event_id"`
	Status                 WaitlistStatus `json:"status"`
	ContactPerson          string         `json:"contact_person"`
	Email                  string         `json:"email"`
	Phone                  string         `json:"phone,omitempty"`
	NumberOfPersons        int            `json:"number_of_persons"`
	Priority               int            `json:"priority"`
	Notes                  string         `json:"notes,omitempty"`
	ContactedAt            *time.Time     `json:"contacted_at,omitempty"`
	ContactedBy            string         `json:"contacted_by,omitempty"`
	ConvertedReservationID *int           `json:"converted_reservation_id,omitempty"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

type CreateWaitlistEntryRequest struct {
	EventID         int    `json:"event_id" validate:"required"`
	ContactPerson   string `json:"contact_person" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	NumberOfPersons int    `json:"number_of_persons" validate:"required,min=1"`
	Notes           string `json:"notes"`
}
