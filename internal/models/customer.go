package models

import "time"

// CustomerProfile is aggregated from reservations by email, there is no
// separate customers table. The dashboard CRM view is a projection.
type CustomerProfile struct {
	Email                string      `json:"email"`
	ContactPerson        string      `json:"contact_person"`
	CompanyName          string      `json:"company_name,omitempty"`
	Phone                string      `json:"phone,omitempty"`
	TotalBookings        int         `json:"total_bookings"`
	TotalSpent           float64     `json:"total_spent"`
	AverageGroupSize     float64     `json:"average_group_size"`
	PreferredArrangement Arrangement `json:"preferred_arrangement,omitempty"`
	FirstBooking         time.Time   `json:"first_booking"`
	LastBooking          time.Time   `json:"last_booking"`
}

// CustomerDetail adds the full booking history to a profile
type CustomerDetail struct {
	CustomerProfile
	Reservations []*Reservation `json:"reservations"`
}
