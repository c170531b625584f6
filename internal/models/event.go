package models

import "time"

type EventType string

const (
	EventWeekday      EventType = "weekday"
	EventWeekend      EventType = "weekend"
	EventMatinee      EventType = "matinee"
	EventPremiere     EventType = "premiere"
	EventSpecialEvent EventType = "special_event"
)

// Show is a production that runs across many dated events.
type Show struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Event is a single dated performance with its own capacity and booking
// window. Times are local HH:MM strings in the venue timezone.
type Event struct {
	ID             int        `json:"id"`
	ShowID         int        `json:"show_id"`
	Date           time.Time  `json:"date"`
	Type           EventType  `json:"type"`
	DoorsOpen      string     `json:"doors_open,omitempty"`
	StartsAt       string     `json:"starts_at,omitempty"`
	EndsAt         string     `json:"ends_at,omitempty"`
	Capacity       int        `json:"capacity"`
	BookingOpensAt *time.Time `json:"booking_opens_at,omitempty"`
	BookingCutoff  *time.Time `json:"booking_cutoff,omitempty"`
	WaitlistActive bool       `json:"waitlist_active"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type CreateEventRequest struct {
	ShowID         int        `json:"show_id" validate:"required"`
	Date           time.Time  `json:"date" validate:"required"`
	Type           EventType  `json:"type" validate:"required,oneof=weekday weekend matinee premiere special_event"`
	DoorsOpen      string     `json:"doors_open"`
	StartsAt       string     `json:"starts_at"`
	EndsAt         string     `json:"ends_at"`
	Capacity       int        `json:"capacity" validate:"required,min=1"`
	BookingOpensAt *time.Time `json:"booking_opens_at"`
	BookingCutoff  *time.Time `json:"booking_cutoff"`
	WaitlistActive bool       `json:"waitlist_active"`
}

type UpdateEventRequest struct {
	Type           *EventType `json:"type,omitempty" validate:"omitempty,oneof=weekday weekend matinee premiere special_event"`
	DoorsOpen      *string    `json:"doors_open,omitempty"`
	StartsAt       *string    `json:"starts_at,omitempty"`
	EndsAt         *string    `json:"ends_at,omitempty"`
	Capacity       *int       `json:"capacity,omitempty" validate:"omitempty,min=1"`
	BookingOpensAt *time.Time `json:"booking_opens_at,omitempty"`
	BookingCutoff  *time.Time `json:"booking_cutoff,omitempty"`
	WaitlistActive *bool      `json:"waitlist_active,omitempty"`
	IsActive       *bool      `json:"is_active,omitempty"`
}

// EventOccupancy is derived, never stored. RemainingCapacity goes negative
// when force-booked past capacity, it is not clamped.
type EventOccupancy struct {
	EventID            int     `json:"event_id"`
	Capacity           int     `json:"capacity"`
	BookedPersons      int     `json:"booked_persons"`
	PendingPersons     int     `json:"pending_persons"`
	OptionPersons      int     `json:"option_persons"`
	TotalBooked        int     `json:"total_booked"`
	RemainingCapacity  int     `json:"remaining_capacity"`
	IsOverbooked       bool    `json:"is_overbooked"`
	OverbookedBy       int     `json:"overbooked_by"`
	UtilizationPercent float64 `json:"utilization_percent"`
	WaitlistCount      int     `json:"waitlist_count"`
	WaitlistPersons    int     `json:"waitlist_persons"`
}
