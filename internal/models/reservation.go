package models

import "time"

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusRejected  ReservationStatus = "rejected"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCheckedIn ReservationStatus = "checked-in"
	StatusRequest   ReservationStatus = "request"
	StatusOption    ReservationStatus = "option"
)

// Arrangement is the priced package tier booked per reservation.
// BWF = show with dinner, BWFM = show with dinner and merchandise package.
type Arrangement string

const (
	ArrangementBWF  Arrangement = "BWF"
	ArrangementBWFM Arrangement = "BWFM"
)

type Reservation struct {
	ID                    int               `json:"id"`
	PublicID              string            `json:"public_id"`
	EventID               int               `json:"event_id"`
	EventDate             time.Time         `json:"event_date"`
	Status                ReservationStatus `json:"status"`
	ContactPerson         string            `json:"contact_person"`
	CompanyName           string            `json:"company_name,omitempty"`
	Email                 string            `json:"email"`
	Phone                 string            `json:"phone,omitempty"`
	Address               string            `json:"address,omitempty"`
	City                  string            `json:"city,omitempty"`
	PostalCode            string            `json:"postal_code,omitempty"`
	NumberOfPersons       int               `json:"number_of_persons"`
	Arrangement           Arrangement       `json:"arrangement"`
	PreDrinkCount         int               `json:"pre_drink_count"`
	AfterPartyCount       int               `json:"after_party_count"`
	DietaryNotes          string            `json:"dietary_notes,omitempty"`
	CelebrationNote       string            `json:"celebration_note,omitempty"`
	TotalPrice            float64           `json:"total_price"`
	PricingSnapshot       *string           `json:"pricing_snapshot,omitempty"`
	PaymentDueDate        *time.Time        `json:"payment_due_date,omitempty"`
	RequestedOverCapacity bool              `json:"requested_over_capacity"`
	Tags                  []string          `json:"tags,omitempty"`
	Notes                 string            `json:"notes,omitempty"`
	OptionExpiresAt       *time.Time        `json:"option_expires_at,omitempty"`
	OptionPlacedBy        string            `json:"option_placed_by,omitempty"`
	CheckedInAt           *time.Time        `json:"checked_in_at,omitempty"`
	CheckedInBy           string            `json:"checked_in_by,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

// IsActiveOption reports whether the reservation is a capacity hold that has
// not yet expired at the given instant.
func (r *Reservation) IsActiveOption(now time.Time) bool {
	return r.Status == StatusOption && r.OptionExpiresAt != nil && r.OptionExpiresAt.After(now)
}

type CreateReservationRequest struct {
	EventID         int                    `json:"event_id" validate:"required"`
	ContactPerson   string                 `json:"contact_person" validate:"required"`
	CompanyName     string                 `json:"company_name"`
	Email           string                 `json:"email" validate:"required,email"`
	Phone           string                 `json:"phone"`
	Address         string                 `json:"address"`
	City            string                 `json:"city"`
	PostalCode      string                 `json:"postal_code"`
	NumberOfPersons int                    `json:"number_of_persons" validate:"required,min=1"`
	Arrangement     Arrangement            `json:"arrangement" validate:"required,oneof=BWF BWFM"`
	PreDrinkCount   int                    `json:"pre_drink_count" validate:"min=0"`
	AfterPartyCount int                    `json:"after_party_count" validate:"min=0"`
	DietaryNotes    string                 `json:"dietary_notes"`
	CelebrationNote string                 `json:"celebration_note"`
	Merchandise     []MerchandiseSelection `json:"merchandise"`
	Notes           string                 `json:"notes"`
	// ForceBook bypasses the capacity check, subject to the overbooking
	// allowance. Admin-only.
	ForceBook bool `json:"force_book"`
}

type CreateOptionRequest struct {
	EventID         int    `json:"event_id" validate:"required"`
	ContactPerson   string `json:"contact_person" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone"`
	NumberOfPersons int    `json:"number_of_persons" validate:"required,min=1"`
	HoldDays        int    `json:"hold_days" validate:"min=0,max=30"`
	Notes           string `json:"notes"`
}

// UpdateReservationRequest uses pointers so the handler can distinguish
// omitted fields from zero values when building the audit diff.
type UpdateReservationRequest struct {
	ContactPerson   *string      `json:"contact_person,omitempty"`
	CompanyName     *string      `json:"company_name,omitempty"`
	Email           *string      `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string      `json:"phone,omitempty"`
	Address         *string      `json:"address,omitempty"`
	City            *string      `json:"city,omitempty"`
	PostalCode      *string      `json:"postal_code,omitempty"`
	NumberOfPersons *int         `json:"number_of_persons,omitempty" validate:"omitempty,min=1"`
	Arrangement     *Arrangement `json:"arrangement,omitempty" validate:"omitempty,oneof=BWF BWFM"`
	PreDrinkCount   *int         `json:"pre_drink_count,omitempty" validate:"omitempty,min=0"`
	AfterPartyCount *int         `json:"after_party_count,omitempty" validate:"omitempty,min=0"`
	DietaryNotes    *string      `json:"dietary_notes,omitempty"`
	CelebrationNote *string      `json:"celebration_note,omitempty"`
	PaymentDueDate  *time.Time   `json:"payment_due_date,omitempty"`
	Tags            *[]string    `json:"tags,omitempty"`
	Notes           *string      `json:"notes,omitempty"`
}

type ReservationFilter struct {
	EventID  int
	Status   ReservationStatus
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Tag      string
	Limit    int
	Offset   int
}
