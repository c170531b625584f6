package models

import "time"

// SystemSetting is a key/value row. Pricing, add-on and booking-rule config
// live here as JSON values parsed by the pricing and booking services.
type SystemSetting struct {
	ID           int       `json:"id"`
	SettingKey   string    `json:"setting_key"`
	SettingValue string    `json:"setting_value"`
	Description  string    `json:"description,omitempty"`
	UpdatedBy    string    `json:"updated_by,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Well-known setting keys
const (
	SettingKeyPricing              = "pricing"               // JSON: per event type per arrangement price
	SettingKeyAddOns               = "addons"                // JSON: pre-drink / after-party config
	SettingKeyBookingRules         = "booking_rules"         // JSON: BookingRules
	SettingKeyOverbookingAllowance = "overbooking_allowance" // int, seats past capacity a force-book may take
	SettingKeyOptionHoldDays       = "option_hold_days"      // int, default 7
	SettingKeyCompanyInfo          = "company_info"          // JSON, used on invoices
)

// BookingRules mirror the admin configuration screen
type BookingRules struct {
	DefaultOpenDaysBefore      int  `json:"default_open_days_before"`
	DefaultCutoffHoursBefore   int  `json:"default_cutoff_hours_before"`
	SoftCapacityWarningPercent int  `json:"soft_capacity_warning_percent"`
	EnableWaitlist             bool `json:"enable_waitlist"`
	DefaultCapacity            int  `json:"default_capacity"`
}
