package models

import "time"

// FieldChange is one before/after pair inside an audit entry.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// AuditLogEntry is append-only. Entries are never updated or deleted.
type AuditLogEntry struct {
	ID         int           `json:"id"`
	Actor      string        `json:"actor"`
	Action     string        `json:"action"`
	EntityType string        `json:"entity_type"`
	EntityID   int           `json:"entity_id"`
	Changes    []FieldChange `json:"changes,omitempty"`
	Detail     string        `json:"detail,omitempty"`
	IPAddress  string        `json:"ip_address,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

type AuditLogFilter struct {
	Actor      string
	Action     string
	EntityType string
	EntityID   int
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}
