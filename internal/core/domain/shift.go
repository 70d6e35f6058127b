package domain

import "time"

// ShiftType marks a clock event.
type ShiftType string

const (
	ShiftOnDuty  ShiftType = "OnDuty"
	ShiftOffDuty ShiftType = "OffDuty"
)

// Shift is an append-only clock on/off record. At is stored in UTC; the
// display string is produced at render time.
type Shift struct {
	ID    string    `json:"id"`
	Email string    `json:"email"`
	Type  ShiftType `json:"type"`
	At    time.Time `json:"at"`
}
