package entities

import (
	"database/sql"
	"time"
)

// Intervention is one maintenance log entry for a piece of equipment.
// The technician and the outcome are optional: an intervention can be
// recorded before it is assigned or concluded.
type Intervention struct {
	ID              uint64
	Date            time.Time
	Description     string
	DurationMinutes int
	EquipmentID     uint64
	UserID          sql.NullInt64
	OutcomeID       sql.NullInt64
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields for list views and export.
	EquipmentName      sql.NullString
	TechnicianName     sql.NullString
	OutcomeDescription sql.NullString
}
