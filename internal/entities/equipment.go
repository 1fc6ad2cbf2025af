package entities

import (
	"database/sql"
	"time"
)

// Equipment is a physical asset in the inventory. Type and status are
// mandatory references; an item can exist without a location.
type Equipment struct {
	ID          uint64
	Name        string
	Description sql.NullString
	TypeID      uint64
	StatusID    uint64
	LocationID  sql.NullInt64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined lookup descriptions, filled by list/find queries.
	TypeDescription   sql.NullString
	StatusDescription sql.NullString
	LocationName      sql.NullString
}
