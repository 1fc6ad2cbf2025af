package entities

import (
	"database/sql"
	"time"
)

type Location struct {
	ID         uint64
	Name       string
	Building   sql.NullString
	Floor      sql.NullString
	Department sql.NullString
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
