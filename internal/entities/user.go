package entities

import (
	"database/sql"
	"time"
)

// Role is the account role stored on the users table. There are
// exactly two: administrators manage accounts and see the admin
// dashboard, technicians record interventions.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTechnician
}

type User struct {
	ID           uint64
	Username     string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	Email        sql.NullString
	Phone        sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
