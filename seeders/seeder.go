package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// SeedDictionaries fills the three reference tables. Idempotent:
// existing descriptions are left alone.
func SeedDictionaries(ctx context.Context, db *pgxpool.Pool) error {
	tables := map[string][]string{
		"equipment_types":       equipmentTypes,
		"equipment_statuses":    equipmentStatuses,
		"intervention_outcomes": interventionOutcomes,
	}
	for table, descriptions := range tables {
		for _, description := range descriptions {
			query := fmt.Sprintf("INSERT INTO %s (description) VALUES ($1) ON CONFLICT (description) DO NOTHING", table)
			if _, err := db.Exec(ctx, query, description); err != nil {
				return fmt.Errorf("seeding %s: %w", table, err)
			}
		}
	}
	return nil
}

func SeedLocations(ctx context.Context, db *pgxpool.Pool) error {
	for _, location := range demoLocations {
		_, err := db.Exec(ctx,
			`INSERT INTO locations (name, building, floor, department) VALUES ($1, $2, $3, $4) ON CONFLICT (name) DO NOTHING`,
			location.Name, location.Building, location.Floor, location.Department)
		if err != nil {
			return fmt.Errorf("seeding locations: %w", err)
		}
	}
	return nil
}

func SeedUsers(ctx context.Context, db *pgxpool.Pool) error {
	for _, user := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password for %s: %w", user.Username, err)
		}
		_, err = db.Exec(ctx,
			`INSERT INTO users (username, password_hash, role, first_name, last_name, email)
			 VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (username) DO NOTHING`,
			user.Username, string(hash), user.Role, user.FirstName, user.LastName, user.Email)
		if err != nil {
			return fmt.Errorf("seeding users: %w", err)
		}
	}
	return nil
}

func SeedEquipments(ctx context.Context, db *pgxpool.Pool) error {
	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(id) FROM equipments").Scan(&count); err != nil {
		return fmt.Errorf("checking equipments: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, equipment := range demoEquipments {
		_, err := db.Exec(ctx,
			`INSERT INTO equipments (name, type_id, status_id, location_id) VALUES ($1, $2, $3, $4)`,
			equipment.Name, equipment.TypeID, equipment.StatusID, equipment.LocationID)
		if err != nil {
			return fmt.Errorf("seeding equipments: %w", err)
		}
	}
	return nil
}
