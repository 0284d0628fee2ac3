package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// RunSeed applies non-fatal, idempotent dev-data seeding on top of the
// versioned schema RunMigrations already applied. It never fatally exits:
// failures to prepare or read the seed marker are returned to the caller,
// while a failed demo insert or marker write is logged and nil is
// returned, the same "proceed on failure" startup policy the teacher's hand-rolled migrator used before
// goose took over schema versioning.
func RunSeed(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}

	if err := ensureSeedMarkerTable(db); err != nil {
		return fmt.Errorf("ensure seed marker table: %w", err)
	}

	applied, err := isSeedApplied(db, "demo_profile")
	if err != nil {
		return fmt.Errorf("check seed marker: %w", err)
	}
	if applied {
		return nil
	}

	if err := seedDemoProfile(db); err != nil {
		log.Printf("demo profile seed failed: %v", err)
		return nil
	}
	if err := recordSeedApplied(db, "demo_profile"); err != nil {
		log.Printf("failed to record seed marker demo_profile: %v", err)
	}
	return nil
}

func ensureSeedMarkerTable(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS seed_markers (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT UNIQUE NOT NULL,
        applied_at DATETIME NOT NULL
    );`)
	return err
}

func isSeedApplied(db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(1) FROM seed_markers WHERE name = ?", name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func recordSeedApplied(db *sql.DB, name string) error {
	_, err := db.Exec("INSERT OR IGNORE INTO seed_markers (name, applied_at) VALUES (?, ?)", name, time.Now().UTC())
	return err
}

// seedDemoProfile inserts one demo profile row so a freshly provisioned
// deployment has a user_id to exercise GET/list flows against before any
// real submission has arrived.
func seedDemoProfile(db *sql.DB) error {
	_, err := db.Exec(`INSERT INTO profiles
        (id, user_id, full_name, date_of_birth, sex, primary_goal, train_days_per_week, activity_level, dietary_restriction, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), "demo-user", "Demo User", time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC),
		"female", "fat-loss", 4, "moderate", "", time.Now().UTC(), time.Now().UTC(),
	)
	return err
}
