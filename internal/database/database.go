// Package database owns the sqlite connection lifecycle, schema
// versioning (goose), and the persistence functions backing the
// profile/wizard/vision/plan snapshot tables (store.go).
package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Initialize opens the sqlite connection, applies every pending
// migration, and layers non-fatal dev-data seeding on top.
func Initialize(dbPath string) (*sql.DB, error) {
	cleanPath := filepath.Clean(dbPath)
	if strings.Contains(cleanPath, "..") {
		return nil, fmt.Errorf("invalid database path: path traversal detected")
	}

	if err := os.MkdirAll(filepath.Dir(cleanPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cleanPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite single-writer optimization
	db.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Failed to close database connection: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := RunSeed(db); err != nil {
		log.Printf("Dev-data seed encountered errors: %v", err)
	}

	return db, nil
}
