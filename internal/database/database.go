package database

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

//go:embed schema.sql
var schemaSQL string

//go:embed seed_spots.sql
var seedSpotsSQL string

var DB *sql.DB

// InitDB opens the connection pool and verifies it with a ping.
func InitDB(host, port, user, password, dbname, sslmode string) error {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("could not open database: %w", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("could not connect to database: %w", err)
	}

	return nil
}

// ApplySchema creates tables, constraints and indexes. Every statement is
// idempotent, so it is safe to run on every startup.
func ApplySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("could not apply database schema: %w", err)
	}
	return nil
}

// SeedSpots loads the default spot catalog. Existing rows are left untouched.
func SeedSpots(db *sql.DB) error {
	if _, err := db.Exec(seedSpotsSQL); err != nil {
		return fmt.Errorf("could not seed spot catalog: %w", err)
	}
	return nil
}

// GetDB returns the database connection pool
func GetDB() *sql.DB {
	return DB
}
