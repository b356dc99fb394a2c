package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a schema migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of schema changes. Versions are unique and
// only ever appended.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_pois",
		SQL: `
			CREATE TABLE IF NOT EXISTS pois (
				id TEXT PRIMARY KEY,
				type TEXT NOT NULL,
				label TEXT NOT NULL DEFAULT '',
				slice_x REAL NOT NULL DEFAULT 0,
				slice_y REAL NOT NULL DEFAULT 0,
				lat REAL NOT NULL DEFAULT 0,
				lon REAL NOT NULL DEFAULT 0,
				mile_marker REAL NOT NULL DEFAULT 0,
				notes TEXT NOT NULL DEFAULT '',
				created_at TEXT DEFAULT (datetime('now')),
				updated_at TEXT DEFAULT (datetime('now'))
			)
		`,
	},
	{
		Version: 2,
		Name:    "index_pois_type",
		SQL:     `CREATE INDEX IF NOT EXISTS idx_pois_type ON pois(type)`,
	},
}

// Migrate applies any pending migrations
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("failed to apply migration %d_%s: %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		log.Printf("Applied migration %d_%s", m.Version, m.Name)
	}

	return nil
}

// initMigrationsTable creates the migrations tracking table
func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// appliedMigrations returns the set of applied migration versions
func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}
