package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration is one versioned schema change
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are applied in order; never edit an applied entry, append a new
// version instead.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_locations",
		SQL: `
			CREATE TABLE IF NOT EXISTS locations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				tst INTEGER NOT NULL,
				lat REAL NOT NULL,
				lon REAL NOT NULL,
				acc REAL NOT NULL DEFAULT 0,
				alt REAL NOT NULL DEFAULT 0,
				vel REAL NOT NULL DEFAULT 0,
				batt REAL NOT NULL DEFAULT 0,
				tid TEXT NOT NULL DEFAULT '',
				tag TEXT NOT NULL DEFAULT '',
				topic TEXT NOT NULL DEFAULT '',
				conn TEXT NOT NULL DEFAULT '',
				created_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
			);
			CREATE INDEX IF NOT EXISTS idx_locations_tst ON locations(tst);
		`,
	},
	{
		Version: 2,
		Name:    "index_locations_topic",
		SQL:     `CREATE INDEX IF NOT EXISTS idx_locations_topic ON locations(topic, tst);`,
	},
}

// Migrate applies all pending migrations
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query("SELECT version FROM migrations")
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		log.Printf("[Database] Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}
