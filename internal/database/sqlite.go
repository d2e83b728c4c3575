package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

var (
	db   *sql.DB
	once sync.Once
)

// Init opens the SQLite database at path, applies pragmas and runs pending
// migrations. Safe to call more than once; only the first call opens.
func Init(path string) error {
	var err error
	once.Do(func() {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			err = fmt.Errorf("failed to create database directory: %w", mkErr)
			return
		}

		db, err = sql.Open("sqlite", path)
		if err != nil {
			return
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)

		// WAL for concurrent readers while the ingester writes
		for _, pragma := range []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA busy_timeout=5000",
			"PRAGMA foreign_keys=ON",
		} {
			if _, err = db.Exec(pragma); err != nil {
				return
			}
		}

		if err = db.Ping(); err != nil {
			return
		}

		if err = Migrate(db); err != nil {
			return
		}

		log.Printf("[Database] Initialized: %s", path)
	})
	return err
}

// GetDB returns the database instance
func GetDB() *sql.DB {
	if db == nil {
		log.Fatal("Database not initialized. Call Init() first.")
	}
	return db
}

// Close closes the database connection
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Transaction executes a function within a database transaction
func Transaction(fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
