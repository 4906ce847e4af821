package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema statements are idempotent; Bootstrap is safe to run on every
// startup against a store that already has the tables.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		name    TEXT NOT NULL,
		age     INTEGER NOT NULL,
		gender  TEXT NOT NULL,
		phone   TEXT NOT NULL,
		disease TEXT,
		status  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id INTEGER NOT NULL,
		doctor     TEXT NOT NULL,
		date       TEXT NOT NULL,
		time       TEXT NOT NULL,
		notes      TEXT,
		FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id       INTEGER NOT NULL,
		consultation_fee REAL NOT NULL,
		medicines_total  REAL NOT NULL,
		tax_pct          REAL NOT NULL,
		created_at       TEXT NOT NULL,
		FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
	)`,
}

// Bootstrap creates the three entity tables if they do not exist yet.
func Bootstrap(ctx context.Context, conn *sql.DB) error {
	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}
