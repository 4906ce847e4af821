// Package db owns the handle to the embedded SQLite store: opening the
// single logical connection, the idempotent schema bootstrap, and a health
// probe.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the SQLite database at path and verifies the connection.
// Foreign-key enforcement is switched on so that deleting a patient
// cascades to its appointments and invoices. The pool is capped at one
// open connection: all access is serialized through a single logical
// connection and every mutation auto-commits.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return conn, nil
}
