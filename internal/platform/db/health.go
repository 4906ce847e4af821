package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Health verifies that the store connection is usable: the connection
// responds and the schema bootstrap has run.
func Health(ctx context.Context, conn *sql.DB) error {
	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	var n int
	err := conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'patients'`).Scan(&n)
	if err != nil {
		return fmt.Errorf("check schema: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("schema not bootstrapped: patients table missing")
	}
	return nil
}
