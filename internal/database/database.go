package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

const (
	connectMaxRetries = 10
	connectRetryDelay = 2 * time.Second
	pingTimeout       = 5 * time.Second
)

// Connect opens the master registry database and verifies the connection,
// retrying while the engine comes up. If schemaPath is non-empty the master
// schema file is applied before returning.
func Connect(ctx context.Context, dsn, schemaPath string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 1; i <= connectMaxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err = db.PingContext(pctx)
			cancel()
			if err == nil {
				break
			}
			_ = db.Close()
		}

		select {
		case <-time.After(connectRetryDelay):
		case <-ctx.Done():
			return nil, fmt.Errorf("master store connect canceled: %w", ctx.Err())
		}
	}
	if err != nil {
		return nil, fmt.Errorf("master store unreachable after %d attempts: %w", connectMaxRetries, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if schemaPath != "" {
		if err := ApplySchema(db, schemaPath); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// ApplySchema reads and executes a schema file against the given database.
func ApplySchema(db *sql.DB, schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}
	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("could not execute schema script %s: %w", schemaPath, err)
	}
	return nil
}
