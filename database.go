package csvsearch

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// MemoryTarget names the in-memory database.
const MemoryTarget = ":memory:"

// IsMemoryTarget reports whether target selects an in-memory database.
// An empty target, "-" and ":memory:" all do.
func IsMemoryTarget(target string) bool {
	switch strings.TrimSpace(target) {
	case "", "-", MemoryTarget:
		return true
	}
	return false
}

// OpenDatabase opens the embedded SQLite database at target, or an in-memory
// one when IsMemoryTarget(target). The pool holds a single connection since
// every in-memory connection is its own database.
func OpenDatabase(target string) (*sql.DB, error) {
	dsn := target
	if IsMemoryTarget(target) {
		dsn = MemoryTarget
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", dsn, err)
	}
	return db, nil
}
