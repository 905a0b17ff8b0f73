// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Instead, use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/monitor/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// The pool is pinned to one connection: every :memory: connection is a
// separate database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	// Use the authoritative schema from schema.go
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedService inserts a test service and returns its ID.
func seedService(t *testing.T, db *sql.DB, url string) int64 {
	t.Helper()
	if url == "" {
		url = "https://example.com"
	}
	res, err := db.Exec("INSERT INTO services (url) VALUES (?)", url)
	if err != nil {
		t.Fatalf("failed to seed service: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read seeded service id: %v", err)
	}
	return id
}

// seedStatusLog inserts a raw observation and returns its ID.
func seedStatusLog(t *testing.T, db *sql.DB, serviceID int64, status string, ts time.Time) int64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO status_logs (service_id, status, observed_at) VALUES (?, ?, ?)",
		serviceID, status, ts.UTC().UnixNano(),
	)
	if err != nil {
		t.Fatalf("failed to seed status log: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read seeded status log id: %v", err)
	}
	return id
}
