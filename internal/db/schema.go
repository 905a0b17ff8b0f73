package db

// SchemaSQL is the complete schema after all migrations have run.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema used by tests.
// Repository tests load it through GetSchemaSQL() instead of declaring their
// own tables, so a column referenced by repository code but missing here fails
// immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration to the migrations list
//  2. Update SchemaSQL here
//  3. Run `go test ./internal/db/...` to verify alignment
const SchemaSQL = `
-- Services (monitored endpoints)
CREATE TABLE IF NOT EXISTS services (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url TEXT NOT NULL,
	name TEXT,
	description TEXT,
	metadata TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_services_url ON services(url);

-- Status logs (append-only observations, written by the prober)
CREATE TABLE IF NOT EXISTS status_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	service_id INTEGER NOT NULL,
	status TEXT NOT NULL CHECK(status <> ''),
	message TEXT,
	observed_at INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (service_id) REFERENCES services(id)
);

CREATE INDEX IF NOT EXISTS idx_status_logs_service_observed ON status_logs(service_id, observed_at);

CREATE TRIGGER IF NOT EXISTS trg_status_logs_no_update
BEFORE UPDATE ON status_logs
BEGIN
	SELECT RAISE(ABORT, 'status_logs is append-only');
END;

CREATE TRIGGER IF NOT EXISTS trg_status_logs_no_delete
BEFORE DELETE ON status_logs
BEGIN
	SELECT RAISE(ABORT, 'status_logs is append-only');
END;
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
