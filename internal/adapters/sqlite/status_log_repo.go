// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/juju/errors"

	"github.com/example/monitor/internal/ports/secondary"
)

const statusLogColumns = "id, service_id, status, message, observed_at, created_at"

// StatusLogRepository implements secondary.StatusLogRepository with SQLite.
// Rows are only ever inserted; the schema rejects UPDATE and DELETE.
type StatusLogRepository struct {
	db *sql.DB
}

// NewStatusLogRepository creates a new SQLite status log repository.
func NewStatusLogRepository(db *sql.DB) *StatusLogRepository {
	return &StatusLogRepository{db: db}
}

// Append persists a new observation. Timestamps are stored as UTC unix
// nanoseconds so ordering is exact.
func (r *StatusLogRepository) Append(ctx context.Context, log *secondary.StatusLogRecord) (int64, error) {
	var message sql.NullString
	if log.Message != "" {
		message = sql.NullString{String: log.Message, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO status_logs (service_id, status, message, observed_at) VALUES (?, ?, ?, ?)",
		log.ServiceID, log.Status, message, log.Timestamp.UTC().UnixNano(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, errors.NotFoundf("service %d", log.ServiceID)
		}
		return 0, persistenceErr("append status log", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, persistenceErr("read status log id", err)
	}

	return id, nil
}

// GetLatest retrieves the most recent observation for a service.
func (r *StatusLogRepository) GetLatest(ctx context.Context, serviceID int64) (*secondary.StatusLogRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+statusLogColumns+" FROM status_logs WHERE service_id = ? ORDER BY observed_at DESC, id DESC LIMIT 1",
		serviceID,
	)
	record, err := scanStatusLog(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("status log for service %d", serviceID)
	}
	if err != nil {
		return nil, persistenceErr("get latest status log", err)
	}
	return record, nil
}

// List retrieves observations matching the given filters, newest first.
func (r *StatusLogRepository) List(ctx context.Context, filters secondary.StatusLogFilters) ([]*secondary.StatusLogRecord, error) {
	query := "SELECT " + statusLogColumns + " FROM status_logs WHERE 1=1"
	args := []any{}

	if filters.ServiceID > 0 {
		query += " AND service_id = ?"
		args = append(args, filters.ServiceID)
	}

	query += " ORDER BY observed_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistenceErr("list status logs", err)
	}
	defer rows.Close()

	var logs []*secondary.StatusLogRecord
	for rows.Next() {
		record, err := scanStatusLog(rows)
		if err != nil {
			return nil, persistenceErr("scan status log", err)
		}
		logs = append(logs, record)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("list status logs", err)
	}

	return logs, nil
}

func scanStatusLog(row rowScanner) (*secondary.StatusLogRecord, error) {
	var (
		message    sql.NullString
		observedAt int64
		createdAt  time.Time
	)

	record := &secondary.StatusLogRecord{}
	if err := row.Scan(&record.ID, &record.ServiceID, &record.Status, &message, &observedAt, &createdAt); err != nil {
		return nil, err
	}

	record.Message = message.String
	record.Timestamp = time.Unix(0, observedAt).UTC()
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Ensure StatusLogRepository implements the interface
var _ secondary.StatusLogRepository = (*StatusLogRepository)(nil)
