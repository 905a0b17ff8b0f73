// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/juju/errors"

	"github.com/example/monitor/internal/ports/secondary"
)

const serviceColumns = "id, url, name, description, metadata, created_at"

// ServiceRepository implements secondary.ServiceRepository with SQLite.
type ServiceRepository struct {
	db *sql.DB
}

// NewServiceRepository creates a new SQLite service repository.
func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// Create persists a new service. URL uniqueness is enforced by the
// idx_services_url unique index.
func (r *ServiceRepository) Create(ctx context.Context, service *secondary.ServiceRecord) (int64, error) {
	var name, description sql.NullString
	if service.Name != "" {
		name = sql.NullString{String: service.Name, Valid: true}
	}
	if service.Description != "" {
		description = sql.NullString{String: service.Description, Valid: true}
	}

	metadata, err := encodeMetadata(service.Metadata)
	if err != nil {
		return 0, errors.NewNotValid(err, "service metadata")
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO services (url, name, description, metadata) VALUES (?, ?, ?, ?)",
		service.URL, name, description, metadata,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, errors.AlreadyExistsf("service with url %q", service.URL)
		}
		return 0, persistenceErr("create service", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, persistenceErr("read service id", err)
	}

	return id, nil
}

// GetByID retrieves a service by its ID.
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*secondary.ServiceRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+serviceColumns+" FROM services WHERE id = ?",
		id,
	)
	record, err := scanService(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("service %d", id)
	}
	if err != nil {
		return nil, persistenceErr("get service", err)
	}
	return record, nil
}

// GetByURL retrieves a service by its exact URL.
func (r *ServiceRepository) GetByURL(ctx context.Context, url string) (*secondary.ServiceRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+serviceColumns+" FROM services WHERE url = ?",
		url,
	)
	record, err := scanService(row)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("service with url %q", url)
	}
	if err != nil {
		return nil, persistenceErr("get service by url", err)
	}
	return record, nil
}

// List retrieves every service ordered by ID.
func (r *ServiceRepository) List(ctx context.Context) ([]*secondary.ServiceRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+serviceColumns+" FROM services ORDER BY id ASC")
	if err != nil {
		return nil, persistenceErr("list services", err)
	}
	defer rows.Close()

	var services []*secondary.ServiceRecord
	for rows.Next() {
		record, err := scanService(rows)
		if err != nil {
			return nil, persistenceErr("scan service", err)
		}
		services = append(services, record)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceErr("list services", err)
	}

	return services, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanService(row rowScanner) (*secondary.ServiceRecord, error) {
	var (
		name        sql.NullString
		description sql.NullString
		metadata    sql.NullString
		createdAt   time.Time
	)

	record := &secondary.ServiceRecord{}
	if err := row.Scan(&record.ID, &record.URL, &name, &description, &metadata, &createdAt); err != nil {
		return nil, err
	}

	decoded, err := decodeMetadata(metadata)
	if err != nil {
		return nil, err
	}

	record.Name = name.String
	record.Description = description.String
	record.Metadata = decoded
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

func encodeMetadata(m map[string]string) (sql.NullString, error) {
	if len(m) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeMetadata(raw sql.NullString) (map[string]string, error) {
	if !raw.Valid || raw.String == "" || raw.String == "{}" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(raw.String), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Ensure ServiceRepository implements the interface
var _ secondary.ServiceRepository = (*ServiceRepository)(nil)
