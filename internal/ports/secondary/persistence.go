// Package secondary defines the driven ports: the persistence, cache and feed
// contracts the application core depends on.
package secondary

import (
	"context"
	"time"

	"github.com/juju/errors"
)

// PersistenceFailure marks any failure raised by a store while talking to the
// persistence engine (connection errors, constraint violations other than the
// url uniqueness rule, scan errors). Test with errors.Is.
const PersistenceFailure = errors.ConstError("persistence failure")

// ServiceRepository defines the secondary port for service persistence.
type ServiceRepository interface {
	// Create persists a new service and returns its assigned ID.
	// A duplicate URL yields an AlreadyExists error.
	Create(ctx context.Context, service *ServiceRecord) (int64, error)

	// GetByID retrieves a service by its ID. Missing rows yield NotFound.
	GetByID(ctx context.Context, id int64) (*ServiceRecord, error)

	// GetByURL retrieves a service by its exact URL. Missing rows yield NotFound.
	GetByURL(ctx context.Context, url string) (*ServiceRecord, error)

	// List retrieves every service ordered by ID.
	List(ctx context.Context) ([]*ServiceRecord, error)
}

// ServiceRecord represents a service as stored in persistence.
type ServiceRecord struct {
	ID          int64
	URL         string
	Name        string // Empty string means null
	Description string // Empty string means null
	Metadata    map[string]string
	CreatedAt   string
}

// StatusLogRepository defines the secondary port for the append-only status log.
type StatusLogRepository interface {
	// Append persists a new observation and returns its assigned ID.
	Append(ctx context.Context, log *StatusLogRecord) (int64, error)

	// GetLatest retrieves the most recent observation for a service: greatest
	// timestamp, ties broken by greatest ID. No observations yields NotFound.
	GetLatest(ctx context.Context, serviceID int64) (*StatusLogRecord, error)

	// List retrieves observations newest first.
	List(ctx context.Context, filters StatusLogFilters) ([]*StatusLogRecord, error)
}

// StatusLogRecord represents one observation as stored in persistence.
type StatusLogRecord struct {
	ID        int64
	ServiceID int64
	Status    string
	Message   string // Empty string means null
	Timestamp time.Time
	CreatedAt string
}

// StatusLogFilters contains filter options for querying status logs.
type StatusLogFilters struct {
	ServiceID int64
	Limit     int
}
