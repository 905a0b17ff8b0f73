package primary

import (
	"context"
	"time"
)

// ServiceStatusService defines the primary port for service and status-log
// operations. Every method returns plain values; callers never hold a handle
// back into the stores.
type ServiceStatusService interface {
	// FetchAll returns every service, ordered by ID.
	FetchAll(ctx context.Context) ([]*Service, error)

	// Fetch returns a service by ID or a NotFound error.
	Fetch(ctx context.Context, id int64) (*Service, error)

	// FetchByURL returns the service with exactly this URL or a NotFound error.
	FetchByURL(ctx context.Context, url string) (*Service, error)

	// Create validates and persists a new service.
	Create(ctx context.Context, req CreateServiceRequest) (*CreateServiceResponse, error)

	// FetchStatus returns the latest observation for a service or a NotFound
	// error naming the service ID.
	FetchStatus(ctx context.Context, serviceID int64) (*StatusLog, error)

	// RecordStatus appends an observation for an existing service.
	RecordStatus(ctx context.Context, req RecordStatusRequest) (*StatusLog, error)

	// ListStatus returns up to limit observations for a service, newest first.
	ListStatus(ctx context.Context, serviceID int64, limit int) ([]*StatusLog, error)

	// SubscribeStatus streams observations recorded after the call until ctx
	// is done, at which point the channel is closed.
	SubscribeStatus(ctx context.Context, serviceID int64) (<-chan *StatusLog, error)
}

// CreateServiceRequest contains parameters for creating a service.
type CreateServiceRequest struct {
	URL         string            `json:"url"`
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// CreateServiceResponse contains the result of creating a service.
type CreateServiceResponse struct {
	ServiceID int64
	Service   *Service
}

// RecordStatusRequest contains one observation from the prober.
// A zero Timestamp means "now".
type RecordStatusRequest struct {
	ServiceID int64     `json:"serviceId"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Service is the public representation of a monitored service.
type Service struct {
	ID          int64             `json:"id"`
	URL         string            `json:"url"`
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   string            `json:"createdAt,omitempty"`
}

// StatusLog is the public snapshot of one observation.
type StatusLog struct {
	ID        int64     `json:"id"`
	ServiceID int64     `json:"serviceId"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DefaultHistoryLimit bounds ListStatus when the caller passes a non-positive limit.
const DefaultHistoryLimit = 50

// MaxHistoryLimit is the largest page ListStatus will return.
const MaxHistoryLimit = 500
