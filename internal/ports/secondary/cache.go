package secondary

import "context"

// StatusCache caches the latest observation per service in front of the
// status log store.
type StatusCache interface {
	// GetLatest returns the cached entry; ok is false on a miss.
	GetLatest(ctx context.Context, serviceID int64) (record *StatusLogRecord, ok bool, err error)

	// SetLatest stores the entry as the latest for its service unless the
	// cached entry is more recent (greater timestamp, then greater ID). The
	// comparison and the write are atomic.
	SetLatest(ctx context.Context, record *StatusLogRecord) error

	// Invalidate drops the cached entry for a service.
	Invalidate(ctx context.Context, serviceID int64) error
}
