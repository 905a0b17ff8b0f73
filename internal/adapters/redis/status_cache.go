package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/monitor/internal/core/statuslog"
	"github.com/example/monitor/internal/ports/secondary"
)

// maxSetAttempts bounds the optimistic retries of SetLatest when the key
// changes between WATCH and EXEC.
const maxSetAttempts = 5

// Client is the subset of go-redis used by the cache. *redis.Client and
// *redis.ClusterClient both satisfy it.
type Client interface {
	redis.Cmdable
	Watch(ctx context.Context, fn func(*redis.Tx) error, keys ...string) error
}

// StatusCache keeps the latest observation per service in Redis.
type StatusCache struct {
	client Client
	ttl    time.Duration
}

// NewStatusCache creates a cache whose entries expire after ttl.
func NewStatusCache(client Client, ttl time.Duration) *StatusCache {
	return &StatusCache{client: client, ttl: ttl}
}

// cachedStatus is the JSON snapshot stored under LatestStatusKey.
type cachedStatus struct {
	ID        int64  `json:"id"`
	ServiceID int64  `json:"service_id"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"observed_at"` // unix nanos, UTC
	CreatedAt string `json:"created_at,omitempty"`
}

func encodeStatus(record *secondary.StatusLogRecord) ([]byte, error) {
	return json.Marshal(cachedStatus{
		ID:        record.ID,
		ServiceID: record.ServiceID,
		Status:    record.Status,
		Message:   record.Message,
		Timestamp: record.Timestamp.UTC().UnixNano(),
		CreatedAt: record.CreatedAt,
	})
}

func decodeStatus(data []byte) (*secondary.StatusLogRecord, error) {
	var c cachedStatus
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &secondary.StatusLogRecord{
		ID:        c.ID,
		ServiceID: c.ServiceID,
		Status:    c.Status,
		Message:   c.Message,
		Timestamp: time.Unix(0, c.Timestamp).UTC(),
		CreatedAt: c.CreatedAt,
	}, nil
}

// GetLatest returns the cached observation, or ok=false on a miss.
func (c *StatusCache) GetLatest(ctx context.Context, serviceID int64) (*secondary.StatusLogRecord, bool, error) {
	data, err := c.client.Get(ctx, LatestStatusKey(serviceID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached status: %w", err)
	}

	record, err := decodeStatus(data)
	if err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached status: %w", err)
	}
	return record, true, nil
}

// SetLatest stores record as the latest observation for its service unless
// the cached entry is more recent. The read and the write run under WATCH so
// a concurrent writer cannot slip an older entry over a newer one.
func (c *StatusCache) SetLatest(ctx context.Context, record *secondary.StatusLogRecord) error {
	data, err := encodeStatus(record)
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	key := LatestStatusKey(record.ServiceID)

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			// an undecodable snapshot is overwritten
			if cached, derr := decodeStatus(current); derr == nil && !supersedes(record, cached) {
				return nil
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxSetAttempts; attempt++ {
		err := c.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to cache status: %w", err)
		}
		return nil
	}
	return fmt.Errorf("failed to cache status for service %d: key kept changing", record.ServiceID)
}

// supersedes reports whether incoming may replace cached: it must not be
// older. Re-setting the same entry refreshes its TTL.
func supersedes(incoming, cached *secondary.StatusLogRecord) bool {
	return !statuslog.After(observationOf(cached), observationOf(incoming))
}

func observationOf(record *secondary.StatusLogRecord) statuslog.Observation {
	return statuslog.Observation{ID: record.ID, Timestamp: record.Timestamp}
}

// Invalidate drops the cached observation for a service.
func (c *StatusCache) Invalidate(ctx context.Context, serviceID int64) error {
	if err := c.client.Del(ctx, LatestStatusKey(serviceID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached status: %w", err)
	}
	return nil
}

// Flush removes every cached latest-status entry.
func (c *StatusCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, KeyPrefixLatestStatus+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush status cache: %w", err)
	}
	return nil
}

var _ secondary.StatusCache = (*StatusCache)(nil)
