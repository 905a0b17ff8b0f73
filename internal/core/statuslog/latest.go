// Package statuslog contains the pure business logic for status observations.
// This is part of the Functional Core - no I/O, only pure functions.
package statuslog

import (
	"fmt"
	"strings"
	"time"

	"github.com/juju/errors"
)

// MaxStatusLength bounds the status value accepted from the prober.
const MaxStatusLength = 64

// Observation is the part of a status log entry that decides recency.
type Observation struct {
	ID        int64
	Timestamp time.Time
}

// After reports whether a is more recent than b: greater timestamp first,
// then greater ID.
func After(a, b Observation) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.ID > b.ID
}

// ResolveLimit clamps a requested history page size into [1, max], using def
// for non-positive requests.
func ResolveLimit(requested, def, max int) int {
	if requested <= 0 {
		requested = def
	}
	if requested > max {
		return max
	}
	return requested
}

// RecordStatusContext provides context for the record guard.
type RecordStatusContext struct {
	ServiceID int64
	Status    string
	Timestamp time.Time
}

// RecordStatusResult is the normalized observation to persist.
type RecordStatusResult struct {
	Status    string
	Timestamp time.Time
}

// PrepareRecord validates an observation and normalizes it: the status is
// trimmed and a zero timestamp becomes now. Timestamps are stored in UTC.
func PrepareRecord(ctx RecordStatusContext, now time.Time) (RecordStatusResult, error) {
	if ctx.ServiceID <= 0 {
		return RecordStatusResult{}, errors.NewNotValid(nil, fmt.Sprintf("service id %d is not valid", ctx.ServiceID))
	}

	status := strings.TrimSpace(ctx.Status)
	if status == "" {
		return RecordStatusResult{}, errors.NewNotValid(nil, "status cannot be empty")
	}
	if len(status) > MaxStatusLength {
		return RecordStatusResult{}, errors.NewNotValid(nil, fmt.Sprintf("status exceeds %d characters", MaxStatusLength))
	}

	ts := ctx.Timestamp
	if ts.IsZero() {
		ts = now
	}

	return RecordStatusResult{Status: status, Timestamp: ts.UTC()}, nil
}
