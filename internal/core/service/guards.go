// Package service contains the pure business logic for service operations.
// Guards are pure functions that evaluate preconditions without side effects.
package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/juju/errors"
)

// MaxURLLength bounds the URL accepted for a service.
const MaxURLLength = 2048

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	// Conflict marks a rejection caused by existing state rather than bad input.
	Conflict bool
}

// Error converts the guard result to an error if not allowed.
// Conflicts satisfy errors.AlreadyExists, everything else errors.NotValid.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Conflict {
		return errors.NewAlreadyExists(nil, r.Reason)
	}
	return errors.NewNotValid(nil, r.Reason)
}

// CreateServiceContext provides context for service creation guards.
type CreateServiceContext struct {
	URL       string
	URLExists bool // true if a service with this URL already exists
	Metadata  map[string]string
}

// CanCreateService evaluates whether a service can be created.
// Rules:
// - URL must not be empty
// - URL must be absolute (scheme and host) and at most MaxURLLength bytes
// - Metadata keys must not be blank
// - URL must be unique
func CanCreateService(ctx CreateServiceContext) GuardResult {
	raw := strings.TrimSpace(ctx.URL)
	if raw == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "service url cannot be empty",
		}
	}

	if len(raw) > MaxURLLength {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("service url exceeds %d characters", MaxURLLength),
		}
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("service url %q must be absolute (scheme://host)", raw),
		}
	}

	for key := range ctx.Metadata {
		if strings.TrimSpace(key) == "" {
			return GuardResult{
				Allowed: false,
				Reason:  "service metadata keys cannot be empty",
			}
		}
	}

	if ctx.URLExists {
		return GuardResult{
			Allowed:  false,
			Reason:   fmt.Sprintf("service with url %q already exists", raw),
			Conflict: true,
		}
	}

	return GuardResult{Allowed: true}
}
