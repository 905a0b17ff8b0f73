package service

import (
	"strings"
	"testing"

	"github.com/juju/errors"
)

func TestCanCreateService(t *testing.T) {
	tests := []struct {
		name         string
		ctx          CreateServiceContext
		wantAllowed  bool
		wantReason   string
		wantConflict bool
	}{
		{
			name:        "can create service with https url",
			ctx:         CreateServiceContext{URL: "https://example.com"},
			wantAllowed: true,
		},
		{
			name:        "can create service with port and path",
			ctx:         CreateServiceContext{URL: "http://10.0.0.5:8080/healthz"},
			wantAllowed: true,
		},
		{
			name:        "cannot create service with empty url",
			ctx:         CreateServiceContext{URL: ""},
			wantAllowed: false,
			wantReason:  "service url cannot be empty",
		},
		{
			name:        "cannot create service with whitespace-only url",
			ctx:         CreateServiceContext{URL: "   "},
			wantAllowed: false,
			wantReason:  "service url cannot be empty",
		},
		{
			name:        "cannot create service with relative url",
			ctx:         CreateServiceContext{URL: "example.com/health"},
			wantAllowed: false,
			wantReason:  `service url "example.com/health" must be absolute (scheme://host)`,
		},
		{
			name:        "cannot create service with oversized url",
			ctx:         CreateServiceContext{URL: "https://example.com/" + strings.Repeat("a", MaxURLLength)},
			wantAllowed: false,
			wantReason:  "service url exceeds 2048 characters",
		},
		{
			name: "cannot create service with blank metadata key",
			ctx: CreateServiceContext{
				URL:      "https://example.com",
				Metadata: map[string]string{" ": "x"},
			},
			wantAllowed: false,
			wantReason:  "service metadata keys cannot be empty",
		},
		{
			name:         "cannot create service with duplicate url",
			ctx:          CreateServiceContext{URL: "https://example.com", URLExists: true},
			wantAllowed:  false,
			wantReason:   `service with url "https://example.com" already exists`,
			wantConflict: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreateService(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
			if result.Conflict != tt.wantConflict {
				t.Errorf("Conflict = %v, want %v", result.Conflict, tt.wantConflict)
			}
		})
	}
}

func TestGuardResult_Error(t *testing.T) {
	t.Run("allowed result returns nil error", func(t *testing.T) {
		result := GuardResult{Allowed: true}
		if err := result.Error(); err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	})

	t.Run("invalid input returns NotValid", func(t *testing.T) {
		err := GuardResult{Allowed: false, Reason: "test reason"}.Error()
		if !errors.Is(err, errors.NotValid) {
			t.Fatalf("expected NotValid, got %v", err)
		}
		if err.Error() != "test reason" {
			t.Errorf("error = %q, want %q", err.Error(), "test reason")
		}
	})

	t.Run("conflict returns AlreadyExists", func(t *testing.T) {
		err := GuardResult{Allowed: false, Reason: "dup", Conflict: true}.Error()
		if !errors.Is(err, errors.AlreadyExists) {
			t.Fatalf("expected AlreadyExists, got %v", err)
		}
	})
}
