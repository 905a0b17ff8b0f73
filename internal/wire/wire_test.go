package wire

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/juju/errors"

	"github.com/example/monitor/internal/config"
	"github.com/example/monitor/internal/logger"
	"github.com/example/monitor/internal/ports/primary"
)

func newTestContainer(t *testing.T) *Container {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "monitor.db")

	c, err := New(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNew_WithoutRedis(t *testing.T) {
	c := newTestContainer(t)

	if c.Redis != nil || c.Cache != nil {
		t.Error("expected redis to stay disabled without an address")
	}
	if err := c.Ready(context.Background()); err != nil {
		t.Errorf("Ready failed: %v", err)
	}
}

func TestContainer_EndToEnd(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	resp, err := c.Service.Create(ctx, primary.CreateServiceRequest{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.ServiceID != 1 {
		t.Fatalf("ServiceID = %d, want 1", resp.ServiceID)
	}

	if _, err := c.Service.FetchStatus(ctx, 1); !errors.Is(err, errors.NotFound) {
		t.Fatalf("expected NotFound before any observation, got %v", err)
	}

	for _, obs := range []struct {
		status string
		ts     int64
	}{{"up", 100}, {"down", 200}} {
		if _, err := c.Service.RecordStatus(ctx, primary.RecordStatusRequest{
			ServiceID: 1, Status: obs.status, Timestamp: time.Unix(obs.ts, 0),
		}); err != nil {
			t.Fatalf("RecordStatus failed: %v", err)
		}
	}

	status, err := c.Service.FetchStatus(ctx, 1)
	if err != nil {
		t.Fatalf("FetchStatus failed: %v", err)
	}
	if status.Status != "down" || status.Timestamp.Unix() != 200 {
		t.Errorf("latest = %s@%d, want down@200", status.Status, status.Timestamp.Unix())
	}

	if _, err := c.Service.Fetch(ctx, 999); !errors.Is(err, errors.NotFound) {
		t.Errorf("expected NotFound for unknown service, got %v", err)
	}
}

func TestContainer_Adapters(t *testing.T) {
	c := newTestContainer(t)
	var buf bytes.Buffer

	if err := c.ServiceAdapter(&buf).Create(context.Background(), primary.CreateServiceRequest{URL: "https://example.com"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Created service 1") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestNew_InvalidDatabasePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	cfg := config.DefaultConfig()
	cfg.DatabasePath = filepath.Join(blocker, "monitor.db")

	if _, err := New(context.Background(), cfg, logger.Nop()); err == nil {
		t.Fatal("expected error, got nil")
	}
}
