package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/monitor/internal/adapters/sqlite"
	"github.com/example/monitor/internal/ports/secondary"
)

// Integration tests verify cross-repository workflows and constraints.

func TestIntegration_LatestStatusScenario(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	services := sqlite.NewServiceRepository(db)
	logs := sqlite.NewStatusLogRepository(db)

	serviceID, err := services.Create(ctx, &secondary.ServiceRecord{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("Create service failed: %v", err)
	}
	if serviceID != 1 {
		t.Fatalf("serviceID = %d, want 1", serviceID)
	}

	if _, err := logs.Append(ctx, &secondary.StatusLogRecord{
		ServiceID: serviceID, Status: "up", Timestamp: time.Unix(100, 0),
	}); err != nil {
		t.Fatalf("Append up failed: %v", err)
	}

	latest, err := logs.GetLatest(ctx, serviceID)
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if latest.Status != "up" || !latest.Timestamp.Equal(time.Unix(100, 0)) {
		t.Errorf("latest = %s@%v, want up@100", latest.Status, latest.Timestamp.Unix())
	}

	if _, err := logs.Append(ctx, &secondary.StatusLogRecord{
		ServiceID: serviceID, Status: "down", Timestamp: time.Unix(200, 0),
	}); err != nil {
		t.Fatalf("Append down failed: %v", err)
	}

	latest, err = logs.GetLatest(ctx, serviceID)
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if latest.Status != "down" || latest.Timestamp.Unix() != 200 {
		t.Errorf("latest = %s@%v, want down@200", latest.Status, latest.Timestamp.Unix())
	}
}

func TestIntegration_AppendDoesNotMutateHistory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	services := sqlite.NewServiceRepository(db)
	logs := sqlite.NewStatusLogRepository(db)

	serviceID, err := services.Create(ctx, &secondary.ServiceRecord{URL: "https://example.com"})
	if err != nil {
		t.Fatalf("Create service failed: %v", err)
	}

	for i, status := range []string{"up", "degraded", "down"} {
		if _, err := logs.Append(ctx, &secondary.StatusLogRecord{
			ServiceID: serviceID, Status: status, Timestamp: time.Unix(int64(i+1)*100, 0),
		}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	before, err := logs.List(ctx, secondary.StatusLogFilters{ServiceID: serviceID})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if _, err := logs.Append(ctx, &secondary.StatusLogRecord{
		ServiceID: serviceID, Status: "up", Timestamp: time.Unix(400, 0),
	}); err != nil {
		t.Fatalf("Append t4 failed: %v", err)
	}

	after, err := logs.List(ctx, secondary.StatusLogFilters{ServiceID: serviceID})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("len(after) = %d, want %d", len(after), len(before)+1)
	}

	// after[0] is the new entry; the rest must equal the earlier snapshot.
	for i, prev := range before {
		cur := after[i+1]
		if cur.ID != prev.ID || cur.Status != prev.Status || !cur.Timestamp.Equal(prev.Timestamp) {
			t.Errorf("entry %d changed: before %+v, after %+v", prev.ID, prev, cur)
		}
	}
}

func TestIntegration_ServicesAreIsolated(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	services := sqlite.NewServiceRepository(db)
	logs := sqlite.NewStatusLogRepository(db)

	a, _ := services.Create(ctx, &secondary.ServiceRecord{URL: "https://a.example.com"})
	b, _ := services.Create(ctx, &secondary.ServiceRecord{URL: "https://b.example.com"})

	if _, err := logs.Append(ctx, &secondary.StatusLogRecord{ServiceID: a, Status: "down", Timestamp: time.Unix(500, 0)}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := logs.Append(ctx, &secondary.StatusLogRecord{ServiceID: b, Status: "up", Timestamp: time.Unix(100, 0)}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	latest, err := logs.GetLatest(ctx, b)
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if latest.Status != "up" {
		t.Errorf("service b status = %q, want %q", latest.Status, "up")
	}
}
