package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/juju/errors"

	"github.com/example/monitor/internal/adapters/sqlite"
	"github.com/example/monitor/internal/ports/secondary"
)

func TestStatusLogRepository_Append(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewStatusLogRepository(db)
	ctx := context.Background()

	serviceID := seedService(t, db, "")

	t.Run("appends observation and round-trips the timestamp", func(t *testing.T) {
		ts := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.FixedZone("CET", 3600))
		id, err := repo.Append(ctx, &secondary.StatusLogRecord{
			ServiceID: serviceID,
			Status:    "up",
			Message:   "200 OK in 31ms",
			Timestamp: ts,
		})
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if id != 1 {
			t.Errorf("id = %d, want 1", id)
		}

		got, err := repo.GetLatest(ctx, serviceID)
		if err != nil {
			t.Fatalf("GetLatest failed: %v", err)
		}
		if !got.Timestamp.Equal(ts) {
			t.Errorf("Timestamp = %v, want %v", got.Timestamp, ts)
		}
		if got.Timestamp.Location() != time.UTC {
			t.Errorf("Timestamp location = %v, want UTC", got.Timestamp.Location())
		}
		if got.Message != "200 OK in 31ms" {
			t.Errorf("Message = %q", got.Message)
		}
	})

	t.Run("unknown service is NotFound", func(t *testing.T) {
		_, err := repo.Append(ctx, &secondary.StatusLogRecord{
			ServiceID: 404,
			Status:    "up",
			Timestamp: time.Now(),
		})
		if !errors.Is(err, errors.NotFound) {
			t.Fatalf("expected NotFound, got %v", err)
		}
	})

	t.Run("empty status is a persistence failure", func(t *testing.T) {
		_, err := repo.Append(ctx, &secondary.StatusLogRecord{
			ServiceID: serviceID,
			Timestamp: time.Now(),
		})
		if !errors.Is(err, secondary.PersistenceFailure) {
			t.Fatalf("expected PersistenceFailure, got %v", err)
		}
	})
}

func TestStatusLogRepository_GetLatest(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewStatusLogRepository(db)
	ctx := context.Background()

	serviceID := seedService(t, db, "https://example.com")
	otherID := seedService(t, db, "https://other.example.com")

	t.Run("service without logs is NotFound naming the service", func(t *testing.T) {
		_, err := repo.GetLatest(ctx, serviceID)
		if !errors.Is(err, errors.NotFound) {
			t.Fatalf("expected NotFound, got %v", err)
		}
		if err.Error() != "status log for service 1 not found" {
			t.Errorf("error = %q", err.Error())
		}
	})

	base := time.Unix(1_700_000_000, 0)
	seedStatusLog(t, db, serviceID, "up", base.Add(1*time.Second))
	seedStatusLog(t, db, serviceID, "degraded", base.Add(3*time.Second))
	seedStatusLog(t, db, serviceID, "down", base.Add(2*time.Second))
	seedStatusLog(t, db, otherID, "up", base.Add(10*time.Second))

	t.Run("returns greatest timestamp not last inserted", func(t *testing.T) {
		got, err := repo.GetLatest(ctx, serviceID)
		if err != nil {
			t.Fatalf("GetLatest failed: %v", err)
		}
		if got.Status != "degraded" {
			t.Errorf("Status = %q, want %q", got.Status, "degraded")
		}
		if got.ServiceID != serviceID {
			t.Errorf("ServiceID = %d, want %d", got.ServiceID, serviceID)
		}
	})

	t.Run("equal timestamps break ties by greatest id", func(t *testing.T) {
		tieID := seedStatusLog(t, db, serviceID, "up", base.Add(3*time.Second))

		got, err := repo.GetLatest(ctx, serviceID)
		if err != nil {
			t.Fatalf("GetLatest failed: %v", err)
		}
		if got.ID != tieID {
			t.Errorf("ID = %d, want %d", got.ID, tieID)
		}
		if got.Status != "up" {
			t.Errorf("Status = %q, want %q", got.Status, "up")
		}
	})

	t.Run("sub-second ordering is exact", func(t *testing.T) {
		id := seedStatusLog(t, db, serviceID, "down", base.Add(3*time.Second+time.Nanosecond))

		got, err := repo.GetLatest(ctx, serviceID)
		if err != nil {
			t.Fatalf("GetLatest failed: %v", err)
		}
		if got.ID != id {
			t.Errorf("ID = %d, want %d", got.ID, id)
		}
	})
}

func TestStatusLogRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewStatusLogRepository(db)
	ctx := context.Background()

	serviceID := seedService(t, db, "https://example.com")
	otherID := seedService(t, db, "https://other.example.com")

	base := time.Unix(1_700_000_000, 0)
	for i, status := range []string{"up", "up", "down", "up"} {
		seedStatusLog(t, db, serviceID, status, base.Add(time.Duration(i)*time.Minute))
	}
	seedStatusLog(t, db, otherID, "down", base)

	t.Run("filters by service newest first", func(t *testing.T) {
		got, err := repo.List(ctx, secondary.StatusLogFilters{ServiceID: serviceID})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(got) != 4 {
			t.Fatalf("len = %d, want 4", len(got))
		}
		for i := 1; i < len(got); i++ {
			if got[i].Timestamp.After(got[i-1].Timestamp) {
				t.Errorf("entries out of order at %d", i)
			}
		}
		if got[1].Status != "down" {
			t.Errorf("got[1].Status = %q, want %q", got[1].Status, "down")
		}
	})

	t.Run("applies limit", func(t *testing.T) {
		got, err := repo.List(ctx, secondary.StatusLogFilters{ServiceID: serviceID, Limit: 2})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("no service filter lists everything", func(t *testing.T) {
		got, err := repo.List(ctx, secondary.StatusLogFilters{})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(got) != 5 {
			t.Errorf("len = %d, want 5", len(got))
		}
	})
}
