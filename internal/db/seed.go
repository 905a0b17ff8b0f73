package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates an empty database with development fixtures: a few
// services and a short observation history for each.
func SeedFixtures(database *sql.DB, now time.Time) error {
	services := []struct{ url, name, desc string }{
		{"https://example.com", "example", "Public landing page"},
		{"https://api.example.com/health", "api", "Public API health endpoint"},
		{"https://status.example.org", "status-page", "Third-party status page"},
	}

	ids := make([]int64, 0, len(services))
	for _, s := range services {
		res, err := database.Exec(
			"INSERT INTO services (url, name, description, metadata) VALUES (?, ?, ?, '{}')",
			s.url, s.name, s.desc,
		)
		if err != nil {
			return fmt.Errorf("seed services: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("seed services: %w", err)
		}
		ids = append(ids, id)
	}

	// Each service gets three observations a minute apart; the last one differs
	// per service so the latest-status view shows every state.
	final := []string{"up", "down", "degraded"}
	for i, id := range ids {
		history := []string{"up", "up", final[i%len(final)]}
		for j, status := range history {
			observed := now.Add(time.Duration(j-len(history)) * time.Minute).UTC()
			if _, err := database.Exec(
				"INSERT INTO status_logs (service_id, status, observed_at) VALUES (?, ?, ?)",
				id, status, observed.UnixNano(),
			); err != nil {
				return fmt.Errorf("seed status logs: %w", err)
			}
		}
	}

	return nil
}
