package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/example/monitor/internal/ports/primary"
)

// StatusAdapter translates CLI status operations to ServiceStatusService calls.
type StatusAdapter struct {
	service primary.ServiceStatusService
	out     io.Writer
}

// NewStatusAdapter creates a new StatusAdapter with the given service.
func NewStatusAdapter(service primary.ServiceStatusService, out io.Writer) *StatusAdapter {
	return &StatusAdapter{
		service: service,
		out:     out,
	}
}

// Show prints the latest observation for a service.
func (a *StatusAdapter) Show(ctx context.Context, serviceID int64) error {
	status, err := a.service.FetchStatus(ctx, serviceID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Service %d: %s", status.ServiceID, colorStatus(status.Status))
	fmt.Fprintf(a.out, " at %s", status.Timestamp.Format(time.RFC3339))
	if status.Message != "" {
		fmt.Fprintf(a.out, " (%s)", status.Message)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Record appends an observation.
func (a *StatusAdapter) Record(ctx context.Context, req primary.RecordStatusRequest) error {
	status, err := a.service.RecordStatus(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Recorded %s for service %d (log %d)\n", colorStatus(status.Status), status.ServiceID, status.ID)
	return nil
}

// History prints recent observations, newest first.
func (a *StatusAdapter) History(ctx context.Context, serviceID int64, limit int) error {
	logs, err := a.service.ListStatus(ctx, serviceID, limit)
	if err != nil {
		return err
	}

	if len(logs) == 0 {
		fmt.Fprintf(a.out, "No status recorded for service %d\n", serviceID)
		return nil
	}

	fmt.Fprintf(a.out, "\n%-6s %-26s %-10s %s\n", "ID", "OBSERVED", "STATUS", "MESSAGE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, l := range logs {
		fmt.Fprintf(a.out, "%-6d %-26s %s %s\n", l.ID, l.Timestamp.Format(time.RFC3339), padStatus(l.Status, 10), l.Message)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Watch prints observations as they are recorded until ctx is done.
func (a *StatusAdapter) Watch(ctx context.Context, serviceID int64) error {
	updates, err := a.service.SubscribeStatus(ctx, serviceID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Watching service %d (Ctrl+C to stop)\n", serviceID)
	a.Print(updates)
	return nil
}

// Print writes one line per observation until updates is closed.
func (a *StatusAdapter) Print(updates <-chan *primary.StatusLog) {
	for status := range updates {
		fmt.Fprintf(a.out, "%s %s", status.Timestamp.Format(time.RFC3339), colorStatus(status.Status))
		if status.Message != "" {
			fmt.Fprintf(a.out, " %s", status.Message)
		}
		fmt.Fprintln(a.out)
	}
}

// colorStatus renders well-known statuses in color; others pass through.
func colorStatus(status string) string {
	switch strings.ToLower(status) {
	case "up", "ok", "healthy":
		return color.New(color.FgGreen).Sprint(status)
	case "down", "error", "unhealthy":
		return color.New(color.FgRed).Sprint(status)
	case "degraded", "warning":
		return color.New(color.FgYellow).Sprint(status)
	default:
		return status
	}
}

// padStatus pads on the raw width so escape codes do not break alignment.
func padStatus(status string, width int) string {
	pad := width - len(status)
	if pad < 0 {
		pad = 0
	}
	return colorStatus(status) + strings.Repeat(" ", pad)
}
