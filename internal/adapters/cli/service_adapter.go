// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/example/monitor/internal/ports/primary"
)

// ServiceAdapter is a thin adapter that translates CLI operations to
// ServiceStatusService calls for the service registry.
type ServiceAdapter struct {
	service primary.ServiceStatusService
	out     io.Writer
}

// NewServiceAdapter creates a new ServiceAdapter with the given service.
func NewServiceAdapter(service primary.ServiceStatusService, out io.Writer) *ServiceAdapter {
	return &ServiceAdapter{
		service: service,
		out:     out,
	}
}

// Create registers a new service.
func (a *ServiceAdapter) Create(ctx context.Context, req primary.CreateServiceRequest) error {
	resp, err := a.service.Create(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created service %d: %s\n", resp.ServiceID, resp.Service.URL)
	return nil
}

// List lists every registered service.
func (a *ServiceAdapter) List(ctx context.Context) error {
	services, err := a.service.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list services: %w", err)
	}

	if len(services) == 0 {
		fmt.Fprintln(a.out, "No services found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-6s %-24s %s\n", "ID", "NAME", "URL")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, s := range services {
		fmt.Fprintf(a.out, "%-6d %-24s %s\n", s.ID, s.Name, s.URL)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single service.
func (a *ServiceAdapter) Show(ctx context.Context, id int64) (*primary.Service, error) {
	service, err := a.service.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	a.printService(service)
	return service, nil
}

// Lookup displays the service registered under url.
func (a *ServiceAdapter) Lookup(ctx context.Context, url string) (*primary.Service, error) {
	service, err := a.service.FetchByURL(ctx, url)
	if err != nil {
		return nil, err
	}
	a.printService(service)
	return service, nil
}

func (a *ServiceAdapter) printService(s *primary.Service) {
	fmt.Fprintf(a.out, "\nService: %d\n", s.ID)
	fmt.Fprintf(a.out, "URL:     %s\n", s.URL)
	if s.Name != "" {
		fmt.Fprintf(a.out, "Name:    %s\n", s.Name)
	}
	if s.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", s.Description)
	}
	if len(s.Metadata) > 0 {
		keys := make([]string, 0, len(s.Metadata))
		for k := range s.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(a.out, "Metadata:")
		for _, k := range keys {
			fmt.Fprintf(a.out, "  %s=%s\n", k, s.Metadata[k])
		}
	}
	if s.CreatedAt != "" {
		fmt.Fprintf(a.out, "Created: %s\n", s.CreatedAt)
	}
	fmt.Fprintln(a.out)
}
