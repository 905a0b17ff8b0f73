package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/monitor/internal/ports/primary"
	"github.com/example/monitor/internal/wire"
)

// ServiceCmd returns the service command group.
func ServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage monitored services",
		Long:  "Register, list, and inspect the services whose status is tracked",
	}

	cmd.AddCommand(serviceListCmd())
	cmd.AddCommand(serviceShowCmd())
	cmd.AddCommand(serviceLookupCmd())
	cmd.AddCommand(serviceCreateCmd())
	return cmd
}

func serviceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all services",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ServiceAdapter().List(context.Background())
		},
	}
}

func serviceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [service-id]",
		Short: "Show service details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseServiceID(args[0])
			if err != nil {
				return err
			}
			_, err = wire.ServiceAdapter().Show(context.Background(), id)
			return err
		},
	}
}

func serviceLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup [url]",
		Short: "Find the service registered under an exact URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.ServiceAdapter().Lookup(context.Background(), args[0])
			return err
		},
	}
}

func serviceCreateCmd() *cobra.Command {
	var (
		name        string
		description string
		metadata    []string
	)

	cmd := &cobra.Command{
		Use:   "create [url]",
		Short: "Register a new service",
		Args:  cobra.ExactArgs(1),
		Example: `  monitor service create https://example.com --name example
  monitor service create https://api.example.com/health --meta team=api --meta env=prod`,
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := parseMetadata(metadata)
			if err != nil {
				return err
			}
			return wire.ServiceAdapter().Create(context.Background(), primary.CreateServiceRequest{
				URL:         args[0],
				Name:        name,
				Description: description,
				Metadata:    meta,
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Human-readable service name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Service description")
	cmd.Flags().StringArrayVar(&metadata, "meta", nil, "Metadata as key=value (repeatable)")
	return cmd
}
