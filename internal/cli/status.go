package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/monitor/internal/adapters/cli"
	"github.com/example/monitor/internal/ports/primary"
	"github.com/example/monitor/internal/wire"
)

// StatusCmd returns the status command group.
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Inspect and record service status",
		Long: `Read the latest observation for a service, browse its history, or
append a new observation the way a prober would.`,
	}

	cmd.AddCommand(statusShowCmd())
	cmd.AddCommand(statusRecordCmd())
	cmd.AddCommand(statusHistoryCmd())
	cmd.AddCommand(statusWatchCmd())
	return cmd
}

func statusShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [service-id]",
		Short: "Show the latest status of a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseServiceID(args[0])
			if err != nil {
				return err
			}
			return wire.StatusAdapter().Show(context.Background(), id)
		},
	}
}

func statusRecordCmd() *cobra.Command {
	var (
		message string
		at      string
	)

	cmd := &cobra.Command{
		Use:   "record [service-id] [status]",
		Short: "Append a status observation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseServiceID(args[0])
			if err != nil {
				return err
			}

			var ts time.Time
			if at != "" {
				ts, err = time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at '%s'. Expected RFC3339, e.g. 2026-01-02T15:04:05Z", at)
				}
			}

			return wire.StatusAdapter().Record(context.Background(), primary.RecordStatusRequest{
				ServiceID: id,
				Status:    args[1],
				Message:   message,
				Timestamp: ts,
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Detail for the observation")
	cmd.Flags().StringVar(&at, "at", "", "Observation time (RFC3339, default now)")
	return cmd
}

func statusHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [service-id]",
		Short: "List recent observations, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseServiceID(args[0])
			if err != nil {
				return err
			}
			return wire.StatusAdapter().History(context.Background(), id, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", primary.DefaultHistoryLimit, "Maximum number of entries")
	return cmd
}

func statusWatchCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "watch [service-id]",
		Short: "Follow a service's status on a running server",
		Long: `Connect to the websocket stream of a running 'monitor serve' instance and
print the current status followed by every new observation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseServiceID(args[0])
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			updates, err := dialStatusStream(ctx, server, id)
			if err != nil {
				return err
			}
			fmt.Printf("Watching service %d on %s (Ctrl+C to stop)\n", id, server)
			cliadapter.NewStatusAdapter(nil, os.Stdout).Print(updates)
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "Base URL of the monitor server")
	return cmd
}
