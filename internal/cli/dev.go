package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/monitor/internal/db"
	"github.com/example/monitor/internal/wire"
)

// DevCmd returns the dev command group for development utilities.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Development utilities",
		Long: `Development utilities for working with a local monitor database.

Point --config or MONITOR_DATABASE_PATH at a scratch database before using
these; they write directly to whatever database is configured.`,
	}

	cmd.AddCommand(devSeedCmd())
	cmd.AddCommand(devFlushCacheCmd())
	cmd.AddCommand(devSchemaCmd())
	return cmd
}

func devSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed an empty database with fixture services and observations",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := wire.Default()
			defer c.Close()

			var count int
			if err := c.DB.QueryRow("SELECT COUNT(*) FROM services").Scan(&count); err != nil {
				return fmt.Errorf("failed to inspect database: %w", err)
			}
			if count > 0 {
				return fmt.Errorf("database %s already has %d services; seed only runs on an empty database", c.Config.DatabasePath, count)
			}

			if err := db.SeedFixtures(c.DB, time.Now()); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
			fmt.Printf("✓ Seeded %s\n", c.Config.DatabasePath)
			return nil
		},
	}
}

func devFlushCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flush-cache",
		Short: "Remove every cached latest-status entry from Redis",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := wire.Default()
			defer c.Close()

			if c.Cache == nil {
				return fmt.Errorf("redis is not configured (set redis.addr or MONITOR_REDIS_ADDR)")
			}
			if err := c.Cache.Flush(context.Background()); err != nil {
				return err
			}
			fmt.Println("✓ Status cache flushed")
			return nil
		},
	}
}

func devSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the database schema and applied version",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := wire.Default()
			defer c.Close()

			current, err := db.CurrentVersion(c.DB)
			if err != nil {
				return err
			}
			fmt.Printf("-- schema version %d (latest %d)\n", current, db.LatestVersion())
			fmt.Println(db.GetSchemaSQL())
			return nil
		},
	}
}
