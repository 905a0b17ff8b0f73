package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/monitor/internal/version"
	"github.com/example/monitor/internal/wire"
)

// RootCmd returns the monitor root command with every subcommand attached.
func RootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "monitor",
		Short:   "Monitor - service registry and status log",
		Version: version.String(),
		Long: `Monitor tracks a registry of services and an append-only log of status
observations for each, and answers "what is the latest status of service X".`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			wire.SetConfigPath(configPath)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML config file (default: defaults + MONITOR_* env)")

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(ServiceCmd())
	rootCmd.AddCommand(StatusCmd())

	// Developer tools
	rootCmd.AddCommand(DevCmd())

	return rootCmd
}
