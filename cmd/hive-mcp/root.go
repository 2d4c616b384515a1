package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/galaxy-co-ai/hive-mcp/internal/config"
	"github.com/galaxy-co-ai/hive-mcp/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "hive-mcp",
	Short: "Hive is a navigable knowledge comb for AI agents",
	Long: `Hive stores knowledge as hexes joined by guarded edges and lets agents
query, enter, and traverse them over MCP, HTTP, or this CLI.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a hive config file (default: probe hive.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
}

// loadEnvironment resolves the configuration and shared logger for a command,
// honoring the persistent flags.
func loadEnvironment(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}

	level := cfg.LogLevel
	if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
		level = flag
	}
	return cfg, logging.New(logging.ParseLevel(level)), nil
}
