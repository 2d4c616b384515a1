package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/galaxy-co-ai/hive-mcp/internal/cli"
)

var journeyCmd = &cobra.Command{
	Use:   "journey [origin]",
	Short: "Tail the journey journal",
	Long: `Prints the most recent entries from the durable journey log, oldest first.
With an origin argument only that journey's entries are shown.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, logger, err := loadEnvironment(cmd)
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		eng, cleanup, err := cli.NewEngine(cfg, logger)
		if err != nil {
			fmt.Printf("Error initializing hive: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()

		entries, err := eng.JourneyLog(context.Background(), limit)
		if err != nil {
			fmt.Printf("Reading journey log failed: %v\n", err)
			os.Exit(1)
		}

		origin := ""
		if len(args) > 0 {
			origin = args[0]
		}

		printed := 0
		for _, entry := range entries {
			if origin != "" && entry.JourneyID != origin {
				continue
			}
			line := fmt.Sprintf("%s  %-12s %-8s %s",
				entry.Timestamp.Format(time.RFC3339), entry.JourneyID, entry.Action, entry.HexID)
			if entry.EdgeID != "" {
				line += " via " + entry.EdgeID
			}
			fmt.Println(line)
			printed++
		}

		if printed == 0 {
			fmt.Println("Journey log is empty.")
		}
	},
}

func init() {
	rootCmd.AddCommand(journeyCmd)
	journeyCmd.Flags().IntP("limit", "n", 0, "Maximum number of entries (0 uses the journal default)")
}
