package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/galaxy-co-ai/hive-mcp/internal/cli"
)

var queryCmd = &cobra.Command{
	Use:   "query <intent>",
	Short: "Find the hexes matching an intent",
	Long: `Scores every hex in the comb against a natural language intent and prints
the best matches. Scoring favors entry hints, then names, tags and
descriptions.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		intent := strings.Join(args, " ")
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

		matches, err := eng.Query(context.Background(), intent, limit)
		if err != nil {
			fmt.Printf("Query failed: %v\n", err)
			os.Exit(1)
		}

		if len(matches) == 0 {
			fmt.Println("No hexes match.")
			return
		}

		for i, match := range matches {
			fmt.Printf("%d. %s (%s)  score=%.1f\n", i+1, match.Hex.Name, match.Hex.ID, match.Score)
			if len(match.MatchedHints) > 0 {
				fmt.Printf("   hints: %s\n", strings.Join(match.MatchedHints, "; "))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().IntP("limit", "n", 0, "Maximum number of matches (0 uses the engine default)")
}
