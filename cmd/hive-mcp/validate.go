package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/galaxy-co-ai/hive-mcp/internal/cli"
	"github.com/galaxy-co-ai/hive-mcp/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the comb for consistency",
	Long: `Scans every hex and reports dangling edge targets. When a start hex is
known (given via --start or detected) unreachable hexes are reported too.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("start", "", "Hex to crawl reachability from (default: auto-detect)")
}

func runValidate(cmd *cobra.Command) error {
	cfg, logger, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	eng, cleanup, err := cli.NewEngine(cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing hive: %w", err)
	}
	defer cleanup()

	ctx := context.Background()

	startID, _ := cmd.Flags().GetString("start")
	if startID == "" {
		// Best effort: an empty comb simply skips the reachability crawl.
		startID, _ = cli.DetermineStart(ctx, eng.Store())
	}

	report, err := validator.ValidateComb(ctx, eng.Store(), startID)
	if err != nil {
		return err
	}

	if !report.Clean() {
		fmt.Print(report.Summary())
		os.Exit(1)
	}

	fmt.Printf("%d hexes, %d edges\n", report.Hexes, report.Edges)
	fmt.Println("Comb is valid! ✅")
	return nil
}
