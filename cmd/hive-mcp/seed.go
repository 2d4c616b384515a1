package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/galaxy-co-ai/hive-mcp/internal/cli"
	"github.com/galaxy-co-ai/hive-mcp/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed [dir]",
	Short: "Import authored hex documents into the comb",
	Long: `Reads hex documents (Markdown with front matter, or JSON) from a directory
tree and saves them to the configured store. Hexes that already exist under
the same id are overwritten.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

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

		importer := seed.New(eng.Store(), seed.WithLogger(logger))
		report, err := importer.ImportDir(context.Background(), dir)
		if err != nil {
			fmt.Printf("Seed failed: %v\n", err)
			os.Exit(1)
		}

		cli.Systemf("Imported %d hexes from %s.", len(report.Imported), dir)
		for _, skipped := range report.Skipped {
			cli.Systemf("Skipped %s.", skipped)
		}
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
