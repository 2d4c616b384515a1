package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	hive "github.com/galaxy-co-ai/hive-mcp"
	"github.com/galaxy-co-ai/hive-mcp/internal/cli"
	"github.com/galaxy-co-ai/hive-mcp/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the comb visualization",
	Long: `Inspects the comb and outputs a Mermaid diagram (graph TD) of its hexes
and edges. With --journey the hexes that journey visited are highlighted.`,
	Run: func(cmd *cobra.Command, args []string) {
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

		ctx := context.Background()

		hexes, err := eng.ListHexes(ctx)
		if err != nil {
			fmt.Printf("Error inspecting comb: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.Overlay
		if journeyID, _ := cmd.Flags().GetString("journey"); journeyID != "" {
			overlay, err = journeyOverlay(ctx, eng, journeyID)
			if err != nil {
				fmt.Printf("Error reading journey log: %v\n", err)
				os.Exit(1)
			}
		}

		// Generate and print Mermaid graph
		fmt.Print(graph.GenerateMermaid(hexes, overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("journey", "", "Highlight the hexes this journey origin has visited")
}

// journeyOverlay rebuilds a journey's footprint from the durable log. The
// last hex seen becomes the current position.
func journeyOverlay(ctx context.Context, eng *hive.Engine, journeyID string) (*graph.Overlay, error) {
	entries, err := eng.JourneyLog(ctx, 0)
	if err != nil {
		return nil, err
	}

	overlay := &graph.Overlay{}
	seen := map[string]bool{}
	for _, entry := range entries {
		if entry.JourneyID != journeyID || entry.HexID == "" {
			continue
		}
		if !seen[entry.HexID] {
			seen[entry.HexID] = true
			overlay.VisitedHexes = append(overlay.VisitedHexes, entry.HexID)
		}
		overlay.CurrentHex = entry.HexID
	}
	return overlay, nil
}
