package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	hive "github.com/galaxy-co-ai/hive-mcp"
	"github.com/galaxy-co-ai/hive-mcp/internal/cli"
	"github.com/galaxy-co-ai/hive-mcp/internal/presentation/tui"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// walkCmd represents the walk command
var walkCmd = &cobra.Command{
	Use:   "walk [start-hex]",
	Short: "Walk the comb interactively",
	Long: `Enters the comb at a hex and follows its edges step by step. Edges are
chosen at a prompt, or automatically by priority in headless mode. Without a
start hex the conventional entry hexes (start, home, index) are probed.`,
	Run: func(cmd *cobra.Command, args []string) {
		headless, _ := cmd.Flags().GetBool("headless")
		origin, _ := cmd.Flags().GetString("origin")
		intent, _ := cmd.Flags().GetString("intent")

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

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		startID := ""
		if len(args) > 0 {
			startID = args[0]
		} else {
			startID, err = cli.DetermineStart(sigCtx, eng.Store())
			if err != nil {
				fmt.Printf("Error finding a start hex: %v\n", err)
				os.Exit(1)
			}
		}
		if startID == "" {
			fmt.Println("The comb is empty. Seed it first: hive-mcp seed <dir>")
			os.Exit(1)
		}

		walker := hive.NewWalker()
		walker.Input = os.Stdin
		walker.Output = os.Stdout
		walker.Headless = headless

		interactive := term.IsTerminal(int(os.Stdout.Fd()))
		if interactive && !headless {
			tui.PrintBanner()
			walker.Renderer = tui.NewRenderer()
		}

		var actx *domain.AgentContext
		if origin != "" || intent != "" {
			actx = &domain.AgentContext{Origin: origin, Intent: intent}
		}

		if err := walker.Walk(sigCtx, eng, startID, actx); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(walkCmd)

	walkCmd.Flags().Bool("headless", false, "Take the best exit automatically (no prompts)")
	walkCmd.Flags().String("origin", "", "Journey origin to record steps under (default: anonymous)")
	walkCmd.Flags().String("intent", "", "Intent to evaluate edge guards against")

	// Make 'walk' the default when no subcommand is given.
	rootCmd.Run = walkCmd.Run
}
