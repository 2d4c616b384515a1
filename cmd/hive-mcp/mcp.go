package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/galaxy-co-ai/hive-mcp/internal/cli"
	mcpadapter "github.com/galaxy-co-ai/hive-mcp/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the hive engine as an MCP server.
This allows AI agents (like Claude Desktop) to navigate the comb as tools.

Supported transports:
- stdio (default): uses standard input/output. Ideal for local process integration.
- sse: uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

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

		srv := mcpadapter.NewServer(eng, mcpadapter.WithLogger(logger))

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on stdout
			log.SetOutput(os.Stderr)
			logger.Info("starting hive MCP server (stdio)")
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			logger.Info("starting hive MCP server (SSE)", "port", port)

			sigCtx := cli.NewSignalContext(context.Background())
			defer sigCtx.Cancel()

			if err := srv.ServeSSE(sigCtx, port); err != nil {
				// Ignore server closed error if it was caused by context cancellation
				if err != http.ErrServerClosed {
					logger.Error("MCP server execution failed", "error", err)
					os.Exit(1)
				}
			}
			if sig := sigCtx.Signal(); sig != nil {
				logger.Info("MCP server stopped gracefully", "signal", sig.String())
			}
		default:
			fmt.Printf("Unknown transport: %s. Supported: stdio, sse\n", transport)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
