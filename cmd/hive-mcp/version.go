package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	hive "github.com/galaxy-co-ai/hive-mcp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hive-mcp",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hive-mcp version %s\n", strings.TrimSpace(hive.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
