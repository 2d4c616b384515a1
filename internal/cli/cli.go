// Package cli carries the glue every hive command shares: engine
// construction from configuration, signal-aware contexts, and terminal
// output conventions.
package cli

import "fmt"

// Systemf prints a standardized system message to stdout.
func Systemf(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}
