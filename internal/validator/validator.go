// Package validator checks the structural integrity of a comb: edge targets
// that resolve, and reachability from a chosen entry hex.
package validator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
	"github.com/galaxy-co-ai/hive-mcp/pkg/ports"
)

// Report summarizes one integrity pass.
type Report struct {
	Hexes int
	Edges int

	// Dangling lists in-comb edge targets that no hex answers to, as
	// "hex/edge -> target". Forward references are legal while authoring, so
	// these are warnings, not failures.
	Dangling []string

	// Unreachable lists hexes no edge path reaches from the start hex. Only
	// populated when a start was given.
	Unreachable []string
}

// Clean reports whether the pass found nothing to complain about.
func (r *Report) Clean() bool {
	return len(r.Dangling) == 0 && len(r.Unreachable) == 0
}

// Summary renders the report as a short human-readable block.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d hexes, %d edges\n", r.Hexes, r.Edges)
	for _, d := range r.Dangling {
		fmt.Fprintf(&b, "dangling edge: %s\n", d)
	}
	for _, u := range r.Unreachable {
		fmt.Fprintf(&b, "unreachable hex: %s\n", u)
	}
	if r.Clean() {
		b.WriteString("comb is clean\n")
	}
	return b.String()
}

// ValidateComb loads every readable hex and inspects edge targets. When
// startID is non-empty it additionally crawls the comb from there and
// reports the hexes left unvisited. Malformed records never show up here:
// stores skip them at read time.
func ValidateComb(ctx context.Context, store ports.HexStore, startID string) (*Report, error) {
	hexes, err := store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing hexes: %w", err)
	}

	index := make(map[string]*domain.Hex, len(hexes))
	for _, hex := range hexes {
		index[hex.ID] = hex
	}

	report := &Report{Hexes: len(hexes)}
	for _, hex := range hexes {
		for _, edge := range hex.Edges {
			report.Edges++
			if edge.IsExternal() {
				continue
			}
			if _, ok := index[edge.To]; !ok {
				report.Dangling = append(report.Dangling, fmt.Sprintf("%s/%s -> %s", hex.ID, edge.ID, edge.To))
			}
		}
	}

	if startID != "" {
		start, ok := index[startID]
		if !ok {
			return nil, fmt.Errorf("start hex %q not found", startID)
		}
		report.Unreachable = crawl(index, start)
	}

	return report, nil
}

// crawl walks the comb breadth-first from start and returns the ids it never
// reached, sorted.
func crawl(index map[string]*domain.Hex, start *domain.Hex) []string {
	visited := make(map[string]bool, len(index))
	queue := []string{start.ID}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		current, ok := index[currentID]
		if !ok {
			// Dangling target, already reported by the edge pass.
			continue
		}
		for _, edge := range current.Edges {
			if edge.IsExternal() {
				continue
			}
			if !visited[edge.To] {
				queue = append(queue, edge.To)
			}
		}
	}

	unreachable := make([]string, 0)
	for id := range index {
		if !visited[id] {
			unreachable = append(unreachable, id)
		}
	}
	sort.Strings(unreachable)
	return unreachable
}
