// Package graph renders a comb as Mermaid flowchart syntax, for docs and for
// the graph CLI command.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// Overlay carries journey state to highlight on the rendered comb.
type Overlay struct {
	VisitedHexes []string
	CurrentHex   string
}

// GenerateMermaid produces a Mermaid flowchart from the comb. Shapes follow
// the hex kind:
//   - gateway: {{hexagon}}
//   - junction: ((circle))
//   - tool: [[subroutine]]
//   - data: [rectangle]
//
// Edge arrows carry the guard summary and priority; external targets render
// as stadium nodes reached by dashed arrows.
func GenerateMermaid(hexes []*domain.Hex, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	externals := make(map[string]bool)

	for _, hex := range hexes {
		safeID := sanitizeMermaidID(hex.ID)

		opener, closer := "[", "]"
		switch hex.Kind {
		case domain.KindGateway:
			opener, closer = "{{", "}}"
		case domain.KindJunction:
			opener, closer = "((", "))"
		case domain.KindTool:
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, hex.ID, closer))

		for _, edge := range hex.Edges {
			label := edgeLabel(edge)

			if target, ok := edge.ExternalTarget(); ok {
				safeTo := "ext_" + sanitizeMermaidID(target)
				if !externals[safeTo] {
					externals[safeTo] = true
					sb.WriteString(fmt.Sprintf("    %s([\"%s\"])\n", safeTo, target))
				}
				arrow := "-.->"
				if label != "" {
					arrow = fmt.Sprintf("-. \"%s\" .->", label)
				}
				sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, safeTo))
				continue
			}

			arrow := "-->"
			if label != "" {
				arrow = fmt.Sprintf("-- \"%s\" -->", label)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, sanitizeMermaidID(edge.To)))
		}
	}

	if len(externals) > 0 {
		sb.WriteString("\n    classDef external fill:#f3f4f6,stroke:#6b7280,stroke-dasharray: 5 5,color:#000;\n")
		names := make([]string, 0, len(externals))
		for name := range externals {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("    class %s external;\n", name))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#fef3c7,stroke:#b45309,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#fbbf24,stroke:#92400e,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedHexes {
			safeID := sanitizeMermaidID(id)
			if safeID == "" || visitedSet[safeID] {
				continue
			}
			visitedSet[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
		}
		if overlay.CurrentHex != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentHex)))
		}
	}

	return sb.String()
}

// edgeLabel summarizes an edge's guard and priority for the arrow text.
func edgeLabel(edge domain.Edge) string {
	var parts []string

	c := edge.When
	switch {
	case c.Always:
		// Unconditional edges stay unlabeled.
	default:
		if c.Intent != "" {
			parts = append(parts, "intent: "+c.Intent)
		}
		if len(c.HasData) > 0 {
			parts = append(parts, "has: "+strings.Join(c.HasData, "+"))
		}
		if len(c.Lacks) > 0 {
			parts = append(parts, "lacks: "+strings.Join(c.Lacks, "+"))
		}
		if len(c.Match) > 0 {
			keys := make([]string, 0, len(c.Match))
			for k := range c.Match {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			pairs := make([]string, 0, len(keys))
			for _, k := range keys {
				pairs = append(pairs, fmt.Sprintf("%s=%v", k, c.Match[k]))
			}
			parts = append(parts, "match: "+strings.Join(pairs, "+"))
		}
	}

	label := strings.Join(parts, " & ")
	if edge.Priority != 0 {
		if label != "" {
			label = fmt.Sprintf("%s (p%d)", label, edge.Priority)
		} else {
			label = fmt.Sprintf("p%d", edge.Priority)
		}
	}
	// Mermaid labels cannot carry double quotes.
	return strings.ReplaceAll(label, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
