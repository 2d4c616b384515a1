package graph_test

import (
	"strings"
	"testing"

	"github.com/galaxy-co-ai/hive-mcp/internal/presentation/graph"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		hexes    []*domain.Hex
		overlay  *graph.Overlay
		contains []string
	}{
		{
			name: "Kind Shapes",
			hexes: []*domain.Hex{
				{ID: "d", Kind: domain.KindData},
				{ID: "gw", Kind: domain.KindGateway},
				{ID: "j", Kind: domain.KindJunction},
				{ID: "t", Kind: domain.KindTool},
			},
			contains: []string{
				`d["d"]`,
				`gw{{"gw"}}`,
				`j(("j"))`,
				`t[["t"]]`,
			},
		},
		{
			name: "ID Sanitization",
			hexes: []*domain.Hex{
				{ID: "docs-home", Kind: domain.KindData},
				{ID: "api.v2/users", Kind: domain.KindData},
			},
			contains: []string{
				`docs_home["docs-home"]`,
				`api_v2_users["api.v2/users"]`,
			},
		},
		{
			name: "Guard Labels",
			hexes: []*domain.Hex{
				{ID: "a", Kind: domain.KindData, Edges: []domain.Edge{
					{ID: "e1", To: "b", When: domain.Condition{HasData: []string{"token", "user"}}, Priority: 10},
					{ID: "e2", To: "b", When: domain.Condition{Match: map[string]any{"answer": "yes"}}},
					{ID: "e3", To: "b", When: domain.Condition{Always: true}},
				}},
				{ID: "b", Kind: domain.KindData},
			},
			contains: []string{
				`a -- "has: token+user (p10)" --> b`,
				`a -- "match: answer=yes" --> b`,
				"a --> b",
			},
		},
		{
			name: "External Targets",
			hexes: []*domain.Hex{
				{ID: "a", Kind: domain.KindData, Edges: []domain.Edge{
					{ID: "out", To: "external:support-portal", When: domain.Condition{Always: true}},
				}},
			},
			contains: []string{
				`ext_support_portal(["support-portal"])`,
				"a -.-> ext_support_portal",
				"class ext_support_portal external;",
			},
		},
		{
			name: "Quote Escaping",
			hexes: []*domain.Hex{
				{ID: "a", Kind: domain.KindData, Edges: []domain.Edge{
					{ID: "e", To: "b", When: domain.Condition{Intent: `find "docs"`}},
				}},
				{ID: "b", Kind: domain.KindData},
			},
			contains: []string{
				`-- "intent: find 'docs'" -->`,
			},
		},
		{
			name: "Journey Overlay",
			hexes: []*domain.Hex{
				{ID: "a", Kind: domain.KindData},
				{ID: "b", Kind: domain.KindData},
			},
			overlay: &graph.Overlay{
				VisitedHexes: []string{"a", "a"},
				CurrentHex:   "b",
			},
			contains: []string{
				"class a visited;",
				"class b current;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.hexes, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
		})
	}
}

func TestGenerateMermaid_DeduplicatesOverlay(t *testing.T) {
	hexes := []*domain.Hex{{ID: "a", Kind: domain.KindData}}
	overlay := &graph.Overlay{VisitedHexes: []string{"a", "a", "a"}}

	got := graph.GenerateMermaid(hexes, overlay)
	if strings.Count(got, "class a visited;") != 1 {
		t.Errorf("visited class should be emitted once:\n%s", got)
	}
}
