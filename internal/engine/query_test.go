package engine_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/galaxy-co-ai/hive-mcp/internal/engine"
	"github.com/galaxy-co-ai/hive-mcp/pkg/adapters/memory"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

func TestQuery_RankingAndExplainability(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store,
		&domain.Hex{
			ID:          "api-reference",
			Name:        "API Reference",
			EntryHints:  []string{"find api endpoints", "how to call the service"},
			Tags:        []string{"api"},
			Description: "Endpoint documentation",
		},
		&domain.Hex{ID: "billing", Name: "Billing", EntryHints: []string{"invoices and payments"}},
		&domain.Hex{ID: "glossary", Name: "Glossary", EntryHints: []string{"terminology definitions"}, Description: "api words explained"},
	)
	eng := engine.New(store, memory.NewJournal())

	matches, err := eng.Query(context.Background(), "api endpoints", 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected matches")
	}

	// Every surviving match scored above zero and results come best first.
	for i, m := range matches {
		if m.Score <= 0 {
			t.Errorf("match %d has non-positive score %f", i, m.Score)
		}
		if i > 0 && matches[i-1].Score < m.Score {
			t.Errorf("results not sorted: %f before %f", matches[i-1].Score, m.Score)
		}
		if m.Hex.ID == "billing" {
			t.Error("zero-score hexes must be excluded")
		}
	}

	top := matches[0]
	if top.Hex.ID != "api-reference" {
		t.Fatalf("expected api-reference first, got %s", top.Hex.ID)
	}
	if len(top.MatchedHints) == 0 || top.MatchedHints[0] != "find api endpoints" {
		t.Errorf("matched hints should name the overlapping hint, got %v", top.MatchedHints)
	}
}

func TestQuery_SynonymBridging(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, &domain.Hex{ID: "widgets", Name: "Widgets", EntryHints: []string{"all interactive elements"}})
	eng := engine.New(store, memory.NewJournal())

	// The default table groups button with interactive, in both directions.
	matches, err := eng.Query(context.Background(), "button", 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(matches) != 1 || matches[0].Hex.ID != "widgets" {
		t.Fatalf("intent %q should reach a hint containing %q, got %+v", "button", "interactive", matches)
	}

	reverse, err := eng.Query(context.Background(), "interactive", 0)
	if err != nil {
		t.Fatalf("reverse query: %v", err)
	}
	if len(reverse) != 1 {
		t.Fatalf("expansion must work from the member side too, got %+v", reverse)
	}
}

func TestQuery_TagsMatchLiterally(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, &domain.Hex{ID: "tagged", Name: "Zeta", Tags: []string{"Billing"}})
	eng := engine.New(store, memory.NewJournal())

	matches, err := eng.Query(context.Background(), "billing report", 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("case-insensitive tag hit expected, got %+v", matches)
	}
	if matches[0].Score != 0.5 {
		t.Errorf("a lone tag hit scores 0.5, got %f", matches[0].Score)
	}
	if len(matches[0].MatchedHints) != 0 {
		t.Errorf("tag hits are not hint matches, got %v", matches[0].MatchedHints)
	}
}

func TestQuery_LimitAndTieOrder(t *testing.T) {
	store := memory.NewStore()
	var hexes []*domain.Hex
	for i := 0; i < 10; i++ {
		hexes = append(hexes, &domain.Hex{
			ID:         fmt.Sprintf("hex-%02d", i),
			Name:       "Guide",
			EntryHints: []string{"a helpful guide"},
		})
	}
	seedStore(t, store, hexes...)
	eng := engine.New(store, memory.NewJournal())

	matches, err := eng.Query(context.Background(), "guide", 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(matches) != engine.DefaultQueryLimit {
		t.Fatalf("zero limit falls back to the default %d, got %d", engine.DefaultQueryLimit, len(matches))
	}
	// Equal scores keep id order, so the window is deterministic.
	for i, m := range matches {
		want := fmt.Sprintf("hex-%02d", i)
		if m.Hex.ID != want {
			t.Errorf("position %d: want %s, got %s", i, want, m.Hex.ID)
		}
	}

	three, err := eng.Query(context.Background(), "guide", 3)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(three) != 3 {
		t.Fatalf("explicit limit not honored, got %d", len(three))
	}
}

func TestQuery_NoMatchesYieldsEmpty(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, &domain.Hex{ID: "docs", Name: "Docs", EntryHints: []string{"documentation home"}})
	eng := engine.New(store, memory.NewJournal())

	matches, err := eng.Query(context.Background(), "zzzqqq", 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("want empty result, got %+v", matches)
	}
}

func TestQuery_RecordsStepAndFiresHook(t *testing.T) {
	store := memory.NewStore()
	journal := memory.NewJournal()
	seedStore(t, store, &domain.Hex{ID: "docs", Name: "Docs", EntryHints: []string{"documentation home"}})

	var events []*domain.QueryEvent
	eng := engine.New(store, journal, engine.WithLifecycleHooks(domain.LifecycleHooks{
		OnQuery: func(_ context.Context, ev *domain.QueryEvent) {
			events = append(events, ev)
		},
	}))

	matches, err := eng.Query(context.Background(), "documentation", 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	entries, err := journal.Tail(context.Background(), 10)
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("every query appends one journey entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.JourneyID != domain.AnonymousJourneyID {
		t.Errorf("queries log under the anonymous journey, got %q", entry.JourneyID)
	}
	if entry.Action != domain.ActionQuery || entry.HexID != "" {
		t.Errorf("unexpected entry: %+v", entry)
	}

	journey, ok := eng.Journey("")
	if !ok || len(journey.Steps) != 1 {
		t.Fatalf("anonymous journey should hold the query step, got %+v", journey)
	}

	if len(events) != 1 {
		t.Fatalf("OnQuery hook should fire once, got %d", len(events))
	}
	if events[0].Intent != "documentation" || events[0].Matches != len(matches) {
		t.Errorf("unexpected event: %+v", events[0])
	}
}

func TestQuery_JournalFailureDoesNotAbort(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, &domain.Hex{ID: "docs", Name: "Docs", EntryHints: []string{"documentation home"}})
	eng := engine.New(store, failJournal{})

	matches, err := eng.Query(context.Background(), "documentation", 0)
	if err != nil {
		t.Fatalf("journal failures must not surface from query: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected the match regardless of journaling, got %+v", matches)
	}
}
