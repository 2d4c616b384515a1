package engine_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/galaxy-co-ai/hive-mcp/internal/engine"
	"github.com/galaxy-co-ai/hive-mcp/pkg/adapters/memory"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

func depositEngine(t *testing.T, existing any) (*memory.Store, *memory.Journal, *engine.Engine) {
	t.Helper()
	store := memory.NewStore()
	journal := memory.NewJournal()
	seedStore(t, store, &domain.Hex{
		ID:       "cache",
		Name:     "Cache",
		Contents: domain.Contents{Data: existing},
	})
	return store, journal, engine.New(store, journal, engine.WithClock(fixedClock))
}

func TestDeposit_MergesObjects(t *testing.T) {
	store, _, eng := depositEngine(t, map[string]any{"x": 1})

	ok, err := eng.Deposit(context.Background(), "cache", map[string]any{"y": 2}, nil)
	if err != nil || !ok {
		t.Fatalf("deposit: ok=%v err=%v", ok, err)
	}

	loaded, err := store.Get(context.Background(), "cache")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := map[string]any{"x": 1, "y": 2}
	if !reflect.DeepEqual(loaded.Contents.Data, want) {
		t.Fatalf("objects must shallow-merge: got %v, want %v", loaded.Contents.Data, want)
	}

	// Incoming wins on shared keys.
	if _, err := eng.Deposit(context.Background(), "cache", map[string]any{"x": 9}, nil); err != nil {
		t.Fatalf("second deposit: %v", err)
	}
	loaded, _ = store.Get(context.Background(), "cache")
	want = map[string]any{"x": 9, "y": 2}
	if !reflect.DeepEqual(loaded.Contents.Data, want) {
		t.Fatalf("incoming values must win: got %v, want %v", loaded.Contents.Data, want)
	}
}

func TestDeposit_ConcatenatesSequences(t *testing.T) {
	store, _, eng := depositEngine(t, []any{1, 2})

	ok, err := eng.Deposit(context.Background(), "cache", []any{3}, nil)
	if err != nil || !ok {
		t.Fatalf("deposit: ok=%v err=%v", ok, err)
	}

	loaded, _ := store.Get(context.Background(), "cache")
	want := []any{1, 2, 3}
	if !reflect.DeepEqual(loaded.Contents.Data, want) {
		t.Fatalf("sequences must concatenate, existing first: got %v, want %v", loaded.Contents.Data, want)
	}
}

func TestDeposit_ReplacesMismatchedShapes(t *testing.T) {
	cases := []struct {
		name     string
		existing any
		incoming any
		want     any
	}{
		{"string replaced by object", "str", map[string]any{"z": 1}, map[string]any{"z": 1}},
		{"object replaced by string", map[string]any{"z": 1}, "str", "str"},
		{"sequence replaced by object", []any{1}, map[string]any{"z": 1}, map[string]any{"z": 1}},
		{"nothing replaced by value", nil, 42, 42},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, _, eng := depositEngine(t, tc.existing)
			if _, err := eng.Deposit(context.Background(), "cache", tc.incoming, nil); err != nil {
				t.Fatalf("deposit: %v", err)
			}
			loaded, _ := store.Get(context.Background(), "cache")
			if !reflect.DeepEqual(loaded.Contents.Data, tc.want) {
				t.Fatalf("got %v, want %v", loaded.Contents.Data, tc.want)
			}
		})
	}
}

func TestDeposit_HandlesTypedSlices(t *testing.T) {
	// Go callers hand over typed slices where JSON callers produce []any.
	store, _, eng := depositEngine(t, []any{"a"})

	if _, err := eng.Deposit(context.Background(), "cache", []string{"b"}, nil); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	loaded, _ := store.Get(context.Background(), "cache")
	want := []any{"a", "b"}
	if !reflect.DeepEqual(loaded.Contents.Data, want) {
		t.Fatalf("typed slices still concatenate: got %v, want %v", loaded.Contents.Data, want)
	}
}

func TestDeposit_MissingHex(t *testing.T) {
	eng := engine.New(memory.NewStore(), memory.NewJournal())

	ok, err := eng.Deposit(context.Background(), "nowhere", map[string]any{"x": 1}, nil)
	if err != nil {
		t.Fatalf("missing hex is a soft failure, not an error: %v", err)
	}
	if ok {
		t.Fatal("deposit into a missing hex must report false")
	}
}

func TestDeposit_BumpsUpdated(t *testing.T) {
	store, _, eng := depositEngine(t, nil)

	if _, err := eng.Deposit(context.Background(), "cache", map[string]any{"x": 1}, nil); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	loaded, _ := store.Get(context.Background(), "cache")
	if !loaded.Updated.Equal(testTime) {
		t.Fatalf("updated should come from the engine clock, got %v", loaded.Updated)
	}
}

func TestDeposit_StepOnlyWithContext(t *testing.T) {
	_, journal, eng := depositEngine(t, nil)

	if _, err := eng.Deposit(context.Background(), "cache", map[string]any{"x": 1}, nil); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	entries, _ := journal.Tail(context.Background(), 10)
	if len(entries) != 0 {
		t.Fatalf("no context, no step: got %d entries", len(entries))
	}

	actx := &domain.AgentContext{Origin: "scout"}
	if _, err := eng.Deposit(context.Background(), "cache", map[string]any{"y": 2}, actx); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	entries, _ = journal.Tail(context.Background(), 10)
	if len(entries) != 1 {
		t.Fatalf("want one deposit entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.JourneyID != "scout" || entry.HexID != "cache" || entry.Action != domain.ActionDeposit {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if !reflect.DeepEqual(entry.Payload, map[string]any{"y": 2}) {
		t.Errorf("deposit entry carries the incoming data, got %v", entry.Payload)
	}
}

func TestDeposit_WriteFailurePropagates(t *testing.T) {
	underlying := memory.NewStore()
	seedStore(t, underlying, &domain.Hex{ID: "cache", Name: "Cache"})
	eng := engine.New(saveFailStore{underlying}, memory.NewJournal())

	_, err := eng.Deposit(context.Background(), "cache", map[string]any{"x": 1}, nil)
	if err == nil {
		t.Fatal("store write failures must propagate")
	}
}

func TestDeposit_JournalFailureDoesNotAbort(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, &domain.Hex{ID: "cache", Name: "Cache"})
	eng := engine.New(store, failJournal{})

	ok, err := eng.Deposit(context.Background(), "cache", map[string]any{"x": 1}, &domain.AgentContext{Origin: "scout"})
	if err != nil || !ok {
		t.Fatalf("journal failures must not affect deposit: ok=%v err=%v", ok, err)
	}
}

func TestDeposit_LastWriteWinsOnSharedKeys(t *testing.T) {
	// Deposits are read-modify-write without isolation, so concurrent
	// writers race and the last save wins. The sequential form of the same
	// property:
	store, _, eng := depositEngine(t, nil)

	if _, err := eng.Deposit(context.Background(), "cache", map[string]any{"k": "first"}, nil); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := eng.Deposit(context.Background(), "cache", map[string]any{"k": "second"}, nil); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	loaded, _ := store.Get(context.Background(), "cache")
	if !reflect.DeepEqual(loaded.Contents.Data, map[string]any{"k": "second"}) {
		t.Fatalf("want the later value, got %v", loaded.Contents.Data)
	}
}
