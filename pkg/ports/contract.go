package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// RunHexStoreContract runs a suite of tests verifying that a HexStore
// implementation adheres to the interface contract. Adapter test packages
// call it against a fresh store.
func RunHexStoreContract(t *testing.T, store HexStore) {
	ctx := context.Background()

	newHex := func(id string) *domain.Hex {
		h := &domain.Hex{
			ID:   id,
			Name: "Contract " + id,
			Kind: domain.KindData,
			Contents: domain.Contents{
				Data: map[string]any{"note": "original"},
			},
			Edges: []domain.Edge{
				{ID: "out", To: "elsewhere", When: domain.Condition{Always: true}, Priority: 1, Description: "exit"},
			},
			Created: time.Now().UTC().Truncate(time.Second),
			Updated: time.Now().UTC().Truncate(time.Second),
		}
		h.Normalize()
		return h
	}

	t.Run("Save and Get", func(t *testing.T) {
		hex := newHex("contract-save")
		require.NoError(t, store.Save(ctx, hex))

		loaded, err := store.Get(ctx, hex.ID)
		require.NoError(t, err)
		assert.Equal(t, hex.ID, loaded.ID)
		assert.Equal(t, hex.Name, loaded.Name)
		assert.Len(t, loaded.Edges, 1)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "contract-missing")
		assert.ErrorIs(t, err, domain.ErrHexNotFound)
	})

	t.Run("Get Returns Isolated Copy", func(t *testing.T) {
		hex := newHex("contract-isolated")
		require.NoError(t, store.Save(ctx, hex))

		first, err := store.Get(ctx, hex.ID)
		require.NoError(t, err)
		first.Name = "mutated"
		if m, ok := first.Contents.Data.(map[string]any); ok {
			m["note"] = "mutated"
		}

		second, err := store.Get(ctx, hex.ID)
		require.NoError(t, err)
		assert.Equal(t, "Contract contract-isolated", second.Name)
		if m, ok := second.Contents.Data.(map[string]any); ok {
			assert.Equal(t, "original", m["note"])
		}
	})

	t.Run("Save Upserts", func(t *testing.T) {
		hex := newHex("contract-upsert")
		require.NoError(t, store.Save(ctx, hex))

		hex.Name = "Renamed"
		require.NoError(t, store.Save(ctx, hex))

		loaded, err := store.Get(ctx, hex.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", loaded.Name)
	})

	t.Run("Delete", func(t *testing.T) {
		hex := newHex("contract-delete")
		require.NoError(t, store.Save(ctx, hex))

		removed, err := store.Delete(ctx, hex.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		_, err = store.Get(ctx, hex.ID)
		assert.ErrorIs(t, err, domain.ErrHexNotFound)

		removed, err = store.Delete(ctx, hex.ID)
		require.NoError(t, err)
		assert.False(t, removed, "second delete should report nothing removed")
	})

	t.Run("ListAll and ListIDs", func(t *testing.T) {
		a, b := newHex("contract-list-a"), newHex("contract-list-b")
		require.NoError(t, store.Save(ctx, a))
		require.NoError(t, store.Save(ctx, b))

		ids, err := store.ListIDs(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, a.ID)
		assert.Contains(t, ids, b.ID)

		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		found := map[string]bool{}
		for _, h := range all {
			found[h.ID] = true
			assert.NoError(t, h.Validate(), "ListAll must only return schema-valid records")
		}
		assert.True(t, found[a.ID])
		assert.True(t, found[b.ID])
	})
}

// RunJournalContract runs a suite of tests verifying that a JourneyJournal
// implementation adheres to the interface contract. The journal must start
// empty.
func RunJournalContract(t *testing.T, journal JourneyJournal) {
	ctx := context.Background()

	entry := func(hexID string) domain.LogEntry {
		return domain.LogEntry{
			JourneyID: "contract",
			JourneyStep: domain.JourneyStep{
				HexID:     hexID,
				Action:    domain.ActionEnter,
				Timestamp: time.Now().UTC(),
			},
		}
	}

	t.Run("Tail Empty", func(t *testing.T) {
		entries, err := journal.Tail(ctx, 10)
		require.NoError(t, err, "an empty or missing journal is not an error")
		assert.Empty(t, entries)
	})

	t.Run("Append and Tail", func(t *testing.T) {
		for _, id := range []string{"one", "two", "three"} {
			require.NoError(t, journal.Append(ctx, entry(id)))
		}

		last2, err := journal.Tail(ctx, 2)
		require.NoError(t, err)
		require.Len(t, last2, 2)
		assert.Equal(t, "two", last2[0].HexID)
		assert.Equal(t, "three", last2[1].HexID)

		all, err := journal.Tail(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, all, 3, "limit larger than the journal returns everything")
	})
}
