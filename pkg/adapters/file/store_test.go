package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galaxy-co-ai/hive-mcp/pkg/adapters/file"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
	"github.com/galaxy-co-ai/hive-mcp/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ports.RunHexStoreContract(t, store)
}

func TestFileJournal_Contract(t *testing.T) {
	journal := file.NewJournal(filepath.Join(t.TempDir(), "journey.log"))
	ports.RunJournalContract(t, journal)
}

func TestFileStore_DefaultsDirectory(t *testing.T) {
	store := file.NewStore("")
	assert.Equal(t, filepath.Join(".hive", "comb"), store.Dir())
}

func TestFileStore_MalformedRecordsReadAsMissing(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	good := &domain.Hex{ID: "good", Name: "Good", Kind: domain.KindData}
	good.Normalize()
	require.NoError(t, store.Save(ctx, good))

	// Not JSON at all.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{nope"), 0644))
	// Valid JSON, invalid record: the name is required.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nameless.json"), []byte(`{"id":"nameless"}`), 0644))

	_, err := store.Get(ctx, "broken")
	assert.ErrorIs(t, err, domain.ErrHexNotFound)
	_, err = store.Get(ctx, "nameless")
	assert.ErrorIs(t, err, domain.ErrHexNotFound)

	// Listing skips the bad records instead of failing.
	hexes, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, hexes, 1)
	assert.Equal(t, "good", hexes[0].ID)

	// Raw ids still show every record file.
	ids, err := store.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "good", "nameless"}, ids)
}

func TestFileStore_RejectsPathEscapingIDs(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	bad := &domain.Hex{ID: "../escape", Name: "Escape", Kind: domain.KindData}
	assert.Error(t, store.Save(ctx, bad))

	_, err := store.Get(ctx, "../escape")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrHexNotFound)
}

func TestFileStore_EmptyDirectoryReadsAsEmpty(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "never-created"))
	ctx := context.Background()

	hexes, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, hexes)

	ids, err := store.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileJournal_TailSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journey.log")
	journal := file.NewJournal(path)
	ctx := context.Background()

	first := domain.LogEntry{JourneyID: "scout", JourneyStep: domain.JourneyStep{HexID: "a", Action: domain.ActionEnter}}
	second := domain.LogEntry{JourneyID: "scout", JourneyStep: domain.JourneyStep{HexID: "b", Action: domain.ActionExit}}
	require.NoError(t, journal.Append(ctx, first))

	// A torn write lands between two good entries.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("{\"journeyId\":\"scout\",\"hexI\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, journal.Append(ctx, second))

	entries, err := journal.Tail(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].HexID)
	assert.Equal(t, "b", entries[1].HexID)
}

func TestFileJournal_MissingFileReadsAsEmpty(t *testing.T) {
	journal := file.NewJournal(filepath.Join(t.TempDir(), "nope", "journey.log"))

	entries, err := journal.Tail(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
