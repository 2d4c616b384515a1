package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galaxy-co-ai/hive-mcp/internal/config"
	"github.com/galaxy-co-ai/hive-mcp/internal/logging"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

func seedHex(t *testing.T, eng interface {
	CreateHex(ctx context.Context, hex *domain.Hex) (*domain.Hex, error)
}) {
	t.Helper()
	_, err := eng.CreateHex(context.Background(), &domain.Hex{
		ID:   "docs-home",
		Name: "Documentation Home",
	})
	require.NoError(t, err)
}

func TestNewEngine_MemoryBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = config.BackendMemory

	eng, cleanup, err := NewEngine(cfg, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	seedHex(t, eng)
	hexes, err := eng.ListHexes(context.Background())
	require.NoError(t, err)
	assert.Len(t, hexes, 1)
}

func TestNewEngine_FileBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Store.Backend = config.BackendFile
	cfg.Store.Dir = filepath.Join(dir, "comb")
	cfg.Journal.Path = filepath.Join(dir, "journey.log")

	eng, cleanup, err := NewEngine(cfg, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	seedHex(t, eng)

	// Records land on disk under the configured directory.
	res := eng.Enter(context.Background(), "docs-home", nil)
	assert.True(t, res.Success)

	entries, err := eng.JourneyLog(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestNewEngine_RedisBackend(t *testing.T) {
	srv := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Store.Backend = config.BackendRedis
	cfg.Redis.Addr = srv.Addr()
	cfg.Redis.Prefix = "test:"

	eng, cleanup, err := NewEngine(cfg, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	seedHex(t, eng)
	hexes, err := eng.ListHexes(context.Background())
	require.NoError(t, err)
	require.Len(t, hexes, 1)
	assert.Equal(t, "docs-home", hexes[0].ID)

	// Keys are namespaced under the configured prefix.
	assert.True(t, srv.Exists("test:hex:docs-home"))
}

func TestNewEngine_ConfigOverridesApply(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = config.BackendMemory
	cfg.QueryLimit = 1
	cfg.Synonyms = map[string][]string{"invoice": {"receipt"}}

	eng, cleanup, err := NewEngine(cfg, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	for _, hex := range []*domain.Hex{
		{ID: "billing", Name: "Billing", EntryHints: []string{"invoice questions"}},
		{ID: "billing-faq", Name: "Billing FAQ", EntryHints: []string{"invoice faq"}},
	} {
		_, err := eng.CreateHex(context.Background(), hex)
		require.NoError(t, err)
	}

	// The custom group maps receipt to invoice; the limit caps the result.
	matches, err := eng.Query(context.Background(), "where is my receipt", 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "billing", matches[0].Hex.ID)
}

func TestNewEngine_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = "carrier-pigeon"

	_, _, err := NewEngine(cfg, logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}
