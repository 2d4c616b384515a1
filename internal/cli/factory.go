package cli

import (
	"fmt"
	"log/slog"

	backend "github.com/redis/go-redis/v9"

	hive "github.com/galaxy-co-ai/hive-mcp"
	"github.com/galaxy-co-ai/hive-mcp/internal/config"
	"github.com/galaxy-co-ai/hive-mcp/pkg/adapters/file"
	"github.com/galaxy-co-ai/hive-mcp/pkg/adapters/memory"
	"github.com/galaxy-co-ai/hive-mcp/pkg/adapters/redis"
	"github.com/galaxy-co-ai/hive-mcp/pkg/ports"
)

// NewEngine builds an engine with standard CLI conventions: store and
// journal backends from configuration, the shared logger, and any synonym or
// limit overrides the file carries. The returned cleanup releases whatever
// the backends opened and must run even when a later step fails.
func NewEngine(cfg config.Config, logger *slog.Logger, extra ...hive.Option) (*hive.Engine, func(), error) {
	store, journal, cleanup, err := buildBackends(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	opts := []hive.Option{
		hive.WithStore(store),
		hive.WithJournal(journal),
		hive.WithLogger(logger),
	}
	if len(cfg.Synonyms) > 0 {
		opts = append(opts, hive.WithSynonyms(cfg.Synonyms))
	}
	if cfg.QueryLimit > 0 {
		opts = append(opts, hive.WithQueryLimit(cfg.QueryLimit))
	}
	opts = append(opts, extra...)

	eng, err := hive.New(opts...)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("initializing engine: %w", err)
	}
	return eng, cleanup, nil
}

func buildBackends(cfg config.Config, logger *slog.Logger) (ports.HexStore, ports.JourneyJournal, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		return memory.NewStore(), memory.NewJournal(), noop, nil

	case config.BackendFile:
		store := file.NewStore(cfg.Store.Dir, file.WithLogger(logger))
		journal := file.NewJournal(cfg.Journal.Path, file.WithJournalLogger(logger))
		return store, journal, noop, nil

	case config.BackendRedis:
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := redis.NewFromClient(client,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithLogger(logger),
		)
		journal := redis.NewJournal(client,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithLogger(logger),
		)
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("closing redis client", "error", err)
			}
		}
		return store, journal, cleanup, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
