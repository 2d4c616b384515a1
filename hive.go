package hive

import (
	"context"
	"log/slog"
	"time"

	"github.com/galaxy-co-ai/hive-mcp/internal/engine"
	"github.com/galaxy-co-ai/hive-mcp/internal/logging"
	"github.com/galaxy-co-ai/hive-mcp/pkg/adapters/memory"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
	"github.com/galaxy-co-ai/hive-mcp/pkg/match"
	"github.com/galaxy-co-ai/hive-mcp/pkg/ports"
)

// Version is the hive release version. Overridden at build time via
// -ldflags "-X github.com/galaxy-co-ai/hive-mcp.Version=v1.2.3".
var Version = "0.1.0-dev"

// Engine wraps the navigation core and provides a simplified API for
// consumers. It implements ports.Navigator.
type Engine struct {
	core    *engine.Engine
	store   ports.HexStore
	journal ports.JourneyJournal
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	table   *match.Table

	clock      func() time.Time
	queryLimit int
}

var _ ports.Navigator = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects a hex store. The default is a fresh in-memory store.
func WithStore(store ports.HexStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithJournal injects a durable journey journal. Without one, journeys live
// in memory only.
func WithJournal(journal ports.JourneyJournal) Option {
	return func(e *Engine) {
		e.journal = journal
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSynonyms replaces the built-in synonym groups used for intent
// matching. The bidirectional adjacency is precomputed here, once; the
// resulting table is immutable for the engine's lifetime.
func WithSynonyms(groups map[string][]string) Option {
	return func(e *Engine) {
		if groups != nil {
			e.table = match.NewTable(groups)
		}
	}
}

// WithQueryLimit changes the default result cap for Query.
func WithQueryLimit(n int) Option {
	return func(e *Engine) {
		e.queryLimit = n
	}
}

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.clock = now
	}
}

// New initializes a hive engine. By default it runs on an in-memory store
// with no durable journal.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	coreOpts := []engine.Option{
		engine.WithLogger(eng.logger),
		engine.WithLifecycleHooks(eng.hooks),
	}
	if eng.table != nil {
		coreOpts = append(coreOpts, engine.WithSynonyms(eng.table))
	}
	if eng.clock != nil {
		coreOpts = append(coreOpts, engine.WithClock(eng.clock))
	}
	if eng.queryLimit > 0 {
		coreOpts = append(coreOpts, engine.WithQueryLimit(eng.queryLimit))
	}

	eng.core = engine.New(eng.store, eng.journal, coreOpts...)
	return eng, nil
}

// Query scores every hex against the intent text and returns the best
// matches. A limit of zero applies the engine's default.
func (e *Engine) Query(ctx context.Context, intent string, limit int) ([]domain.QueryMatch, error) {
	return e.core.Query(ctx, intent, limit)
}

// Enter lands an agent on a hex, returning it with the passable exits.
func (e *Engine) Enter(ctx context.Context, hexID string, actx *domain.AgentContext) domain.EnterResult {
	return e.core.Enter(ctx, hexID, actx)
}

// NextSteps lists the outbound edges whose guards pass, best first.
func (e *Engine) NextSteps(ctx context.Context, hexID string, actx *domain.AgentContext) ([]domain.Edge, error) {
	return e.core.NextSteps(ctx, hexID, actx)
}

// Traverse crosses one edge, transforming the carried payload.
func (e *Engine) Traverse(ctx context.Context, sourceID, edgeID string, actx *domain.AgentContext) domain.TraversalResult {
	return e.core.Traverse(ctx, sourceID, edgeID, actx)
}

// Deposit merges data into a hex's contents.
func (e *Engine) Deposit(ctx context.Context, hexID string, data any, actx *domain.AgentContext) (bool, error) {
	return e.core.Deposit(ctx, hexID, data, actx)
}

// CreateHex validates and persists a new hex.
func (e *Engine) CreateHex(ctx context.Context, hex *domain.Hex) (*domain.Hex, error) {
	return e.core.CreateHex(ctx, hex)
}

// ListHexes returns every readable hex, sorted by id.
func (e *Engine) ListHexes(ctx context.Context) ([]*domain.Hex, error) {
	return e.core.ListHexes(ctx)
}

// Journey returns the in-memory journey for an origin ("" resolves to the
// anonymous journey).
func (e *Engine) Journey(origin string) (*domain.Journey, bool) {
	return e.core.Journey(origin)
}

// Journeys returns every in-memory journey, sorted by id.
func (e *Engine) Journeys() []*domain.Journey {
	return e.core.Journeys()
}

// JourneyLog returns the most recent entries from the durable journal.
func (e *Engine) JourneyLog(ctx context.Context, limit int) ([]domain.LogEntry, error) {
	return e.core.JourneyLog(ctx, limit)
}

// Store returns the underlying hex store.
func (e *Engine) Store() ports.HexStore {
	return e.store
}
