// Package engine implements the hive's navigation core: intent-to-hex
// scoring, guarded edge evaluation, payload transformation on traversal,
// content deposits, and journey recording.
//
// Every operation is logically sequential; the engine holds no locks of its
// own and suspends only at store and journal I/O. Navigation failures are
// reported as values inside result structs, never as raised errors.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/galaxy-co-ai/hive-mcp/internal/logging"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
	"github.com/galaxy-co-ai/hive-mcp/pkg/match"
	"github.com/galaxy-co-ai/hive-mcp/pkg/ports"
)

// Defaults applied when callers pass no explicit limits.
const (
	DefaultQueryLimit = 5
	DefaultLogLimit   = 100
)

// Engine navigates the comb through a HexStore and records every externally
// visible call with its Recorder.
type Engine struct {
	store      ports.HexStore
	recorder   *Recorder
	table      *match.Table
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	clock      func() time.Time
	queryLimit int
}

var _ ports.Navigator = (*Engine)(nil)

// Option configures the engine.
type Option func(*Engine)

// WithLogger sets a structured logger (default: silent).
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSynonyms replaces the default synonym table.
func WithSynonyms(table *match.Table) Option {
	return func(e *Engine) {
		if table != nil {
			e.table = table
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock overrides the time source. Tests use it to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.clock = now
		}
	}
}

// WithQueryLimit changes the default query result cap.
func WithQueryLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.queryLimit = n
		}
	}
}

// New builds an engine over the given store and journal. A nil journal keeps
// journeys in memory only; durable logging is skipped.
func New(store ports.HexStore, journal ports.JourneyJournal, opts ...Option) *Engine {
	e := &Engine{
		store:      store,
		table:      match.DefaultTable(),
		logger:     logging.NewNop(),
		clock:      time.Now,
		queryLimit: DefaultQueryLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.recorder = NewRecorder(journal, e.logger)
	return e
}

// record captures one journey step and fires the step hook. The timestamp is
// stamped here so callers build bare steps.
func (e *Engine) record(ctx context.Context, origin string, step domain.JourneyStep) {
	if step.Timestamp.IsZero() {
		step.Timestamp = e.clock()
	}
	journeyID := e.recorder.Record(ctx, origin, step)
	if e.hooks.OnStep != nil {
		e.hooks.OnStep(ctx, &domain.StepEvent{
			EventBase: domain.EventBase{Timestamp: step.Timestamp, Type: domain.EventStep},
			JourneyID: journeyID,
			HexID:     step.HexID,
			Action:    step.Action,
			EdgeID:    step.EdgeID,
		})
	}
}

// Enter lands the agent on a hex: the hex is returned together with the
// outbound edges whose guards pass for the entering context, and an enter
// step is recorded. A missing hex is a soft failure.
func (e *Engine) Enter(ctx context.Context, hexID string, actx *domain.AgentContext) domain.EnterResult {
	hex, err := e.store.Get(ctx, hexID)
	if errors.Is(err, domain.ErrHexNotFound) {
		return domain.EnterResult{Exits: []domain.Edge{}, Error: domain.ReasonHexNotFound}
	}
	if err != nil {
		e.logger.Error("enter: hex load failed", "hex", hexID, "error", err)
		return domain.EnterResult{Exits: []domain.Edge{}, Error: err.Error()}
	}

	exits := e.passingEdges(hex, actx)

	var payload any
	if actx != nil {
		payload = actx.Payload
	}
	e.record(ctx, actx.JourneyOrigin(), domain.JourneyStep{
		HexID:   hexID,
		Action:  domain.ActionEnter,
		Payload: payload,
	})

	return domain.EnterResult{Success: true, Hex: hex, Exits: exits}
}

// CreateHex validates and persists a new hex. Both timestamps are stamped
// here. An existing id is refused rather than silently overwritten; deposits
// and re-saves are the mutation paths.
func (e *Engine) CreateHex(ctx context.Context, hex *domain.Hex) (*domain.Hex, error) {
	if hex == nil {
		return nil, fmt.Errorf("%w: nil record", domain.ErrMalformedRecord)
	}

	h := hex.Clone()
	h.Normalize()
	if h.Kind == "" {
		h.Kind = domain.KindData
	}
	now := e.clock()
	h.Created = now
	h.Updated = now
	if err := h.Validate(); err != nil {
		return nil, err
	}

	if _, err := e.store.Get(ctx, h.ID); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrHexExists, h.ID)
	} else if !errors.Is(err, domain.ErrHexNotFound) {
		return nil, fmt.Errorf("checking hex %s: %w", h.ID, err)
	}

	if err := e.store.Save(ctx, h); err != nil {
		return nil, fmt.Errorf("saving hex %s: %w", h.ID, err)
	}

	e.logger.Info("hex created", "hex", h.ID, "name", h.Name)
	return h, nil
}

// ListHexes returns every readable hex, sorted by id.
func (e *Engine) ListHexes(ctx context.Context) ([]*domain.Hex, error) {
	hexes, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing hexes: %w", err)
	}
	sort.Slice(hexes, func(i, j int) bool { return hexes[i].ID < hexes[j].ID })
	return hexes, nil
}

// Journey returns the in-memory journey for an origin ("" resolves to the
// anonymous journey).
func (e *Engine) Journey(origin string) (*domain.Journey, bool) {
	return e.recorder.Journey(origin)
}

// Journeys returns every in-memory journey, sorted by id.
func (e *Engine) Journeys() []*domain.Journey {
	return e.recorder.Journeys()
}

// JourneyLog returns the most recent entries from the durable journal.
func (e *Engine) JourneyLog(ctx context.Context, limit int) ([]domain.LogEntry, error) {
	return e.recorder.Tail(ctx, limit)
}
