package engine

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/galaxy-co-ai/hive-mcp/internal/logging"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
	"github.com/galaxy-co-ai/hive-mcp/pkg/ports"
)

// Recorder appends journey steps to the durable journal and maintains the
// in-memory per-origin journeys for this process's lifetime. The in-memory
// view is a convenience over the log; it is not rebuilt on restart.
type Recorder struct {
	journal ports.JourneyJournal
	logger  *slog.Logger

	mu       sync.RWMutex
	journeys map[string]*domain.Journey
}

// NewRecorder builds a recorder over the given journal. A nil journal keeps
// steps in memory only.
func NewRecorder(journal ports.JourneyJournal, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Recorder{
		journal:  journal,
		logger:   logger,
		journeys: make(map[string]*domain.Journey),
	}
}

// Record appends the step to the durable journal and to the origin's
// in-memory journey, returning the resolved journey id. Journal write
// failures are logged and swallowed: recording must never abort the
// navigation operation that triggered it.
func (r *Recorder) Record(ctx context.Context, origin string, step domain.JourneyStep) string {
	id := origin
	if id == "" {
		id = domain.AnonymousJourneyID
	}

	if r.journal != nil {
		entry := domain.LogEntry{JourneyID: id, JourneyStep: step}
		if err := r.journal.Append(ctx, entry); err != nil {
			r.logger.Warn("journey append failed", "journey", id, "hex", step.HexID, "error", err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.journeys[id]
	if !ok {
		j = &domain.Journey{ID: id, Started: step.Timestamp}
		r.journeys[id] = j
	}
	j.Steps = append(j.Steps, step)
	return id
}

// Journey returns a copy of the in-memory journey for an origin ("" resolves
// to the anonymous journey).
func (r *Recorder) Journey(origin string) (*domain.Journey, bool) {
	id := origin
	if id == "" {
		id = domain.AnonymousJourneyID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.journeys[id]
	if !ok {
		return nil, false
	}
	return j.Clone(), true
}

// Journeys returns copies of every in-memory journey, sorted by id.
func (r *Recorder) Journeys() []*domain.Journey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Journey, 0, len(r.journeys))
	for _, j := range r.journeys {
		out = append(out, j.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Tail returns the most recent limit entries from the durable journal,
// applying the default limit when none is given. A recorder without a
// journal reports an empty log.
func (r *Recorder) Tail(ctx context.Context, limit int) ([]domain.LogEntry, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	if r.journal == nil {
		return []domain.LogEntry{}, nil
	}
	return r.journal.Tail(ctx, limit)
}
