package memory

import (
	"context"
	"sync"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// Journal implements ports.JourneyJournal in memory. Entries live for the
// process lifetime only.
type Journal struct {
	mu      sync.RWMutex
	entries []domain.LogEntry
}

// NewJournal creates a new in-memory journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Append adds the entry to the end of the journal.
func (j *Journal) Append(ctx context.Context, entry domain.LogEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
	return nil
}

// Tail returns the most recent limit entries in append order.
func (j *Journal) Tail(ctx context.Context, limit int) ([]domain.LogEntry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	start := 0
	if limit > 0 && len(j.entries) > limit {
		start = len(j.entries) - limit
	}
	out := make([]domain.LogEntry, len(j.entries)-start)
	copy(out, j.entries[start:])
	return out, nil
}
