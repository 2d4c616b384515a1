package ports

import (
	"context"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// JourneyJournal is the durable, append-only sink for journey steps.
// Appends from concurrent operations may interleave, but committed entries
// are never rewritten.
type JourneyJournal interface {
	// Append writes one entry to the end of the journal.
	Append(ctx context.Context, entry domain.LogEntry) error

	// Tail returns the most recent limit entries in append order. A missing
	// or empty journal yields an empty slice, not an error.
	Tail(ctx context.Context, limit int) ([]domain.LogEntry, error)
}
