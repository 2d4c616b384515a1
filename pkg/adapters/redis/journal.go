package redis

import (
	"context"
	"encoding/json"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// Journal implements ports.JourneyJournal on a Redis list. RPUSH keeps
// append order, so the tail of the list is the most recent history.
type Journal struct {
	client *backend.Client
	settings
}

// NewJournal wraps an existing Redis client.
func NewJournal(client *backend.Client, opts ...Option) *Journal {
	return &Journal{client: client, settings: newSettings(opts)}
}

func (j *Journal) logKey() string { return j.prefix + "journey:log" }

// Append pushes one entry onto the log list.
func (j *Journal) Append(ctx context.Context, entry domain.LogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling journey entry: %w", err)
	}
	if err := j.client.RPush(ctx, j.logKey(), data).Err(); err != nil {
		return fmt.Errorf("redis rpush: %w", err)
	}
	return nil
}

// Tail returns the last limit entries in append order. A key that does not
// exist reads as an empty log; entries that fail to parse are logged and
// skipped.
func (j *Journal) Tail(ctx context.Context, limit int) ([]domain.LogEntry, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	lines, err := j.client.LRange(ctx, j.logKey(), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}

	entries := make([]domain.LogEntry, 0, len(lines))
	for i, line := range lines {
		var entry domain.LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			j.logger.Warn("skipping malformed journal entry", "key", j.logKey(), "index", i, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
