package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/galaxy-co-ai/hive-mcp/internal/logging"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// Journal implements ports.JourneyJournal over a single append-only JSONL
// file: one JSON object per line, in arrival order.
type Journal struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex
}

// JournalOption configures a Journal.
type JournalOption func(*Journal)

// WithJournalLogger sets the logger used to report skipped log lines.
func WithJournalLogger(logger *slog.Logger) JournalOption {
	return func(j *Journal) {
		if logger != nil {
			j.logger = logger
		}
	}
}

// NewJournal creates a journal backed by the given file. An empty path
// defaults to ".hive/journey.log".
func NewJournal(path string, opts ...JournalOption) *Journal {
	if path == "" {
		path = filepath.Join(".hive", "journey.log")
	}
	j := &Journal{path: path, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Path returns the log file location.
func (j *Journal) Path() string { return j.path }

// Append writes one entry as a JSON line, creating the file and its parent
// directory on first use.
func (j *Journal) Append(ctx context.Context, entry domain.LogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling journey entry: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if dir := filepath.Dir(j.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ensuring journal directory: %w", err)
		}
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("appending journey entry: %w", err)
	}
	return nil
}

// Tail returns the last limit entries in append order. A log file that does
// not exist yet reads as empty; lines that fail to parse are logged and
// skipped so one corrupt write cannot hide the rest of the history.
func (j *Journal) Tail(ctx context.Context, limit int) ([]domain.LogEntry, error) {
	j.mu.Lock()
	data, err := os.ReadFile(j.path)
	j.mu.Unlock()
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.LogEntry{}, nil
		}
		return nil, fmt.Errorf("reading journal: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	entries := make([]domain.LogEntry, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var entry domain.LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			j.logger.Warn("skipping malformed journal line", "path", j.path, "line", i+1, "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}
