// Package file persists the comb on the local filesystem: one JSON document
// per hex plus a JSONL journey log. It is the default backend for the CLI,
// where a directory of readable, diffable records beats a database.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/galaxy-co-ai/hive-mcp/internal/logging"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

const recordExt = ".json"

// Store implements ports.HexStore over a directory of <id>.json files.
type Store struct {
	dir    string
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used to report skipped records.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a file store rooted at dir. An empty dir defaults to
// ".hive/comb".
func NewStore(dir string, opts ...StoreOption) *Store {
	if dir == "" {
		dir = filepath.Join(".hive", "comb")
	}
	s := &Store{dir: dir, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory the store reads and writes.
func (s *Store) Dir() string { return s.dir }

func (s *Store) pathFor(id string) string {
	return filepath.Join(s.dir, id+recordExt)
}

// validID refuses ids that are empty or would escape the store directory.
func validID(id string) error {
	if id == "" {
		return fmt.Errorf("hex id cannot be empty")
	}
	if filepath.Base(id) != id {
		return fmt.Errorf("hex id %q must not contain path separators", id)
	}
	return nil
}

// Get loads one hex. A record that is missing, unreadable as JSON, or
// structurally invalid reads as not found; malformed records are logged and
// never surface past the store boundary.
func (s *Store) Get(ctx context.Context, id string) (*domain.Hex, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.pathFor(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrHexNotFound
		}
		return nil, fmt.Errorf("reading hex file: %w", err)
	}

	var hex domain.Hex
	if err := json.Unmarshal(data, &hex); err != nil {
		s.logger.Warn("skipping malformed hex record", "path", s.pathFor(id), "error", err)
		return nil, domain.ErrHexNotFound
	}
	hex.Normalize()
	if err := hex.Validate(); err != nil {
		s.logger.Warn("skipping invalid hex record", "path", s.pathFor(id), "error", err)
		return nil, domain.ErrHexNotFound
	}

	return &hex, nil
}

// Save writes the hex as an indented JSON document, creating the store
// directory on first use.
func (s *Store) Save(ctx context.Context, hex *domain.Hex) error {
	if hex == nil {
		return fmt.Errorf("hex cannot be nil")
	}
	if err := validID(hex.ID); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("ensuring store directory: %w", err)
	}

	data, err := json.MarshalIndent(hex, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling hex %s: %w", hex.ID, err)
	}

	if err := os.WriteFile(s.pathFor(hex.ID), data, 0644); err != nil {
		return fmt.Errorf("writing hex file: %w", err)
	}
	return nil
}

// Delete removes the hex file, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	if err := validID(id); err != nil {
		return false, err
	}

	err := os.Remove(s.pathFor(id))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("deleting hex file: %w", err)
	}
	return true, nil
}

// ListAll loads every readable hex, sorted by id. Records that fail to parse
// or validate are skipped; Get has already logged them.
func (s *Store) ListAll(ctx context.Context) ([]*domain.Hex, error) {
	ids, err := s.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	hexes := make([]*domain.Hex, 0, len(ids))
	for _, id := range ids {
		hex, err := s.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrHexNotFound) {
				continue
			}
			return nil, err
		}
		hexes = append(hexes, hex)
	}
	sort.Slice(hexes, func(i, j int) bool { return hexes[i].ID < hexes[j].ID })
	return hexes, nil
}

// ListIDs returns the id of every record file, sorted, without validating
// the records behind them. A store directory that does not exist yet reads
// as empty.
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("listing store directory: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, recordExt))
	}
	sort.Strings(ids)
	return ids, nil
}
