// Package redis persists the comb in Redis: one JSON value per hex with a
// set index for listings, and a list for the journey log. It suits
// deployments where several hive processes share one comb.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	backend "github.com/redis/go-redis/v9"

	"github.com/galaxy-co-ai/hive-mcp/internal/logging"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// DefaultPrefix namespaces every key this package touches.
const DefaultPrefix = "hive:"

type settings struct {
	prefix string
	logger *slog.Logger
}

// Option configures the Redis-backed store and journal.
type Option func(*settings)

// WithPrefix overrides the key prefix. Two stores with distinct prefixes
// share a Redis instance without seeing each other.
func WithPrefix(prefix string) Option {
	return func(s *settings) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithLogger sets the logger used to report skipped records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{prefix: DefaultPrefix, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Store implements ports.HexStore on a Redis client.
type Store struct {
	client *backend.Client
	settings
}

// NewFromClient wraps an existing Redis client. The caller keeps ownership
// of the client's lifecycle.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	return &Store{client: client, settings: newSettings(opts)}
}

func (s *Store) hexKey(id string) string { return s.prefix + "hex:" + id }
func (s *Store) indexKey() string        { return s.prefix + "hexes" }

// Get loads one hex. Missing keys and records that fail to parse or
// validate all read as not found; the latter are logged.
func (s *Store) Get(ctx context.Context, id string) (*domain.Hex, error) {
	data, err := s.client.Get(ctx, s.hexKey(id)).Bytes()
	if err == backend.Nil {
		return nil, domain.ErrHexNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", id, err)
	}
	return s.decode(id, data)
}

func (s *Store) decode(id string, data []byte) (*domain.Hex, error) {
	var hex domain.Hex
	if err := json.Unmarshal(data, &hex); err != nil {
		s.logger.Warn("skipping malformed hex record", "key", s.hexKey(id), "error", err)
		return nil, domain.ErrHexNotFound
	}
	hex.Normalize()
	if err := hex.Validate(); err != nil {
		s.logger.Warn("skipping invalid hex record", "key", s.hexKey(id), "error", err)
		return nil, domain.ErrHexNotFound
	}
	return &hex, nil
}

// Save writes the hex value and registers the id in the index, atomically
// from the reader's perspective.
func (s *Store) Save(ctx context.Context, hex *domain.Hex) error {
	if hex == nil || hex.ID == "" {
		return fmt.Errorf("hex with an id is required")
	}

	data, err := json.Marshal(hex)
	if err != nil {
		return fmt.Errorf("marshaling hex %s: %w", hex.ID, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.hexKey(hex.ID), data, 0)
	pipe.SAdd(ctx, s.indexKey(), hex.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save %s: %w", hex.ID, err)
	}
	return nil
}

// Delete removes the hex value and its index entry, reporting whether the
// value existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	pipe := s.client.TxPipeline()
	delCmd := pipe.Del(ctx, s.hexKey(id))
	pipe.SRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis delete %s: %w", id, err)
	}
	return delCmd.Val() > 0, nil
}

// ListAll loads every indexed hex, sorted by id, skipping records that no
// longer parse or validate.
func (s *Store) ListAll(ctx context.Context) ([]*domain.Hex, error) {
	ids, err := s.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Hex{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.hexKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}

	hexes := make([]*domain.Hex, 0, len(ids))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a value: the key was removed out of band.
			s.logger.Warn("skipping dangling index entry", "id", ids[i])
			continue
		}
		hex, err := s.decode(ids[i], []byte(raw))
		if err != nil {
			continue
		}
		hexes = append(hexes, hex)
	}
	return hexes, nil
}

// ListIDs returns every indexed id, sorted.
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}
