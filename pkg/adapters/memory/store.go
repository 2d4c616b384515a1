// Package memory provides in-memory implementations of the hive's storage
// ports, used for tests and embedded setups that need no durability.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// Store implements ports.HexStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Hex
	mu   sync.RWMutex
}

// NewStore creates a new in-memory hex store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Hex),
	}
}

// NewFromHexes creates a store pre-seeded with the given hexes. Every record
// must validate; a duplicate id is an error rather than a silent overwrite.
func NewFromHexes(hexes ...*domain.Hex) (*Store, error) {
	s := NewStore()
	for _, hex := range hexes {
		if err := hex.Validate(); err != nil {
			return nil, err
		}
		if _, ok := s.data[hex.ID]; ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrHexExists, hex.ID)
		}
		s.data[hex.ID] = hex.Clone()
	}
	return s, nil
}

// Save persists the hex in memory. The stored record is a deep copy so the
// caller keeps no live reference into the store.
func (s *Store) Save(ctx context.Context, hex *domain.Hex) error {
	c := hex.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[c.ID] = c
	return nil
}

// Get retrieves a copy of the hex.
func (s *Store) Get(ctx context.Context, id string) (*domain.Hex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hex, ok := s.data[id]
	if !ok {
		return nil, domain.ErrHexNotFound
	}
	return hex.Clone(), nil
}

// Delete removes the hex, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.data[id]
	delete(s.data, id)
	return ok, nil
}

// ListAll returns copies of every stored hex, sorted by id for a stable
// iteration order.
func (s *Store) ListAll(ctx context.Context) ([]*domain.Hex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hexes := make([]*domain.Hex, 0, len(s.data))
	for _, hex := range s.data {
		hexes = append(hexes, hex.Clone())
	}
	sort.Slice(hexes, func(i, j int) bool { return hexes[i].ID < hexes[j].ID })
	return hexes, nil
}

// ListIDs returns every stored hex id, sorted.
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
