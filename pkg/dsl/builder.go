package dsl

import (
	"fmt"
	"time"

	"github.com/galaxy-co-ai/hive-mcp/pkg/adapters/memory"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// Builder accumulates hexes under construction.
type Builder struct {
	hexes map[string]*HexBuilder
	order []string
}

// New creates an empty comb builder.
func New() *Builder {
	return &Builder{hexes: make(map[string]*HexBuilder)}
}

// Hex starts building the hex with the given id. Calling it again with the
// same id resumes the existing builder.
func (b *Builder) Hex(id string) *HexBuilder {
	if hb, ok := b.hexes[id]; ok {
		return hb
	}
	hb := &HexBuilder{
		hex:     domain.Hex{ID: id, Kind: domain.KindData},
		builder: b,
	}
	b.hexes[id] = hb
	b.order = append(b.order, id)
	return hb
}

// Build compiles every hex in declaration order, normalized and validated.
// Timestamps still unset are stamped with the current time.
func (b *Builder) Build() ([]*domain.Hex, error) {
	now := time.Now().UTC()
	hexes := make([]*domain.Hex, 0, len(b.order))
	for _, id := range b.order {
		h := b.hexes[id].hex.Clone()
		h.Normalize()
		if h.Created.IsZero() {
			h.Created = now
		}
		if h.Updated.IsZero() {
			h.Updated = now
		}
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("building hex %s: %w", id, err)
		}
		hexes = append(hexes, h)
	}
	return hexes, nil
}

// Store compiles the comb into a pre-seeded memory store, ready to hand to
// an engine.
func (b *Builder) Store() (*memory.Store, error) {
	hexes, err := b.Build()
	if err != nil {
		return nil, err
	}
	return memory.NewFromHexes(hexes...)
}
