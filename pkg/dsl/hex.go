package dsl

import "github.com/galaxy-co-ai/hive-mcp/pkg/domain"

// HexBuilder provides a fluent API for configuring one hex.
type HexBuilder struct {
	hex     domain.Hex
	builder *Builder
}

// Name sets the human-readable name.
func (h *HexBuilder) Name(name string) *HexBuilder {
	h.hex.Name = name
	return h
}

// Kind sets the hex kind. New hexes default to data.
func (h *HexBuilder) Kind(kind string) *HexBuilder {
	h.hex.Kind = kind
	return h
}

// Describe sets the free-text description.
func (h *HexBuilder) Describe(text string) *HexBuilder {
	h.hex.Description = text
	return h
}

// Hints appends entry hints, the phrases the query scorer weighs heaviest.
func (h *HexBuilder) Hints(hints ...string) *HexBuilder {
	h.hex.EntryHints = append(h.hex.EntryHints, hints...)
	return h
}

// Tags appends classification tags.
func (h *HexBuilder) Tags(tags ...string) *HexBuilder {
	h.hex.Tags = append(h.hex.Tags, tags...)
	return h
}

// Data sets the hex's content data.
func (h *HexBuilder) Data(data any) *HexBuilder {
	h.hex.Contents.Data = data
	return h
}

// Refs appends content references.
func (h *HexBuilder) Refs(refs ...string) *HexBuilder {
	h.hex.Contents.Refs = append(h.hex.Contents.Refs, refs...)
	return h
}

// Tools appends the names of tools reachable from this hex.
func (h *HexBuilder) Tools(tools ...string) *HexBuilder {
	h.hex.Contents.Tools = append(h.hex.Contents.Tools, tools...)
	return h
}

// Edge starts an outbound edge to the target hex id. The returned
// EdgeBuilder configures the guard and transform; chain .Hex() to come back.
func (h *HexBuilder) Edge(id, to string) *EdgeBuilder {
	h.hex.Edges = append(h.hex.Edges, domain.Edge{ID: id, To: to})
	return &EdgeBuilder{hex: h, idx: len(h.hex.Edges) - 1}
}

// Build returns a copy of the hex as configured so far, without the
// normalization and validation that Builder.Build applies.
func (h *HexBuilder) Build() domain.Hex {
	return *h.hex.Clone()
}
