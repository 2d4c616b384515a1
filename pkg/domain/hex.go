package domain

import (
	"fmt"
	"strings"
	"time"
)

// Hex kinds classify what a cell holds. Purely descriptive: the engine never
// branches on kind, agents use it as a routing hint.
const (
	KindData     = "data"
	KindTool     = "tool"
	KindGateway  = "gateway"
	KindJunction = "junction"
)

// ExternalPrefix marks edge targets that hand control off outside the comb.
const ExternalPrefix = "external:"

// Contents is the opaque payload stored inside a hex. The engine returns or
// merges it but never interprets it.
type Contents struct {
	Data  any      `json:"data,omitempty" yaml:"data,omitempty"`
	Refs  []string `json:"refs,omitempty" yaml:"refs,omitempty"`
	Tools []string `json:"tools,omitempty" yaml:"tools,omitempty"`
}

// Hex is a single cell in the comb: a unit of content or capability plus the
// guarded edges leading out of it.
type Hex struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Kind        string   `json:"type" yaml:"type"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags" yaml:"tags"`
	Contents    Contents `json:"contents" yaml:"contents"`

	// EntryHints are free-text phrases describing when an agent should land
	// here. They are the primary input to intent scoring.
	EntryHints []string `json:"entryHints" yaml:"entryHints"`

	// Edges lead out of this hex. List order carries no meaning; priority
	// governs evaluation order.
	Edges []Edge `json:"edges" yaml:"edges"`

	Created time.Time `json:"created" yaml:"created"`
	Updated time.Time `json:"updated" yaml:"updated"`
}

// Edge is a directed, conditional connection owned by its source hex.
type Edge struct {
	ID string `json:"id" yaml:"id"`

	// To names the destination hex, or an external target in the form
	// "external:<name>". Forward references are legal: the target need not
	// exist when the edge is authored.
	To string `json:"to" yaml:"to"`

	When        Condition  `json:"when" yaml:"when"`
	Transform   *Transform `json:"transform,omitempty" yaml:"transform,omitempty"`
	Priority    int        `json:"priority" yaml:"priority"`
	Description string     `json:"description" yaml:"description"`
}

// IsExternal reports whether the edge leaves the comb entirely.
func (e Edge) IsExternal() bool {
	return strings.HasPrefix(e.To, ExternalPrefix)
}

// ExternalTarget returns the bare system name behind an external edge, and
// false for in-comb edges.
func (e Edge) ExternalTarget() (string, bool) {
	if !e.IsExternal() {
		return "", false
	}
	return strings.TrimPrefix(e.To, ExternalPrefix), true
}

// Clone returns a deep copy of the edge.
func (e Edge) Clone() Edge {
	c := e
	c.When = e.When.Clone()
	if e.Transform != nil {
		t := e.Transform.Clone()
		c.Transform = &t
	}
	return c
}

// KnownKind reports whether k names one of the recognized hex kinds.
func KnownKind(k string) bool {
	switch k {
	case KindData, KindTool, KindGateway, KindJunction:
		return true
	}
	return false
}

// Validate checks the record shape. Store adapters call it at read time and
// skip records that fail; the engine calls it before persisting.
func (h *Hex) Validate() error {
	if h == nil {
		return fmt.Errorf("%w: nil record", ErrMalformedRecord)
	}
	if h.ID == "" {
		return fmt.Errorf("%w: missing id", ErrMalformedRecord)
	}
	if h.Name == "" {
		return fmt.Errorf("%w: %s: missing name", ErrMalformedRecord, h.ID)
	}
	if !KnownKind(h.Kind) {
		return fmt.Errorf("%w: %s: unknown type %q", ErrMalformedRecord, h.ID, h.Kind)
	}
	seen := make(map[string]struct{}, len(h.Edges))
	for i, edge := range h.Edges {
		if edge.ID == "" {
			return fmt.Errorf("%w: %s: edge %d missing id", ErrMalformedRecord, h.ID, i)
		}
		if edge.To == "" {
			return fmt.Errorf("%w: %s: edge %q missing target", ErrMalformedRecord, h.ID, edge.ID)
		}
		if _, dup := seen[edge.ID]; dup {
			return fmt.Errorf("%w: %s: duplicate edge id %q", ErrMalformedRecord, h.ID, edge.ID)
		}
		seen[edge.ID] = struct{}{}
	}
	return nil
}

// Normalize fills nil collections so records always serialize with explicit
// arrays.
func (h *Hex) Normalize() {
	if h.Tags == nil {
		h.Tags = []string{}
	}
	if h.EntryHints == nil {
		h.EntryHints = []string{}
	}
	if h.Edges == nil {
		h.Edges = []Edge{}
	}
}

// FindEdge returns the outbound edge with the given id.
func (h *Hex) FindEdge(edgeID string) (*Edge, bool) {
	for i := range h.Edges {
		if h.Edges[i].ID == edgeID {
			return &h.Edges[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy, so stores can hand out records without sharing
// mutable state with callers.
func (h *Hex) Clone() *Hex {
	if h == nil {
		return nil
	}
	c := *h
	c.Tags = cloneStrings(h.Tags)
	c.EntryHints = cloneStrings(h.EntryHints)
	c.Contents = Contents{
		Data:  copyValue(h.Contents.Data),
		Refs:  cloneStrings(h.Contents.Refs),
		Tools: cloneStrings(h.Contents.Tools),
	}
	if h.Edges != nil {
		c.Edges = make([]Edge, len(h.Edges))
		for i, e := range h.Edges {
			c.Edges[i] = e.Clone()
		}
	}
	return &c
}

// cloneStrings copies a string slice, preserving the nil/empty distinction
// that condition clauses rely on.
func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// copyValue deep-copies the JSON-shaped values that travel through payloads
// and hex contents. Values of other types are returned as-is.
func copyValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, item := range tv {
			out[k] = copyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
