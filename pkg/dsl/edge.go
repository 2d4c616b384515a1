package dsl

import "github.com/galaxy-co-ai/hive-mcp/pkg/domain"

// EdgeBuilder provides a fluent API for configuring one edge's guard and
// transform. Method names mirror the wire fields.
type EdgeBuilder struct {
	hex *HexBuilder
	idx int
}

func (e *EdgeBuilder) edge() *domain.Edge {
	return &e.hex.hex.Edges[e.idx]
}

func (e *EdgeBuilder) transform() *domain.Transform {
	edge := e.edge()
	if edge.Transform == nil {
		edge.Transform = &domain.Transform{}
	}
	return edge.Transform
}

// Always makes the edge unconditionally crossable.
func (e *EdgeBuilder) Always() *EdgeBuilder {
	e.edge().When.Always = true
	return e
}

// Intent guards the edge on lexical overlap with the agent's intent.
func (e *EdgeBuilder) Intent(intent string) *EdgeBuilder {
	e.edge().When.Intent = intent
	return e
}

// HasData requires the payload to contain every listed key.
func (e *EdgeBuilder) HasData(keys ...string) *EdgeBuilder {
	cond := &e.edge().When
	cond.HasData = append(cond.HasData, keys...)
	return e
}

// Lacks requires the payload to be missing at least one listed key.
func (e *EdgeBuilder) Lacks(keys ...string) *EdgeBuilder {
	cond := &e.edge().When
	cond.Lacks = append(cond.Lacks, keys...)
	return e
}

// Match requires an exact value at an exact payload key.
func (e *EdgeBuilder) Match(key string, value any) *EdgeBuilder {
	cond := &e.edge().When
	if cond.Match == nil {
		cond.Match = make(map[string]any)
	}
	cond.Match[key] = value
	return e
}

// Pick retains only the listed payload keys on crossing.
func (e *EdgeBuilder) Pick(keys ...string) *EdgeBuilder {
	t := e.transform()
	if t.Pick == nil {
		t.Pick = []string{}
	}
	t.Pick = append(t.Pick, keys...)
	return e
}

// Omit drops the listed payload keys on crossing.
func (e *EdgeBuilder) Omit(keys ...string) *EdgeBuilder {
	t := e.transform()
	if t.Omit == nil {
		t.Omit = []string{}
	}
	t.Omit = append(t.Omit, keys...)
	return e
}

// Rename moves a payload value from one key to another on crossing.
func (e *EdgeBuilder) Rename(from, to string) *EdgeBuilder {
	t := e.transform()
	if t.Rename == nil {
		t.Rename = make(map[string]string)
	}
	t.Rename[from] = to
	return e
}

// Inject adds a fixed pair to the payload on crossing, overwriting any
// existing value.
func (e *EdgeBuilder) Inject(key string, value any) *EdgeBuilder {
	t := e.transform()
	if t.Inject == nil {
		t.Inject = make(map[string]any)
	}
	t.Inject[key] = value
	return e
}

// Priority orders this edge among its siblings; higher comes first.
func (e *EdgeBuilder) Priority(p int) *EdgeBuilder {
	e.edge().Priority = p
	return e
}

// Describe sets the edge's free-text description.
func (e *EdgeBuilder) Describe(text string) *EdgeBuilder {
	e.edge().Description = text
	return e
}

// Edge starts a sibling edge on the same hex.
func (e *EdgeBuilder) Edge(id, to string) *EdgeBuilder {
	return e.hex.Edge(id, to)
}

// Hex returns to the hex builder for further configuration.
func (e *EdgeBuilder) Hex() *HexBuilder {
	return e.hex
}
