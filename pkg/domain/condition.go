package domain

// Condition guards an edge. Every present clause must hold for the edge to
// pass; a clause whose relevant input (context intent, carried payload) is
// absent is vacuously satisfied.
//
// Presence is structural: a nil HasData slice means "no constraint", while an
// empty non-nil one is a real, degenerate clause. JSON decoding preserves the
// distinction, and Clone must too.
type Condition struct {
	// Always short-circuits the whole guard to true. Other clauses are
	// ignored even when contradictory.
	Always bool `json:"always,omitempty" yaml:"always,omitempty"`

	// Intent passes when it lexically overlaps the agent's intent after
	// synonym expansion. An agent that supplies no intent skips the clause
	// rather than failing it.
	Intent string `json:"intent,omitempty" yaml:"intent,omitempty"`

	// HasData lists keys the payload must all contain.
	HasData []string `json:"hasData,omitempty" yaml:"hasData,omitempty"`

	// Lacks passes when the payload is missing at least one listed key.
	Lacks []string `json:"lacks,omitempty" yaml:"lacks,omitempty"`

	// Match requires exact values at exact keys.
	Match map[string]any `json:"match,omitempty" yaml:"match,omitempty"`
}

// IsZero reports whether no clause is set at all. A zero condition passes
// for every context.
func (c Condition) IsZero() bool {
	return !c.Always && c.Intent == "" && c.HasData == nil && c.Lacks == nil && c.Match == nil
}

// Clone returns a deep copy.
func (c Condition) Clone() Condition {
	out := c
	out.HasData = cloneStrings(c.HasData)
	out.Lacks = cloneStrings(c.Lacks)
	if c.Match != nil {
		out.Match = make(map[string]any, len(c.Match))
		for k, v := range c.Match {
			out.Match[k] = copyValue(v)
		}
	}
	return out
}
