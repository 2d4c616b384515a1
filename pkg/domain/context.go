package domain

// AgentContext is the caller-supplied situation an agent carries while it
// navigates: what it wants, what it holds, where it has been. It is
// ephemeral; the engine reads it but never stores it.
type AgentContext struct {
	// Intent is the agent's current goal in free text.
	Intent string `json:"intent" yaml:"intent"`

	// Payload is opaque cargo. Guards and transforms treat it as a flat
	// object when it is one.
	Payload any `json:"payload,omitempty" yaml:"payload,omitempty"`

	// Visited carries hex ids seen so far. Reserved for cycle detection;
	// recorded but not currently enforced.
	Visited []string `json:"visited,omitempty" yaml:"visited,omitempty"`

	// Origin identifies the agent for journey grouping.
	Origin string `json:"origin,omitempty" yaml:"origin,omitempty"`

	// Depth counts hops taken so far.
	Depth int `json:"depth,omitempty" yaml:"depth,omitempty"`
}

// HasPayload reports whether the agent carries any payload at all.
func (a *AgentContext) HasPayload() bool {
	return a != nil && a.Payload != nil
}

// PayloadObject returns the payload as a flat object when it is one.
func (a *AgentContext) PayloadObject() (map[string]any, bool) {
	if a == nil {
		return nil, false
	}
	m, ok := a.Payload.(map[string]any)
	return m, ok
}

// JourneyOrigin resolves the journey id for this context: the origin when
// set, otherwise the shared anonymous journey.
func (a *AgentContext) JourneyOrigin() string {
	if a == nil || a.Origin == "" {
		return AnonymousJourneyID
	}
	return a.Origin
}
