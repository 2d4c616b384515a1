package domain

import (
	"context"
	"time"
)

// EventType categorizes engine observability events.
type EventType string

const (
	EventStep  EventType = "journey_step"
	EventQuery EventType = "query"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent fires once per recorded journey step.
type StepEvent struct {
	EventBase
	JourneyID string `json:"journey_id"`
	HexID     string `json:"hex_id"`
	Action    Action `json:"action"`
	EdgeID    string `json:"edge_id,omitempty"`
}

// QueryEvent fires once per intent query.
type QueryEvent struct {
	EventBase
	Intent  string `json:"intent"`
	Matches int    `json:"matches"`
}

// LifecycleHooks defines callbacks for engine observability. Nil callbacks
// are skipped.
type LifecycleHooks struct {
	OnStep  func(context.Context, *StepEvent)
	OnQuery func(context.Context, *QueryEvent)
}
