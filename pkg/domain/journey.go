package domain

import "time"

// AnonymousJourneyID keys the shared journey used when a caller supplies no
// origin.
const AnonymousJourneyID = "anonymous"

// Action labels what a journey step records.
type Action string

const (
	ActionEnter   Action = "enter"
	ActionExit    Action = "exit"
	ActionDeposit Action = "deposit"
	ActionQuery   Action = "query"
)

// JourneyStep is one audit record: which hex was touched and how.
type JourneyStep struct {
	HexID     string    `json:"hexId"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
	EdgeID    string    `json:"edgeId,omitempty"`
}

// LogEntry is the durable form of a step: the step plus its resolved journey
// id, serialized as one self-contained JSON object per journal line.
type LogEntry struct {
	JourneyID string `json:"journeyId"`

	JourneyStep
}

// Journey is the in-memory, process-lifetime view of one origin's steps. It
// is a convenience over the durable log, not a second source of truth, and
// is not rebuilt from the log on restart.
type Journey struct {
	ID      string        `json:"id"`
	Steps   []JourneyStep `json:"steps"`
	Started time.Time     `json:"started"`
}

// Clone returns a copy whose step slice is safe to hand out.
func (j *Journey) Clone() *Journey {
	if j == nil {
		return nil
	}
	c := *j
	c.Steps = make([]JourneyStep, len(j.Steps))
	for i, s := range j.Steps {
		s.Payload = copyValue(s.Payload)
		c.Steps[i] = s
	}
	return &c
}
