package ports

import (
	"context"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// Navigator defines the engine surface host adapters drive. Navigation
// outcomes are values: Enter and Traverse report failures inside their
// result structs, while the error returns carry only store-level I/O
// failures.
type Navigator interface {
	// Query scores every hex against the intent text and returns the top
	// matches, best first. limit <= 0 applies the engine default.
	Query(ctx context.Context, intent string, limit int) ([]domain.QueryMatch, error)

	// Enter lands the agent on a hex, returning it along with the outbound
	// edges whose guards pass for the given context.
	Enter(ctx context.Context, hexID string, actx *domain.AgentContext) domain.EnterResult

	// NextSteps returns the passing outbound edges of a hex, highest
	// priority first. A missing hex yields an empty list, not an error.
	NextSteps(ctx context.Context, hexID string, actx *domain.AgentContext) ([]domain.Edge, error)

	// Traverse attempts to cross one edge, re-checking its guard.
	Traverse(ctx context.Context, sourceID, edgeID string, actx *domain.AgentContext) domain.TraversalResult

	// Deposit merges data into a hex's contents. Returns false when the hex
	// does not exist; store write failures propagate as errors.
	Deposit(ctx context.Context, hexID string, data any, actx *domain.AgentContext) (bool, error)

	// CreateHex validates and persists a new hex, refusing to overwrite an
	// existing id.
	CreateHex(ctx context.Context, hex *domain.Hex) (*domain.Hex, error)

	// ListHexes returns every readable hex.
	ListHexes(ctx context.Context) ([]*domain.Hex, error)

	// Journey returns the in-memory journey recorded for an origin during
	// this process's lifetime.
	Journey(origin string) (*domain.Journey, bool)

	// JourneyLog returns the most recent entries from the durable journal.
	// limit <= 0 applies the engine default.
	JourneyLog(ctx context.Context, limit int) ([]domain.LogEntry, error)
}
