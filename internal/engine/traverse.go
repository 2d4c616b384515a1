package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// Traverse attempts to cross one edge out of a source hex. The sequence is
// fixed: load source, locate edge, re-check the guard, transform the
// payload, classify the destination, record the exit. Each failure
// short-circuits into an unsuccessful result; nothing is ever raised at the
// caller.
func (e *Engine) Traverse(ctx context.Context, sourceID, edgeID string, actx *domain.AgentContext) domain.TraversalResult {
	source, err := e.store.Get(ctx, sourceID)
	if errors.Is(err, domain.ErrHexNotFound) {
		return domain.TraversalResult{Error: domain.ReasonSourceNotFound}
	}
	if err != nil {
		e.logger.Error("traverse: source load failed", "hex", sourceID, "error", err)
		return domain.TraversalResult{Error: err.Error()}
	}

	edge, ok := source.FindEdge(edgeID)
	if !ok {
		return domain.TraversalResult{Error: domain.ReasonEdgeNotFound}
	}

	// Guards can change between a next-steps listing and the actual
	// crossing (a deposit may have altered the payload a guard reads), so
	// re-checking here is mandatory.
	if !conditionMet(e.table, edge.When, actx) {
		return domain.TraversalResult{Destination: edge.To, Error: domain.ReasonGuardUnmet}
	}

	var payload any
	if actx != nil {
		payload = actx.Payload
	}
	payload = applyTransform(edge.Transform, payload)

	e.record(ctx, actx.JourneyOrigin(), domain.JourneyStep{
		HexID:   sourceID,
		Action:  domain.ActionExit,
		Payload: payload,
		EdgeID:  edge.ID,
	})

	return domain.TraversalResult{
		Success:     true,
		Destination: edge.To,
		Payload:     payload,
		External:    edge.IsExternal(),
	}
}

// NextSteps returns the outbound edges whose guards pass for the given
// context, highest priority first (stable for ties). A hex that does not
// exist yields an empty list, not an error.
func (e *Engine) NextSteps(ctx context.Context, hexID string, actx *domain.AgentContext) ([]domain.Edge, error) {
	hex, err := e.store.Get(ctx, hexID)
	if errors.Is(err, domain.ErrHexNotFound) {
		return []domain.Edge{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading hex %s: %w", hexID, err)
	}
	return e.passingEdges(hex, actx), nil
}

// passingEdges filters a hex's outbound edges through their guards and
// orders them by descending priority.
func (e *Engine) passingEdges(hex *domain.Hex, actx *domain.AgentContext) []domain.Edge {
	passing := make([]domain.Edge, 0, len(hex.Edges))
	for _, edge := range hex.Edges {
		if conditionMet(e.table, edge.When, actx) {
			passing = append(passing, edge)
		}
	}
	sort.SliceStable(passing, func(i, j int) bool { return passing[i].Priority > passing[j].Priority })
	return passing
}
