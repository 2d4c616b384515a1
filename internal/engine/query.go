package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
	"github.com/galaxy-co-ai/hive-mcp/pkg/match"
)

// Scoring weights. Entry hints dominate; name and description corroborate;
// tags count only when an expanded intent token names them literally.
const (
	hintPoints        = 1.0
	nameWeight        = 0.5
	descriptionWeight = 0.3
	tagPoints         = 0.5
)

// Query scores every hex against the intent text and returns the top
// matches, best first. Hexes that accumulate no evidence are excluded.
// The query is read-only against the store; like every engine entry point
// it still notifies the journey recorder.
func (e *Engine) Query(ctx context.Context, intent string, limit int) ([]domain.QueryMatch, error) {
	if limit <= 0 {
		limit = e.queryLimit
	}

	hexes, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing hexes: %w", err)
	}
	// Score in id order so ties resolve the same way on every backend.
	sort.Slice(hexes, func(i, j int) bool { return hexes[i].ID < hexes[j].ID })

	intentSet := e.table.ExpandText(intent)

	matches := make([]domain.QueryMatch, 0, len(hexes))
	for _, hex := range hexes {
		if m := e.scoreHex(intentSet, hex); m.Score > 0 {
			matches = append(matches, m)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > limit {
		matches = matches[:limit]
	}

	e.record(ctx, "", domain.JourneyStep{
		Action:  domain.ActionQuery,
		Payload: map[string]any{"intent": intent, "matches": len(matches)},
	})
	if e.hooks.OnQuery != nil {
		e.hooks.OnQuery(ctx, &domain.QueryEvent{
			EventBase: domain.EventBase{Timestamp: e.clock(), Type: domain.EventQuery},
			Intent:    intent,
			Matches:   len(matches),
		})
	}
	e.logger.Debug("query scored", "intent", intent, "matches", len(matches))

	return matches, nil
}

// scoreHex accumulates the lexical evidence that one hex answers the intent:
// a point per overlapping entry hint, weighted overlap with name and
// description tokens, and a half point per literally mentioned tag.
func (e *Engine) scoreHex(intentSet match.Set, hex *domain.Hex) domain.QueryMatch {
	score := 0.0
	matched := []string{}

	for _, hint := range hex.EntryHints {
		if match.Overlap(intentSet, e.table.ExpandText(hint)) > 0 {
			score += hintPoints
			matched = append(matched, hint)
		}
	}

	score += nameWeight * float64(match.Overlap(intentSet, e.table.ExpandText(hex.Name)))

	if hex.Description != "" {
		score += descriptionWeight * float64(match.Overlap(intentSet, e.table.ExpandText(hex.Description)))
	}

	for _, tag := range hex.Tags {
		if intentSet.Has(strings.ToLower(tag)) {
			score += tagPoints
		}
	}

	return domain.QueryMatch{Hex: hex, Score: score, MatchedHints: matched}
}
