package engine

import (
	"reflect"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
	"github.com/galaxy-co-ai/hive-mcp/pkg/match"
)

// conditionMet evaluates an edge guard against the agent's context. Checks
// run in the fixed order always, intent, hasData, lacks, match, failing on
// the first present clause that does not hold. A clause whose relevant input
// is absent passes vacuously.
func conditionMet(table *match.Table, cond domain.Condition, actx *domain.AgentContext) bool {
	if cond.Always {
		// Unconditional match; remaining clauses are ignored even when
		// contradictory.
		return true
	}

	// A declared intent binds only agents that state one: an empty context
	// intent skips the clause instead of failing it, so the edge stays
	// crossable for intent-less callers.
	if cond.Intent != "" && actx != nil && actx.Intent != "" {
		if match.Overlap(table.ExpandText(cond.Intent), table.ExpandText(actx.Intent)) == 0 {
			return false
		}
	}

	if !actx.HasPayload() {
		// No payload means hasData, lacks, and match are all vacuously
		// true, even combined in ways that look mutually exclusive. That
		// is long-standing documented behavior, preserved deliberately.
		return true
	}

	// Non-object payloads carry no keys; the nil map makes every key lookup
	// miss below.
	payload, _ := actx.PayloadObject()

	if cond.HasData != nil {
		for _, key := range cond.HasData {
			if _, ok := payload[key]; !ok {
				return false
			}
		}
	}

	if cond.Lacks != nil {
		missing := false
		for _, key := range cond.Lacks {
			if _, ok := payload[key]; !ok {
				missing = true
				break
			}
		}
		if !missing {
			return false
		}
	}

	if cond.Match != nil {
		for key, want := range cond.Match {
			got, ok := payload[key]
			if !ok || !reflect.DeepEqual(got, want) {
				return false
			}
		}
	}

	return true
}
