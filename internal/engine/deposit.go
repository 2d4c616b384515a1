package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// Deposit merges data into a hex's contents and persists the result. It
// reports false for a missing hex; store write failures propagate, since
// losing deposited data silently is worse than failing loudly. A deposit
// step is recorded only when the caller supplies a context.
//
// The read-modify-write is not isolated: two concurrent deposits on the same
// hex race and the last write wins.
func (e *Engine) Deposit(ctx context.Context, hexID string, data any, actx *domain.AgentContext) (bool, error) {
	hex, err := e.store.Get(ctx, hexID)
	if errors.Is(err, domain.ErrHexNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading hex %s: %w", hexID, err)
	}

	hex.Contents.Data = mergeData(hex.Contents.Data, data)
	hex.Updated = e.clock()

	if err := e.store.Save(ctx, hex); err != nil {
		return false, fmt.Errorf("saving hex %s: %w", hexID, err)
	}

	if actx != nil {
		e.record(ctx, actx.JourneyOrigin(), domain.JourneyStep{
			HexID:   hexID,
			Action:  domain.ActionDeposit,
			Payload: data,
		})
	}

	e.logger.Debug("deposit merged", "hex", hexID)
	return true, nil
}

// mergeData folds incoming into existing: two sequences concatenate
// (existing first), two flat objects shallow-merge with incoming values
// winning, anything else replaces the existing data wholesale.
func mergeData(existing, incoming any) any {
	if eSeq, ok := asSequence(existing); ok {
		if iSeq, ok := asSequence(incoming); ok {
			merged := make([]any, 0, len(eSeq)+len(iSeq))
			merged = append(merged, eSeq...)
			merged = append(merged, iSeq...)
			return merged
		}
	}

	if eObj, ok := asObject(existing); ok {
		if iObj, ok := asObject(incoming); ok {
			merged := make(map[string]any, len(eObj)+len(iObj))
			for k, v := range eObj {
				merged[k] = v
			}
			for k, v := range iObj {
				merged[k] = v
			}
			return merged
		}
	}

	return incoming
}

// asSequence normalizes any slice or array value into []any. JSON payloads
// arrive as []any already; reflection covers data deposited directly from Go
// callers.
func asSequence(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if arr, ok := v.([]any); ok {
		return arr, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asObject normalizes any string-keyed map into map[string]any.
func asObject(v any) (map[string]any, bool) {
	if v == nil {
		return nil, false
	}
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
