package engine

import "github.com/galaxy-co-ai/hive-mcp/pkg/domain"

// applyTransform reshapes a payload per an edge's transform. The caller's
// payload is never mutated: object payloads are rebuilt, anything else
// passes through unchanged. Operations run in the fixed order pick, omit,
// rename, inject; an absent operation is skipped entirely.
func applyTransform(t *domain.Transform, payload any) any {
	if t == nil || t.IsZero() {
		return payload
	}
	in, ok := payload.(map[string]any)
	if !ok {
		return payload
	}

	out := make(map[string]any, len(in))
	if t.Pick != nil {
		// Present-but-empty pick is a real clause: it retains nothing.
		for _, key := range t.Pick {
			if v, exists := in[key]; exists {
				out[key] = v
			}
		}
	} else {
		for k, v := range in {
			out[k] = v
		}
	}

	if t.Omit != nil {
		for _, key := range t.Omit {
			delete(out, key)
		}
	}

	if t.Rename != nil {
		// Two phases keep chained renames ({a:b, b:c}) independent of map
		// iteration order: every move reads the pre-rename state.
		moved := make(map[string]any, len(t.Rename))
		for oldKey, newKey := range t.Rename {
			if v, exists := out[oldKey]; exists {
				moved[newKey] = v
				delete(out, oldKey)
			}
		}
		for k, v := range moved {
			out[k] = v
		}
	}

	if t.Inject != nil {
		for k, v := range t.Inject {
			out[k] = v
		}
	}

	return out
}
