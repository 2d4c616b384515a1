package seed

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// HexMetadata mirrors the hex wire format in document frontmatter. Loam
// decodes frontmatter through mapstructure, so the tags here name the
// exact YAML keys seed authors write.
type HexMetadata struct {
	ID          string         `mapstructure:"id"`
	Name        string         `mapstructure:"name"`
	Type        string         `mapstructure:"type"`
	Description string         `mapstructure:"description"`
	Tags        []string       `mapstructure:"tags"`
	EntryHints  []string       `mapstructure:"entryHints"`
	Data        map[string]any `mapstructure:"data"`
	Refs        []string       `mapstructure:"refs"`
	Tools       []string       `mapstructure:"tools"`
	Edges       []EdgeMetadata `mapstructure:"edges"`
}

// EdgeMetadata is one outbound edge in frontmatter, nested the same way the
// wire format nests when and transform.
type EdgeMetadata struct {
	ID          string         `mapstructure:"id"`
	To          string         `mapstructure:"to"`
	When        ConditionMeta  `mapstructure:"when"`
	Transform   *TransformMeta `mapstructure:"transform"`
	Priority    int            `mapstructure:"priority"`
	Description string         `mapstructure:"description"`
}

// ConditionMeta is the frontmatter form of an edge guard.
type ConditionMeta struct {
	Always  bool           `mapstructure:"always"`
	Intent  string         `mapstructure:"intent"`
	HasData []string       `mapstructure:"hasData"`
	Lacks   []string       `mapstructure:"lacks"`
	Match   map[string]any `mapstructure:"match"`
}

// TransformMeta is the frontmatter form of an edge transform.
type TransformMeta struct {
	Pick   []string          `mapstructure:"pick"`
	Omit   []string          `mapstructure:"omit"`
	Rename map[string]string `mapstructure:"rename"`
	Inject map[string]any    `mapstructure:"inject"`
}

// toHex converts parsed frontmatter plus the document body into a domain
// record. The id falls back to the file name; the body, when present, lands
// under data.text unless the frontmatter already claims that key.
func (m HexMetadata) toHex(docID, body string, now time.Time) (*domain.Hex, error) {
	id := m.ID
	if id == "" {
		id = trimExtension(docID)
	}
	if id == "" {
		return nil, fmt.Errorf("document %q has no usable id", docID)
	}

	kind := m.Type
	if kind == "" {
		kind = domain.KindData
	}

	data := normalizeObject(m.Data)
	if body = strings.TrimSpace(body); body != "" {
		if data == nil {
			data = map[string]any{}
		}
		if _, claimed := data["text"]; !claimed {
			data["text"] = body
		}
	}

	hex := &domain.Hex{
		ID:          id,
		Name:        m.Name,
		Kind:        kind,
		Description: m.Description,
		Tags:        m.Tags,
		EntryHints:  m.EntryHints,
		Contents: domain.Contents{
			Data:  data,
			Refs:  m.Refs,
			Tools: m.Tools,
		},
		Created: now,
		Updated: now,
	}

	for _, em := range m.Edges {
		hex.Edges = append(hex.Edges, domain.Edge{
			ID: em.ID,
			To: em.To,
			When: domain.Condition{
				Always:  em.When.Always,
				Intent:  em.When.Intent,
				HasData: em.When.HasData,
				Lacks:   em.When.Lacks,
				Match:   normalizeObject(em.When.Match),
			},
			Transform:   em.Transform.toDomain(),
			Priority:    em.Priority,
			Description: em.Description,
		})
	}

	hex.Normalize()
	return hex, nil
}

func (t *TransformMeta) toDomain() *domain.Transform {
	if t == nil {
		return nil
	}
	return &domain.Transform{
		Pick:   t.Pick,
		Omit:   t.Omit,
		Rename: t.Rename,
		Inject: normalizeObject(t.Inject),
	}
}

// normalizeValue coerces every numeric scalar to float64. Match guards
// compare payload values with DeepEqual, and JSON payloads decode numbers as
// float64; seeded values must agree or equality silently never holds.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalizeValue(item)
		}
		return out
	case map[string]any:
		return normalizeObject(x)
	default:
		return v
	}
}

func normalizeObject(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalizeValue(v)
	}
	return out
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
