package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func validHex() *Hex {
	return &Hex{
		ID:   "docs-home",
		Name: "Documentation Home",
		Kind: KindData,
		Edges: []Edge{
			{ID: "to-api", To: "api-reference", Priority: 1, Description: "API details"},
			{ID: "out", To: "external:search", Priority: 0, Description: "hand off"},
		},
	}
}

func TestValidate(t *testing.T) {
	if err := validHex().Validate(); err != nil {
		t.Fatalf("expected valid hex, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Hex)
	}{
		{"missing id", func(h *Hex) { h.ID = "" }},
		{"missing name", func(h *Hex) { h.Name = "" }},
		{"unknown kind", func(h *Hex) { h.Kind = "portal" }},
		{"edge without id", func(h *Hex) { h.Edges[0].ID = "" }},
		{"edge without target", func(h *Hex) { h.Edges[0].To = "" }},
		{"duplicate edge id", func(h *Hex) { h.Edges[1].ID = h.Edges[0].ID }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := validHex()
			tc.mutate(h)
			err := h.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("error should wrap ErrMalformedRecord, got %v", err)
			}
		})
	}
}

func TestExternalTarget(t *testing.T) {
	internal := Edge{ID: "a", To: "other-hex"}
	if internal.IsExternal() {
		t.Fatal("plain hex id classified as external")
	}
	if name, ok := internal.ExternalTarget(); ok || name != "" {
		t.Fatalf("unexpected external target %q", name)
	}

	external := Edge{ID: "b", To: "external:billing"}
	if !external.IsExternal() {
		t.Fatal("external: target not classified")
	}
	name, ok := external.ExternalTarget()
	if !ok || name != "billing" {
		t.Fatalf("expected billing, got %q (ok=%v)", name, ok)
	}
}

func TestCloneIsolation(t *testing.T) {
	h := validHex()
	h.Tags = []string{"reference"}
	h.Contents.Data = map[string]any{"body": "hello", "nested": []any{"a"}}
	h.Edges[0].When = Condition{HasData: []string{"token"}}
	h.Edges[0].Transform = &Transform{Inject: map[string]any{"via": "docs"}}

	c := h.Clone()
	c.Tags[0] = "changed"
	c.Contents.Data.(map[string]any)["body"] = "mutated"
	c.Edges[0].When.HasData[0] = "changed"
	c.Edges[0].Transform.Inject["via"] = "elsewhere"

	if h.Tags[0] != "reference" {
		t.Error("tag mutation leaked into original")
	}
	if h.Contents.Data.(map[string]any)["body"] != "hello" {
		t.Error("contents mutation leaked into original")
	}
	if h.Edges[0].When.HasData[0] != "token" {
		t.Error("condition mutation leaked into original")
	}
	if h.Edges[0].Transform.Inject["via"] != "docs" {
		t.Error("transform mutation leaked into original")
	}
}

func TestClonePreservesClausePresence(t *testing.T) {
	// nil and empty clause slices mean different things to the evaluator;
	// Clone must not collapse one into the other.
	c := Condition{HasData: []string{}}
	got := c.Clone()
	if got.HasData == nil {
		t.Fatal("empty hasData clause became absent after Clone")
	}

	var zero Condition
	if zero.Clone().HasData != nil {
		t.Fatal("absent hasData clause became present after Clone")
	}
}

func TestRecordWireFormat(t *testing.T) {
	h := validHex()
	h.Normalize()
	h.Contents.Data = map[string]any{"body": "x"}
	h.Edges[0].When = Condition{Intent: "read api docs", HasData: []string{"token"}}

	raw, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"id", "name", "type", "contents", "entryHints", "edges", "tags", "created", "updated"} {
		if _, ok := m[key]; !ok {
			t.Errorf("record missing field %q", key)
		}
	}
	if m["type"] != KindData {
		t.Errorf("kind must serialize under \"type\", got %v", m["type"])
	}
	edge := m["edges"].([]any)[0].(map[string]any)
	for _, key := range []string{"id", "to", "when", "priority", "description"} {
		if _, ok := edge[key]; !ok {
			t.Errorf("edge missing field %q", key)
		}
	}
	when := edge["when"].(map[string]any)
	if _, ok := when["hasData"]; !ok {
		t.Error("condition hasData clause lost its wire name")
	}
}

func TestLogEntryWireFormat(t *testing.T) {
	entry := LogEntry{
		JourneyID: "agent-7",
		JourneyStep: JourneyStep{
			HexID:  "docs-home",
			Action: ActionEnter,
		},
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// Step fields inline beside the journey id: one flat record per line.
	for _, key := range []string{"journeyId", "hexId", "action", "timestamp"} {
		if _, ok := m[key]; !ok {
			t.Errorf("log entry missing field %q", key)
		}
	}
	if _, nested := m["JourneyStep"]; nested {
		t.Error("step fields must inline, not nest")
	}
}

func TestJourneyOrigin(t *testing.T) {
	var nilCtx *AgentContext
	if got := nilCtx.JourneyOrigin(); got != AnonymousJourneyID {
		t.Fatalf("nil context should resolve anonymous, got %q", got)
	}
	if got := (&AgentContext{}).JourneyOrigin(); got != AnonymousJourneyID {
		t.Fatalf("empty origin should resolve anonymous, got %q", got)
	}
	if got := (&AgentContext{Origin: "scout"}).JourneyOrigin(); got != "scout" {
		t.Fatalf("origin lost, got %q", got)
	}
}
