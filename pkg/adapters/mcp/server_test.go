package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hive "github.com/galaxy-co-ai/hive-mcp"
	"github.com/galaxy-co-ai/hive-mcp/pkg/adapters/memory"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
	"github.com/galaxy-co-ai/hive-mcp/pkg/dsl"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	b := dsl.New()
	b.Hex("docs-home").
		Name("Documentation Home").
		Hints("find documentation").
		Data("Welcome to the comb.").
		Edge("to-api", "api-reference").Always().Priority(1)
	b.Hex("api-reference").
		Name("API Reference").
		Hints("find api endpoints")

	store, err := b.Store()
	require.NoError(t, err)

	eng, err := hive.New(
		hive.WithStore(store),
		hive.WithJournal(memory.NewJournal()),
	)
	require.NoError(t, err)

	return NewServer(eng)
}

func TestHandleQuery_RanksMatches(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleQuery(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"intent": "find documentation",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Matches)
	assert.Equal(t, "docs-home", resp.Matches[0].Hex.ID)
	assert.Equal(t, []string{"find documentation"}, resp.Matches[0].MatchedHints)
}

func TestHandleQuery_RequiresIntent(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleQuery(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{})
	assert.Error(t, err)
}

func TestHandleQuery_HonorsLimit(t *testing.T) {
	s := newTestServer(t)

	// JSON numbers arrive as float64; both hexes match "find".
	resp, err := s.handleQuery(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"intent": "find documentation",
		"limit":  float64(1),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Matches, 1)
}

func TestHandleEnter(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleEnter(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"hex_id": "docs-home",
		"origin": "scout",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, resp.Exits, 1)
	assert.Equal(t, "to-api", resp.Exits[0].ID)
}

func TestHandleEnter_MissingHexIsSoft(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleEnter(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"hex_id": "ghost",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, domain.ReasonHexNotFound, resp.Error)
}

func TestHandleNextSteps(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleNextSteps(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"hex_id": "docs-home",
	})
	require.NoError(t, err)
	require.Len(t, resp.Edges, 1)
	assert.Equal(t, "api-reference", resp.Edges[0].To)
}

func TestHandleTraverse(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleTraverse(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"source_id": "docs-home",
		"edge_id":   "to-api",
		"origin":    "scout",
		"payload":   `{"token":"abc"}`,
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "api-reference", resp.Destination)
}

func TestHandleTraverse_UnknownEdgeIsSoft(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleTraverse(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"source_id": "docs-home",
		"edge_id":   "bogus",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, domain.ReasonEdgeNotFound, resp.Error)
}

func TestHandleTraverse_RejectsBadPayload(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleTraverse(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"source_id": "docs-home",
		"edge_id":   "to-api",
		"payload":   "{not json",
	})
	assert.Error(t, err)
}

func TestHandleDeposit(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleDeposit(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"hex_id": "api-reference",
		"data":   `{"note":"hello"}`,
		"origin": "scout",
	})
	require.NoError(t, err)
	assert.True(t, resp.Deposited)
}

func TestHandleDeposit_MissingHex(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleDeposit(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"hex_id": "ghost",
		"data":   `42`,
	})
	require.NoError(t, err)
	assert.False(t, resp.Deposited)
}

func TestHandleDeposit_RejectsBadJSON(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleDeposit(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"hex_id": "api-reference",
		"data":   "{not json",
	})
	assert.Error(t, err)
}

func TestHandleCreateHex(t *testing.T) {
	s := newTestServer(t)

	created, err := s.handleCreateHex(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"hex": `{"id":"billing","name":"Billing","type":"data","entryHints":["invoice questions"]}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "billing", created.ID)
	assert.False(t, created.Created.IsZero())

	list, err := s.handleListHexes(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Len(t, list.Hexes, 3)
}

func TestHandleCreateHex_RejectsDuplicate(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleCreateHex(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"hex": `{"id":"docs-home","name":"Copy","type":"data"}`,
	})
	assert.Error(t, err)
}

func TestHandleCreateHex_RejectsBadJSON(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleCreateHex(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"hex": "{not json",
	})
	assert.Error(t, err)
}

func TestHandleJourneyLog(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleEnter(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"hex_id": "docs-home",
		"origin": "scout",
	})
	require.NoError(t, err)
	_, err = s.handleTraverse(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"source_id": "docs-home",
		"edge_id":   "to-api",
		"origin":    "scout",
	})
	require.NoError(t, err)

	resp, err := s.handleJourneyLog(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, domain.ActionEnter, resp.Entries[0].Action)
	assert.Equal(t, domain.ActionExit, resp.Entries[1].Action)
	assert.Equal(t, "scout", resp.Entries[0].JourneyID)
}

func TestAgentContext(t *testing.T) {
	// No arguments at all keeps the call anonymous.
	in, err := decodeArgs(map[string]interface{}{})
	require.NoError(t, err)
	actx, err := in.agentContext()
	require.NoError(t, err)
	assert.Nil(t, actx)

	in, err = decodeArgs(map[string]interface{}{
		"origin":  "scout",
		"intent":  "find documentation",
		"payload": `{"token":"abc"}`,
	})
	require.NoError(t, err)
	actx, err = in.agentContext()
	require.NoError(t, err)
	require.NotNil(t, actx)
	assert.Equal(t, "scout", actx.Origin)
	assert.Equal(t, "find documentation", actx.Intent)
	assert.Equal(t, map[string]any{"token": "abc"}, actx.Payload)

	in = toolArgs{Payload: "{not json"}
	_, err = in.agentContext()
	assert.Error(t, err)
}

func TestDecodeArgs(t *testing.T) {
	// JSON numbers arrive as float64; weak typing folds them into ints.
	in, err := decodeArgs(map[string]interface{}{"limit": float64(5), "hex_id": "docs-home"})
	require.NoError(t, err)
	assert.Equal(t, 5, in.Limit)
	assert.Equal(t, "docs-home", in.HexID)

	in, err = decodeArgs(map[string]interface{}{})
	require.NoError(t, err)
	assert.Zero(t, in.Limit)

	_, err = decodeArgs(map[string]interface{}{"limit": "five"})
	assert.Error(t, err)
}
