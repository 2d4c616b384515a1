// Package mcp exposes the hive engine as a Model Context Protocol server, so
// AI agents can query, navigate and write to the comb as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	hive "github.com/galaxy-co-ai/hive-mcp"
	"github.com/galaxy-co-ai/hive-mcp/internal/logging"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
	"github.com/galaxy-co-ai/hive-mcp/pkg/ports"
)

// QueryResponse is the structured output of the query tool.
type QueryResponse struct {
	Matches []domain.QueryMatch `json:"matches" jsonschema_description:"Ranked hexes answering the intent, best first"`
}

// NextStepsResponse is the structured output of the next_steps tool.
type NextStepsResponse struct {
	Edges []domain.Edge `json:"edges" jsonschema_description:"Passable outbound edges, highest priority first"`
}

// DepositResponse is the structured output of the deposit tool.
type DepositResponse struct {
	Deposited bool `json:"deposited" jsonschema_description:"Whether the hex existed and took the data"`
}

// ListResponse is the structured output of the list_hexes tool.
type ListResponse struct {
	Hexes []*domain.Hex `json:"hexes" jsonschema_description:"Every hex in the comb, sorted by id"`
}

// LogResponse is the structured output of the journey_log tool.
type LogResponse struct {
	Entries []domain.LogEntry `json:"entries" jsonschema_description:"Most recent journal entries, oldest first"`
}

// Engine defines the navigation surface the MCP server drives.
type Engine interface {
	ports.Navigator
}

// Server wraps the hive engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the server's structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates an MCP server over the engine with every tool and
// resource registered.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{engine: engine}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	s.mcpServer = server.NewMCPServer("hive-mcp", strings.TrimSpace(hive.Version),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: query
	queryTool := mcp.NewTool("query",
		mcp.WithDescription("Find the hexes that best answer an intent, ranked by lexical match with synonym expansion."),
		mcp.WithString("intent", mcp.Required(), mcp.Description("What the agent is trying to do, in free text")),
		mcp.WithNumber("limit", mcp.Description("Maximum matches to return (default 5)")),
		mcp.WithOutputSchema[QueryResponse](),
	)
	s.mcpServer.AddTool(queryTool, mcp.NewStructuredToolHandler(s.handleQuery))

	// TOOL: enter_hex
	enterTool := mcp.NewTool("enter_hex",
		mcp.WithDescription("Land on a hex: returns its contents plus the outbound edges whose guards pass for your context."),
		mcp.WithString("hex_id", mcp.Required(), mcp.Description("The hex to enter")),
		mcp.WithString("origin", mcp.Description("Agent identity for journey grouping (optional)")),
		mcp.WithString("intent", mcp.Description("Current goal, used by intent guards (optional)")),
		mcp.WithString("payload", mcp.Description("JSON value the agent carries (optional)")),
		mcp.WithOutputSchema[domain.EnterResult](),
	)
	s.mcpServer.AddTool(enterTool, mcp.NewStructuredToolHandler(s.handleEnter))

	// TOOL: next_steps
	nextTool := mcp.NewTool("next_steps",
		mcp.WithDescription("List the passable outbound edges of a hex for your context, highest priority first."),
		mcp.WithString("hex_id", mcp.Required(), mcp.Description("The hex whose exits to list")),
		mcp.WithString("origin", mcp.Description("Agent identity (optional)")),
		mcp.WithString("intent", mcp.Description("Current goal (optional)")),
		mcp.WithString("payload", mcp.Description("JSON value the agent carries (optional)")),
		mcp.WithOutputSchema[NextStepsResponse](),
	)
	s.mcpServer.AddTool(nextTool, mcp.NewStructuredToolHandler(s.handleNextSteps))

	// TOOL: traverse
	traverseTool := mcp.NewTool("traverse",
		mcp.WithDescription("Cross one edge. The guard is re-checked and the payload is transformed per the edge's rules. Failures come back as values, not errors."),
		mcp.WithString("source_id", mcp.Required(), mcp.Description("The hex being left")),
		mcp.WithString("edge_id", mcp.Required(), mcp.Description("The edge to cross")),
		mcp.WithString("origin", mcp.Description("Agent identity (optional)")),
		mcp.WithString("intent", mcp.Description("Current goal (optional)")),
		mcp.WithString("payload", mcp.Description("JSON value the agent carries (optional)")),
		mcp.WithOutputSchema[domain.TraversalResult](),
	)
	s.mcpServer.AddTool(traverseTool, mcp.NewStructuredToolHandler(s.handleTraverse))

	// TOOL: deposit
	depositTool := mcp.NewTool("deposit",
		mcp.WithDescription("Merge data into a hex's contents: sequences concatenate, objects shallow-merge (incoming wins), anything else replaces."),
		mcp.WithString("hex_id", mcp.Required(), mcp.Description("The hex to write into")),
		mcp.WithString("data", mcp.Required(), mcp.Description("JSON value to merge")),
		mcp.WithString("origin", mcp.Description("Agent identity; when set the write is recorded on the journey (optional)")),
		mcp.WithOutputSchema[DepositResponse](),
	)
	s.mcpServer.AddTool(depositTool, mcp.NewStructuredToolHandler(s.handleDeposit))

	// TOOL: create_hex
	createTool := mcp.NewTool("create_hex",
		mcp.WithDescription("Validate and persist a new hex. Fails if the id already exists."),
		mcp.WithString("hex", mcp.Required(), mcp.Description("JSON hex record: id, name, type, and optionally description, tags, contents, entryHints, edges")),
		mcp.WithOutputSchema[domain.Hex](),
	)
	s.mcpServer.AddTool(createTool, mcp.NewStructuredToolHandler(s.handleCreateHex))

	// TOOL: list_hexes
	listTool := mcp.NewTool("list_hexes",
		mcp.WithDescription("List every hex in the comb."),
		mcp.WithOutputSchema[ListResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListHexes))

	// TOOL: journey_log
	logTool := mcp.NewTool("journey_log",
		mcp.WithDescription("Read the most recent entries from the durable journey journal."),
		mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default 100)")),
		mcp.WithOutputSchema[LogResponse](),
	)
	s.mcpServer.AddTool(logTool, mcp.NewStructuredToolHandler(s.handleJourneyLog))
}

// Handler methods for structured tools

func (s *Server) handleQuery(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (QueryResponse, error) {
	in, err := decodeArgs(args)
	if err != nil {
		return QueryResponse{}, err
	}
	if in.Intent == "" {
		return QueryResponse{}, fmt.Errorf("intent must not be empty")
	}

	matches, err := s.engine.Query(ctx, in.Intent, in.Limit)
	if err != nil {
		return QueryResponse{}, fmt.Errorf("query failed: %w", err)
	}
	return QueryResponse{Matches: matches}, nil
}

func (s *Server) handleEnter(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.EnterResult, error) {
	in, err := decodeArgs(args)
	if err != nil {
		return domain.EnterResult{}, err
	}
	actx, err := in.agentContext()
	if err != nil {
		return domain.EnterResult{}, err
	}
	return s.engine.Enter(ctx, in.HexID, actx), nil
}

func (s *Server) handleNextSteps(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (NextStepsResponse, error) {
	in, err := decodeArgs(args)
	if err != nil {
		return NextStepsResponse{}, err
	}
	actx, err := in.agentContext()
	if err != nil {
		return NextStepsResponse{}, err
	}
	edges, err := s.engine.NextSteps(ctx, in.HexID, actx)
	if err != nil {
		return NextStepsResponse{}, fmt.Errorf("next steps failed: %w", err)
	}
	return NextStepsResponse{Edges: edges}, nil
}

func (s *Server) handleTraverse(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.TraversalResult, error) {
	in, err := decodeArgs(args)
	if err != nil {
		return domain.TraversalResult{}, err
	}
	actx, err := in.agentContext()
	if err != nil {
		return domain.TraversalResult{}, err
	}
	return s.engine.Traverse(ctx, in.SourceID, in.EdgeID, actx), nil
}

func (s *Server) handleDeposit(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (DepositResponse, error) {
	in, err := decodeArgs(args)
	if err != nil {
		return DepositResponse{}, err
	}

	var data any
	if err := json.Unmarshal([]byte(in.Data), &data); err != nil {
		return DepositResponse{}, fmt.Errorf("data is not valid JSON: %w", err)
	}

	var actx *domain.AgentContext
	if in.Origin != "" {
		actx = &domain.AgentContext{Origin: in.Origin}
	}

	ok, err := s.engine.Deposit(ctx, in.HexID, data, actx)
	if err != nil {
		return DepositResponse{}, fmt.Errorf("deposit failed: %w", err)
	}
	return DepositResponse{Deposited: ok}, nil
}

func (s *Server) handleCreateHex(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Hex, error) {
	in, err := decodeArgs(args)
	if err != nil {
		return domain.Hex{}, err
	}

	var hex domain.Hex
	if err := json.Unmarshal([]byte(in.Hex), &hex); err != nil {
		return domain.Hex{}, fmt.Errorf("hex is not a valid JSON record: %w", err)
	}

	created, err := s.engine.CreateHex(ctx, &hex)
	if err != nil {
		return domain.Hex{}, fmt.Errorf("create failed: %w", err)
	}
	return *created, nil
}

func (s *Server) handleListHexes(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	hexes, err := s.engine.ListHexes(ctx)
	if err != nil {
		return ListResponse{}, fmt.Errorf("list failed: %w", err)
	}
	return ListResponse{Hexes: hexes}, nil
}

func (s *Server) handleJourneyLog(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (LogResponse, error) {
	in, err := decodeArgs(args)
	if err != nil {
		return LogResponse{}, err
	}
	entries, err := s.engine.JourneyLog(ctx, in.Limit)
	if err != nil {
		return LogResponse{}, fmt.Errorf("journey log failed: %w", err)
	}
	return LogResponse{Entries: entries}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: hive://comb
	s.mcpServer.AddResource(mcp.NewResource("hive://comb", "Full Comb Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		hexes, err := s.engine.ListHexes(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read comb: %w", err)
		}
		jsonBytes, _ := json.Marshal(hexes)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "hive://comb",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

// toolArgs is the flat argument shape shared by every tool. Each tool
// declares the keys it accepts in its schema; the rest decode to zero values
// and stay unused.
type toolArgs struct {
	Intent   string `mapstructure:"intent"`
	Limit    int    `mapstructure:"limit"`
	HexID    string `mapstructure:"hex_id"`
	SourceID string `mapstructure:"source_id"`
	EdgeID   string `mapstructure:"edge_id"`
	Origin   string `mapstructure:"origin"`
	Payload  string `mapstructure:"payload"`
	Data     string `mapstructure:"data"`
	Hex      string `mapstructure:"hex"`
}

// decodeArgs maps raw tool arguments onto toolArgs. Weak typing tolerates
// the float64 form JSON numbers arrive in.
func decodeArgs(args map[string]interface{}) (toolArgs, error) {
	var in toolArgs
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &in,
	})
	if err != nil {
		return in, err
	}
	if err := dec.Decode(args); err != nil {
		return in, fmt.Errorf("invalid arguments: %w", err)
	}
	return in, nil
}

// agentContext assembles the optional agent context from the decoded
// arguments. It returns nil when the caller supplied none of them, keeping
// anonymous calls anonymous.
func (in toolArgs) agentContext() (*domain.AgentContext, error) {
	if in.Origin == "" && in.Intent == "" && in.Payload == "" {
		return nil, nil
	}

	actx := &domain.AgentContext{Origin: in.Origin, Intent: in.Intent}
	if in.Payload != "" {
		if err := json.Unmarshal([]byte(in.Payload), &actx.Payload); err != nil {
			return nil, fmt.Errorf("payload is not valid JSON: %w", err)
		}
	}
	return actx, nil
}

func serverInstructions() string {
	return `You have access to hive, a navigable knowledge comb.

Content and capabilities live in hexes; directed, guarded edges join them.
Start with the query tool to find hexes matching your goal, enter_hex to read
one and see its passable exits, and traverse to cross an edge (your payload
is transformed per the edge's rules). Use deposit to leave data in a hex.

Pass the same origin string on every call in a session: it groups your moves
into one journey, which journey_log lets you audit later. Edges whose target
starts with "external:" hand control off outside the comb; traverse reports
them with external=true and does not enter them.`
}
