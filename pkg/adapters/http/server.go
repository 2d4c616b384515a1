// Package http exposes the hive engine as a JSON REST API with an SSE
// journey stream, documented and validated by an embedded OpenAPI contract.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	hive "github.com/galaxy-co-ai/hive-mcp"
	"github.com/galaxy-co-ai/hive-mcp/internal/logging"
	"github.com/galaxy-co-ai/hive-mcp/internal/presentation/graph"
	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Engine defines the navigation surface the HTTP adapter drives.
type Engine interface {
	Query(ctx context.Context, intent string, limit int) ([]domain.QueryMatch, error)
	Enter(ctx context.Context, hexID string, actx *domain.AgentContext) domain.EnterResult
	NextSteps(ctx context.Context, hexID string, actx *domain.AgentContext) ([]domain.Edge, error)
	Traverse(ctx context.Context, sourceID, edgeID string, actx *domain.AgentContext) domain.TraversalResult
	Deposit(ctx context.Context, hexID string, data any, actx *domain.AgentContext) (bool, error)
	CreateHex(ctx context.Context, hex *domain.Hex) (*domain.Hex, error)
	ListHexes(ctx context.Context) ([]*domain.Hex, error)
	Journey(origin string) (*domain.Journey, bool)
	Journeys() []*domain.Journey
	JourneyLog(ctx context.Context, limit int) ([]domain.LogEntry, error)
}

// Server holds the handler state: the engine, the parsed API contract used
// for request validation, and the SSE stream fan-out.
type Server struct {
	engine  Engine
	logger  *slog.Logger
	doc     *openapi3.T
	streams *StreamManager
	metrics http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts a Prometheus scrape endpoint at GET /metrics exposing
// the given registry.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}
}

// NewHandler builds the HTTP handler for the engine. The embedded OpenAPI
// document is parsed and checked here; request bodies are validated against
// its schemas before they reach the engine.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	s := &Server{
		engine:  engine,
		logger:  logging.NewNop(),
		streams: NewStreamManager(),
	}
	for _, opt := range opts {
		opt(s)
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("loading OpenAPI contract: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI contract: %w", err)
	}
	s.doc = doc

	r := chi.NewRouter()

	// Contract and Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Post("/query", s.Query)
	r.Get("/hexes", s.ListHexes)
	r.Post("/hexes", s.CreateHex)
	r.Post("/hexes/{hexId}/enter", s.Enter)
	r.Post("/hexes/{hexId}/next-steps", s.NextSteps)
	r.Post("/hexes/{hexId}/deposit", s.Deposit)
	r.Post("/traverse", s.Traverse)
	r.Get("/journeys", s.ListJourneys)
	r.Get("/journeys/log", s.JourneyLog)
	r.Get("/journeys/{origin}", s.GetJourney)
	r.Get("/graph", s.GetGraph)
	r.Get("/events", s.SubscribeEvents)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method("GET", "/metrics", s.metrics)
	}

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Hive API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// Request bodies

type queryRequest struct {
	Intent string `json:"intent"`
	Limit  int    `json:"limit"`
}

type contextRequest struct {
	Origin  string `json:"origin"`
	Intent  string `json:"intent"`
	Payload any    `json:"payload"`
}

func (c contextRequest) agentContext() *domain.AgentContext {
	if c.Origin == "" && c.Intent == "" && c.Payload == nil {
		return nil
	}
	return &domain.AgentContext{Origin: c.Origin, Intent: c.Intent, Payload: c.Payload}
}

type traverseRequest struct {
	SourceID string `json:"sourceId"`
	EdgeID   string `json:"edgeId"`
	contextRequest
}

type depositRequest struct {
	Data   any    `json:"data"`
	Origin string `json:"origin"`
}

// decodeValid reads the body, checks it against the named schema from the
// embedded contract and decodes it into dst. It writes the 400 response
// itself and reports whether the handler should continue.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, schema string, dst any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		s.logger.Warn("request body read failed", "error", err)
		return false
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("request body not JSON", "error", err)
		return false
	}
	if ref, ok := s.doc.Components.Schemas[schema]; ok && ref.Value != nil {
		if err := ref.Value.VisitJSON(value); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
			s.logger.Warn("request rejected by contract", "schema", schema, "error", err)
			return false
		}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("request body decode failed", "error", err)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// Query handles POST /query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var body queryRequest
	if !s.decodeValid(w, r, "QueryRequest", &body) {
		return
	}

	matches, err := s.engine.Query(r.Context(), body.Intent, body.Limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Query error: %v", err), http.StatusInternalServerError)
		s.logger.Error("query failed", "error", err)
		return
	}
	s.broadcast(domain.AnonymousJourneyID, domain.JourneyStep{Action: domain.ActionQuery})
	s.writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

// Enter handles POST /hexes/{hexId}/enter.
func (s *Server) Enter(w http.ResponseWriter, r *http.Request) {
	hexID := chi.URLParam(r, "hexId")
	var body contextRequest
	if !s.decodeValid(w, r, "AgentContext", &body) {
		return
	}

	actx := body.agentContext()
	res := s.engine.Enter(r.Context(), hexID, actx)
	if res.Success {
		s.broadcast(actx.JourneyOrigin(), domain.JourneyStep{HexID: hexID, Action: domain.ActionEnter})
	}
	s.writeJSON(w, http.StatusOK, res)
}

// NextSteps handles POST /hexes/{hexId}/next-steps.
func (s *Server) NextSteps(w http.ResponseWriter, r *http.Request) {
	hexID := chi.URLParam(r, "hexId")
	var body contextRequest
	if !s.decodeValid(w, r, "AgentContext", &body) {
		return
	}

	edges, err := s.engine.NextSteps(r.Context(), hexID, body.agentContext())
	if err != nil {
		http.Error(w, fmt.Sprintf("Next steps error: %v", err), http.StatusInternalServerError)
		s.logger.Error("next steps failed", "hex", hexID, "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"edges": edges})
}

// Traverse handles POST /traverse.
func (s *Server) Traverse(w http.ResponseWriter, r *http.Request) {
	var body traverseRequest
	if !s.decodeValid(w, r, "TraverseRequest", &body) {
		return
	}

	actx := body.agentContext()
	res := s.engine.Traverse(r.Context(), body.SourceID, body.EdgeID, actx)
	if res.Success {
		s.broadcast(actx.JourneyOrigin(), domain.JourneyStep{
			HexID:  body.SourceID,
			Action: domain.ActionExit,
			EdgeID: body.EdgeID,
		})
	}
	s.writeJSON(w, http.StatusOK, res)
}

// Deposit handles POST /hexes/{hexId}/deposit.
func (s *Server) Deposit(w http.ResponseWriter, r *http.Request) {
	hexID := chi.URLParam(r, "hexId")
	var body depositRequest
	if !s.decodeValid(w, r, "DepositRequest", &body) {
		return
	}

	var actx *domain.AgentContext
	if body.Origin != "" {
		actx = &domain.AgentContext{Origin: body.Origin}
	}
	ok, err := s.engine.Deposit(r.Context(), hexID, body.Data, actx)
	if err != nil {
		http.Error(w, fmt.Sprintf("Deposit error: %v", err), http.StatusInternalServerError)
		s.logger.Error("deposit failed", "hex", hexID, "error", err)
		return
	}
	if ok && actx != nil {
		s.broadcast(actx.Origin, domain.JourneyStep{HexID: hexID, Action: domain.ActionDeposit})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"deposited": ok})
}

// CreateHex handles POST /hexes.
func (s *Server) CreateHex(w http.ResponseWriter, r *http.Request) {
	var hex domain.Hex
	if !s.decodeValid(w, r, "Hex", &hex) {
		return
	}

	created, err := s.engine.CreateHex(r.Context(), &hex)
	if err != nil {
		if errors.Is(err, domain.ErrHexExists) {
			http.Error(w, fmt.Sprintf("Create error: %v", err), http.StatusConflict)
			return
		}
		if errors.Is(err, domain.ErrMalformedRecord) {
			http.Error(w, fmt.Sprintf("Create error: %v", err), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("Create error: %v", err), http.StatusInternalServerError)
		s.logger.Error("create failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

// ListHexes handles GET /hexes.
func (s *Server) ListHexes(w http.ResponseWriter, r *http.Request) {
	hexes, err := s.engine.ListHexes(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		s.logger.Error("list failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, hexes)
}

// ListJourneys handles GET /journeys.
func (s *Server) ListJourneys(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.Journeys())
}

// GetJourney handles GET /journeys/{origin}.
func (s *Server) GetJourney(w http.ResponseWriter, r *http.Request) {
	origin := chi.URLParam(r, "origin")
	journey, ok := s.engine.Journey(origin)
	if !ok {
		http.Error(w, "Journey not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, journey)
}

// JourneyLog handles GET /journeys/log.
func (s *Server) JourneyLog(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := s.engine.JourneyLog(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Log error: %v", err), http.StatusInternalServerError)
		s.logger.Error("journey log failed", "error", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// GetGraph handles GET /graph. format=mermaid renders a flowchart; the
// default returns the raw hexes.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	hexes, err := s.engine.ListHexes(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Graph error: %v", err), http.StatusInternalServerError)
		s.logger.Error("graph failed", "error", err)
		return
	}

	if r.URL.Query().Get("format") == "mermaid" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, graph.GenerateMermaid(hexes, nil))
		return
	}
	s.writeJSON(w, http.StatusOK, hexes)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "hive-http",
		"version":     strings.TrimSpace(hive.Version),
		"api_version": s.doc.Info.Version,
	})
}

// StreamManager fans journey steps out to active SSE connections. A
// subscription keyed by the empty string receives every journey.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
	}
}

func (sm *StreamManager) Subscribe(journeyID string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[journeyID]; !ok {
		sm.subscribers[journeyID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[journeyID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[journeyID]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, journeyID)
			}
		}
	}
}

func (sm *StreamManager) Broadcast(journeyID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for _, key := range []string{journeyID, ""} {
		for ch := range sm.subscribers[key] {
			select {
			case ch <- msg:
			default:
				// Drop message if channel is full (slow client)
			}
		}
	}
}

// broadcast pushes one step to SSE subscribers of the journey. The entry
// mirrors what the engine writes to the journal, minus payloads.
func (s *Server) broadcast(origin string, step domain.JourneyStep) {
	id := origin
	if id == "" {
		id = domain.AnonymousJourneyID
	}
	step.Timestamp = time.Now().UTC()
	entry := domain.LogEntry{JourneyID: id, JourneyStep: step}
	bytes, err := json.Marshal(entry)
	if err != nil {
		return
	}
	s.streams.Broadcast(id, string(bytes))
}

// SubscribeEvents handles GET /events (SSE). journey selects one journey to
// follow; actions filters by step action.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("sse: streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	journeyID := r.URL.Query().Get("journey")
	var actions []string
	if raw := r.URL.Query().Get("actions"); raw != "" {
		actions = strings.Split(raw, ",")
	}

	ch, cancel := s.streams.Subscribe(journeyID)
	defer cancel()

	s.logger.Info("sse: subscribed", "journey", journeyID)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("sse: client disconnected", "journey", journeyID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(actions) > 0 && !keepEntry(msg, actions) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func keepEntry(msg string, actions []string) bool {
	var entry domain.LogEntry
	if err := json.Unmarshal([]byte(msg), &entry); err != nil {
		return true
	}
	for _, a := range actions {
		if strings.TrimSpace(a) == string(entry.Action) {
			return true
		}
	}
	return false
}
